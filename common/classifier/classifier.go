// Package classifier sorts a sequence of tokens into numeric, alphabetic and
// special buckets and derives the sum and concat string of a BFHL response.
//
// Classify is a pure function: it keeps no state between calls and is safe to
// call from any number of goroutines.
package classifier

import (
	"math/big"
	"strings"

	"puresearch/bfhl-api/common/models"
)

// Bucket names a destination of a classified token
type Bucket string

const (
	BucketEven    Bucket = "even"
	BucketOdd     Bucket = "odd"
	BucketAlpha   Bucket = "alphabet"
	BucketSpecial Bucket = "special"
	BucketDropped Bucket = "dropped"
)

// Classify runs the classification over tokens in input order
func Classify(tokens []models.Token) models.ClassificationResult {
	result, _ := ClassifyWithStats(tokens)
	return result
}

// ClassifyWithStats is Classify that also reports how many tokens landed in
// each bucket
func ClassifyWithStats(tokens []models.Token) (models.ClassificationResult, map[Bucket]int) {
	result := models.NewClassificationResult()
	stats := make(map[Bucket]int, 5)
	sum := new(big.Int)
	var letters []byte

	for _, tok := range tokens {
		text := tok.String()
		letters = append(letters, ExtractLetters(text)...)

		bucket := route(tok, text, &result, sum)
		stats[bucket]++
	}

	result.Sum = sum.String()
	result.ConcatString = AlternateCase(reverse(letters))
	return result, stats
}

// route places a single normalized token into its bucket
func route(tok models.Token, text string, result *models.ClassificationResult, sum *big.Int) Bucket {
	if n, ok := numericValue(tok, text); ok {
		sum.Add(sum, n)
		if n.Bit(0) == 0 {
			result.EvenNumbers = append(result.EvenNumbers, text)
			return BucketEven
		}
		result.OddNumbers = append(result.OddNumbers, text)
		return BucketOdd
	}

	switch {
	case strings.TrimSpace(text) == "":
		return BucketDropped
	case IsAlphabetic(text):
		result.Alphabets = append(result.Alphabets, strings.ToUpper(text))
		return BucketAlpha
	case IsSpecialOnly(text):
		result.SpecialCharacters = append(result.SpecialCharacters, text)
		return BucketSpecial
	default:
		// mixed letters, digits and punctuation
		result.SpecialCharacters = append(result.SpecialCharacters, text)
		return BucketSpecial
	}
}

// numericValue reports whether a token is numeric and returns its value.
// Only integer-typed tokens may be negative; a text "-5" is not numeric.
func numericValue(tok models.Token, text string) (*big.Int, bool) {
	if tok.Kind == models.KindInteger {
		if tok.Integer == nil {
			return new(big.Int), true
		}
		return tok.Integer, true
	}
	if !IsNumericText(text) {
		return nil, false
	}
	n, ok := new(big.Int).SetString(text, 10)
	return n, ok
}

// IsNumericText reports whether s is one or more ASCII digits
func IsNumericText(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// IsAlphabetic reports whether s is one or more ASCII letters
func IsAlphabetic(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isLetter(s[i]) {
			return false
		}
	}
	return true
}

// IsSpecialOnly reports whether s is non-empty and holds no ASCII letter or digit
func IsSpecialOnly(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if isLetter(s[i]) || isDigit(s[i]) {
			return false
		}
	}
	return true
}

// ExtractLetters returns the ASCII letters of s in order
func ExtractLetters(s string) []byte {
	var out []byte
	for i := 0; i < len(s); i++ {
		if isLetter(s[i]) {
			out = append(out, s[i])
		}
	}
	return out
}

// AlternateCase upper-cases letters at even positions and lower-cases those at
// odd positions
func AlternateCase(letters []byte) string {
	var b strings.Builder
	b.Grow(len(letters))
	for i, c := range letters {
		if i%2 == 0 {
			b.WriteByte(toUpper(c))
		} else {
			b.WriteByte(toLower(c))
		}
	}
	return b.String()
}

func reverse(in []byte) []byte {
	out := make([]byte, len(in))
	for i, c := range in {
		out[len(in)-1-i] = c
	}
	return out
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}
