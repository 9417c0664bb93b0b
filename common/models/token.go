package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ErrNotArray is returned when a token document is not a JSON array
var ErrNotArray = errors.New("tokens: input is not an array")

// TokenKind identifies which variant of Token is populated
type TokenKind int

const (
	// KindOther covers null, booleans, objects and arrays
	KindOther TokenKind = iota
	KindInteger
	KindDecimal
	KindText
)

func (k TokenKind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindText:
		return "text"
	default:
		return "other"
	}
}

// Token represents one element of a classification input.
// Integer is set for KindInteger, Decimal for KindDecimal and Text for
// KindText and KindOther (the coerced textual form).
type Token struct {
	Kind    TokenKind
	Integer *big.Int
	Decimal float64
	Text    string
}

// IntegerToken creates an integer token. The value is copied.
func IntegerToken(v *big.Int) Token {
	if v == nil {
		return Token{Kind: KindInteger, Integer: new(big.Int)}
	}
	return Token{Kind: KindInteger, Integer: new(big.Int).Set(v)}
}

// Int64Token creates an integer token from an int64
func Int64Token(v int64) Token {
	return Token{Kind: KindInteger, Integer: big.NewInt(v)}
}

// DecimalToken creates a numeric token from a float64. Whole values become
// integer tokens and non-finite values become empty other tokens.
func DecimalToken(v float64) Token {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return OtherToken("")
	}
	if v == math.Trunc(v) {
		i, _ := big.NewFloat(v).Int(nil)
		return Token{Kind: KindInteger, Integer: i}
	}
	return Token{Kind: KindDecimal, Decimal: v}
}

// TextToken creates a string token
func TextToken(s string) Token {
	return Token{Kind: KindText, Text: s}
}

// OtherToken creates a token for any non-numeric, non-string value given its
// textual form
func OtherToken(text string) Token {
	return Token{Kind: KindOther, Text: text}
}

// String returns the normalized form of the token
func (t Token) String() string {
	switch t.Kind {
	case KindInteger:
		if t.Integer == nil {
			return "0"
		}
		return t.Integer.String()
	case KindDecimal:
		return strconv.FormatFloat(t.Decimal, 'f', -1, 64)
	default:
		return t.Text
	}
}

// UnmarshalJSON decodes a single JSON value into the matching token variant
func (t *Token) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 {
		return errors.New("tokens: empty value")
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("tokens: decode string: %w", err)
		}
		*t = TextToken(s)
	case 'n':
		*t = OtherToken("")
	case 't', 'f':
		*t = OtherToken(string(raw))
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return fmt.Errorf("tokens: compact value: %w", err)
		}
		*t = OtherToken(buf.String())
	default:
		tok, err := parseNumber(string(raw))
		if err != nil {
			return err
		}
		*t = tok
	}
	return nil
}

// MarshalJSON encodes the token back to its JSON form
func (t Token) MarshalJSON() ([]byte, error) {
	switch t.Kind {
	case KindInteger, KindDecimal:
		return []byte(t.String()), nil
	case KindText:
		return json.Marshal(t.Text)
	default:
		if t.Text == "" {
			return []byte("null"), nil
		}
		if json.Valid([]byte(t.Text)) {
			return []byte(t.Text), nil
		}
		return json.Marshal(t.Text)
	}
}

// parseNumber turns a JSON number literal into a token. Integer literals keep
// full precision; anything with a fraction or exponent goes through float64.
func parseNumber(lit string) (Token, error) {
	if !strings.ContainsAny(lit, ".eE") {
		i, ok := new(big.Int).SetString(lit, 10)
		if !ok {
			return Token{}, fmt.Errorf("tokens: invalid number %q", lit)
		}
		return Token{Kind: KindInteger, Integer: i}, nil
	}

	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			// out of float64 range; keep the literal as text
			return OtherToken(lit), nil
		}
		return Token{}, fmt.Errorf("tokens: invalid number %q: %w", lit, err)
	}
	return DecimalToken(f), nil
}

// ParseTokens decodes a JSON array document into tokens
func ParseTokens(data []byte) ([]Token, error) {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, ErrNotArray
	}

	var tokens []Token
	if err := json.Unmarshal(raw, &tokens); err != nil {
		return nil, fmt.Errorf("decode tokens: %w", err)
	}
	if tokens == nil {
		tokens = []Token{}
	}
	return tokens, nil
}
