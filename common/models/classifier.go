package models

import "encoding/json"

// ClassificationResult represents the result of classifying a token sequence
type ClassificationResult struct {
	EvenNumbers       []string `json:"even_numbers" yaml:"even_numbers"`
	OddNumbers        []string `json:"odd_numbers" yaml:"odd_numbers"`
	Alphabets         []string `json:"alphabets" yaml:"alphabets"`
	SpecialCharacters []string `json:"special_characters" yaml:"special_characters"`
	Sum               string   `json:"sum" yaml:"sum"`
	ConcatString      string   `json:"concat_string" yaml:"concat_string"`
}

// NewClassificationResult creates an empty result with non-nil sequences
func NewClassificationResult() ClassificationResult {
	return ClassificationResult{
		EvenNumbers:       []string{},
		OddNumbers:        []string{},
		Alphabets:         []string{},
		SpecialCharacters: []string{},
		Sum:               "0",
	}
}

// BFHLRequest represents the body of a POST /bfhl request.
// Data is kept raw so its shape can be checked before decoding tokens.
type BFHLRequest struct {
	Data json.RawMessage `json:"data" swaggertype:"array,object"`
}

// Identity holds the fields every /bfhl response carries
type Identity struct {
	IsSuccess  bool   `json:"is_success"`
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	RollNumber string `json:"roll_number"`
}

// BFHLResponse represents a successful classification response
type BFHLResponse struct {
	Identity
	OddNumbers        []string `json:"odd_numbers"`
	EvenNumbers       []string `json:"even_numbers"`
	Alphabets         []string `json:"alphabets"`
	SpecialCharacters []string `json:"special_characters"`
	Sum               string   `json:"sum"`
	ConcatString      string   `json:"concat_string"`
}

// NewBFHLResponse wraps a classification result in a success envelope
func NewBFHLResponse(id Identity, result ClassificationResult) BFHLResponse {
	id.IsSuccess = true
	return BFHLResponse{
		Identity:          id,
		OddNumbers:        result.OddNumbers,
		EvenNumbers:       result.EvenNumbers,
		Alphabets:         result.Alphabets,
		SpecialCharacters: result.SpecialCharacters,
		Sum:               result.Sum,
		ConcatString:      result.ConcatString,
	}
}

// ErrorResponse represents a failed /bfhl request
type ErrorResponse struct {
	Identity
	Error string `json:"error"`
}

// NewErrorResponse creates a failure envelope with the given message
func NewErrorResponse(id Identity, message string) ErrorResponse {
	id.IsSuccess = false
	return ErrorResponse{Identity: id, Error: message}
}

// InfoEndpoints lists the public endpoints advertised by GET /
type InfoEndpoints struct {
	PostBFHL string `json:"post_bfhl"`
}

// InfoResponse represents the static GET / response
type InfoResponse struct {
	OK        bool          `json:"ok"`
	Message   string        `json:"message"`
	Endpoints InfoEndpoints `json:"endpoints"`
}
