package models

// ValidationResult is the outcome of classifying a hobby string.
type ValidationResult struct {
	IsValid        bool     `json:"isValid"`
	CorrectedHobby string   `json:"correctedHobby,omitempty"`
	Suggestions    []string `json:"suggestions"`
	Reasoning      string   `json:"reasoning"`
}

// MaxSuggestions caps the suggestions returned with a validation result.
const MaxSuggestions = 3
