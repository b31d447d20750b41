package ai

import (
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  error
	}{
		{"Plain object", `{"a":1}`, `{"a":1}`, nil},
		{"Fenced json", "```json\n{\"a\":1}\n```", `{"a":1}`, nil},
		{"Bare fence", "```\n{\"a\":1}\n```", `{"a":1}`, nil},
		{"Leading prose", "Sure! Here it is: {\"a\":{\"b\":2}} hope that helps", `{"a":{"b":2}}`, nil},
		{"No object", "I cannot help with that", "", ErrNoJSON},
		{"Reversed braces", "} oops {", "", ErrNoJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ExtractJSON() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ExtractJSON() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDecodeJSONSanitizesQuotes(t *testing.T) {
	response := "```json\n{\n  \"reasoning\": \"It is a \"fun\" hobby\",\n  \"isValid\": true\n}\n```"

	var out struct {
		Reasoning string `json:"reasoning"`
		IsValid   bool   `json:"isValid"`
	}
	if err := DecodeJSON(response, &out); err != nil {
		t.Fatalf("DecodeJSON() error = %v", err)
	}
	if !out.IsValid {
		t.Error("expected isValid true")
	}
	if out.Reasoning != `It is a "fun" hobby` {
		t.Errorf("Reasoning = %q", out.Reasoning)
	}
}

func TestDecodeJSONInvalid(t *testing.T) {
	var out map[string]any
	if err := DecodeJSON(`{"a": [1, 2}`, &out); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
