package validator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wizqo2024/wizqo-sub002/internal/models"
	"github.com/wizqo2024/wizqo-sub002/shared/ai"
)

var errMissingVerdict = errors.New("LLM response missing isValid")

const classifyPrompt = `You are validating input for a hobby learning app that builds 7-day beginner plans.

Input: %q

Decide whether the input is a legitimate, safe hobby a beginner can start within 7 days.
Fix obvious spelling mistakes. Reject anything illegal, harmful, sexual, or requiring professional certification.

Respond with ONLY this JSON object, no markdown:
{
  "isValid": true,
  "correctedHobby": "the corrected hobby name, or empty",
  "suggestions": ["up to 3 related safe hobbies"],
  "reasoning": "one short sentence"
}`

type llmVerdict struct {
	IsValid        *bool    `json:"isValid"`
	CorrectedHobby string   `json:"correctedHobby"`
	Suggestions    []string `json:"suggestions"`
	Reasoning      string   `json:"reasoning"`
}

func (v *Validator) classifyWithLLM(ctx context.Context, normalized string) (models.ValidationResult, error) {
	response, err := v.llm.Complete(ctx, fmt.Sprintf(classifyPrompt, normalized))
	if err != nil {
		return models.ValidationResult{}, fmt.Errorf("%s completion: %w", v.llm.Name(), err)
	}

	var verdict llmVerdict
	if err := ai.DecodeJSON(response, &verdict); err != nil {
		return models.ValidationResult{}, err
	}
	if verdict.IsValid == nil {
		return models.ValidationResult{}, errMissingVerdict
	}

	corrected := Normalize(verdict.CorrectedHobby)
	if isDangerous(corrected) {
		return dangerousResult(), nil
	}

	suggestions := make([]string, 0, models.MaxSuggestions)
	for _, s := range verdict.Suggestions {
		s = Normalize(s)
		if s == "" || isDangerous(s) {
			continue
		}
		suggestions = append(suggestions, s)
		if len(suggestions) == models.MaxSuggestions {
			break
		}
	}

	result := models.ValidationResult{
		IsValid:     *verdict.IsValid,
		Suggestions: suggestions,
		Reasoning:   strings.TrimSpace(verdict.Reasoning),
	}
	if result.IsValid {
		result.CorrectedHobby = correction(normalized, corrected)
		result.Suggestions = []string{}
	}
	if result.Reasoning == "" {
		result.Reasoning = "Classified by " + v.llm.Name() + "."
	}
	return result, nil
}
