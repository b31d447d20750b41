package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON strips markdown fences and returns the outermost JSON object.
func ExtractJSON(response string) (string, error) {
	s := strings.TrimSpace(response)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	startIdx := strings.Index(s, "{")
	endIdx := strings.LastIndex(s, "}")
	if startIdx == -1 || endIdx == -1 || endIdx < startIdx {
		return "", ErrNoJSON
	}

	return s[startIdx : endIdx+1], nil
}

// DecodeJSON extracts the JSON object from a model response and unmarshals it
// into v, retrying once on a sanitized copy.
func DecodeJSON(response string, v any) error {
	jsonStr, err := ExtractJSON(response)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(jsonStr), v); err != nil {
		sanitized := SanitizeJSON(jsonStr)
		if sanitizedErr := json.Unmarshal([]byte(sanitized), v); sanitizedErr != nil {
			return fmt.Errorf("failed to unmarshal model JSON: %w (sanitized version also failed: %v)", err, sanitizedErr)
		}
	}
	return nil
}

// SanitizeJSON escapes stray double quotes inside single-line string values,
// the most common defect in model-written JSON.
func SanitizeJSON(jsonStr string) string {
	lines := strings.Split(jsonStr, "\n")
	sanitizedLines := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		colonIdx := strings.Index(line, ":")
		if colonIdx != -1 && strings.Contains(line, "\"") {
			beforeColon := line[:colonIdx+1]
			afterColon := strings.TrimSpace(line[colonIdx+1:])

			if strings.HasPrefix(afterColon, "\"") {
				lastQuoteIdx := strings.LastIndex(afterColon, "\"")
				if lastQuoteIdx > 0 {
					content := afterColon[1:lastQuoteIdx]
					content = strings.ReplaceAll(content, `\"`, `"`)
					content = strings.ReplaceAll(content, `"`, `\"`)
					line = beforeColon + " \"" + content + "\"" + afterColon[lastQuoteIdx+1:]
				}
			}
		}

		sanitizedLines = append(sanitizedLines, line)
	}

	return strings.Join(sanitizedLines, "\n")
}
