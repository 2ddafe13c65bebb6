package runner

import (
	"encoding/json"
	"strings"
)

type structuredAnswer struct {
	Answer     string   `json:"answer"`
	Reasoning  string   `json:"reasoning"`
	Confidence *float64 `json:"confidence"`
}

// parseAnswer extracts the structured answer from model output. Models
// asked for JSON still wrap it in prose or code fences often enough
// that parsing falls back through: strict JSON, first JSON object
// found in the text, then the raw trimmed content as the answer. A
// confidence outside [0,1] is dropped rather than clamped.
func parseAnswer(content string) (answer, reasoning string, confidence *float64) {
	trimmed := strings.TrimSpace(content)

	var parsed structuredAnswer
	if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil && parsed.Answer != "" {
		return parsed.Answer, parsed.Reasoning, validConfidence(parsed.Confidence)
	}

	if start := strings.Index(trimmed, "{"); start >= 0 {
		if end := strings.LastIndex(trimmed, "}"); end > start {
			if err := json.Unmarshal([]byte(trimmed[start:end+1]), &parsed); err == nil && parsed.Answer != "" {
				return parsed.Answer, parsed.Reasoning, validConfidence(parsed.Confidence)
			}
		}
	}

	return trimmed, "", nil
}

func validConfidence(c *float64) *float64 {
	if c == nil || *c < 0 || *c > 1 {
		return nil
	}
	return c
}
