package correct

import (
	"encoding/json"
	"fmt"
	"strings"
)

// replyPayload is the validated shape extracted from a model reply.
type replyPayload struct {
	Corrections     []Correction `json:"corrections"`
	CorrectSentence string       `json:"correct_sentence"`
}

// decodeReply turns the raw textual reply of a completion call into a
// validated payload. The model may wrap the object in prose or code fences
// despite instructions, so decoding tries the raw text, a fence-stripped
// variant, and the first {...} span before giving up.
func decodeReply(raw string) (*replyPayload, error) {
	parsed, err := extractJSONObject(raw)
	if err != nil {
		return nil, &DecodeError{Raw: raw, Err: err}
	}

	var doc any
	if err := json.Unmarshal(parsed, &doc); err != nil {
		return nil, &DecodeError{Raw: raw, Err: err}
	}
	if err := responseSchema.Validate(doc); err != nil {
		return nil, &SchemaError{Raw: raw, Err: err}
	}

	var payload replyPayload
	if err := json.Unmarshal(parsed, &payload); err != nil {
		return nil, &SchemaError{Raw: raw, Err: err}
	}
	return &payload, nil
}

// extractJSONObject locates the first well-formed JSON object within content
// and returns it normalized.
func extractJSONObject(content string) (json.RawMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("empty reply")
	}

	candidates := []string{content}
	if stripped := stripCodeFences(content); stripped != "" && stripped != content {
		candidates = append(candidates, stripped)
	}
	if span := firstObjectSpan(content); span != "" && span != content {
		candidates = append(candidates, span)
	}

	seen := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}

		var parsed any
		if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
			continue
		}
		if _, ok := parsed.(map[string]any); !ok {
			continue
		}
		normalized, err := json.Marshal(parsed)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize reply JSON: %w", err)
		}
		return normalized, nil
	}

	return nil, fmt.Errorf("no JSON object found in reply")
}

// stripCodeFences removes a leading ``` fence line and a trailing ``` line.
func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	idx := strings.Index(trimmed, "```")
	if idx < 0 {
		return ""
	}
	trimmed = trimmed[idx:]

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return ""
	}

	// Drop first fence line.
	lines = lines[1:]
	// Drop trailing fence if present.
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// firstObjectSpan returns the substring from the first '{' to the last '}'.
func firstObjectSpan(content string) string {
	start := strings.Index(content, "{")
	if start < 0 {
		return ""
	}
	end := strings.LastIndex(content, "}")
	if end < start {
		return ""
	}
	return strings.TrimSpace(content[start : end+1])
}
