// Package jsonx extracts JSON payloads from LLM responses.
//
// Even when asked for "only JSON, no markdown", models routinely wrap the
// payload in code fences or surround it with commentary. This package strips
// those decorations and locates the JSON value inside the text.
package jsonx

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Extract parses the JSON value embedded in an LLM response into T.
// Handled response shapes, in order:
//  1. the whole response is valid JSON
//  2. JSON wrapped in ```json ... ``` or ``` ... ``` fences
//  3. a JSON object or array embedded in surrounding prose
func Extract[T any](response string) (T, error) {
	var result T
	payload, err := locate(response)
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return result, fmt.Errorf("unmarshal extracted JSON: %w", err)
	}
	return result, nil
}

// ExtractInto is the non-generic variant for callers holding a pointer.
func ExtractInto(response string, out any) error {
	payload, err := locate(response)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return fmt.Errorf("unmarshal extracted JSON: %w", err)
	}
	return nil
}

// locate returns the JSON portion of response, or an error with a short
// preview of the text when nothing parseable is found.
func locate(response string) (string, error) {
	candidate := stripFences(response)

	if json.Valid([]byte(candidate)) {
		return candidate, nil
	}

	// Fall back to the outermost object or array in the text. Simple
	// first/last delimiter matching; enough for single-value responses, not
	// for braces inside string literals.
	for _, pair := range [][2]string{{"{", "}"}, {"[", "]"}} {
		start := strings.Index(candidate, pair[0])
		end := strings.LastIndex(candidate, pair[1])
		if start == -1 || end <= start {
			continue
		}
		inner := candidate[start : end+1]
		if json.Valid([]byte(inner)) {
			return inner, nil
		}
	}

	preview := response
	if len(preview) > 100 {
		preview = preview[:100] + "..."
	}
	return "", fmt.Errorf("no valid JSON in response: %q", preview)
}

// stripFences removes a single leading/trailing markdown code fence.
func stripFences(response string) string {
	trimmed := strings.TrimSpace(response)

	if strings.HasPrefix(trimmed, "```json") {
		trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "```json"))
	} else if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
	}
	if strings.HasSuffix(trimmed, "```") {
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, "```"))
	}
	return trimmed
}
