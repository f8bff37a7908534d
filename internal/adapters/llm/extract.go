// Package llm holds helpers shared by language-model adapters.
package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSONObject is returned when a model reply contains no decodable JSON object.
var ErrNoJSONObject = errors.New("LLM response was not valid JSON")

// ExtractJSONObject returns the JSON object contained in a model reply. Replies that
// are already valid JSON are returned as-is (trimmed); otherwise the text between the
// first '{' and the last '}' is tried, which drops markdown fences and chatter.
func ExtractJSONObject(reply string) ([]byte, error) {
	s := strings.TrimSpace(reply)
	if s != "" && json.Valid([]byte(s)) {
		return []byte(s), nil
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return nil, ErrNoJSONObject
	}
	candidate := []byte(s[start : end+1])
	if !json.Valid(candidate) {
		return nil, ErrNoJSONObject
	}
	return candidate, nil
}
