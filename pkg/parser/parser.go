package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// JSONParser parses model-emitted JSON into a struct, tolerating markdown
// code fences around the payload.
type JSONParser[T any] struct{}

// NewJSONParser creates a new JSON parser.
func NewJSONParser[T any]() *JSONParser[T] {
	return &JSONParser[T]{}
}

// Parse tries to extract and parse JSON from the text.
func (p *JSONParser[T]) Parse(text string) (T, error) {
	var zero T
	cleaned := cleanJSON(text)

	if err := json.Unmarshal([]byte(cleaned), &zero); err != nil {
		return zero, fmt.Errorf("failed to parse JSON: %w. Input: %s", err, text)
	}
	return zero, nil
}

// Arguments decodes the JSON argument string of a tool call into a keyword
// map. An empty or missing argument string means "no arguments" and yields
// an empty map rather than a decode error; anything else must be a valid
// JSON object.
func Arguments(raw string) (map[string]any, error) {
	cleaned := cleanJSON(raw)
	if cleaned == "" {
		return map[string]any{}, nil
	}

	args := map[string]any{}
	if err := json.Unmarshal([]byte(cleaned), &args); err != nil {
		return nil, fmt.Errorf("failed to parse tool arguments: %w. Input: %s", err, raw)
	}
	return args, nil
}

var codeFence = regexp.MustCompile("(?s)```(?:json)?(.*?)```")

// cleanJSON extracts JSON from markdown code blocks or strips surrounding whitespace.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if matches := codeFence.FindStringSubmatch(text); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	return text
}
