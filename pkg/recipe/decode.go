package recipe

import (
	"encoding/json"
	"fmt"
	"strings"

	"cooking-assistant-be/pkg/store"
)

var requiredKeys = []string{"title", "ingredients", "instructions"}

// decodeReply extracts a recipe from a model reply that may be wrapped in
// markdown fences or surrounded by prose.
func decodeReply(reply string) (store.Recipe, error) {
	body := stripFences(reply)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		start := strings.Index(body, "{")
		end := strings.LastIndex(body, "}")
		if start < 0 || end <= start {
			return store.Recipe{}, fmt.Errorf("invalid JSON format in response: %s", truncate(body, 200))
		}
		body = body[start : end+1]
		if err := json.Unmarshal([]byte(body), &fields); err != nil {
			return store.Recipe{}, fmt.Errorf("invalid JSON format in response: %s", truncate(body, 200))
		}
	}

	for _, key := range requiredKeys {
		if _, ok := fields[key]; !ok {
			return store.Recipe{}, fmt.Errorf("missing required fields in response")
		}
	}

	var r store.Recipe
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return store.Recipe{}, fmt.Errorf("decode recipe: %w", err)
	}
	return r, nil
}

func stripFences(reply string) string {
	s := strings.TrimSpace(reply)
	if _, after, ok := strings.Cut(s, "```json"); ok {
		if inner, _, ok := strings.Cut(after, "```"); ok {
			return strings.TrimSpace(inner)
		}
		return strings.TrimSpace(after)
	}
	if strings.HasPrefix(s, "```") && strings.HasSuffix(s, "```") && len(s) >= 6 {
		return strings.TrimSpace(s[3 : len(s)-3])
	}
	return s
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
