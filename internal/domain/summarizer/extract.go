package summarizer

import "strings"

// ExtractText joins the string "text" field of every object item with single
// spaces and trims the result. Anything else is skipped.
func ExtractText(items []any) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		text, ok := obj["text"].(string)
		if !ok {
			continue
		}
		parts = append(parts, text)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
