package agent

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ToolResult is one internal recommendation attached to a chat turn before
// it is persisted or echoed into the transcript.
type ToolResult struct {
	Type           string         `json:"type"`
	Endpoint       string         `json:"endpoint"`
	Title          string         `json:"title"`
	Source         string         `json:"source"`
	Snippet        string         `json:"snippet"`
	Recommendation map[string]any `json:"recommendation"`
}

func compactText(value any, maxChars int) string {
	var text string
	switch v := value.(type) {
	case nil:
		text = ""
	case string:
		text = v
	default:
		text = fmt.Sprintf("%v", v)
	}
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > maxChars {
		text = text[:maxChars]
	}
	return text
}

func compactRecommendation(payload any, maxChars int) map[string]any {
	dict, ok := payload.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	compact := map[string]any{}
	for key, value := range dict {
		safeKey := compactText(key, 80)
		switch v := value.(type) {
		case []any:
			items := v
			if len(items) > 5 {
				items = items[:5]
			}
			list := make([]string, 0, len(items))
			for _, item := range items {
				list = append(list, compactText(item, 140))
			}
			compact[safeKey] = list
		case map[string]any:
			nested := map[string]string{}
			for k, inner := range v {
				if len(nested) >= 5 {
					break
				}
				nested[compactText(k, 60)] = compactText(inner, 140)
			}
			compact[safeKey] = nested
		default:
			compact[safeKey] = compactText(value, 180)
		}
	}
	raw, err := json.Marshal(compact)
	if err != nil || len(raw) <= maxChars {
		return compact
	}
	return map[string]any{"summary": string(raw[:maxChars])}
}

// GuardToolResults returns bounded, consistent tool results: at most maxItems
// entries, each with compacted text fields and a size-capped recommendation
// payload. Oversized recommendations collapse to a single summary string.
func GuardToolResults(results []map[string]any, maxItems, maxSnippetChars int) []ToolResult {
	if maxItems < 1 {
		maxItems = 1
	}
	if maxSnippetChars <= 0 {
		maxSnippetChars = 280
	}
	if len(results) > maxItems {
		results = results[:maxItems]
	}
	safe := make([]ToolResult, 0, len(results))
	for _, item := range results {
		endpoint := compactText(item["endpoint"], 160)
		title := item["title"]
		if title == nil || title == "" {
			title = "Recomendacion interna"
		}
		source := endpoint
		if source == "" {
			source = "internal"
		}
		safe = append(safe, ToolResult{
			Type:           "internal_recommendation",
			Endpoint:       endpoint,
			Title:          compactText(title, 120),
			Source:         source,
			Snippet:        compactText(item["snippet"], maxSnippetChars),
			Recommendation: compactRecommendation(item["recommendation"], 600),
		})
	}
	return safe
}
