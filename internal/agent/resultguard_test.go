package agent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardToolResultsBoundsAndDefaults(t *testing.T) {
	results := []map[string]any{
		{
			"endpoint": "/api/v1/care-tasks/1/sepsis/recommendation",
			"snippet":  "  bundle   de  sepsis  ",
			"recommendation": map[string]any{
				"priority_actions": []any{"a", "b", "c", "d", "e", "f", "g"},
				"severity":         "high",
			},
		},
		{"title": "Segundo"},
		{"title": "Tercero"},
	}

	safe := GuardToolResults(results, 2, 280)

	require.Len(t, safe, 2)
	first := safe[0]
	assert.Equal(t, "internal_recommendation", first.Type)
	assert.Equal(t, "Recomendacion interna", first.Title)
	assert.Equal(t, "/api/v1/care-tasks/1/sepsis/recommendation", first.Source)
	assert.Equal(t, "bundle de sepsis", first.Snippet)
	actions, ok := first.Recommendation["priority_actions"].([]string)
	require.True(t, ok)
	assert.Len(t, actions, 5)

	assert.Equal(t, "internal", safe[1].Source)
	assert.Equal(t, "Segundo", safe[1].Title)
}

func TestGuardToolResultsOversizedRecommendationCollapses(t *testing.T) {
	recommendation := map[string]any{}
	for _, key := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		recommendation[key] = strings.Repeat("x", 180)
	}

	safe := GuardToolResults([]map[string]any{{"recommendation": recommendation}}, 4, 280)

	require.Len(t, safe, 1)
	summary, ok := safe[0].Recommendation["summary"].(string)
	require.True(t, ok)
	assert.LessOrEqual(t, len(summary), 600)
}

func TestGuardToolResultsNonDictRecommendation(t *testing.T) {
	safe := GuardToolResults([]map[string]any{{"recommendation": "texto plano"}}, 4, 280)

	require.Len(t, safe, 1)
	assert.Empty(t, safe[0].Recommendation)
}
