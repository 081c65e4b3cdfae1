// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package suggest maps free text to example function calls by keyword.
// Matching is a case-insensitive substring test against a short fixed
// table; there is no language understanding behind it.
package suggest

import (
	"strings"

	"github.com/pdiddy/research-analytics/internal/registry"
)

// Suggestion is an example call a caller can pass straight to Invoke.
type Suggestion struct {
	Function    string         `json:"function" yaml:"function"`
	Description string         `json:"description" yaml:"description"`
	Parameters  map[string]any `json:"parameters" yaml:"parameters"`
}

// Reply answers one message.
type Reply struct {
	Message     string       `json:"message" yaml:"message"`
	Suggestions []Suggestion `json:"suggestions" yaml:"suggestions"`
}

type rule struct {
	keywords   []string
	suggestion Suggestion
}

var rules = []rule{
	{
		keywords: []string{"compare", " vs ", "versus"},
		suggestion: Suggestion{
			Function:    registry.FnCompareEntities,
			Description: "Compare citations between two authors.",
			Parameters: map[string]any{
				"entityType": "author",
				"entityIdA":  "auth_001",
				"entityIdB":  "auth_002",
				"metric":     "citations",
			},
		},
	},
	{
		keywords: []string{"trend", "over time", "growth", "history"},
		suggestion: Suggestion{
			Function:    registry.FnGetTrend,
			Description: "Yearly citations of an author.",
			Parameters: map[string]any{
				"entityId": "auth_001",
				"metric":   "citations",
			},
		},
	},
	{
		keywords: []string{"top", "rank", "best", "highest", "most"},
		suggestion: Suggestion{
			Function:    registry.FnGetTopEntities,
			Description: "Most cited authors.",
			Parameters: map[string]any{
				"entityType": "author",
				"metric":     "citations",
				"limit":      5,
			},
		},
	},
	{
		keywords: []string{"search", "find", "look up", "who is"},
		suggestion: Suggestion{
			Function:    registry.FnSearchEntities,
			Description: "Search authors by name.",
			Parameters: map[string]any{
				"entityType": "author",
				"query":      "chen",
			},
		},
	},
	{
		keywords: []string{"metric", "h-index", "hindex", "fwci", "impact"},
		suggestion: Suggestion{
			Function:    registry.FnGetMetrics,
			Description: "All metrics of an author.",
			Parameters: map[string]any{
				"entityType": "author",
				"entityId":   "auth_001",
			},
		},
	},
}

const fallback = "No matching query. Try asking to compare, rank, search, or show a trend or metrics."

// Suggest returns the suggestions whose keywords occur in message, in
// table order, at most one per table entry.
func Suggest(message string) Reply {
	text := " " + strings.ToLower(message) + " "
	out := Reply{Suggestions: []Suggestion{}}
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				out.Suggestions = append(out.Suggestions, clone(r.suggestion))
				break
			}
		}
	}
	if len(out.Suggestions) == 0 {
		out.Message = fallback
		return out
	}
	out.Message = "Suggested calls for: " + strings.TrimSpace(message)
	return out
}

func clone(s Suggestion) Suggestion {
	params := make(map[string]any, len(s.Parameters))
	for k, v := range s.Parameters {
		params[k] = v
	}
	s.Parameters = params
	return s
}
