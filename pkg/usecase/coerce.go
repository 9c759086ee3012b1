package usecase

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/resumediff/resumediff/pkg/domain/model"
)

const (
	maxHighlightItems = 10
	maxTermLen        = 100
	maxContextLen     = 500
	maxWarnings       = 5
	maxWarningLen     = 500
)

// parseResultJSON extracts a JSON object from a raw model response. Markdown
// fences are stripped first, then a direct parse is attempted, then the slice
// between the first '{' and the last '}'.
func parseResultJSON(raw string) (map[string]any, bool) {
	cleaned := stripFences(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err == nil {
		return data, true
	}

	first := strings.Index(cleaned, "{")
	last := strings.LastIndex(cleaned, "}")
	if first != -1 && last != -1 && first < last {
		if err := json.Unmarshal([]byte(cleaned[first:last+1]), &data); err == nil {
			return data, true
		}
	}

	return nil, false
}

func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

// coerceResult forces a parsed model response into the contract shape:
// deduplicated string lists, matchPercent clamped to [0,100] (recomputed from
// the lists when absent), bounded highlights and warnings.
func coerceResult(data map[string]any) *model.CompareResult {
	matched := coerceStringList(data["matchedSkills"])
	missing := coerceStringList(data["missingSkills"])

	percent, ok := coerceInt(data["matchPercent"])
	if !ok {
		if total := len(matched) + len(missing); total > 0 {
			percent = int(math.Round(100 * float64(len(matched)) / float64(total)))
		} else {
			percent = 0
		}
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	result := &model.CompareResult{
		MatchPercent:  percent,
		MatchedSkills: matched,
		MissingSkills: missing,
	}

	if h, ok := data["highlights"].(map[string]any); ok {
		jd := coerceHighlights(h["jdMatches"])
		resume := coerceHighlights(h["resumeMatches"])
		if jd != nil || resume != nil {
			result.Highlights = &model.Highlights{
				JDMatches:     jd,
				ResumeMatches: resume,
			}
		}
	}

	if ws, ok := data["warnings"].([]any); ok {
		for _, w := range ws {
			s, ok := w.(string)
			if !ok || s == "" {
				continue
			}
			if len(s) > maxWarningLen {
				s = cutAtRuneBoundary(s, maxWarningLen)
			}
			result.Warnings = append(result.Warnings, s)
			if len(result.Warnings) >= maxWarnings {
				break
			}
		}
	}

	return result
}

// coerceStringList deduplicates preserving first-seen order and drops
// non-string or empty entries
func coerceStringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}

	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok || s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func coerceInt(v any) (int, bool) {
	switch val := v.(type) {
	case float64:
		return int(val), true
	case int:
		return val, true
	default:
		return 0, false
	}
}

func coerceHighlights(v any) []model.HighlightItem {
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	var out []model.HighlightItem
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		term, okTerm := obj["term"].(string)
		context, okContext := obj["context"].(string)
		if !okTerm || !okContext {
			continue
		}
		if len(term) > maxTermLen {
			term = cutAtRuneBoundary(term, maxTermLen)
		}
		if len(context) > maxContextLen {
			context = cutAtRuneBoundary(context, maxContextLen)
		}
		out = append(out, model.HighlightItem{Term: term, Context: context})
		if len(out) >= maxHighlightItems {
			break
		}
	}
	return out
}
