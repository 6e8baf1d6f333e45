package service

import (
	"regexp"
	"strings"

	"postmate/internal/domain"
)

var (
	delimiterLine = regexp.MustCompile(`(?m)^[ \t]*-{3,}[ \t]*$`)
	listMarker    = regexp.MustCompile(`^([ \t]*)(?:\d+[.)]|[-*•])\s+(.*)$`)
	boldNumbered  = regexp.MustCompile(`^([ \t]*)\*\*\s*\d+[.)]\s*(.+?)\*\*\s*[:\-]?\s*(.*)$`)
	boldHeading   = regexp.MustCompile(`^\*\*(.+?)\*\*\s*[:\-]?\s*(.*)$`)
)

// ParseInsight splits a generated tier into narrative and suggestions.
//
// The narrative ends at the first line made only of dashes, or failing that
// at the first inline "---". Without any delimiter the whole text is the
// narrative and Structured is false. A suggestions segment with no list
// markers becomes one untitled suggestion. A marker indented deeper than the
// item it follows is a continuation of that item.
func ParseInsight(raw string) domain.ParsedInsight {
	text := strings.TrimSpace(strings.ReplaceAll(raw, "\r\n", "\n"))

	narrative, rest, found := splitOnDelimiter(text)
	if !found {
		return domain.ParsedInsight{
			Narrative:   text,
			Suggestions: []domain.Suggestion{},
		}
	}

	return domain.ParsedInsight{
		Narrative:   strings.TrimSpace(narrative),
		Suggestions: parseSuggestions(rest),
		Structured:  true,
	}
}

// ParseInsightSet parses every tier of a successful set; it returns nil for a
// failed one.
func ParseInsightSet(set domain.InsightSet) map[domain.InsightTier]domain.ParsedInsight {
	if set.Failed() {
		return nil
	}
	out := make(map[domain.InsightTier]domain.ParsedInsight, len(domain.InsightTiers))
	for _, tier := range domain.InsightTiers {
		out[tier] = ParseInsight(set.Tier(tier))
	}
	return out
}

func splitOnDelimiter(text string) (string, string, bool) {
	if loc := delimiterLine.FindStringIndex(text); loc != nil {
		return text[:loc[0]], text[loc[1]:], true
	}
	if i := strings.Index(text, "---"); i >= 0 {
		return text[:i], strings.TrimLeft(text[i:], "-"), true
	}
	return text, "", false
}

func parseSuggestions(segment string) []domain.Suggestion {
	items := []domain.Suggestion{}
	var (
		current *domain.Suggestion
		details []string
		indent  int
	)
	flush := func() {
		if current == nil {
			return
		}
		if len(details) > 0 {
			current.Detail = strings.TrimSpace(strings.Join(append([]string{current.Detail}, details...), " "))
		}
		if current.Title != "" || current.Detail != "" {
			items = append(items, *current)
		}
		current, details = nil, nil
	}

	for _, line := range strings.Split(segment, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if m := boldNumbered.FindStringSubmatch(line); m != nil {
			flush()
			current = &domain.Suggestion{
				Title:  strings.TrimSpace(strings.TrimRight(m[2], ": ")),
				Detail: strings.TrimSpace(m[3]),
			}
			indent = len(m[1])
			continue
		}
		if m := listMarker.FindStringSubmatch(line); m != nil {
			if current != nil && len(m[1]) > indent {
				details = append(details, strings.TrimSpace(m[2]))
				continue
			}
			flush()
			s := newSuggestion(strings.TrimSpace(m[2]))
			current = &s
			indent = len(m[1])
			continue
		}
		// Prose before the first marker is a heading the model added anyway.
		if current == nil {
			continue
		}
		details = append(details, trimmed)
	}
	flush()

	if len(items) == 0 {
		if seg := strings.TrimSpace(segment); seg != "" {
			items = append(items, domain.Suggestion{Detail: strings.Join(strings.Fields(seg), " ")})
		}
	}
	return items
}

func newSuggestion(body string) domain.Suggestion {
	m := boldHeading.FindStringSubmatch(body)
	if m == nil {
		return domain.Suggestion{Detail: body}
	}
	return domain.Suggestion{
		Title:  strings.TrimSpace(strings.TrimRight(m[1], ": ")),
		Detail: strings.TrimSpace(m[2]),
	}
}
