package domain

// InsightTier selects the length of a generated insight.
type InsightTier string

const (
	TierShort  InsightTier = "short"
	TierMedium InsightTier = "medium"
	TierLong   InsightTier = "long"
)

// InsightTiers lists every tier in display order.
var InsightTiers = []InsightTier{TierShort, TierMedium, TierLong}

// InsightSet is either all three tiers or a single error message, never a mix.
type InsightSet struct {
	Short  string `json:"short,omitempty"`
	Medium string `json:"medium,omitempty"`
	Long   string `json:"long,omitempty"`
	Error  string `json:"error,omitempty"`
}

// NewFailedInsightSet returns the aggregate failure value.
func NewFailedInsightSet(message string) InsightSet {
	return InsightSet{Error: message}
}

// Failed reports whether generation failed as a whole.
func (s InsightSet) Failed() bool {
	return s.Error != ""
}

// Tier returns the text for one tier.
func (s InsightSet) Tier(t InsightTier) string {
	switch t {
	case TierShort:
		return s.Short
	case TierMedium:
		return s.Medium
	case TierLong:
		return s.Long
	}
	return ""
}

// Suggestion is one numbered item from the suggestions segment.
type Suggestion struct {
	Title  string `json:"title,omitempty"`
	Detail string `json:"detail"`
}

// ParsedInsight is a tier split into narrative and suggestions.
// Structured is false when the model ignored the delimiter.
type ParsedInsight struct {
	Narrative   string       `json:"narrative"`
	Suggestions []Suggestion `json:"suggestions"`
	Structured  bool         `json:"structured"`
}
