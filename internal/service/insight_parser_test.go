package service

import (
	"testing"

	"postmate/internal/domain"
)

func TestParseInsight_WellFormed(t *testing.T) {
	raw := `The post is upbeat and clear, but the call to action is buried.

---
1. **Lead with the hook**: Move the giveaway to the first line.
2. **Trim hashtags** - Three focused tags beat ten generic ones.
3. **Add a question**
Ask followers which feature they want next.`

	got := ParseInsight(raw)

	if !got.Structured {
		t.Fatalf("expected structured output")
	}
	if got.Narrative != "The post is upbeat and clear, but the call to action is buried." {
		t.Fatalf("unexpected narrative: %q", got.Narrative)
	}
	want := []domain.Suggestion{
		{Title: "Lead with the hook", Detail: "Move the giveaway to the first line."},
		{Title: "Trim hashtags", Detail: "Three focused tags beat ten generic ones."},
		{Title: "Add a question", Detail: "Ask followers which feature they want next."},
	}
	if len(got.Suggestions) != len(want) {
		t.Fatalf("expected %d suggestions, got %d: %+v", len(want), len(got.Suggestions), got.Suggestions)
	}
	for i := range want {
		if got.Suggestions[i] != want[i] {
			t.Fatalf("suggestion %d: expected %+v, got %+v", i, want[i], got.Suggestions[i])
		}
	}
}

func TestParseInsight_NoDelimiter(t *testing.T) {
	got := ParseInsight("  Just a paragraph with no list.  ")

	if got.Structured {
		t.Fatalf("expected unstructured output")
	}
	if got.Narrative != "Just a paragraph with no list." {
		t.Fatalf("unexpected narrative: %q", got.Narrative)
	}
	if got.Suggestions == nil || len(got.Suggestions) != 0 {
		t.Fatalf("expected empty, non-nil suggestions, got %#v", got.Suggestions)
	}
}

func TestParseInsight_DelimiterWithoutList(t *testing.T) {
	got := ParseInsight("Narrative.\n---\nPost earlier in the day\nand reply to comments.")

	if !got.Structured {
		t.Fatalf("expected structured output")
	}
	if len(got.Suggestions) != 1 {
		t.Fatalf("expected single fallback suggestion, got %+v", got.Suggestions)
	}
	if got.Suggestions[0].Title != "" || got.Suggestions[0].Detail != "Post earlier in the day and reply to comments." {
		t.Fatalf("unexpected fallback suggestion: %+v", got.Suggestions[0])
	}
}

func TestParseInsight_InlineDelimiter(t *testing.T) {
	got := ParseInsight("Short take. --- 1. **Shorter**: fewer words.")

	if !got.Structured || got.Narrative != "Short take." {
		t.Fatalf("unexpected parse: %+v", got)
	}
	if len(got.Suggestions) != 1 || got.Suggestions[0].Title != "Shorter" {
		t.Fatalf("unexpected suggestions: %+v", got.Suggestions)
	}
}

func TestParseInsight_BulletsAndVariants(t *testing.T) {
	raw := "Narrative\r\n-----\r\nSuggestions:\r\n- **Colon inside:** detail one\r\n* plain bullet\r\n1) **Paren** numbering"

	got := ParseInsight(raw)

	want := []domain.Suggestion{
		{Title: "Colon inside", Detail: "detail one"},
		{Detail: "plain bullet"},
		{Title: "Paren", Detail: "numbering"},
	}
	if len(got.Suggestions) != len(want) {
		t.Fatalf("expected %d suggestions, got %+v", len(want), got.Suggestions)
	}
	for i := range want {
		if got.Suggestions[i] != want[i] {
			t.Fatalf("suggestion %d: expected %+v, got %+v", i, want[i], got.Suggestions[i])
		}
	}
}

func TestParseInsight_NestedBulletsContinueItem(t *testing.T) {
	raw := "Narrative.\n---\n" +
		"1. **Use hashtags**: Add more.\n" +
		"   - e.g. #launch\n" +
		"   - e.g. #news\n" +
		"2. **Post timing**: Share before noon."

	got := ParseInsight(raw)

	want := []domain.Suggestion{
		{Title: "Use hashtags", Detail: "Add more. e.g. #launch e.g. #news"},
		{Title: "Post timing", Detail: "Share before noon."},
	}
	if len(got.Suggestions) != len(want) {
		t.Fatalf("expected %d suggestions, got %+v", len(want), got.Suggestions)
	}
	for i := range want {
		if got.Suggestions[i] != want[i] {
			t.Fatalf("suggestion %d: expected %+v, got %+v", i, want[i], got.Suggestions[i])
		}
	}
}

func TestParseInsight_NumberInsideBold(t *testing.T) {
	raw := "Narrative.\n---\n" +
		"**1. Hook early:** Lead with the result.\n" +
		"**2. Add a CTA:** Ask readers to comment."

	got := ParseInsight(raw)

	want := []domain.Suggestion{
		{Title: "Hook early", Detail: "Lead with the result."},
		{Title: "Add a CTA", Detail: "Ask readers to comment."},
	}
	if len(got.Suggestions) != len(want) {
		t.Fatalf("expected %d suggestions, got %+v", len(want), got.Suggestions)
	}
	for i := range want {
		if got.Suggestions[i] != want[i] {
			t.Fatalf("suggestion %d: expected %+v, got %+v", i, want[i], got.Suggestions[i])
		}
	}
}

func TestParseInsight_EmptySuggestionSegment(t *testing.T) {
	got := ParseInsight("Only narrative\n---\n   ")

	if !got.Structured {
		t.Fatalf("expected structured output")
	}
	if len(got.Suggestions) != 0 {
		t.Fatalf("expected no suggestions, got %+v", got.Suggestions)
	}
}

func TestParseInsightSet(t *testing.T) {
	if ParseInsightSet(domain.NewFailedInsightSet("quota")) != nil {
		t.Fatalf("expected nil sections for a failed set")
	}

	set := domain.InsightSet{
		Short:  "s\n---\n1. **A**: a",
		Medium: "m\n---\n1. **B**: b",
		Long:   "l",
	}
	got := ParseInsightSet(set)
	if len(got) != 3 {
		t.Fatalf("expected 3 tiers, got %d", len(got))
	}
	if got[domain.TierMedium].Suggestions[0].Title != "B" {
		t.Fatalf("unexpected medium tier: %+v", got[domain.TierMedium])
	}
	if got[domain.TierLong].Structured {
		t.Fatalf("expected long tier without delimiter to be unstructured")
	}
}
