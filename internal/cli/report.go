package cli

import (
	"fmt"
	"strings"

	"postmate/internal/domain"
)

func renderText(r *domain.AnalysisReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== PostMate report for %s ===\n", r.Filename)
	fmt.Fprintf(&b, "Type: %s (%d bytes)\n", r.MIMEType, r.SizeBytes)
	fmt.Fprintf(&b, "Processing time: %d ms\n\n", r.ProcessingTimeMs)

	m := r.Metrics
	b.WriteString("--- Metrics ---\n")
	fmt.Fprintf(&b, "Characters: %d\n", m.CharCount)
	fmt.Fprintf(&b, "Words: %d\n", m.WordCount)
	fmt.Fprintf(&b, "Sentences: %d\n", m.SentenceCount)
	fmt.Fprintf(&b, "Avg words per sentence: %d\n", m.AvgWordsPerSentence)
	fmt.Fprintf(&b, "Hashtags: %d  Mentions: %d  Links: %d  Emoji: %d\n", m.HashtagCount, m.MentionCount, m.LinkCount, m.EmojiCount)
	fmt.Fprintf(&b, "Sentiment: %d\n\n", m.SentimentScore)

	b.WriteString("--- Extracted text ---\n")
	b.WriteString(r.ExtractedText)
	b.WriteString("\n")

	if r.Insights.Failed() {
		fmt.Fprintf(&b, "\n--- Insights ---\n%s\n", r.Insights.Error)
		return b.String()
	}

	for _, tier := range domain.InsightTiers {
		section, ok := r.InsightSections[tier]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n--- Insights (%s) ---\n", tier)
		if section.Narrative != "" {
			b.WriteString(section.Narrative)
			b.WriteString("\n")
		}
		for i, s := range section.Suggestions {
			if s.Title != "" {
				fmt.Fprintf(&b, "%2d. %s: %s\n", i+1, s.Title, s.Detail)
			} else {
				fmt.Fprintf(&b, "%2d. %s\n", i+1, s.Detail)
			}
		}
	}
	return b.String()
}
