package service

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"postmate/internal/domain"
)

// pictographic covers the emoji blocks plus the older symbol ranges that
// render as emoji when followed by a variation selector.
const pictographic = `[\x{1F000}-\x{1FAFF}\x{2600}-\x{27BF}\x{2300}-\x{23FF}\x{2B00}-\x{2BFF}\x{3030}\x{303D}\x{3297}\x{3299}]`

const emojiModifier = `(?:\x{FE0F}|[\x{1F3FB}-\x{1F3FF}])?`

var (
	hashtagPattern  = regexp.MustCompile(`#\w+`)
	mentionPattern  = regexp.MustCompile(`@\w+`)
	linkPattern     = regexp.MustCompile(`https?://\S+`)
	wordPattern     = regexp.MustCompile(`\b\w+\b`)
	sentenceBreaker = regexp.MustCompile(`[.!?]+`)

	// One match per user-perceived emoji: flag pairs, keycaps, and
	// pictographs with optional modifiers joined by ZWJ.
	emojiPattern = regexp.MustCompile(
		`[\x{1F1E6}-\x{1F1FF}]{2}` +
			`|[0-9#*]\x{FE0F}?\x{20E3}` +
			`|` + pictographic + emojiModifier + `(?:\x{200D}` + pictographic + emojiModifier + `)*`,
	)

	// Emoji that went through a lossy OCR or PDF font mapping usually
	// come back as runs of replacement glyphs.
	mangledEmojiPattern = regexp.MustCompile(`[\x{FFFD}\x{25A1}]{2,}`)
)

// MetricsEngineService computes text statistics. It holds no mutable state.
type MetricsEngineService struct {
	scorer domain.SentimentScorer
}

// NewMetricsEngine creates a metrics engine using the given sentiment scorer.
func NewMetricsEngine(scorer domain.SentimentScorer) *MetricsEngineService {
	return &MetricsEngineService{scorer: scorer}
}

// Compute returns the metrics for text. It never fails; empty text yields zeros.
func (m *MetricsEngineService) Compute(text string) domain.Metrics {
	words := len(wordPattern.FindAllStringIndex(text, -1))
	sentences := countSentences(text)

	metrics := domain.Metrics{
		HashtagCount: len(hashtagPattern.FindAllStringIndex(text, -1)),
		MentionCount: len(mentionPattern.FindAllStringIndex(text, -1)),
		LinkCount:    len(linkPattern.FindAllStringIndex(text, -1)),
		EmojiCount:   countEmoji(text),

		CharCount:           utf8.RuneCountInString(text),
		WordCount:           words,
		SentenceCount:       sentences,
		AvgWordsPerSentence: averageWordsPerSentence(words, sentences),
	}
	if m.scorer != nil {
		metrics.SentimentScore = m.scorer.Score(text)
	}
	return metrics
}

func countEmoji(text string) int {
	return len(emojiPattern.FindAllStringIndex(text, -1)) +
		len(mangledEmojiPattern.FindAllStringIndex(text, -1))
}

func countSentences(text string) int {
	n := 0
	for _, seg := range sentenceBreaker.Split(text, -1) {
		if strings.TrimSpace(seg) != "" {
			n++
		}
	}
	return n
}

// averageWordsPerSentence falls back to the word count when there is no sentence.
func averageWordsPerSentence(words, sentences int) int {
	if sentences == 0 {
		return words
	}
	return int(math.Round(float64(words) / float64(sentences)))
}
