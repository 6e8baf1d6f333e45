package domain

// Metrics holds the deterministic statistics computed from extracted text.
// The engagement fields target social posts, the readability fields target
// longer documents; both are always filled.
type Metrics struct {
	HashtagCount int `json:"hashtagCount"`
	EmojiCount   int `json:"emojiCount"`
	MentionCount int `json:"mentionCount"`
	LinkCount    int `json:"linkCount"`

	CharCount           int `json:"charCount"`
	WordCount           int `json:"wordCount"`
	SentenceCount       int `json:"sentenceCount"`
	AvgWordsPerSentence int `json:"avgWordsPerSentence"`

	// SentimentScore is the raw lexicon sum; negative means negative tone.
	SentimentScore int `json:"sentimentScore"`
}
