package sentiment

import (
	"testing"
)

func TestAnalyzer_Score(t *testing.T) {
	a := MustNew()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"positive", "I love this, it's great!", 6},
		{"negative", "This is terrible and boring.", -6},
		{"neutral", "The meeting is on Tuesday.", 0},
		{"empty", "", 0},
		{"case insensitive", "AMAZING", 4},
		{"negation", "I do not like it", -2},
		{"negation with apostrophe", "don't love it", -3},
		{"mixed", "Good idea, bad timing", 0},
		{"hashtag stripped", "#happy", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Score(tt.text); got != tt.want {
				t.Fatalf("Score(%q): expected %d, got %d", tt.text, tt.want, got)
			}
		})
	}
}

func TestAnalyzer_FullLexicon(t *testing.T) {
	a := MustNew()

	tests := []struct {
		text string
		want int
	}{
		{"Yes, I want to join", 3},
		{"no", -1},
		{"No, I won't join", -2},
		{"What a masterpiece, truly breathtaking", 9},
		{"Feeling grateful and motivated", 6},
		{"This is a scam", -2},
	}
	for _, tt := range tests {
		if got := a.Score(tt.text); got != tt.want {
			t.Fatalf("Score(%q): expected %d, got %d", tt.text, tt.want, got)
		}
	}
}

func TestAnalyzer_Emoji(t *testing.T) {
	a := MustNew()

	tests := []struct {
		text string
		want int
	}{
		{"🎉", 3},
		{"Launch day 🎉 🚀", 5},
		{"\u2764\ufe0f", 3},
		{"💔", -1},
		{"not 👍", -2},
	}
	for _, tt := range tests {
		if got := a.Score(tt.text); got != tt.want {
			t.Fatalf("Score(%q): expected %d, got %d", tt.text, tt.want, got)
		}
	}
}

func TestNew_Extras(t *testing.T) {
	a, err := New(map[string]int{"Viral": 3, "bad": 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := a.Score("viral"); got != 3 {
		t.Fatalf("expected extra word score 3, got %d", got)
	}
	if got := a.Score("bad"); got != 0 {
		t.Fatalf("expected overridden score 0, got %d", got)
	}
}

func TestParseLexicon_Errors(t *testing.T) {
	if _, err := parseLexicon([]byte("good 3\n")); err == nil {
		t.Fatalf("expected error for missing tab")
	}
	if _, err := parseLexicon([]byte("good\tlots\n")); err == nil {
		t.Fatalf("expected error for non-numeric valence")
	}
	lex, err := parseLexicon([]byte("# comment\n\ngood\t3\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lex["good"] != 3 || len(lex) != 1 {
		t.Fatalf("unexpected lexicon: %v", lex)
	}
}

func TestEmbeddedLexicon_Loaded(t *testing.T) {
	if got := MustNew().Size(); got < 3400 {
		t.Fatalf("expected AFINN-165 plus emoji entries, got %d", got)
	}
}
