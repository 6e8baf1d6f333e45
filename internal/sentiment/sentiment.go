// Package sentiment scores text against an AFINN-style word valence lexicon.
package sentiment

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
)

var (
	//go:embed afinn.tsv
	afinnTSV []byte

	//go:embed emoji.tsv
	emojiTSV []byte
)

// negators invert the valence of the token that follows them. "no" is not a
// negator; it carries its own AFINN valence.
var negators = map[string]struct{}{
	"cant": {}, "can't": {}, "dont": {}, "don't": {}, "doesnt": {}, "doesn't": {},
	"not": {}, "non": {}, "wont": {}, "won't": {}, "isnt": {}, "isn't": {},
}

// punctuation stripped before tokenizing. Hyphens and apostrophes are kept so
// entries like "don't" survive; the emoji presentation selector is dropped so
// "❤️" matches "❤".
var punctuation = strings.NewReplacer(
	".", " ", ",", " ", "/", " ", "#", " ", "!", " ", "?", " ", "$", " ", "%", " ",
	"^", " ", "&", " ", "*", " ", ";", " ", ":", " ", "{", " ", "}", " ", "=", " ",
	"_", " ", "`", " ", "\"", " ", "~", " ", "(", " ", ")", " ",
	"\ufe0f", "",
)

// Analyzer holds a lexicon. It is read-only after construction and safe for
// concurrent use.
type Analyzer struct {
	lexicon map[string]int
}

// New returns an analyzer over the embedded AFINN-165 and emoji lexicons,
// with extras overriding or extending them.
func New(extras map[string]int) (*Analyzer, error) {
	lex, err := parseLexicon(afinnTSV)
	if err != nil {
		return nil, fmt.Errorf("afinn lexicon: %w", err)
	}
	emoji, err := parseLexicon(emojiTSV)
	if err != nil {
		return nil, fmt.Errorf("emoji lexicon: %w", err)
	}
	for e, v := range emoji {
		lex[e] = v
	}
	for w, v := range extras {
		lex[strings.ToLower(w)] = v
	}
	return &Analyzer{lexicon: lex}, nil
}

// MustNew is New without extras; it panics on a malformed embedded lexicon.
func MustNew() *Analyzer {
	a, err := New(nil)
	if err != nil {
		panic(err)
	}
	return a
}

// Score returns the summed valence of the text. A token directly after a
// negator counts with its sign flipped.
func (a *Analyzer) Score(text string) int {
	tokens := tokenize(text)
	score := 0
	for i, tok := range tokens {
		v, ok := a.lexicon[tok]
		if !ok {
			continue
		}
		if i > 0 {
			if _, neg := negators[tokens[i-1]]; neg {
				v = -v
			}
		}
		score += v
	}
	return score
}

// Size returns the number of lexicon entries.
func (a *Analyzer) Size() int {
	return len(a.lexicon)
}

func tokenize(text string) []string {
	text = strings.ToLower(text)
	text = punctuation.Replace(text)
	return strings.Fields(text)
}

func parseLexicon(data []byte) (map[string]int, error) {
	lex := make(map[string]int, 4096)
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		word, val, ok := strings.Cut(raw, "\t")
		if !ok {
			return nil, fmt.Errorf("lexicon line %d: missing tab", line)
		}
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return nil, fmt.Errorf("lexicon line %d: %w", line, err)
		}
		lex[strings.TrimSpace(word)] = n
	}
	return lex, sc.Err()
}
