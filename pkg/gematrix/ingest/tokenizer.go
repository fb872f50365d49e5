package ingest

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Default bounds for words extracted from headlines.
const (
	DefaultMinWordLength = 3
	DefaultMaxWordLength = 40
)

var wordPattern = regexp.MustCompile(`[a-z]+(?:-[a-z]+)*`)

// Tokenizer extracts the single words that are stored alongside each
// headline phrase.
type Tokenizer struct {
	stopwords map[string]struct{}
	minLen    int
	maxLen    int
}

// NewTokenizer creates a tokenizer with the given stopword list and the
// default length bounds.
func NewTokenizer(stopwords []string) *Tokenizer {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{
		stopwords: stops,
		minLen:    DefaultMinWordLength,
		maxLen:    DefaultMaxWordLength,
	}
}

// SetLengthBounds restricts extracted words to [min, max] runes.
// Non-positive values keep the current bound.
func (t *Tokenizer) SetLengthBounds(min, max int) {
	if min > 0 {
		t.minLen = min
	}
	if max > 0 {
		t.maxLen = max
	}
}

// Tokenize returns the unique lowercase words of text in first-seen order.
// A word is a run of a-z letters, optionally joined by single hyphens
// ("covid-nineteen"); anything else separates words.
func (t *Tokenizer) Tokenize(text string) []string {
	matches := wordPattern.FindAllString(strings.ToLower(text), -1)
	var tokens []string
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		word := t.processToken(m)
		if word == "" {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		tokens = append(tokens, word)
	}
	return tokens
}

// processToken applies length bounds and stopword filtering.
func (t *Tokenizer) processToken(token string) string {
	n := utf8.RuneCountInString(token)
	if n < t.minLen || n > t.maxLen {
		return ""
	}
	if t.isStopword(token) {
		return ""
	}
	return token
}

func (t *Tokenizer) isStopword(word string) bool {
	_, ok := t.stopwords[word]
	return ok
}

// AddStopword adds a word to the stopword list
func (t *Tokenizer) AddStopword(word string) {
	t.stopwords[strings.ToLower(word)] = struct{}{}
}

// RemoveStopword removes a word from the stopword list
func (t *Tokenizer) RemoveStopword(word string) {
	delete(t.stopwords, strings.ToLower(word))
}

var nonLetters = regexp.MustCompile(`[^a-z]`)

// PhraseTokens splits a user-entered phrase on whitespace and returns each
// part reduced to its a-z letters, skipping parts shorter than two runes
// before or after reduction. Duplicates are dropped.
func PhraseTokens(phrase string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, part := range strings.Fields(strings.ToLower(phrase)) {
		if utf8.RuneCountInString(part) < 2 {
			continue
		}
		clean := nonLetters.ReplaceAllString(part, "")
		if len(clean) < 2 {
			continue
		}
		if _, dup := seen[clean]; dup {
			continue
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}
	return out
}
