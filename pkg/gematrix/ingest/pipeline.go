package ingest

import (
	"unicode/utf8"

	"github.com/cognicore/gematrix/pkg/gematrix/cipher"
	"github.com/cognicore/gematrix/pkg/gematrix/headline"
	"github.com/cognicore/gematrix/pkg/gematrix/numwords"
)

// Default bounds, in runes, for a normalized headline.
const (
	DefaultMinHeadlineLength = 3
	DefaultMaxHeadlineLength = 500
)

// Reason explains why a headline was not admitted. The zero value means
// the headline was accepted.
type Reason string

const (
	Accepted         Reason = ""
	RejectEmpty      Reason = "empty"
	RejectMojibake   Reason = "mojibake"
	RejectNotEnglish Reason = "not-english"
	RejectLength     Reason = "length"
)

// Headline is a raw feed title after admission and scoring.
type Headline struct {
	Display    string        // sanitized, source suffix removed
	Normalized string        // lowercase, numerals spelled out
	Key        string        // case-folded display text, used for dedup without a URL
	Scores     cipher.Scores // scores of Normalized
	Words      []string      // unique words of Normalized
}

// Pipeline orchestrates the headline flow:
// sanitize → admission filters → normalize → length bounds → score
type Pipeline struct {
	normalizer *numwords.Normalizer
	tokenizer  *Tokenizer
	minLen     int
	maxLen     int
}

// NewPipeline creates a headline pipeline with the given components. A nil
// normalizer uses the default numeral cap; a nil tokenizer has no stopwords.
func NewPipeline(normalizer *numwords.Normalizer, tokenizer *Tokenizer) *Pipeline {
	if normalizer == nil {
		normalizer = numwords.NewNormalizer(numwords.DefaultMaxDigits)
	}
	if tokenizer == nil {
		tokenizer = NewTokenizer(nil)
	}
	return &Pipeline{
		normalizer: normalizer,
		tokenizer:  tokenizer,
		minLen:     DefaultMinHeadlineLength,
		maxLen:     DefaultMaxHeadlineLength,
	}
}

// SetLengthBounds sets the accepted normalized length in runes.
// Non-positive values keep the current bound.
func (p *Pipeline) SetLengthBounds(min, max int) {
	if min > 0 {
		p.minLen = min
	}
	if max > 0 {
		p.maxLen = max
	}
}

// Tokenizer returns the word tokenizer used for Headline.Words.
func (p *Pipeline) Tokenizer() *Tokenizer { return p.tokenizer }

// Normalizer returns the numeral normalizer.
func (p *Pipeline) Normalizer() *numwords.Normalizer { return p.normalizer }

// Clean sanitizes raw and applies the admission filters.
func (p *Pipeline) Clean(raw, sourceName, itemURL string) (string, Reason) {
	clean := headline.Sanitize(raw, sourceName, itemURL)
	switch {
	case clean == "":
		return "", RejectEmpty
	case headline.ContainsMojibakeMarkers(clean):
		return clean, RejectMojibake
	case !headline.IsLikelyEnglish(clean):
		return clean, RejectNotEnglish
	}
	return clean, Accepted
}

// Build normalizes and scores an already cleaned headline without applying
// length bounds.
func (p *Pipeline) Build(clean string) Headline {
	normalized := p.normalizer.Normalize(clean)
	return Headline{
		Display:    clean,
		Normalized: normalized,
		Key:        headline.Key(clean),
		Scores:     cipher.Compute(normalized),
		Words:      p.tokenizer.Tokenize(normalized),
	}
}

// Process runs a raw feed title through the full pipeline.
func (p *Pipeline) Process(raw, sourceName, itemURL string) (Headline, Reason) {
	clean, reason := p.Clean(raw, sourceName, itemURL)
	if reason != Accepted {
		return Headline{Display: clean}, reason
	}

	h := p.Build(clean)
	if n := utf8.RuneCountInString(h.Normalized); n < p.minLen || n > p.maxLen {
		return h, RejectLength
	}
	return h, Accepted
}
