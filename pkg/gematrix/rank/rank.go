package rank

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/gematrix/pkg/gematrix/cipher"
)

// Scorer calculates hybrid scores for phrase search
type Scorer struct {
	weights Weights
	ciphers []cipher.Cipher
}

// Weights defines the scoring weights
type Weights struct {
	Lexical float64 // token Jaccard similarity
	Cipher  float64 // share of compared ciphers with equal values
}

// DefaultWeights favours wording slightly over numeric agreement.
func DefaultWeights() Weights {
	return Weights{Lexical: 0.55, Cipher: 0.45}
}

// NewScorer creates a scorer comparing the given ciphers; none means all.
func NewScorer(w Weights, ciphers []cipher.Cipher) *Scorer {
	if len(ciphers) == 0 {
		ciphers = cipher.All()
	}
	return &Scorer{weights: w, ciphers: ciphers}
}

// Ciphers returns the compared ciphers.
func (s *Scorer) Ciphers() []cipher.Cipher { return s.ciphers }

// Query represents a parsed search query
type Query struct {
	Text   string
	Tokens []string
	Scores cipher.Scores
}

// NewQuery tokenizes and scores text.
func NewQuery(text string) Query {
	return Query{Text: text, Tokens: Tokenize(text), Scores: cipher.Compute(text)}
}

// Candidate represents a stored phrase to be scored
type Candidate struct {
	ID     int64
	Phrase string
	Scores cipher.Scores
}

// ScoreBreakdown provides detailed scoring information. Similarities are
// percentages rounded to two decimals.
type ScoreBreakdown struct {
	Lexical float64
	Cipher  float64
	Shared  int
	Total   float64
}

// Score calculates the hybrid score for a candidate
//
// score = round((wL·jaccard + wC·shared/len(ciphers)) · 100, 2)
func (s *Scorer) Score(q Query, c Candidate) float64 {
	return s.ScoreWithBreakdown(q, c).Total
}

// ScoreWithBreakdown calculates score with detailed breakdown
func (s *Scorer) ScoreWithBreakdown(q Query, c Candidate) ScoreBreakdown {
	lexical := jaccard(q.Tokens, Tokenize(c.Phrase))

	shared := len(SharedCiphers(q.Scores, c.Scores, s.ciphers))
	similarity := 0.0
	if len(s.ciphers) > 0 {
		similarity = float64(shared) / float64(len(s.ciphers))
	}

	return ScoreBreakdown{
		Lexical: Round2(lexical * 100),
		Cipher:  Round2(similarity * 100),
		Shared:  shared,
		Total:   Round2((s.weights.Lexical*lexical + s.weights.Cipher*similarity) * 100),
	}
}

// SharedCiphers returns the ciphers, among those given, on which a and b
// have equal values, in the given order.
func SharedCiphers(a, b cipher.Scores, ciphers []cipher.Cipher) []cipher.Cipher {
	var hits []cipher.Cipher
	for _, c := range ciphers {
		if a.Get(c) == b.Get(c) {
			hits = append(hits, c)
		}
	}
	return hits
}

// Confidence is the percentage of selected ciphers that matched.
func Confidence(hits, selected int) float64 {
	return Round2(float64(hits) / float64(max(1, selected)) * 100)
}

// Round2 rounds half away from zero to two decimals.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

var tokenSplit = regexp.MustCompile(`[^a-z0-9]+`)

// Tokenize lowercases text and splits it on runs of characters outside
// a-z and 0-9, keeping tokens of at least two runes.
func Tokenize(text string) []string {
	var out []string
	for _, tok := range tokenSplit.Split(strings.ToLower(text), -1) {
		if utf8.RuneCountInString(tok) >= 2 {
			out = append(out, tok)
		}
	}
	return out
}

// jaccard calculates Jaccard similarity between two string slices
func jaccard(a, b []string) float64 {
	aSet := make(map[string]struct{}, len(a))
	for _, s := range a {
		aSet[s] = struct{}{}
	}

	bSet := make(map[string]struct{}, len(b))
	for _, s := range b {
		bSet[s] = struct{}{}
	}

	intersection := 0
	for s := range aSet {
		if _, ok := bSet[s]; ok {
			intersection++
		}
	}

	union := len(aSet) + len(bSet) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}
