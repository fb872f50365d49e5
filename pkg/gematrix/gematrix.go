// Package gematrix is the facade over the cipher engine and the phrase
// store: it scores text, stores phrases and finds related phrases.
package gematrix

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/cognicore/gematrix/pkg/gematrix/cipher"
	"github.com/cognicore/gematrix/pkg/gematrix/ingest"
	"github.com/cognicore/gematrix/pkg/gematrix/internalerr"
	"github.com/cognicore/gematrix/pkg/gematrix/rank"
	"github.com/cognicore/gematrix/pkg/gematrix/store"
)

// Limits for Matches and Search.
const (
	matchCandidates  = 80
	DefaultMatches   = 40
	searchCandidates = 600
	DefaultSearch    = 20
	MinSearch        = 5
	MaxSearch        = 50
)

// Gematrix is the main engine facade
type Gematrix struct {
	store   store.Store
	scorer  *rank.Scorer
	ciphers []cipher.Cipher
	logger  *zap.Logger
}

// Options configures a Gematrix instance
type Options struct {
	Store   store.Store
	Weights rank.Weights    // zero value uses rank.DefaultWeights
	Ciphers []cipher.Cipher // enabled ciphers; empty means the primary set
	Logger  *zap.Logger
}

// New creates a Gematrix instance with the given dependencies
func New(opts Options) *Gematrix {
	enabled := opts.Ciphers
	if len(enabled) == 0 {
		enabled = cipher.All()[:cipher.PrimaryCount]
	}
	weights := opts.Weights
	if weights == (rank.Weights{}) {
		weights = rank.DefaultWeights()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gematrix{
		store:   opts.Store,
		scorer:  rank.NewScorer(weights, enabled),
		ciphers: enabled,
		logger:  logger,
	}
}

// Close cleanly shuts down the underlying store
func (g *Gematrix) Close() error {
	return g.store.Close()
}

// Ciphers returns the enabled ciphers.
func (g *Gematrix) Ciphers() []cipher.Cipher { return g.ciphers }

// Score computes every cipher value of text.
func (g *Gematrix) Score(text string) cipher.Scores {
	return cipher.Compute(text)
}

// Breakdown explains the score of text under the named cipher.
func (g *Gematrix) Breakdown(text, name string) cipher.BreakdownResult {
	return cipher.Breakdown(text, name)
}

func normalizePhrase(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// EnsurePhrase stores text, lowercased and trimmed, as an approved phrase
// with fresh scores. The bool reports whether the phrase was new.
func (g *Gematrix) EnsurePhrase(ctx context.Context, text string) (store.Phrase, bool, error) {
	phrase := normalizePhrase(text)
	if phrase == "" {
		return store.Phrase{}, false, fmt.Errorf("%w: empty phrase", internalerr.ErrInvalidInput)
	}
	p := store.Phrase{Phrase: phrase, Scores: cipher.Compute(phrase), Approved: true}
	created, err := g.store.UpsertPhrase(ctx, p)
	if err != nil {
		return store.Phrase{}, false, fmt.Errorf("ensure phrase %q: %w", phrase, err)
	}
	return p, created, nil
}

// EnsurePhraseAndTokens stores text and each of its words with at least
// two letters. It returns the phrase and the words that were new.
func (g *Gematrix) EnsurePhraseAndTokens(ctx context.Context, text string) (store.Phrase, []string, error) {
	p, _, err := g.EnsurePhrase(ctx, text)
	if err != nil {
		return p, nil, err
	}
	var added []string
	for _, tok := range ingest.PhraseTokens(p.Phrase) {
		if tok == p.Phrase {
			continue
		}
		_, created, err := g.EnsurePhrase(ctx, tok)
		if err != nil {
			return p, added, err
		}
		if created {
			added = append(added, tok)
		}
	}
	g.logger.Debug("phrase ensured", zap.String("phrase", p.Phrase), zap.Int("new_tokens", len(added)))
	return p, added, nil
}

// Match is a stored phrase sharing cipher values with a query.
type Match struct {
	Phrase     store.Phrase
	Hits       []cipher.Cipher
	Confidence float64 // percentage of selected ciphers that matched
}

// Matches returns stored phrases that share at least one selected cipher
// value with text, most hits first. Empty selected uses the enabled
// ciphers; a non-positive limit returns DefaultMatches.
func (g *Gematrix) Matches(ctx context.Context, text string, selected []cipher.Cipher, limit int) ([]Match, error) {
	query := normalizePhrase(text)
	if query == "" {
		return nil, nil
	}
	if len(selected) == 0 {
		selected = g.ciphers
	}
	if limit <= 0 {
		limit = DefaultMatches
	}

	scores := cipher.Compute(query)
	candidates, err := g.store.FindPhrases(ctx, store.PhraseQuery{
		Scores:  scoreFilter(scores, selected),
		Exclude: query,
		Limit:   matchCandidates,
	})
	if err != nil {
		return nil, fmt.Errorf("find matches: %w", err)
	}

	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		hits := rank.SharedCiphers(scores, c.Scores, selected)
		if len(hits) == 0 {
			continue
		}
		matches = append(matches, Match{
			Phrase:     c,
			Hits:       hits,
			Confidence: rank.Confidence(len(hits), len(selected)),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return len(matches[i].Hits) > len(matches[j].Hits)
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// SearchResult is one ranked phrase from Search.
type SearchResult struct {
	Phrase store.Phrase
	rank.ScoreBreakdown
}

// ClampSearchLimit bounds a result count to [MinSearch, MaxSearch],
// mapping non-positive values to DefaultSearch.
func ClampSearchLimit(limit int) int {
	if limit <= 0 {
		limit = DefaultSearch
	}
	return min(max(limit, MinSearch), MaxSearch)
}

// Search ranks stored phrases against query by word overlap and shared
// cipher values. The query needs at least two characters.
func (g *Gematrix) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < 2 {
		return nil, fmt.Errorf("%w: query must contain at least 2 characters", internalerr.ErrInvalidInput)
	}
	limit = ClampSearchLimit(limit)

	q := rank.NewQuery(query)
	candidates, err := g.store.FindPhrases(ctx, store.PhraseQuery{
		Contains: q.Tokens,
		Scores:   scoreFilter(q.Scores, g.ciphers),
		Limit:    searchCandidates,
	})
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}

	results := make([]SearchResult, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, SearchResult{
			Phrase:         c,
			ScoreBreakdown: g.scorer.ScoreWithBreakdown(q, rank.Candidate{ID: c.ID, Phrase: c.Phrase, Scores: c.Scores}),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Total > results[j].Total
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func scoreFilter(scores cipher.Scores, ciphers []cipher.Cipher) map[cipher.Cipher]int {
	m := make(map[cipher.Cipher]int, len(ciphers))
	for _, c := range ciphers {
		m[c] = scores.Get(c)
	}
	return m
}
