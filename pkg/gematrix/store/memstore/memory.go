package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cognicore/gematrix/pkg/gematrix/cipher"
	"github.com/cognicore/gematrix/pkg/gematrix/internalerr"
	"github.com/cognicore/gematrix/pkg/gematrix/store"
)

// Store is an in-memory implementation of store.Store for tests and dry runs.
type Store struct {
	mu sync.RWMutex

	nextPhraseID   int64
	nextSourceID   int64
	nextHeadlineID int64

	phrases   map[string]store.Phrase
	sources   map[int64]store.Source
	headlines map[int64]store.Headline
	hashIndex map[string]int64
	runs      map[string]store.CrawlerRun

	now func() time.Time
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		nextPhraseID:   1,
		nextSourceID:   1,
		nextHeadlineID: 1,
		phrases:        make(map[string]store.Phrase),
		sources:        make(map[int64]store.Source),
		headlines:      make(map[int64]store.Headline),
		hashIndex:      make(map[string]int64),
		runs:           make(map[string]store.CrawlerRun),
		now:            time.Now,
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertPhrase inserts or rescores a phrase, keyed by text.
func (s *Store) UpsertPhrase(ctx context.Context, p store.Phrase) (bool, error) {
	if p.Phrase == "" {
		return false, fmt.Errorf("%w: empty phrase", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertPhraseLocked(p), nil
}

func (s *Store) upsertPhraseLocked(p store.Phrase) bool {
	now := s.now()
	if existing, ok := s.phrases[p.Phrase]; ok {
		existing.Scores = p.Scores
		existing.Approved = p.Approved
		existing.UpdatedAt = now
		s.phrases[p.Phrase] = existing
		return false
	}
	p.ID = s.nextPhraseID
	s.nextPhraseID++
	p.CreatedAt = now
	p.UpdatedAt = now
	s.phrases[p.Phrase] = p
	return true
}

// UpsertPhrases writes a batch of phrases.
func (s *Store) UpsertPhrases(ctx context.Context, ps []store.Phrase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range ps {
		if p.Phrase == "" {
			continue
		}
		s.upsertPhraseLocked(p)
	}
	return nil
}

// GetPhrase returns a phrase by text.
func (s *Store) GetPhrase(ctx context.Context, phrase string) (store.Phrase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.phrases[phrase]
	if !ok {
		return store.Phrase{}, fmt.Errorf("phrase %q: %w", phrase, internalerr.ErrNotFound)
	}
	return p, nil
}

// DeletePhrase removes a phrase if present.
func (s *Store) DeletePhrase(ctx context.Context, phrase string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.phrases, phrase)
	return nil
}

// FindPhrases mirrors the SQL store: approved phrases matching any
// substring or cipher value, ordered by english_gematria then phrase.
func (s *Store) FindPhrases(ctx context.Context, q store.PhraseQuery) ([]store.Phrase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var contains []string
	for _, c := range q.Contains {
		if c != "" {
			contains = append(contains, strings.ToLower(c))
		}
	}
	if len(contains) == 0 && len(q.Scores) == 0 {
		return nil, nil
	}

	var out []store.Phrase
	for _, p := range s.phrases {
		if !p.Approved || (q.Exclude != "" && p.Phrase == q.Exclude) {
			continue
		}
		if matchesPhrase(p, contains, q.Scores) {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		ei, ej := out[i].Scores.Get(cipher.EnglishGematria), out[j].Scores.Get(cipher.EnglishGematria)
		if ei != ej {
			return ei < ej
		}
		return out[i].Phrase < out[j].Phrase
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func matchesPhrase(p store.Phrase, contains []string, scores map[cipher.Cipher]int) bool {
	lower := strings.ToLower(p.Phrase)
	for _, c := range contains {
		if strings.Contains(lower, c) {
			return true
		}
	}
	for c, v := range scores {
		if c.Valid() && p.Scores.Get(c) == v {
			return true
		}
	}
	return false
}

// CountPhrases returns the number of phrases.
func (s *Store) CountPhrases(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.phrases)), nil
}

// EnsureSource returns the first source named src.Name, creating it when absent.
func (s *Store) EnsureSource(ctx context.Context, src store.Source) (store.Source, bool, error) {
	if src.Name == "" {
		return store.Source{}, false, fmt.Errorf("%w: source name required", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var found *store.Source
	for id := range s.sources {
		existing := s.sources[id]
		if existing.Name == src.Name && (found == nil || existing.ID < found.ID) {
			found = &existing
		}
	}
	if found != nil {
		return *found, false, nil
	}

	src.ID = s.nextSourceID
	s.nextSourceID++
	src.CreatedAt = s.now()
	src.LastCheckedAt = time.Time{}
	src.LastError = ""
	s.sources[src.ID] = src
	return src, true, nil
}

// ListSources returns sources ordered by weight descending, then name.
func (s *Store) ListSources(ctx context.Context, f store.SourceFilter) ([]store.Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids map[int64]struct{}
	if len(f.IDs) > 0 {
		ids = make(map[int64]struct{}, len(f.IDs))
		for _, id := range f.IDs {
			ids[id] = struct{}{}
		}
	}

	var out []store.Source
	for _, src := range s.sources {
		if f.EnabledOnly && !src.Enabled {
			continue
		}
		if ids != nil {
			if _, ok := ids[src.ID]; !ok {
				continue
			}
		}
		out = append(out, src)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// UpdateSourceStatus records the outcome of the latest fetch.
func (s *Store) UpdateSourceStatus(ctx context.Context, id int64, checkedAt time.Time, lastError string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, ok := s.sources[id]
	if !ok {
		return fmt.Errorf("source %d: %w", id, internalerr.ErrNotFound)
	}
	src.LastCheckedAt = checkedAt
	src.LastError = lastError
	s.sources[id] = src
	return nil
}

// UpsertHeadline inserts or updates a headline keyed by URLHash.
func (s *Store) UpsertHeadline(ctx context.Context, h store.Headline) (bool, error) {
	if h.URLHash == "" {
		return false, fmt.Errorf("%w: url hash required", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	h.SourceName = ""
	if id, ok := s.hashIndex[h.URLHash]; ok {
		existing := s.headlines[id]
		h.ID = id
		h.CreatedAt = existing.CreatedAt
		h.UpdatedAt = now
		s.headlines[id] = h
		return false, nil
	}

	h.ID = s.nextHeadlineID
	s.nextHeadlineID++
	h.CreatedAt = now
	h.UpdatedAt = now
	s.headlines[h.ID] = h
	s.hashIndex[h.URLHash] = h.ID
	return true, nil
}

// HeadlinesAfter pages through headlines in id order.
func (s *Store) HeadlinesAfter(ctx context.Context, afterID int64, limit int) ([]store.Headline, error) {
	if limit <= 0 {
		limit = 500
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.headlines))
	for id := range s.headlines {
		if id > afterID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if len(ids) > limit {
		ids = ids[:limit]
	}

	out := make([]store.Headline, 0, len(ids))
	for _, id := range ids {
		h := s.headlines[id]
		if src, ok := s.sources[h.SourceID]; ok {
			h.SourceName = src.Name
		}
		out = append(out, h)
	}
	return out, nil
}

// HashTaken reports whether a headline other than exceptID owns hash.
func (s *Store) HashTaken(ctx context.Context, hash string, exceptID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.hashIndex[hash]
	return ok && id != exceptID, nil
}

// UpdateHeadline rewrites the cleaned text, hash and scores of a headline.
func (s *Store) UpdateHeadline(ctx context.Context, h store.Headline) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.headlines[h.ID]
	if !ok {
		return fmt.Errorf("headline %d: %w", h.ID, internalerr.ErrNotFound)
	}
	if owner, taken := s.hashIndex[h.URLHash]; taken && owner != h.ID {
		return fmt.Errorf("url hash %s: %w", h.URLHash, internalerr.ErrDuplicate)
	}

	delete(s.hashIndex, existing.URLHash)
	existing.Headline = h.Headline
	existing.Normalized = h.Normalized
	existing.URLHash = h.URLHash
	existing.Scores = h.Scores
	existing.UpdatedAt = s.now()
	s.headlines[h.ID] = existing
	s.hashIndex[h.URLHash] = h.ID
	return nil
}

// DeleteHeadline removes a headline by id.
func (s *Store) DeleteHeadline(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.headlines[id]; ok {
		delete(s.hashIndex, h.URLHash)
		delete(s.headlines, id)
	}
	return nil
}

// NormalizedInUse reports whether any headline has this normalized text.
func (s *Store) NormalizedInUse(ctx context.Context, normalized string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.headlines {
		if h.Normalized == normalized {
			return true, nil
		}
	}
	return false, nil
}

// CountHeadlines returns the number of headlines.
func (s *Store) CountHeadlines(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.headlines)), nil
}

// CreateRun stores a new crawler run.
func (s *Store) CreateRun(ctx context.Context, r store.CrawlerRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[r.ID]; ok {
		return fmt.Errorf("run %s: %w", r.ID, internalerr.ErrDuplicate)
	}
	s.runs[r.ID] = r
	return nil
}

// UpdateRun replaces a stored run.
func (s *Store) UpdateRun(ctx context.Context, r store.CrawlerRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.runs[r.ID]
	if !ok {
		return fmt.Errorf("run %s: %w", r.ID, internalerr.ErrNotFound)
	}
	r.CrawlerName = existing.CrawlerName
	r.StartedAt = existing.StartedAt
	s.runs[r.ID] = r
	return nil
}

// GetRun returns a run by id.
func (s *Store) GetRun(ctx context.Context, id string) (store.CrawlerRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	if !ok {
		return store.CrawlerRun{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return r, nil
}

var _ store.Store = (*Store)(nil)
