package store

import (
	"context"
	"time"

	"github.com/cognicore/gematrix/pkg/gematrix/cipher"
)

// Store is the main interface for persisting phrases, news sources,
// headlines and crawler runs.
type Store interface {
	Close() error

	PhraseStore
	SourceStore
	HeadlineStore
	RunStore
}

// PhraseStore persists scored phrases, unique by phrase text.
type PhraseStore interface {
	// UpsertPhrase inserts or rescores a phrase and reports whether a new
	// row was created.
	UpsertPhrase(ctx context.Context, p Phrase) (bool, error)
	// UpsertPhrases writes a batch in one transaction.
	UpsertPhrases(ctx context.Context, ps []Phrase) error
	// GetPhrase returns internalerr.ErrNotFound when phrase is unknown.
	GetPhrase(ctx context.Context, phrase string) (Phrase, error)
	DeletePhrase(ctx context.Context, phrase string) error
	FindPhrases(ctx context.Context, q PhraseQuery) ([]Phrase, error)
	CountPhrases(ctx context.Context) (int64, error)
}

// SourceStore persists news feeds.
type SourceStore interface {
	// EnsureSource returns the source with s.Name, creating it from s
	// when absent. The bool reports creation.
	EnsureSource(ctx context.Context, s Source) (Source, bool, error)
	ListSources(ctx context.Context, f SourceFilter) ([]Source, error)
	UpdateSourceStatus(ctx context.Context, id int64, checkedAt time.Time, lastError string) error
}

// HeadlineStore persists crawled headlines, unique by URLHash.
type HeadlineStore interface {
	// UpsertHeadline inserts or updates by URLHash and reports whether a
	// new row was created.
	UpsertHeadline(ctx context.Context, h Headline) (bool, error)
	// HeadlinesAfter returns up to limit headlines with ID > afterID in
	// ID order, with SourceName filled in.
	HeadlinesAfter(ctx context.Context, afterID int64, limit int) ([]Headline, error)
	// HashTaken reports whether a headline other than exceptID uses hash.
	HashTaken(ctx context.Context, hash string, exceptID int64) (bool, error)
	// UpdateHeadline rewrites text, hash and scores of the row h.ID.
	UpdateHeadline(ctx context.Context, h Headline) error
	DeleteHeadline(ctx context.Context, id int64) error
	// NormalizedInUse reports whether any headline has this normalized text.
	NormalizedInUse(ctx context.Context, normalized string) (bool, error)
	CountHeadlines(ctx context.Context) (int64, error)
}

// RunStore persists crawler run bookkeeping.
type RunStore interface {
	CreateRun(ctx context.Context, r CrawlerRun) error
	UpdateRun(ctx context.Context, r CrawlerRun) error
	// GetRun returns internalerr.ErrNotFound when id is unknown.
	GetRun(ctx context.Context, id string) (CrawlerRun, error)
}

// Phrase is a stored, scored phrase or word.
type Phrase struct {
	ID        int64
	Phrase    string
	Scores    cipher.Scores
	Approved  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PhraseQuery selects approved phrases that contain any of Contains as a
// substring or equal any of Scores on its cipher column. Exclude drops one
// exact phrase. Results are ordered by english_gematria, then phrase.
type PhraseQuery struct {
	Contains []string
	Scores   map[cipher.Cipher]int
	Exclude  string
	Limit    int
}

// Source is a news feed.
type Source struct {
	ID            int64
	Name          string
	BaseURL       string
	RSSURL        string
	Locale        string
	Enabled       bool
	Weight        int
	LastCheckedAt time.Time // zero when never checked
	LastError     string
	CreatedAt     time.Time
}

// SourceFilter narrows ListSources. Results are ordered by weight
// descending, then name.
type SourceFilter struct {
	EnabledOnly bool
	IDs         []int64
}

// Headline is a cleaned headline as stored.
type Headline struct {
	ID           int64
	SourceID     int64
	SourceName   string // read-only, joined from sources
	Headline     string
	Normalized   string
	URL          string
	URLHash      string
	PublishedAt  time.Time // zero when the feed gave no usable date
	HeadlineDate string    // YYYY-MM-DD
	Locale       string
	Scores       cipher.Scores
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Run statuses.
const (
	RunRunning   = "running"
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// CrawlerRun records one crawl.
type CrawlerRun struct {
	ID           string
	CrawlerName  string
	Status       string
	StartedAt    time.Time
	FinishedAt   time.Time
	CurrentItem  string
	Processed    int
	Inserted     int
	ErrorMessage string
	Meta         RunMeta
}

// RunMeta is stored as JSON on the run row.
type RunMeta struct {
	LimitPerSource    int `json:"limit_per_source"`
	PhrasesSynced     int `json:"phrases_synced"`
	SingleWordsSynced int `json:"single_words_synced"`
}
