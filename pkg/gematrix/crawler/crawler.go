// Package crawler pulls headlines from configured news feeds into the
// store and keeps stored headlines consistent with the current cleaning
// rules.
package crawler

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cognicore/gematrix/internal/rss"
	"github.com/cognicore/gematrix/pkg/gematrix/cipher"
	"github.com/cognicore/gematrix/pkg/gematrix/config"
	"github.com/cognicore/gematrix/pkg/gematrix/dedup"
	"github.com/cognicore/gematrix/pkg/gematrix/ingest"
	"github.com/cognicore/gematrix/pkg/gematrix/internalerr"
	"github.com/cognicore/gematrix/pkg/gematrix/store"
)

const (
	sourceErrorLimit = 1000
	runErrorLimit    = 2000
	defaultWeight    = 100
	dateLayout       = "2006-01-02"
)

// FeedFetcher downloads the items of one feed.
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string, limit int) ([]rss.Item, error)
}

// Options configures a Service.
type Options struct {
	Store    store.Store
	Pipeline *ingest.Pipeline
	Fetcher  FeedFetcher
	Config   config.Config
	Logger   *zap.Logger
	Now      func() time.Time
}

// Service runs crawls and cleanups against a store.
type Service struct {
	store    store.Store
	pipeline *ingest.Pipeline
	fetcher  FeedFetcher
	cfg      config.Config
	logger   *zap.Logger
	now      func() time.Time

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// New creates a crawler service. Store and Fetcher are required; a nil
// Pipeline is built from the config.
func New(opts Options) (*Service, error) {
	if opts.Store == nil || opts.Fetcher == nil {
		return nil, fmt.Errorf("%w: crawler needs a store and a fetcher", internalerr.ErrInvalidInput)
	}
	s := &Service{
		store:    opts.Store,
		pipeline: opts.Pipeline,
		fetcher:  opts.Fetcher,
		cfg:      opts.Config,
		logger:   opts.Logger,
		now:      opts.Now,
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}
	defaults := config.Default()
	if s.cfg.Crawler.Name == "" {
		s.cfg.Crawler.Name = defaults.Crawler.Name
	}
	if s.cfg.Crawler.LimitPerSource <= 0 {
		s.cfg.Crawler.LimitPerSource = defaults.Crawler.LimitPerSource
	}
	if s.cfg.Phrases.MaxLength <= 0 {
		s.cfg.Phrases = defaults.Phrases
	}
	if s.pipeline == nil {
		comp, err := config.Build(s.cfg, "")
		if err != nil {
			return nil, err
		}
		s.pipeline = comp.Pipeline
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.cfg.Crawler.Concurrency < 1 {
		s.cfg.Crawler.Concurrency = 1
	}
	return s, nil
}

// EnsureDefaultSources registers every configured source that is not yet
// stored by name and returns how many were created.
func (s *Service) EnsureDefaultSources(ctx context.Context) (int, error) {
	created := 0
	for _, src := range s.cfg.Sources {
		weight := src.Weight
		if weight == 0 {
			weight = defaultWeight
		}
		locale := src.Locale
		if locale == "" {
			locale = "en"
		}
		_, isNew, err := s.store.EnsureSource(ctx, store.Source{
			Name:    src.Name,
			BaseURL: src.BaseURL,
			RSSURL:  src.RSSURL,
			Locale:  locale,
			Enabled: true,
			Weight:  weight,
		})
		if err != nil {
			return created, fmt.Errorf("ensure source %q: %w", src.Name, err)
		}
		if isNew {
			created++
		}
	}
	return created, nil
}

type fetchResult struct {
	items []rss.Item
	err   error
}

// Run crawls the enabled sources, or only sourceIDs when given, taking at
// most limit items per feed. A non-positive limit uses the configured
// default. The returned run is the final stored state.
func (s *Service) Run(ctx context.Context, sourceIDs []int64, limit int) (store.CrawlerRun, error) {
	if limit <= 0 {
		limit = s.cfg.Crawler.LimitPerSource
	}

	run := store.CrawlerRun{
		ID:          s.newRunID(),
		CrawlerName: s.cfg.Crawler.Name,
		Status:      store.RunRunning,
		StartedAt:   s.now(),
		Meta:        store.RunMeta{LimitPerSource: limit},
	}
	if err := s.store.CreateRun(ctx, run); err != nil {
		return run, fmt.Errorf("create run: %w", err)
	}
	log := s.logger.With(zap.String("run_id", run.ID))

	if err := s.crawl(ctx, log, &run, sourceIDs, limit); err != nil {
		run.Status = store.RunFailed
		run.ErrorMessage = internalerr.Truncate(err.Error(), runErrorLimit)
		run.FinishedAt = s.now()
		if uerr := s.store.UpdateRun(context.WithoutCancel(ctx), run); uerr != nil {
			log.Error("record failed run", zap.Error(uerr))
		}
		log.Error("crawl failed", zap.Error(err))
		return run, err
	}

	run.Status = store.RunCompleted
	run.CurrentItem = ""
	run.FinishedAt = s.now()
	if err := s.store.UpdateRun(ctx, run); err != nil {
		return run, fmt.Errorf("finish run: %w", err)
	}
	log.Info("crawl completed",
		zap.Int("processed", run.Processed),
		zap.Int("inserted", run.Inserted),
		zap.Int("phrases_synced", run.Meta.PhrasesSynced),
		zap.Int("single_words_synced", run.Meta.SingleWordsSynced))
	return run, nil
}

func (s *Service) crawl(ctx context.Context, log *zap.Logger, run *store.CrawlerRun, sourceIDs []int64, limit int) error {
	if _, err := s.EnsureDefaultSources(ctx); err != nil {
		return err
	}
	sources, err := s.store.ListSources(ctx, store.SourceFilter{EnabledOnly: true, IDs: sourceIDs})
	if err != nil {
		return fmt.Errorf("list sources: %w", err)
	}

	results := s.fetchAll(ctx, sources, limit)
	if err := ctx.Err(); err != nil {
		return err
	}

	for i, src := range sources {
		run.CurrentItem = src.Name
		if err := s.store.UpdateRun(ctx, *run); err != nil {
			return fmt.Errorf("update run: %w", err)
		}

		res := results[i]
		if res.err != nil {
			log.Warn("feed failed", zap.String("source", src.Name), zap.Error(res.err))
			if err := s.store.UpdateSourceStatus(ctx, src.ID, s.now(), internalerr.Truncate(res.err.Error(), sourceErrorLimit)); err != nil {
				return fmt.Errorf("update source %d: %w", src.ID, err)
			}
			continue
		}

		before := run.Inserted
		for _, item := range res.items {
			if err := s.ingestItem(ctx, src, item, run); err != nil {
				return fmt.Errorf("ingest %s: %w", src.Name, err)
			}
		}
		if err := s.store.UpdateSourceStatus(ctx, src.ID, s.now(), ""); err != nil {
			return fmt.Errorf("update source %d: %w", src.ID, err)
		}
		log.Info("source crawled",
			zap.String("source", src.Name),
			zap.Int("items", len(res.items)),
			zap.Int("inserted", run.Inserted-before))
	}
	return nil
}

// fetchAll downloads every feed with bounded concurrency. Feed errors are
// kept per source and never cancel the other fetches.
func (s *Service) fetchAll(ctx context.Context, sources []store.Source, limit int) []fetchResult {
	results := make([]fetchResult, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Crawler.Concurrency)
	for i, src := range sources {
		g.Go(func() error {
			items, err := s.fetcher.Fetch(gctx, src.RSSURL, limit)
			results[i] = fetchResult{items: items, err: err}
			return nil
		})
	}
	g.Wait()
	return results
}

func (s *Service) ingestItem(ctx context.Context, src store.Source, item rss.Item, run *store.CrawlerRun) error {
	url := strings.TrimSpace(item.Link)
	h, reason := s.pipeline.Process(item.Title, src.Name, url)
	if reason != ingest.Accepted {
		return nil
	}

	date := s.now().UTC().Format(dateLayout)
	if !item.PublishedAt.IsZero() {
		date = item.PublishedAt.Format(dateLayout)
	}
	locale := src.Locale
	if locale == "" {
		locale = "en"
	}

	created, err := s.store.UpsertHeadline(ctx, store.Headline{
		SourceID:     src.ID,
		Headline:     h.Display,
		Normalized:   h.Normalized,
		URL:          url,
		URLHash:      dedup.BuildDedupKey(src.ID, url, h.Key, date),
		PublishedAt:  item.PublishedAt,
		HeadlineDate: date,
		Locale:       locale,
		Scores:       h.Scores,
	})
	if err != nil {
		return err
	}

	phrases, words, err := s.syncHeadlinePhrases(ctx, h.Normalized, h.Words)
	if err != nil {
		return err
	}
	run.Meta.PhrasesSynced += phrases
	run.Meta.SingleWordsSynced += words
	run.Processed++
	if created {
		run.Inserted++
	}
	return nil
}

// syncHeadlinePhrases stores the normalized headline and each of its words
// as phrases, counting the ones newly created.
func (s *Service) syncHeadlinePhrases(ctx context.Context, normalized string, words []string) (phrases, singles int, err error) {
	created, err := s.syncPhrase(ctx, normalized)
	if err != nil {
		return 0, 0, err
	}
	if created {
		phrases++
	}
	for _, w := range words {
		created, err := s.syncPhrase(ctx, w)
		if err != nil {
			return phrases, singles, err
		}
		if created {
			singles++
		}
	}
	return phrases, singles, nil
}

// syncPhrase upserts one approved phrase and reports whether it was new.
// Phrases outside the configured length bounds are skipped.
func (s *Service) syncPhrase(ctx context.Context, phrase string) (bool, error) {
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	n := utf8.RuneCountInString(phrase)
	if n < s.cfg.Phrases.MinLength || n > s.cfg.Phrases.MaxLength {
		return false, nil
	}
	created, err := s.store.UpsertPhrase(ctx, store.Phrase{
		Phrase:   phrase,
		Scores:   cipher.Compute(phrase),
		Approved: true,
	})
	if err != nil {
		return false, fmt.Errorf("sync phrase %q: %w", phrase, err)
	}
	return created, nil
}

func (s *Service) newRunID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(s.now()), s.entropy).String()
}
