package ingest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cognicore/gematrix/pkg/gematrix/cipher"
	"github.com/cognicore/gematrix/pkg/gematrix/store"
)

// Wordlist import limits.
const (
	MaxImportWordLength = 64
	MinImportBatch      = 100
	MaxImportBatch      = 2500
	DefaultImportBatch  = 1000
	progressEvery       = 20000
)

var importWord = regexp.MustCompile(`^[a-z]+$`)

// PhraseWriter is the part of the store the importer needs.
type PhraseWriter interface {
	UpsertPhrases(ctx context.Context, ps []store.Phrase) error
}

// ImportOptions controls a wordlist import.
type ImportOptions struct {
	MinLength int // clamped to >= 1
	Limit     int // max accepted words, 0 for no limit
	BatchSize int // clamped to [MinImportBatch, MaxImportBatch]
}

// ImportStats summarizes an import.
type ImportStats struct {
	Processed int // lines read
	Imported  int // words accepted and written
	Elapsed   time.Duration
}

// Importer bulk-loads a newline separated wordlist as approved phrases.
type Importer struct {
	writer PhraseWriter
	opts   ImportOptions
	logger *zap.Logger
}

// NewImporter clamps opts and returns an importer writing to w.
func NewImporter(w PhraseWriter, opts ImportOptions, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MinLength < 1 {
		opts.MinLength = 1
	}
	if opts.Limit < 0 {
		opts.Limit = 0
	}
	if opts.BatchSize == 0 {
		opts.BatchSize = DefaultImportBatch
	}
	opts.BatchSize = min(max(opts.BatchSize, MinImportBatch), MaxImportBatch)
	return &Importer{writer: w, opts: opts, logger: logger}
}

// Options returns the effective, clamped options.
func (im *Importer) Options() ImportOptions { return im.opts }

// Import reads words from r, one per line. Lines that are not purely
// a-z after lowercasing, or fall outside the length bounds, are skipped.
func (im *Importer) Import(ctx context.Context, r io.Reader) (ImportStats, error) {
	var stats ImportStats
	started := time.Now()
	batch := make([]store.Phrase, 0, im.opts.BatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := im.writer.UpsertPhrases(ctx, batch); err != nil {
			return fmt.Errorf("flush batch: %w", err)
		}
		batch = batch[:0]
		return nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Processed++

		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if !importWord.MatchString(word) {
			continue
		}
		if len(word) < im.opts.MinLength || len(word) > MaxImportWordLength {
			continue
		}

		batch = append(batch, store.Phrase{Phrase: word, Scores: cipher.Compute(word), Approved: true})
		stats.Imported++

		if len(batch) >= im.opts.BatchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}
		if im.opts.Limit > 0 && stats.Imported >= im.opts.Limit {
			break
		}
		if stats.Imported%progressEvery == 0 {
			im.logger.Info("wordlist import progress",
				zap.Int("imported", stats.Imported),
				zap.Duration("elapsed", time.Since(started)))
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read wordlist: %w", err)
	}
	if err := flush(); err != nil {
		return stats, err
	}

	stats.Elapsed = time.Since(started)
	im.logger.Info("wordlist import done",
		zap.Int("processed", stats.Processed),
		zap.Int("imported", stats.Imported),
		zap.Duration("elapsed", stats.Elapsed))
	return stats, nil
}

// OpenWordlist opens a local path or an http(s) URL for reading.
func OpenWordlist(ctx context.Context, source string, client *http.Client) (io.ReadCloser, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		return os.Open(source)
	}
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch wordlist: status %d", resp.StatusCode)
	}
	return resp.Body, nil
}
