package crawler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cognicore/gematrix/pkg/gematrix/dedup"
	"github.com/cognicore/gematrix/pkg/gematrix/headline"
	"github.com/cognicore/gematrix/pkg/gematrix/ingest"
	"github.com/cognicore/gematrix/pkg/gematrix/internalerr"
	"github.com/cognicore/gematrix/pkg/gematrix/store"
)

const cleanupChunk = 500

// CleanupResult summarizes a cleanup pass.
type CleanupResult struct {
	Processed     int
	Updated       int
	Deduped       int
	PhrasesSynced int
	WordsSynced   int
}

// Cleanup re-applies the headline cleaning rules to stored headlines in id
// order, examining at most limit rows (all rows when limit <= 0).
//
// Rows that no longer pass admission are deleted, as are rows whose
// recomputed dedup key collides with another row. Changed rows are
// rewritten and their phrases synced. When a source suffix was stripped,
// the phrase of the old normalized text is removed unless another
// headline still uses it.
func (s *Service) Cleanup(ctx context.Context, limit int) (CleanupResult, error) {
	var res CleanupResult
	var afterID int64
	for limit <= 0 || res.Processed < limit {
		chunk := cleanupChunk
		if limit > 0 {
			chunk = min(chunk, limit-res.Processed)
		}
		page, err := s.store.HeadlinesAfter(ctx, afterID, chunk)
		if err != nil {
			return res, fmt.Errorf("load headlines after %d: %w", afterID, err)
		}
		if len(page) == 0 {
			break
		}
		for _, h := range page {
			afterID = h.ID
			res.Processed++
			if err := s.cleanHeadline(ctx, h, &res); err != nil {
				return res, fmt.Errorf("clean headline %d: %w", h.ID, err)
			}
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
	}

	s.logger.Info("cleanup completed",
		zap.Int("processed", res.Processed),
		zap.Int("updated", res.Updated),
		zap.Int("deduped", res.Deduped))
	return res, nil
}

func (s *Service) cleanHeadline(ctx context.Context, h store.Headline, res *CleanupResult) error {
	clean, reason := s.pipeline.Clean(h.Headline, h.SourceName, h.URL)
	if reason != ingest.Accepted {
		s.logger.Debug("dropping headline", zap.Int64("id", h.ID), zap.String("reason", string(reason)))
		res.Deduped++
		return s.store.DeleteHeadline(ctx, h.ID)
	}
	if clean == h.Headline {
		return nil
	}

	oldNormalized := strings.ToLower(strings.TrimSpace(h.Normalized))
	if oldNormalized == "" {
		oldNormalized = strings.ToLower(strings.TrimSpace(s.pipeline.Normalizer().Normalize(h.Headline)))
	}

	built := s.pipeline.Build(clean)
	if built.Normalized == "" {
		return nil
	}

	date := h.HeadlineDate
	if date == "" {
		date = s.now().UTC().Format(dateLayout)
	}
	hash := dedup.BuildDedupKey(h.SourceID, strings.TrimSpace(h.URL), built.Key, date)
	taken, err := s.store.HashTaken(ctx, hash, h.ID)
	if err != nil {
		return err
	}
	if taken {
		res.Deduped++
		return s.store.DeleteHeadline(ctx, h.ID)
	}

	hadSuffix := headline.HasSourceSuffix(h.Headline, h.SourceName, h.URL)

	h.Headline = built.Display
	h.Normalized = built.Normalized
	h.URLHash = hash
	h.HeadlineDate = date
	h.Scores = built.Scores
	if err := s.store.UpdateHeadline(ctx, h); err != nil {
		if errors.Is(err, internalerr.ErrDuplicate) {
			res.Deduped++
			return s.store.DeleteHeadline(ctx, h.ID)
		}
		return err
	}
	res.Updated++

	phrases, words, err := s.syncHeadlinePhrases(ctx, built.Normalized, built.Words)
	if err != nil {
		return err
	}
	res.PhrasesSynced += phrases
	res.WordsSynced += words

	if oldNormalized != "" && oldNormalized != built.Normalized && hadSuffix {
		return s.deleteOrphanedPhrase(ctx, oldNormalized)
	}
	return nil
}

// deleteOrphanedPhrase removes phrase unless a headline still normalizes to it.
func (s *Service) deleteOrphanedPhrase(ctx context.Context, phrase string) error {
	inUse, err := s.store.NormalizedInUse(ctx, phrase)
	if err != nil {
		return err
	}
	if inUse {
		return nil
	}
	s.logger.Debug("deleting orphaned phrase", zap.String("phrase", phrase))
	return s.store.DeletePhrase(ctx, phrase)
}
