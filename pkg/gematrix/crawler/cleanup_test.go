package crawler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cognicore/gematrix/pkg/gematrix/cipher"
	"github.com/cognicore/gematrix/pkg/gematrix/config"
	"github.com/cognicore/gematrix/pkg/gematrix/dedup"
	"github.com/cognicore/gematrix/pkg/gematrix/internalerr"
	"github.com/cognicore/gematrix/pkg/gematrix/store"
	"github.com/cognicore/gematrix/pkg/gematrix/store/memstore"
)

func TestCleanupStripsSourceSuffix(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	svc := newService(t, st, &fakeFetcher{}, nil)

	src, _, err := st.EnsureSource(ctx, store.Source{
		Name:    "Times of Israel",
		BaseURL: "https://www.timesofisrael.com",
		RSSURL:  "https://www.timesofisrael.com/feed/",
		Enabled: true,
		Weight:  100,
	})
	require.NoError(t, err)

	old := "high court begins hearing on egalitarian prayer at western wall - the times of israel"
	_, err = st.UpsertHeadline(ctx, store.Headline{
		SourceID:     src.ID,
		Headline:     old,
		Normalized:   old,
		URL:          "https://www.timesofisrael.com/high-court-begins-hearing/",
		URLHash:      "legacy-hash",
		HeadlineDate: "2024-03-01",
		Scores:       cipher.Compute(old),
	})
	require.NoError(t, err)
	_, err = st.UpsertPhrase(ctx, store.Phrase{Phrase: old, Scores: cipher.Compute(old), Approved: true})
	require.NoError(t, err)

	res, err := svc.Cleanup(ctx, 100)
	require.NoError(t, err)
	require.Equal(t, 1, res.Processed)
	require.Equal(t, 1, res.Updated)
	require.Zero(t, res.Deduped)
	require.Equal(t, 1, res.PhrasesSynced)

	headlines, err := st.HeadlinesAfter(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, headlines, 1)
	want := "high court begins hearing on egalitarian prayer at western wall"
	require.Equal(t, want, headlines[0].Headline)
	require.Equal(t, want, headlines[0].Normalized)
	require.Greater(t, headlines[0].Scores.Get(cipher.EnglishGematria), 0)
	require.Equal(t, dedup.BuildDedupKey(src.ID, "https://www.timesofisrael.com/high-court-begins-hearing/", "", ""), headlines[0].URLHash)

	_, err = st.GetPhrase(ctx, old)
	require.ErrorIs(t, err, internalerr.ErrNotFound)
	_, err = st.GetPhrase(ctx, want)
	require.NoError(t, err)
}

func TestCleanupKeepsSharedPhrase(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	svc := newService(t, st, &fakeFetcher{}, nil)
	src, _, err := st.EnsureSource(ctx, store.Source{Name: "Wire", Enabled: true})
	require.NoError(t, err)

	old := "bonds slide today - wire"
	for i, hash := range []string{"a", "b"} {
		h := store.Headline{SourceID: src.ID, Normalized: old, URLHash: hash, HeadlineDate: "2024-03-01"}
		h.Headline = old
		if i == 1 {
			h.Headline = "Bonds slide today | Wire wrap"
		}
		_, err := st.UpsertHeadline(ctx, h)
		require.NoError(t, err)
	}
	_, err = st.UpsertPhrase(ctx, store.Phrase{Phrase: old, Scores: cipher.Compute(old), Approved: true})
	require.NoError(t, err)

	res, err := svc.Cleanup(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 1, res.Processed)
	require.Equal(t, 1, res.Updated)

	_, err = st.GetPhrase(ctx, old)
	require.NoError(t, err, "phrase still used by another headline")
}

func TestCleanupDeletesAndDedupes(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	svc := newService(t, st, &fakeFetcher{}, nil)
	src, _, err := st.EnsureSource(ctx, store.Source{Name: "Wire", Enabled: true})
	require.NoError(t, err)

	date := "2024-03-01"
	rows := []store.Headline{
		{Headline: "Markets rally", Normalized: "markets rally", URL: "https://wire.example/a", URLHash: "h1"},
		{Headline: "Россия и Китай подписали соглашение", URLHash: "h2"},
		{Headline: "Bonds slide today - Wire", Normalized: "bonds slide today - wire", URLHash: "h3"},
		{Headline: "Bonds slide today", Normalized: "bonds slide today", URLHash: dedup.BuildDedupKey(src.ID, "", "bonds slide today", date)},
	}
	for _, h := range rows {
		h.SourceID = src.ID
		h.HeadlineDate = date
		_, err := st.UpsertHeadline(ctx, h)
		require.NoError(t, err)
	}

	res, err := svc.Cleanup(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, CleanupResult{Processed: 4, Deduped: 2}, res)

	remaining, err := st.HeadlinesAfter(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	require.Equal(t, "Markets rally", remaining[0].Headline)
	require.Equal(t, "Bonds slide today", remaining[1].Headline)
}

func TestCleanupHonorsLimit(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	cfg := config.Default()
	cfg.Sources = nil
	svc, err := New(Options{Store: st, Fetcher: &fakeFetcher{}, Config: cfg})
	require.NoError(t, err)

	src, _, err := st.EnsureSource(ctx, store.Source{Name: "Wire", Enabled: true})
	require.NoError(t, err)
	for _, hash := range []string{"a", "b", "c"} {
		_, err := st.UpsertHeadline(ctx, store.Headline{SourceID: src.ID, Headline: "Quiet day on markets", URLHash: hash})
		require.NoError(t, err)
	}

	res, err := svc.Cleanup(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, 2, res.Processed)
	require.Zero(t, res.Updated)
}
