package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/cognicore/gematrix/pkg/gematrix/cipher"
	"github.com/cognicore/gematrix/pkg/gematrix/internalerr"
	"github.com/cognicore/gematrix/pkg/gematrix/store"
)

func TestPhrases_UpsertReportsCreation(t *testing.T) {
	ctx := context.Background()
	s := New()

	created, err := s.UpsertPhrase(ctx, store.Phrase{Phrase: "god", Scores: cipher.Compute("god"), Approved: true})
	if err != nil || !created {
		t.Fatalf("first upsert: created=%v err=%v", created, err)
	}
	created, err = s.UpsertPhrase(ctx, store.Phrase{Phrase: "god", Scores: cipher.Compute("god"), Approved: true})
	if err != nil || created {
		t.Fatalf("second upsert: created=%v err=%v", created, err)
	}

	if _, err := s.GetPhrase(ctx, "missing"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.UpsertPhrase(ctx, store.Phrase{}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPhrases_Find(t *testing.T) {
	ctx := context.Background()
	s := New()
	var batch []store.Phrase
	for _, w := range []string{"god", "dog", "cat", "catalog"} {
		batch = append(batch, store.Phrase{Phrase: w, Scores: cipher.Compute(w), Approved: true})
	}
	batch = append(batch, store.Phrase{Phrase: "hidden cat", Scores: cipher.Compute("hidden cat")})
	if err := s.UpsertPhrases(ctx, batch); err != nil {
		t.Fatal(err)
	}

	got, _ := s.FindPhrases(ctx, store.PhraseQuery{
		Scores:  map[cipher.Cipher]int{cipher.EnglishGematria: cipher.Compute("god").Get(cipher.EnglishGematria)},
		Exclude: "god",
	})
	if len(got) != 1 || got[0].Phrase != "dog" {
		t.Errorf("score match = %v", got)
	}

	got, _ = s.FindPhrases(ctx, store.PhraseQuery{Contains: []string{"cat"}})
	if len(got) != 2 {
		t.Fatalf("expected cat and catalog (unapproved excluded), got %v", got)
	}
	if got[0].Phrase != "cat" {
		t.Errorf("expected ordering by english_gematria, got %v", got)
	}

	got, _ = s.FindPhrases(ctx, store.PhraseQuery{Contains: []string{"cat"}, Limit: 1})
	if len(got) != 1 {
		t.Errorf("limit not applied: %v", got)
	}
}

func TestSources_OrderAndStatus(t *testing.T) {
	ctx := context.Background()
	s := New()

	b, _, _ := s.EnsureSource(ctx, store.Source{Name: "B", Enabled: true, Weight: 100})
	s.EnsureSource(ctx, store.Source{Name: "A", Enabled: true, Weight: 100})
	s.EnsureSource(ctx, store.Source{Name: "Z", Enabled: true, Weight: 300})
	s.EnsureSource(ctx, store.Source{Name: "Off", Enabled: false, Weight: 500})

	again, created, _ := s.EnsureSource(ctx, store.Source{Name: "B", Weight: 1})
	if created || again.ID != b.ID || again.Weight != 100 {
		t.Errorf("EnsureSource should return existing: %+v created=%v", again, created)
	}

	list, _ := s.ListSources(ctx, store.SourceFilter{EnabledOnly: true})
	want := []string{"Z", "A", "B"}
	if len(list) != len(want) {
		t.Fatalf("got %d sources", len(list))
	}
	for i, w := range want {
		if list[i].Name != w {
			t.Errorf("position %d: got %s want %s", i, list[i].Name, w)
		}
	}

	if err := s.UpdateSourceStatus(ctx, b.ID, s.now(), "timeout"); err != nil {
		t.Fatal(err)
	}
	list, _ = s.ListSources(ctx, store.SourceFilter{IDs: []int64{b.ID}})
	if len(list) != 1 || list[0].LastError != "timeout" || list[0].LastCheckedAt.IsZero() {
		t.Errorf("status not recorded: %+v", list)
	}
	if err := s.UpdateSourceStatus(ctx, 999, s.now(), ""); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestHeadlines_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()
	src, _, _ := s.EnsureSource(ctx, store.Source{Name: "Wire", Enabled: true})

	for _, hash := range []string{"h1", "h2", "h3"} {
		created, err := s.UpsertHeadline(ctx, store.Headline{SourceID: src.ID, URLHash: hash, Normalized: "n-" + hash})
		if err != nil || !created {
			t.Fatalf("insert %s: created=%v err=%v", hash, created, err)
		}
	}
	if created, _ := s.UpsertHeadline(ctx, store.Headline{SourceID: src.ID, URLHash: "h1", Headline: "new"}); created {
		t.Error("existing hash should update")
	}

	page, _ := s.HeadlinesAfter(ctx, 0, 2)
	if len(page) != 2 || page[0].ID != 1 || page[0].SourceName != "Wire" || page[0].Headline != "new" {
		t.Fatalf("unexpected page: %+v", page)
	}
	page, _ = s.HeadlinesAfter(ctx, page[1].ID, 2)
	if len(page) != 1 || page[0].URLHash != "h3" {
		t.Fatalf("unexpected second page: %+v", page)
	}

	if taken, _ := s.HashTaken(ctx, "h2", 1); !taken {
		t.Error("h2 should be taken by another row")
	}
	if taken, _ := s.HashTaken(ctx, "h2", 2); taken {
		t.Error("own hash is not taken")
	}

	err := s.UpdateHeadline(ctx, store.Headline{ID: 1, URLHash: "h2"})
	if !errors.Is(err, internalerr.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
	if err := s.UpdateHeadline(ctx, store.Headline{ID: 1, URLHash: "h9", Normalized: "moved"}); err != nil {
		t.Fatal(err)
	}
	if taken, _ := s.HashTaken(ctx, "h1", 0); taken {
		t.Error("old hash should be released")
	}
	if inUse, _ := s.NormalizedInUse(ctx, "moved"); !inUse {
		t.Error("moved should be in use")
	}

	s.DeleteHeadline(ctx, 1)
	if n, _ := s.CountHeadlines(ctx); n != 2 {
		t.Errorf("count = %d", n)
	}
	if inUse, _ := s.NormalizedInUse(ctx, "moved"); inUse {
		t.Error("deleted headline still in use")
	}
}

func TestRuns(t *testing.T) {
	ctx := context.Background()
	s := New()
	run := store.CrawlerRun{ID: "r1", CrawlerName: "news", Status: store.RunRunning}
	if err := s.CreateRun(ctx, run); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateRun(ctx, run); !errors.Is(err, internalerr.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
	run.Status = store.RunCompleted
	run.CrawlerName = "ignored"
	if err := s.UpdateRun(ctx, run); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetRun(ctx, "r1")
	if got.Status != store.RunCompleted || got.CrawlerName != "news" {
		t.Errorf("unexpected run: %+v", got)
	}
	if _, err := s.GetRun(ctx, "r2"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
