package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cognicore/gematrix/pkg/gematrix/internalerr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Crawler.UserAgent != "GematrixNewsCrawler/1.0" {
		t.Errorf("UserAgent = %q", cfg.Crawler.UserAgent)
	}
	if cfg.Normalizer.MaxDigits != 12 {
		t.Errorf("MaxDigits = %d", cfg.Normalizer.MaxDigits)
	}
	if len(cfg.Sources) == 0 {
		t.Error("expected default sources")
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, "gematrix.yaml", `crawler:
  timeout: 5s
  concurrency: 2
normalizer:
  max_digits: 9
words:
  min_length: 4
  stopwords: [the, and]
sources:
  - name: Example
    rss_url: https://example.com/rss
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Crawler.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.Crawler.Timeout)
	}
	if cfg.Crawler.Retries != 2 {
		t.Errorf("Retries should keep default, got %d", cfg.Crawler.Retries)
	}
	if cfg.Normalizer.MaxDigits != 9 {
		t.Errorf("MaxDigits = %d", cfg.Normalizer.MaxDigits)
	}
	if cfg.Words.MinLength != 4 || cfg.Words.MaxLength != 40 {
		t.Errorf("Words bounds = %+v", cfg.Words.LengthBounds)
	}
	if len(cfg.Words.Stopwords) != 2 {
		t.Errorf("Stopwords = %v", cfg.Words.Stopwords)
	}
	if len(cfg.Sources) != 1 || cfg.Sources[0].Name != "Example" {
		t.Errorf("Sources should be replaced, got %+v", cfg.Sources)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeFile(t, "bad.yaml", `crawler:
  concurrency: 0
normalizer:
  max_digits: 40
headlines:
  min_length: 10
  max_length: 5
sources:
  - name: NoFeed
`)

	_, err := Load(path)
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	for _, want := range []string{"concurrency", "max_digits", "headlines", "sources[0]"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %s", err, want)
		}
	}
}

func TestLoadMissingAndMalformed(t *testing.T) {
	if _, err := Load("/nonexistent/gematrix.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
	path := writeFile(t, "broken.yaml", "crawler: [unclosed")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadStoplist(t *testing.T) {
	path := writeFile(t, "stoplist.yaml", `terms:
  - the
  - a
  - and
`)
	sl, err := LoadStoplist(path)
	if err != nil {
		t.Fatalf("Failed to load stoplist: %v", err)
	}
	if len(sl.Terms) != 3 {
		t.Errorf("Expected 3 terms, got %d", len(sl.Terms))
	}
}

func TestClampCrawlLimit(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 10}, {10, 10}, {80, 80}, {500, 500}, {9000, 500},
	}
	for _, tt := range tests {
		if got := ClampCrawlLimit(tt.in); got != tt.want {
			t.Errorf("ClampCrawlLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
