package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func sha(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestBuildDedupKey(t *testing.T) {
	tests := []struct {
		name string
		id   int64
		url  string
		text string
		date string
		want string
	}{
		{"url", 7, "https://example.com/a", "ignored", "2024-01-02", sha("7|https://example.com/a")},
		{"no url", 7, "", "markets rally", "2024-01-02", sha("7|markets rally|2024-01-02")},
		{"empty everything", 0, "", "", "", sha("0||")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildDedupKey(tt.id, tt.url, tt.text, tt.date); got != tt.want {
				t.Errorf("BuildDedupKey = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBuildDedupKeyStable(t *testing.T) {
	a := BuildDedupKey(1, "https://example.com/a", "", "")
	if b := BuildDedupKey(1, "https://example.com/a", "other", "2020-01-01"); a != b {
		t.Error("url key should ignore text and date")
	}
	if c := BuildDedupKey(1, "https://example.com/b", "", ""); a == c {
		t.Error("different url should change key")
	}
	if d := BuildDedupKey(2, "https://example.com/a", "", ""); a == d {
		t.Error("different source should change key")
	}
	if len(a) != 64 {
		t.Errorf("key length = %d", len(a))
	}

	x := BuildDedupKey(1, "", "same text", "2024-01-01")
	if y := BuildDedupKey(1, "", "same text", "2024-01-02"); x == y {
		t.Error("different date should change key without url")
	}
}
