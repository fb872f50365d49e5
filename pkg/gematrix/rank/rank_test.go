package rank

import (
	"math"
	"reflect"
	"testing"

	"github.com/cognicore/gematrix/pkg/gematrix/cipher"
)

func TestJaccard(t *testing.T) {
	tests := []struct {
		a, b []string
		want float64
	}{
		{nil, nil, 0},
		{[]string{"a"}, nil, 0},
		{[]string{"a", "b"}, []string{"b", "c"}, 1.0 / 3},
		{[]string{"a", "a", "b"}, []string{"a", "b"}, 1},
	}
	for _, tt := range tests {
		if got := jaccard(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("jaccard(%v, %v) = %f, want %f", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("The U.S. spent $40bn, a lot!")
	want := []string{"the", "spent", "40bn", "lot"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestScoreIdentical(t *testing.T) {
	s := NewScorer(DefaultWeights(), nil)
	q := NewQuery("new world order")
	b := s.ScoreWithBreakdown(q, Candidate{Phrase: "new world order", Scores: cipher.Compute("new world order")})

	if b.Total != 100 {
		t.Errorf("identical phrase total = %v, want 100", b.Total)
	}
	if b.Lexical != 100 || b.Cipher != 100 || b.Shared != cipher.Count {
		t.Errorf("breakdown = %+v", b)
	}
}

func TestScoreAnagram(t *testing.T) {
	// Anagrams share every cipher value but no tokens.
	s := NewScorer(DefaultWeights(), nil)
	got := s.Score(NewQuery("god"), Candidate{Phrase: "dog", Scores: cipher.Compute("dog")})
	if got != 45 {
		t.Errorf("anagram score = %v, want 45", got)
	}
}

func TestScoreSubsetCiphers(t *testing.T) {
	s := NewScorer(DefaultWeights(), []cipher.Cipher{cipher.EnglishGematria, cipher.SimpleGematria, cipher.Chaldean})
	q := NewQuery("love peace")
	cand := Candidate{Phrase: "love", Scores: cipher.Compute("love")}
	b := s.ScoreWithBreakdown(q, cand)

	if b.Lexical != 50 {
		t.Errorf("lexical = %v, want 50", b.Lexical)
	}
	if b.Shared != 0 || b.Cipher != 0 {
		t.Errorf("unexpected cipher agreement: %+v", b)
	}
	if b.Total != 27.5 {
		t.Errorf("total = %v, want 27.5", b.Total)
	}
}

func TestSharedCiphersAndConfidence(t *testing.T) {
	a := cipher.Compute("god")
	b := cipher.Compute("dog")
	sel := []cipher.Cipher{cipher.Satanic, cipher.EnglishGematria}
	hits := SharedCiphers(a, b, sel)
	if !reflect.DeepEqual(hits, sel) {
		t.Errorf("hits = %v", hits)
	}
	if got := Confidence(1, 3); got != 33.33 {
		t.Errorf("Confidence(1,3) = %v", got)
	}
	if got := Confidence(0, 0); got != 0 {
		t.Errorf("Confidence(0,0) = %v", got)
	}
}
