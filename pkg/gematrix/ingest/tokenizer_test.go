package ingest

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tok := NewTokenizer(nil)

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"basic", "markets rally on strong earnings", []string{"markets", "rally", "strong", "earnings"}},
		{"hyphenated kept", "covid-nineteen cases rise", []string{"covid-nineteen", "cases", "rise"}},
		{"double hyphen splits", "well--known fact", []string{"well", "known", "fact"}},
		{"dedup keeps first", "rain rain and more rain", []string{"rain", "and", "more"}},
		{"uppercase folded", "BIG News", []string{"big", "news"}},
		{"digits separate", "abc123def", []string{"abc", "def"}},
		{"non ascii splits", "café owners", []string{"caf", "owners"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tok.Tokenize(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenizeLengthBounds(t *testing.T) {
	tok := NewTokenizer(nil)
	long := "abcdefghijklmnopqrstuvwxyzabcdefghijklmno" // 41 letters
	got := tok.Tokenize("an ox " + long + " ate")
	if !reflect.DeepEqual(got, []string{"ate"}) {
		t.Errorf("default bounds: got %v", got)
	}

	tok.SetLengthBounds(2, 0)
	got = tok.Tokenize("an ox ate")
	if !reflect.DeepEqual(got, []string{"an", "ox", "ate"}) {
		t.Errorf("min 2: got %v", got)
	}
}

func TestTokenizeStopwords(t *testing.T) {
	tok := NewTokenizer([]string{"The", "and"})
	got := tok.Tokenize("the cat and the dog")
	if !reflect.DeepEqual(got, []string{"cat", "dog"}) {
		t.Errorf("got %v", got)
	}

	tok.RemoveStopword("AND")
	tok.AddStopword("cat")
	got = tok.Tokenize("the cat and the dog")
	if !reflect.DeepEqual(got, []string{"and", "dog"}) {
		t.Errorf("after edits got %v", got)
	}
}

func TestPhraseTokens(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Hello World", []string{"hello", "world"}},
		{"a bc d", []string{"bc"}},
		{"it's 4u", []string{"its"}},
		{"x1 y2z", []string{"yz"}},
		{"  Love  love ", []string{"love"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := PhraseTokens(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("PhraseTokens(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
