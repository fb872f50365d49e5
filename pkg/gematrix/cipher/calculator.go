package cipher

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Scores holds one sum per cipher, indexed by Cipher.
type Scores [Count]int

// Get returns the score for c, or 0 for an invalid cipher.
func (s Scores) Get(c Cipher) int {
	if !c.Valid() {
		return 0
	}
	return s[c]
}

// Lookup returns the score stored under a persisted key.
func (s Scores) Lookup(name string) (int, bool) {
	c, ok := Parse(name)
	if !ok {
		return 0, false
	}
	return s[c], true
}

// Map converts the scores to the string-keyed form persisted by callers.
func (s Scores) Map() map[string]int {
	m := make(map[string]int, Count)
	for i, v := range s {
		m[names[i]] = v
	}
	return m
}

// MarshalJSON writes the scores as an object in score order.
func (s Scores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(names[i]))
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(v))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a score object; unknown keys are ignored and
// missing keys stay 0.
func (s *Scores) UnmarshalJSON(data []byte) error {
	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*s = FromMap(m)
	return nil
}

// FromMap builds Scores from a string-keyed map, ignoring unknown keys.
func FromMap(m map[string]int) Scores {
	var s Scores
	for name, v := range m {
		if c, ok := Parse(name); ok {
			s[c] = v
		}
	}
	return s
}

// Compute scores text under every cipher. Only ASCII letters count;
// everything else is dropped. The empty string scores 0 everywhere.
func Compute(text string) Scores {
	var counts [27]int
	for i := 0; i < len(text); i++ {
		if pos := position(text[i]); pos > 0 {
			counts[pos]++
		}
	}

	var s Scores
	for c, table := range tables {
		sum := 0
		for pos := 1; pos <= 26; pos++ {
			if counts[pos] > 0 {
				sum += counts[pos] * table[pos]
			}
		}
		s[c] = sum
	}
	return s
}

// ComputeAllScores returns every cipher score keyed by its persisted name.
func ComputeAllScores(text string) map[string]int {
	return Compute(text).Map()
}

// Calculate returns the scores for the named ciphers only. Unknown names
// are skipped. With no names it returns every score.
func Calculate(text string, ciphers ...string) map[string]int {
	all := Compute(text)
	if len(ciphers) == 0 {
		return all.Map()
	}
	selected := make(map[string]int, len(ciphers))
	for _, name := range ciphers {
		if c, ok := Parse(name); ok {
			selected[name] = all[c]
		}
	}
	return selected
}

// ExtractLetters returns the uppercase A-Z letters of text in order.
func ExtractLetters(text string) []byte {
	letters := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		if pos := position(text[i]); pos > 0 {
			letters = append(letters, byte('A'+pos-1))
		}
	}
	return letters
}

// position maps an ASCII letter to 1..26 and anything else to 0.
func position(b byte) int {
	switch {
	case b >= 'A' && b <= 'Z':
		return int(b-'A') + 1
	case b >= 'a' && b <= 'z':
		return int(b-'a') + 1
	}
	return 0
}

// LetterValue is one letter's contribution to a score.
type LetterValue struct {
	Char  string `json:"char"`
	Index int    `json:"index"`
	Value int    `json:"value"`
}

// BreakdownResult lists per-letter values and the sum expression.
type BreakdownResult struct {
	Cipher     string        `json:"cipher"`
	Items      []LetterValue `json:"items"`
	Expression string        `json:"expression"`
	Total      int           `json:"total"`
}

// Breakdown explains how text scores under the named cipher. Unknown
// cipher names produce zero-valued items, matching GetCipherTable.
func Breakdown(text, name string) BreakdownResult {
	c, ok := Parse(name)
	letters := ExtractLetters(text)
	res := BreakdownResult{
		Cipher: name,
		Items:  make([]LetterValue, 0, len(letters)),
	}

	parts := make([]string, 0, len(letters))
	for _, ch := range letters {
		idx := int(ch-'A') + 1
		val := 0
		if ok {
			val = c.Value(idx)
		}
		res.Items = append(res.Items, LetterValue{Char: string(ch), Index: idx, Value: val})
		parts = append(parts, strconv.Itoa(val))
		res.Total += val
	}
	res.Expression = strings.Join(parts, " + ")
	return res
}
