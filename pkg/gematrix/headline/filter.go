package headline

import (
	"strings"
	"unicode"
)

const (
	minLatinLetters = 6
	minLatinRatio   = 0.7
)

// IsLikelyEnglish reports whether text has at least six ASCII letters and
// ASCII letters make up at least 70% of all its letters.
func IsLikelyEnglish(text string) bool {
	var latin, letters int
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			latin++
		}
	}
	if latin < minLatinLetters || letters == 0 {
		return false
	}
	return float64(latin)/float64(letters) >= minLatinRatio
}

// ContainsMojibakeMarkers reports residual corruption that repair could
// not fix. Callers discard such headlines.
func ContainsMojibakeMarkers(text string) bool {
	return strings.ContainsAny(text, "âÃãÂ")
}

// Key is the case-folded, whitespace-collapsed form used to group
// duplicate headlines within one source.
func Key(text string) string {
	return collapseSpace(strings.ToLower(text))
}
