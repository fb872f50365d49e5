package numwords

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultMaxDigits caps the numerals rewritten as grouped words.
const DefaultMaxDigits = 12

// maxSpellableDigits is the widest value NumberToWords can take as int64.
const maxSpellableDigits = 18

// Normalizer rewrites headlines into the canonical lowercase form that is
// scored and stored. It holds only compiled patterns and is safe for
// concurrent use.
type Normalizer struct {
	maxDigits int
	decimal   *regexp.Regexp
	ordinal   *regexp.Regexp
	integer   *regexp.Regexp
}

// NewNormalizer builds a Normalizer whose bare-integer and ordinal passes
// accept at most maxDigits digits. Values outside 1..18 fall back to
// DefaultMaxDigits.
//
// Matched numerals longer than the cap (comma-grouped or decimal whole
// parts) are spelled digit by digit. Bare digit runs longer than the cap
// never match and are left untouched.
func NewNormalizer(maxDigits int) *Normalizer {
	if maxDigits < 1 || maxDigits > maxSpellableDigits {
		maxDigits = DefaultMaxDigits
	}
	return &Normalizer{
		maxDigits: maxDigits,
		decimal:   regexp.MustCompile(`\b(\d{1,3}(?:,\d{3})*|\d+)\.(\d+)\b`),
		ordinal:   regexp.MustCompile(fmt.Sprintf(`(?i)\b(\d{1,3}(?:,\d{3})*|\d{1,%d})(st|nd|rd|th)\b`, maxDigits)),
		integer:   regexp.MustCompile(fmt.Sprintf(`\b(\d{1,3}(?:,\d{3})*|\d{1,%d})\b`, maxDigits)),
	}
}

// MaxDigits reports the configured numeral cap.
func (n *Normalizer) MaxDigits() int {
	return n.maxDigits
}

var defaultNormalizer = NewNormalizer(DefaultMaxDigits)

// NormalizeHeadline runs the default Normalizer.
func NormalizeHeadline(text string) string {
	return defaultNormalizer.Normalize(text)
}

// Normalize repairs encoding, collapses whitespace, spells decimals, then
// ordinals, then bare integers, and lowercases the result. The pass order
// matters: decimals must go before their halves are read as integers and
// ordinals before "21st" loses its digits to the integer pass.
// Normalize(Normalize(x)) == Normalize(x).
func (n *Normalizer) Normalize(text string) string {
	text = strings.ToValidUTF8(text, "")
	text = collapseSpace(text)
	if text == "" {
		return ""
	}

	text = n.decimal.ReplaceAllStringFunc(text, func(m string) string {
		sub := n.decimal.FindStringSubmatch(m)
		whole := strings.ReplaceAll(sub[1], ",", "")
		if v, ok := n.parse(whole); ok {
			return DecimalToWords(v, sub[2])
		}
		return spellDigits(whole) + " point " + spellDigits(sub[2])
	})

	text = n.ordinal.ReplaceAllStringFunc(text, func(m string) string {
		sub := n.ordinal.FindStringSubmatch(m)
		raw := strings.ReplaceAll(sub[1], ",", "")
		if v, ok := n.parse(raw); ok {
			return OrdinalToWords(v)
		}
		return ordinalize(spellDigits(raw))
	})

	text = n.integer.ReplaceAllStringFunc(text, func(m string) string {
		raw := strings.ReplaceAll(m, ",", "")
		if v, ok := n.parse(raw); ok {
			return NumberToWords(v)
		}
		return spellDigits(raw)
	})

	return strings.ToLower(collapseSpace(text))
}

// parse accepts digit strings within the configured cap.
func (n *Normalizer) parse(digits string) (int64, bool) {
	if len(digits) == 0 || len(digits) > n.maxDigits {
		return 0, false
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// collapseSpace folds every run of Unicode whitespace into one space and
// trims the ends.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
