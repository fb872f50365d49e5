// Package numwords spells integers, ordinals and decimals as English words
// and rewrites the numerals inside headlines.
package numwords

import (
	"strings"
)

var (
	units = [10]string{"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}
	teens = [10]string{"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen", "eighteen", "nineteen"}
	tens  = [10]string{"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}

	digitWords = [10]string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}
)

// Largest group first. Groups above billion extend the range to the full
// int64 domain instead of producing malformed counts.
var scales = []struct {
	value uint64
	label string
}{
	{1_000_000_000_000_000_000, "quintillion"},
	{1_000_000_000_000_000, "quadrillion"},
	{1_000_000_000_000, "trillion"},
	{1_000_000_000, "billion"},
	{1_000_000, "million"},
	{1_000, "thousand"},
}

var irregularOrdinals = map[string]string{
	"one":    "first",
	"two":    "second",
	"three":  "third",
	"five":   "fifth",
	"eight":  "eighth",
	"nine":   "ninth",
	"twelve": "twelfth",
}

// NumberToWords spells n in English: 0 is "zero", negatives are prefixed
// with "minus", compound tens are hyphenated ("twenty-one").
func NumberToWords(n int64) string {
	if n == 0 {
		return "zero"
	}
	if n < 0 {
		// uint64 conversion keeps math.MinInt64 exact.
		return "minus " + spellUnsigned(uint64(-(n+1))+1)
	}
	return spellUnsigned(uint64(n))
}

func spellUnsigned(n uint64) string {
	var parts []string
	for _, s := range scales {
		if n >= s.value {
			parts = append(parts, underThousand(n/s.value)+" "+s.label)
			n %= s.value
		}
	}
	if n > 0 {
		parts = append(parts, underThousand(n))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func underThousand(n uint64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, units[n/100]+" hundred")
		n %= 100
	}
	switch {
	case n >= 20:
		word := tens[n/10]
		if n%10 > 0 {
			word += "-" + units[n%10]
		}
		parts = append(parts, word)
	case n >= 10:
		parts = append(parts, teens[n-10])
	case n > 0:
		parts = append(parts, units[n])
	}
	return strings.Join(parts, " ")
}

// OrdinalToWords spells n as an ordinal by converting only the final word
// ("twenty-one" -> "twenty-first", "one hundred" -> "one hundredth").
func OrdinalToWords(n int64) string {
	return ordinalize(NumberToWords(n))
}

// ordinalize converts the last word of a spelled number to ordinal form.
func ordinalize(base string) string {
	if base == "" {
		return ""
	}
	words := strings.Split(base, " ")
	last := len(words) - 1
	words[last] = ordinalToken(words[last])
	return strings.Join(words, " ")
}

func ordinalToken(token string) string {
	pieces := strings.Split(token, "-")
	last := len(pieces) - 1
	word := pieces[last]

	if ord, ok := irregularOrdinals[word]; ok {
		word = ord
	} else if strings.HasSuffix(word, "y") {
		word = strings.TrimSuffix(word, "y") + "ieth"
	} else {
		word += "th"
	}
	pieces[last] = word
	return strings.Join(pieces, "-")
}

// DecimalToWords renders whole plus each fraction digit spoken on its own:
// (3, "14") -> "three point one four". Non-digits in the fraction read as zero.
func DecimalToWords(whole int64, fractionDigits string) string {
	return strings.TrimSpace(NumberToWords(whole) + " point " + spellDigits(fractionDigits))
}

// spellDigits reads every byte of s as a single digit word.
func spellDigits(s string) string {
	words := make([]string, 0, len(s))
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b >= '0' && b <= '9' {
			words = append(words, digitWords[b-'0'])
		} else {
			words = append(words, digitWords[0])
		}
	}
	return strings.Join(words, " ")
}
