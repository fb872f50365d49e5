package headline

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
)

// mojibakePairs are UTF-8 sequences that were decoded as CP1252/Latin-1
// and re-encoded, mapped back to the intended text.
var mojibakePairs = [][2]string{
	{"\u00e2\u20ac\u2122", "'"},
	{"\u00e2\u20ac\u02dc", "'"},
	{"\u00e2\u20ac\u0153", `"`},
	{"\u00e2\u20ac\u009d", `"`},
	{"\u00e2\u20ac\"", "-"},
	{"\u00e2\u20ac\u201c", "-"},
	{"\u00e2\u20ac\u201d", "-"},
	{"\u00e2\u20ac\u00a6", "..."},
	{"\u00e2\u201e\u00a2", "(TM)"},
	{"\u00e2\u201a\u00ac", "EUR"},
	{"\u00c3\u00a1", "\u00e1"},
	{"\u00c3\u00a9", "\u00e9"},
	{"\u00c3\u00a8", "\u00e8"},
	{"\u00c3\u00ad", "\u00ed"},
	{"\u00c3\u00b3", "\u00f3"},
	{"\u00c3\u00b6", "\u00f6"},
	{"\u00c3\u00ba", "\u00fa"},
	{"\u00c3\u00bc", "\u00fc"},
	{"\u00c3\u00b1", "\u00f1"},
	{"\u00e3\u00a1", "\u00e1"},
	{"\u00e3\u00a9", "\u00e9"},
	{"\u00e3\u00a8", "\u00e8"},
	{"\u00e3\u00ad", "\u00ed"},
	{"\u00e3\u00b3", "\u00f3"},
	{"\u00e3\u00b6", "\u00f6"},
	{"\u00e3\u00ba", "\u00fa"},
	{"\u00e3\u00bc", "\u00fc"},
	{"\u00e3\u00b1", "\u00f1"},
	{"\u00c2", ""},
	{"\u00e2eur", `"`},
	{"\u00e2,\u00ac", "EUR"},
}

// mojibakeReplacer tries longer sequences first at every position.
var mojibakeReplacer = longestFirstReplacer(mojibakePairs)

func longestFirstReplacer(pairs [][2]string) *strings.Replacer {
	sorted := make([][2]string, len(pairs))
	copy(sorted, pairs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i][0]) > len(sorted[j][0])
	})
	args := make([]string, 0, len(sorted)*2)
	for _, p := range sorted {
		args = append(args, p[0], p[1])
	}
	return strings.NewReplacer(args...)
}

// A second lossy pass turns "â€" into "âEUR" in front of contractions.
var euroContractions = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?i)\x{e2}EURs`), "'s"},
	{regexp.MustCompile(`(?i)\x{e2}EURt`), "'t"},
	{regexp.MustCompile(`(?i)\x{e2}EURre`), "'re"},
	{regexp.MustCompile(`(?i)\x{e2}EURve`), "'ve"},
	{regexp.MustCompile(`(?i)\x{e2}EURm`), "'m"},
	{regexp.MustCompile(`(?i)\x{e2}EURll`), "'ll"},
	{regexp.MustCompile(`(?i)\x{e2}EURd`), "'d"},
	{regexp.MustCompile(`\x{e2}EUR-`), "-"},
	{regexp.MustCompile(`(?i)\x{e2}EURoe`), `"`},
	{regexp.MustCompile(`(?i)\x{e2}EUR`), `"`},
}

// cp1252Controls maps the CP1252 printable characters of 0x80..0x9F to
// ASCII stand-ins. 0x81, 0x8D, 0x8F, 0x90 and 0x9D are undefined.
var cp1252Controls = map[byte]string{
	0x80: "EUR",
	0x82: ",",
	0x83: "f",
	0x84: ",,",
	0x85: "...",
	0x86: "+",
	0x87: "+",
	0x88: "^",
	0x89: "%",
	0x8A: "S",
	0x8B: "<",
	0x8C: "OE",
	0x8E: "Z",
	0x91: "'",
	0x92: "'",
	0x93: `"`,
	0x94: `"`,
	0x95: "*",
	0x96: "-",
	0x97: "-",
	0x98: "",
	0x99: "(TM)",
	0x9A: "s",
	0x9B: ">",
	0x9C: "oe",
	0x9E: "z",
	0x9F: "Y",
}

var (
	trademarkRe      = regexp.MustCompile(`(?i)\(\s*tm\s*\)`)
	danglingQuoteRe  = regexp.MustCompile(`(?i)"\s+([a-z][^"]*)$`)
	domainSuffixRe   = regexp.MustCompile(`(?i)\s+[-|—:]\s+((?:www\.)?(?:[a-z0-9-]+\.)+[a-z]{2,})$`)
	sourceTokenClean = regexp.MustCompile(`[^\p{L}\p{N}\s&]+`)
	tldSuffixRe      = regexp.MustCompile(`(?i)\.[a-z]{2,}$`)
)

func decodeEntities(s string) string {
	return html.UnescapeString(s)
}

func repairMojibake(s string) string {
	return mojibakeReplacer.Replace(s)
}

func repairEuroContractions(s string) string {
	if !strings.ContainsAny(s, "âÂ") {
		return s
	}
	for _, c := range euroContractions {
		s = c.re.ReplaceAllString(s, c.repl)
	}
	return s
}

// repairCP1252Controls rewrites CP1252 punctuation that arrived either as
// stray single bytes or as C1 control code points (U+0080..U+009F).
// Bytes inside valid multi-byte sequences are never touched.
func repairCP1252Controls(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1 && s[i] >= 0x80 && s[i] <= 0x9F:
			if repl, ok := cp1252Controls[s[i]]; ok {
				b.WriteString(repl)
			} else {
				b.WriteByte(s[i])
			}
		case r >= 0x80 && r <= 0x9F:
			if repl, ok := cp1252Controls[byte(r)]; ok {
				b.WriteString(repl)
			} else {
				b.WriteRune(r)
			}
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// repairEncoding forces valid UTF-8 by reading each remaining invalid
// byte as Windows-1252.
func repairEncoding(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	dec := charmap.Windows1252
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			if cr := dec.DecodeByte(s[i]); cr != utf8.RuneError {
				b.WriteRune(cr)
			}
			i++
			continue
		}
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

func stripTrademark(s string) string {
	return trademarkRe.ReplaceAllString(s, "")
}

// stripControl replaces format/control/private-use runes with a space,
// keeping tab, newline and carriage return.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		if unicode.In(r, unicode.C) {
			return ' '
		}
		return r
	}, s)
}

// repairDanglingQuote turns an unmatched `" words` tail into `- words`.
func repairDanglingQuote(s string) string {
	if strings.Count(s, `"`)%2 == 0 {
		return s
	}
	return danglingQuoteRe.ReplaceAllString(s, "- ${1}")
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
