package headline

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Host labels that never name the publisher.
var ignoredHostLabels = map[string]struct{}{
	"www":    {},
	"m":      {},
	"mobile": {},
	"news":   {},
	"feeds":  {},
}

// SuffixCandidates lists the lowercase publisher names a headline may end
// with, in match priority order: the registered source name (with and
// without a TLD-looking tail), then names derived from the item URL host,
// then every candidate with a leading "the" toggled.
func SuffixCandidates(sourceName, itemURL string) []string {
	var candidates []string
	seen := make(map[string]struct{})
	add := func(v string) {
		v = collapseSpace(strings.ToLower(v))
		if utf8.RuneCountInString(v) < 2 {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		candidates = append(candidates, v)
	}

	if strings.TrimSpace(sourceName) != "" {
		add(normalizeSourceToken(sourceName))
		bare := tldSuffixRe.ReplaceAllString(strings.TrimSpace(html.UnescapeString(sourceName)), "")
		add(normalizeSourceToken(bare))
	}

	for _, name := range hostNames(itemURL) {
		add(name)
	}

	for _, c := range append([]string(nil), candidates...) {
		if rest, ok := strings.CutPrefix(c, "the "); ok {
			add(rest)
		} else {
			add("the " + c)
		}
	}

	return candidates
}

// hostNames derives publisher names from the URL host: the label before
// the TLD alone, and all remaining labels joined.
func hostNames(itemURL string) []string {
	if strings.TrimSpace(itemURL) == "" {
		return nil
	}
	u, err := url.Parse(strings.TrimSpace(itemURL))
	if err != nil {
		return nil
	}
	host := strings.ToLower(strings.TrimSpace(u.Hostname()))
	if host == "" {
		return nil
	}

	var labels []string
	for _, part := range strings.Split(host, ".") {
		if part == "" {
			continue
		}
		if _, skip := ignoredHostLabels[part]; skip {
			continue
		}
		labels = append(labels, part)
	}
	if len(labels) < 2 {
		return nil
	}
	withoutTLD := labels[:len(labels)-1]
	return []string{
		normalizeSourceToken(withoutTLD[len(withoutTLD)-1]),
		normalizeSourceToken(strings.Join(withoutTLD, " ")),
	}
}

// normalizeSourceToken lowercases a publisher name and turns punctuation
// other than "&" into single spaces.
func normalizeSourceToken(v string) string {
	v = strings.ToLower(html.UnescapeString(v))
	v = sourceTokenClean.ReplaceAllString(v, " ")
	return collapseSpace(v)
}

// regexpSpace is the set matched by \s in RE2.
const regexpSpace = "\t\n\f\r "

// cutAttribution removes a trailing "<space><sep><space>candidate" from s,
// where sep is one of - | — : and candidate matches case-insensitively.
func cutAttribution(s, candidate string) (string, bool) {
	i := len(s) - len(candidate)
	if i <= 0 || !strings.EqualFold(s[i:], candidate) {
		return s, false
	}
	rest := strings.TrimRight(s[:i], regexpSpace)
	if len(rest) == i {
		return s, false
	}
	sep, size := utf8.DecodeLastRuneInString(rest)
	if !strings.ContainsRune("-|—:", sep) {
		return s, false
	}
	rest = rest[:len(rest)-size]
	head := strings.TrimRight(rest, regexpSpace)
	if len(head) == len(rest) {
		return s, false
	}
	return head, true
}

// stripSourceSuffix removes the first candidate found as a trailing
// attribution and reports whether anything was removed.
func stripSourceSuffix(s string, candidates []string) (string, bool) {
	for _, c := range candidates {
		if head, ok := cutAttribution(s, c); ok {
			return head, true
		}
	}
	return s, false
}

// HasSourceSuffix reports whether headline ends with an attribution to the
// given source or to the publisher named by itemURL.
func HasSourceSuffix(headline, sourceName, itemURL string) bool {
	for _, c := range SuffixCandidates(sourceName, itemURL) {
		if _, ok := cutAttribution(headline, c); ok {
			return true
		}
	}
	return false
}
