// Package headline cleans raw news headlines before they are normalized
// and scored: encoding repair, source-suffix stripping and the admission
// filters that decide whether a headline is stored at all.
package headline

import "strings"

// Step is one named repair applied by Sanitize.
type Step struct {
	Name  string
	Apply func(string) string
}

// repairSteps run in order; each assumes the earlier ones already ran.
// Entities are decoded first so encoded mojibake is visible, and byte
// level repairs precede the control-character sweep.
var repairSteps = []Step{
	{"decode-entities", decodeEntities},
	{"repair-mojibake", repairMojibake},
	{"repair-euro-contractions", repairEuroContractions},
	{"repair-cp1252-controls", repairCP1252Controls},
	{"repair-encoding", repairEncoding},
	{"strip-trademark", stripTrademark},
	{"strip-control", stripControl},
	{"repair-dangling-quote", repairDanglingQuote},
	{"collapse-space", collapseSpace},
}

// Steps returns the repair pipeline in execution order.
func Steps() []Step {
	out := make([]Step, len(repairSteps))
	copy(out, repairSteps)
	return out
}

// Repair runs only the encoding and punctuation repairs, without
// touching source suffixes.
func Repair(raw string) string {
	s := raw
	for _, step := range repairSteps {
		s = step.Apply(s)
	}
	return s
}

const edgeCutset = " \t\n\r\x00\x0B-—|:"

// Sanitize repairs raw and removes a trailing source attribution such as
// " - bloomberg.com", " | Reuters" or " — The Times of Israel". The source
// name and item URL are optional; pass "" when absent. Only the first
// matching source suffix is removed.
func Sanitize(raw, sourceName, itemURL string) string {
	s := Repair(raw)
	if s == "" {
		return ""
	}

	s = domainSuffixRe.ReplaceAllString(s, "")
	s, _ = stripSourceSuffix(s, SuffixCandidates(sourceName, itemURL))

	return strings.Trim(s, edgeCutset)
}
