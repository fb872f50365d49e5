package headline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		source string
		url    string
		want   string
	}{
		{
			name:   "source name with leading the",
			raw:    "High Court Begins Hearing - The Times of Israel",
			source: "Times of Israel",
			url:    "https://www.timesofisrael.com/x",
			want:   "High Court Begins Hearing",
		},
		{
			name: "bare domain suffix",
			raw:  "Stocks slide on rate fears - bloomberg.com",
			want: "Stocks slide on rate fears",
		},
		{
			name:   "pipe separator",
			raw:    "Markets rally | Reuters",
			source: "Reuters",
			want:   "Markets rally",
		},
		{
			name:   "em dash and entity",
			raw:    "Apple&#39;s new phone — The Verge",
			source: "The Verge",
			want:   "Apple's new phone",
		},
		{
			name: "host derived name",
			raw:  "Rates hold steady - Theguardian",
			url:  "https://www.theguardian.com/business/x",
			want: "Rates hold steady",
		},
		{
			name:   "only first suffix removed",
			raw:    "Update - Reuters - Reuters",
			source: "Reuters",
			want:   "Update - Reuters",
		},
		{
			name:   "unrelated suffix kept",
			raw:    "Peace talks resume - Officials",
			source: "Reuters",
			want:   "Peace talks resume - Officials",
		},
		{
			name: "mojibake apostrophe",
			raw:  "Itâ€™s raining",
			want: "It's raining",
		},
		{
			name: "empty",
			raw:  "",
			want: "",
		},
		{
			name: "whitespace only",
			raw:  " \t\n",
			want: "",
		},
		{
			name: "edge punctuation trimmed",
			raw:  "| Breaking: storm hits coast -",
			want: "Breaking: storm hits coast",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.raw, tt.source, tt.url); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRepairSteps(t *testing.T) {
	tests := []struct {
		name string
		step func(string) string
		in   string
		want string
	}{
		{"entities", decodeEntities, "Tom &amp; Jerry &quot;live&quot;", `Tom & Jerry "live"`},
		{"mojibake quotes", repairMojibake, "â€œHiâ€\u009d", `"Hi"`},
		{"mojibake ellipsis", repairMojibake, "Wait\u00e2\u20ac\u00a6", "Wait..."},
		{"mojibake accent", repairMojibake, "CafÃ©", "Café"},
		{"mojibake euro", repairMojibake, "â‚¬5", "EUR5"},
		{"mojibake stray A circumflex", repairMojibake, "100Â km", "100 km"},
		{"euro contraction", repairEuroContractions, "DonâEURt panic", "Don't panic"},
		{"euro contraction plural", repairEuroContractions, "BidenâEURs plan", "Biden's plan"},
		{"euro quote", repairEuroContractions, "âEURoeYes", `"Yes`},
		{"no marker untouched", repairEuroContractions, "EUR 5 million", "EUR 5 million"},
		{"cp1252 stray bytes", repairCP1252Controls, "Smart \x93quotes\x94", `Smart "quotes"`},
		{"cp1252 c1 code point", repairCP1252Controls, "Don\u0092t", "Don't"},
		{"valid curly quotes kept", repairCP1252Controls, "“quoted”", "“quoted”"},
		{"undefined cp1252 byte kept", repairCP1252Controls, "a\x81b", "a\x81b"},
		{"latin1 byte decoded", repairEncoding, "Caf\xe9 opens", "Café opens"},
		{"valid utf8 untouched", repairEncoding, "naïve", "naïve"},
		{"trademark", stripTrademark, "Acme( TM ) launches", "Acme launches"},
		{"control", stripControl, "Line\x07bell\tok", "Line bell\tok"},
		{"dangling quote", repairDanglingQuote, `Officials warn " storms ahead`, "Officials warn - storms ahead"},
		{"balanced quotes", repairDanglingQuote, `He said " yes " today`, `He said " yes " today`},
		{"collapse", collapseSpace, "  a \n b  ", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.step(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRepairPipeline(t *testing.T) {
	if got := Repair("Acmeâ„¢ launches"); got != "Acme launches" {
		t.Errorf("trademark mojibake = %q", got)
	}
	if got := Repair("Caf\xe9 \x93open\x94"); got != "Café \"open\"" {
		t.Errorf("mixed encoding = %q", got)
	}

	var names []string
	for _, s := range Steps() {
		names = append(names, s.Name)
	}
	want := []string{
		"decode-entities",
		"repair-mojibake",
		"repair-euro-contractions",
		"repair-cp1252-controls",
		"repair-encoding",
		"strip-trademark",
		"strip-control",
		"repair-dangling-quote",
		"collapse-space",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("step order mismatch (-want +got):\n%s", diff)
	}
}

func TestSuffixCandidates(t *testing.T) {
	got := SuffixCandidates("The Verge", "https://www.theverge.com/a")
	want := []string{"the verge", "theverge", "verge", "the theverge"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}

	got = SuffixCandidates("Axios.com", "")
	want = []string{"axios com", "axios", "the axios com", "the axios"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tld candidates mismatch (-want +got):\n%s", diff)
	}

	got = SuffixCandidates("", "https://m.news.example.co/item")
	want = []string{"example", "the example"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("host candidates mismatch (-want +got):\n%s", diff)
	}

	if got := SuffixCandidates("", ""); len(got) != 0 {
		t.Errorf("expected no candidates, got %v", got)
	}
	if got := SuffixCandidates("X", "not a url"); len(got) != 0 {
		t.Errorf("short names should be dropped, got %v", got)
	}
}

func TestHasSourceSuffix(t *testing.T) {
	if !HasSourceSuffix("Markets rally | Reuters", "Reuters", "") {
		t.Error("expected suffix match")
	}
	if HasSourceSuffix("Markets rally", "Reuters", "") {
		t.Error("unexpected suffix match")
	}
}

func TestCutAttribution(t *testing.T) {
	tests := []struct {
		in, candidate string
		want          string
		ok            bool
	}{
		{"Markets rally | Reuters", "reuters", "Markets rally", true},
		{"MARKETS RALLY - REUTERS", "reuters", "MARKETS RALLY", true},
		{"Markets rally \t—  reuters", "reuters", "Markets rally", true},
		{"Markets rally: Reuters", "reuters", "Markets rally: Reuters", false},
		{"Markets rally -Reuters", "reuters", "Markets rally -Reuters", false},
		{"Markets rally Reuters", "reuters", "Markets rally Reuters", false},
		{"Update by nonreuters", "reuters", "Update by nonreuters", false},
		{"reuters", "reuters", "reuters", false},
		{" - Reuters", "reuters", "", true},
	}
	for _, tt := range tests {
		got, ok := cutAttribution(tt.in, tt.candidate)
		if got != tt.want || ok != tt.ok {
			t.Errorf("cutAttribution(%q, %q) = %q, %v; want %q, %v", tt.in, tt.candidate, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsLikelyEnglishThresholds(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"exactly six latin letters", "Abcdef", true},
		{"five latin letters", "Ab cde", false},
		{"ratio exactly 0.7", "abcdefg жзи", true},
		{"ratio just under 0.7", "abcdefg жзий", false},
		{"digits and punctuation ignored", "Abc 123 def!", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLikelyEnglish(tt.in); got != tt.want {
				t.Errorf("IsLikelyEnglish(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsLikelyEnglish(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Markets rally on strong earnings", true},
		{"Hi you", false},
		{"", false},
		{"12345 67890", false},
		{"Россия и Китай подписали соглашение Moscow", false},
		{"Café owners protest new rules", true},
	}
	for _, tt := range tests {
		if got := IsLikelyEnglish(tt.in); got != tt.want {
			t.Errorf("IsLikelyEnglish(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestContainsMojibakeMarkers(t *testing.T) {
	if !ContainsMojibakeMarkers("Itâs broken") {
		t.Error("expected marker")
	}
	if ContainsMojibakeMarkers("Clean headline") {
		t.Error("unexpected marker")
	}
}

func TestKey(t *testing.T) {
	if got := Key("  Markets  RALLY\ttoday "); got != "markets rally today" {
		t.Errorf("Key = %q", got)
	}
}
