package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("gematrix %v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestScoreCommand(t *testing.T) {
	scoreCiphers, scoreBreakdown = nil, ""
	out := execute(t, "score", "--cipher", "english_gematria,simple_gematria", "--breakdown", "simple_gematria", "abc")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if !strings.HasPrefix(lines[0], "english_gematria") || !strings.HasSuffix(lines[0], "36") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "simple_gematria") || !strings.HasSuffix(lines[1], "6") {
		t.Errorf("second line = %q", lines[1])
	}
	if !strings.Contains(out, "simple_gematria: 1 + 2 + 3 = 6") {
		t.Errorf("missing breakdown in %q", out)
	}
}

func TestNormalizeCommand(t *testing.T) {
	out := execute(t, "normalize", "--source", "Reuters", "Markets rally 3 percent | Reuters")
	if !strings.Contains(out, "clean:      Markets rally 3 percent") {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.Contains(out, "normalized: markets rally three percent") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestAddAndSearchCommands(t *testing.T) {
	dbPath = filepath.Join(t.TempDir(), "cli.db")
	t.Cleanup(func() { dbPath = "gematrix.db" })

	out := execute(t, "add", "computer")
	if !strings.Contains(out, `Stored "computer" (english_gematria=666)`) {
		t.Errorf("add output = %q", out)
	}
	execute(t, "add", "--tokens", "computer science")

	out = execute(t, "search", "computer")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 3 || !strings.HasPrefix(lines[1], "computer ") {
		t.Errorf("search output = %q", out)
	}
}

func TestParseCiphers(t *testing.T) {
	got, err := parseCiphers([]string{"jewish", " chaldean "})
	if err != nil || len(got) != 2 {
		t.Fatalf("parseCiphers = %v, %v", got, err)
	}
	if _, err := parseCiphers([]string{"nope"}); err == nil {
		t.Error("expected error for unknown cipher")
	}
}

func TestImportWordsDefaults(t *testing.T) {
	flag := importWordsCmd.Flags().Lookup("min-length")
	if flag == nil || flag.DefValue != "3" {
		t.Errorf("min-length default = %v, want 3", flag)
	}
}
