package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/gematrix/pkg/gematrix"
	"github.com/cognicore/gematrix/pkg/gematrix/cipher"
	"github.com/cognicore/gematrix/pkg/gematrix/ingest"
)

var (
	importMinLength int
	importLimit     int
	importBatch     int

	scoreCiphers    []string
	scoreBreakdown  string
	normalizeSource string
	normalizeURL    string
	addTokens       bool
	matchesCiphers  []string
	matchesLimit    int
	searchLimit     int
)

var importWordsCmd = &cobra.Command{
	Use:   "import-words <file-or-url>",
	Short: "Bulk-load a newline separated wordlist as phrases",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportWords,
}

var scoreCmd = &cobra.Command{
	Use:   "score <text>",
	Short: "Print cipher values of text",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScore,
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize <headline>",
	Short: "Show how a raw headline is cleaned, filtered and normalized",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNormalize,
}

var addCmd = &cobra.Command{
	Use:   "add <phrase>",
	Short: "Store a phrase with its cipher values",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

var matchesCmd = &cobra.Command{
	Use:   "matches <text>",
	Short: "List stored phrases sharing cipher values with text",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMatches,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Rank stored phrases by word overlap and shared cipher values",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	importWordsCmd.Flags().IntVar(&importMinLength, "min-length", 3, "Minimum word length")
	importWordsCmd.Flags().IntVar(&importLimit, "limit", 0, "Stop after this many imported words (0 = all)")
	importWordsCmd.Flags().IntVar(&importBatch, "batch", ingest.DefaultImportBatch, "Rows per insert batch (100-2500)")

	scoreCmd.Flags().StringSliceVar(&scoreCiphers, "cipher", nil, "Only these ciphers (default: all)")
	scoreCmd.Flags().StringVar(&scoreBreakdown, "breakdown", "", "Show the per-letter breakdown for this cipher")

	normalizeCmd.Flags().StringVar(&normalizeSource, "source", "", "Source name whose suffix is stripped")
	normalizeCmd.Flags().StringVar(&normalizeURL, "url", "", "Item URL used to derive source names")

	addCmd.Flags().BoolVar(&addTokens, "tokens", false, "Also store each word of the phrase")

	matchesCmd.Flags().StringSliceVar(&matchesCiphers, "cipher", nil, "Ciphers to compare (default: primary set)")
	matchesCmd.Flags().IntVar(&matchesLimit, "limit", gematrix.DefaultMatches, "Max matches")

	searchCmd.Flags().IntVar(&searchLimit, "limit", gematrix.DefaultSearch, "Max results (5-50)")
}

func parseCiphers(names []string) ([]cipher.Cipher, error) {
	var out []cipher.Cipher
	for _, n := range names {
		c, ok := cipher.Parse(strings.TrimSpace(n))
		if !ok {
			return nil, fmt.Errorf("unknown cipher %q", n)
		}
		out = append(out, c)
	}
	return out, nil
}

func runImportWords(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	r, err := ingest.OpenWordlist(ctx, args[0], nil)
	if err != nil {
		return fmt.Errorf("open wordlist: %w", err)
	}
	defer r.Close()

	im := ingest.NewImporter(st, ingest.ImportOptions{
		MinLength: importMinLength,
		Limit:     importLimit,
		BatchSize: importBatch,
	}, logger)
	stats, err := im.Import(ctx, r)
	if err != nil {
		return err
	}

	logger.Info("import finished", zap.Int("processed", stats.Processed), zap.Int("imported", stats.Imported))
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d lines in %s\n", stats.Imported, stats.Processed, stats.Elapsed.Round(time.Millisecond))
	return nil
}

func runScore(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for name, value := range orderedScores(text, scoreCiphers) {
		fmt.Fprintf(w, "%s\t%d\n", name, value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if scoreBreakdown != "" {
		if _, ok := cipher.Parse(scoreBreakdown); !ok {
			return fmt.Errorf("unknown cipher %q", scoreBreakdown)
		}
		b := cipher.Breakdown(text, scoreBreakdown)
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s: %s = %d\n", b.Cipher, b.Expression, b.Total)
	}
	return nil
}

// orderedScores yields the requested cipher values in score order.
func orderedScores(text string, names []string) func(yield func(string, int) bool) {
	scores := cipher.Calculate(text, names...)
	return func(yield func(string, int) bool) {
		for _, name := range cipher.Names() {
			v, ok := scores[name]
			if !ok {
				continue
			}
			if !yield(name, v) {
				return
			}
		}
	}
}

func runNormalize(cmd *cobra.Command, args []string) error {
	comp, err := loadComponents()
	if err != nil {
		return err
	}
	raw := strings.Join(args, " ")
	h, reason := comp.Pipeline.Process(raw, normalizeSource, normalizeURL)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "clean:      %s\n", h.Display)
	if reason != ingest.Accepted {
		fmt.Fprintf(out, "rejected:   %s\n", reason)
		return nil
	}
	fmt.Fprintf(out, "normalized: %s\n", h.Normalized)
	fmt.Fprintf(out, "words:      %s\n", strings.Join(h.Words, ", "))
	fmt.Fprintf(out, "english:    %d\n", h.Scores.Get(cipher.EnglishGematria))
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	engine := gematrix.New(gematrix.Options{Store: st, Logger: logger})
	defer engine.Close()

	text := strings.Join(args, " ")
	if addTokens {
		p, added, err := engine.EnsurePhraseAndTokens(ctx, text)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %q (english_gematria=%d), new words: %s\n",
			p.Phrase, p.Scores.Get(cipher.EnglishGematria), strings.Join(added, ", "))
		return nil
	}

	p, created, err := engine.EnsurePhrase(ctx, text)
	if err != nil {
		return err
	}
	verb := "Updated"
	if created {
		verb = "Stored"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %q (english_gematria=%d)\n", verb, p.Phrase, p.Scores.Get(cipher.EnglishGematria))
	return nil
}

func runMatches(cmd *cobra.Command, args []string) error {
	selected, err := parseCiphers(matchesCiphers)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	engine := gematrix.New(gematrix.Options{Store: st, Logger: logger})
	defer engine.Close()

	matches, err := engine.Matches(ctx, strings.Join(args, " "), selected, matchesLimit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PHRASE\tCONFIDENCE\tHITS")
	for _, m := range matches {
		hits := make([]string, len(m.Hits))
		for i, c := range m.Hits {
			hits[i] = c.String()
		}
		fmt.Fprintf(w, "%s\t%.2f\t%s\n", m.Phrase.Phrase, m.Confidence, strings.Join(hits, ","))
	}
	return w.Flush()
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	engine := gematrix.New(gematrix.Options{Store: st, Logger: logger})
	defer engine.Close()

	results, err := engine.Search(ctx, strings.Join(args, " "), searchLimit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PHRASE\tHYBRID\tLEXICAL\tCIPHER\tSHARED")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%d\n", r.Phrase.Phrase, r.Total, r.Lexical, r.Cipher, r.Shared)
	}
	return w.Flush()
}
