package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/gematrix/internal/rss"
	"github.com/cognicore/gematrix/pkg/gematrix/config"
	"github.com/cognicore/gematrix/pkg/gematrix/crawler"
	"github.com/cognicore/gematrix/pkg/gematrix/store"
)

const defaultCleanLimit = 5000

var (
	crawlLimit   int
	crawlSources []int64

	cleanLimit int
	cleanAll   bool
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Fetch news feeds and store their headlines as phrases",
	Long: `Fetches every enabled news source (or only --source ids), cleans each
headline, and stores it together with its normalized phrase and single
words. The per-source limit is clamped to [10, 500].`,
	Args: cobra.NoArgs,
	RunE: runCrawl,
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Re-apply headline cleaning rules to stored headlines",
	Long: `Re-sanitizes stored headlines in id order. Headlines that no longer pass
the filters, or collide with another headline after cleaning, are deleted;
changed headlines are rescored and their phrases synced.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	crawlCmd.Flags().IntVar(&crawlLimit, "limit", 80, "Max items per source")
	crawlCmd.Flags().Int64SliceVar(&crawlSources, "source", nil, "Only crawl these source ids")

	cleanCmd.Flags().IntVar(&cleanLimit, "limit", defaultCleanLimit, "Max headlines to examine")
	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "Examine every stored headline")
}

func newCrawler(st store.Store) (*crawler.Service, error) {
	comp, err := loadComponents()
	if err != nil {
		return nil, err
	}
	cc := comp.Config.Crawler
	fetcher := rss.NewFetcher(rss.Options{
		UserAgent:    cc.UserAgent,
		Timeout:      cc.Timeout,
		Retries:      cc.Retries,
		RetryBackoff: cc.RetryBackoff,
		Logger:       logger,
	})
	return crawler.New(crawler.Options{
		Store:    st,
		Pipeline: comp.Pipeline,
		Fetcher:  fetcher,
		Config:   comp.Config,
		Logger:   logger,
	})
}

func runCrawl(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	svc, err := newCrawler(st)
	if err != nil {
		return err
	}

	limit := config.ClampCrawlLimit(crawlLimit)
	logger.Info("starting crawl", zap.Int("limit_per_source", limit), zap.Int64s("sources", crawlSources))
	run, err := svc.Run(ctx, crawlSources, limit)
	if err != nil {
		return fmt.Errorf("crawl run %s: %w", run.ID, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Run %s %s: processed=%d inserted=%d phrases_synced=%d single_words_synced=%d\n",
		run.ID, run.Status, run.Processed, run.Inserted, run.Meta.PhrasesSynced, run.Meta.SingleWordsSynced)
	return nil
}

func runClean(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	svc, err := newCrawler(st)
	if err != nil {
		return err
	}

	limit := max(1, cleanLimit)
	if cleanAll {
		limit = 0
	}
	res, err := svc.Cleanup(ctx, limit)
	if err != nil {
		return fmt.Errorf("cleanup: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "processed=%d updated=%d deduped=%d phrases_synced=%d words_synced=%d\n",
		res.Processed, res.Updated, res.Deduped, res.PhrasesSynced, res.WordsSynced)
	return nil
}
