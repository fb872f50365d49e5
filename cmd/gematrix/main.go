// Command gematrix scores phrases with the gematria ciphers, crawls news
// headlines into the phrase store and searches it.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cognicore/gematrix/pkg/gematrix/config"
	"github.com/cognicore/gematrix/pkg/gematrix/store"
	"github.com/cognicore/gematrix/pkg/gematrix/store/sqlite"
)

var (
	// Global flags
	verbose      bool
	dbPath       string
	configPath   string
	stoplistPath string
	timeout      time.Duration

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "gematrix",
	Short: "Gematria phrase engine and news headline crawler",
	Long: `gematrix computes gematria cipher values for phrases, stores them in a
SQLite phrase database, crawls news feeds for fresh headlines and finds
phrases that share values or wording with a query.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "gematrix.db", "SQLite database path")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (default: built-in settings)")
	rootCmd.PersistentFlags().StringVar(&stoplistPath, "stoplist", "", "YAML stoplist of words never stored from headlines")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Minute, "Operation timeout")

	rootCmd.AddCommand(crawlCmd, cleanCmd, importWordsCmd)
	rootCmd.AddCommand(scoreCmd, normalizeCmd, addCmd, matchesCmd, searchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// commandContext bounds a command by --timeout and cancels it on SIGINT or
// SIGTERM.
func commandContext() (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

func loadComponents() (*config.Components, error) {
	loader := config.Loader{ConfigPath: configPath, StoplistPath: stoplistPath}
	comp, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return comp, nil
}

func openStore(ctx context.Context) (store.Store, error) {
	st, err := sqlite.OpenSQLite(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dbPath, err)
	}
	logger.Debug("database opened", zap.String("path", dbPath))
	return st, nil
}
