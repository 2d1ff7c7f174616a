// Command treecached runs the conversation tree cache and dispatcher as a
// standalone CLI: each subcommand resolves an action and prints its result
// as JSON on stdout, after the common setup (config load, store/oracle/cache
// wiring) runs once in the root command's PersistentPreRunE.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagan-labs/treecache/internal/cache"
	"github.com/sagan-labs/treecache/internal/config"
	"github.com/sagan-labs/treecache/internal/dispatcher"
)

var (
	configPath string
	cfg        config.Config
	disp       *dispatcher.Dispatcher
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "treecached",
	Short: "Conversation tree cache and dispatcher service",
	Long: `treecached maintains, per conversation thread, a bounded in-memory
cache of the message tree and its rolling summaries, backed by a durable
store and a pluggable language oracle for topic-shift detection and
summarization.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func setup(cmd *cobra.Command, args []string) error {
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

	loaded, err := config.Load(configPath)
	switch {
	case err == nil:
		cfg = loaded
	case configPath == "" && errors.Is(err, config.ErrConfigNotFound):
		cfg = config.Default()
	default:
		return fmt.Errorf("loading config: %w", err)
	}

	st, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	oc, err := buildOracle(cfg.Oracle, logger)
	if err != nil {
		return fmt.Errorf("building oracle: %w", err)
	}

	c := cache.New(st, cfg.CacheCapacity, logger)
	disp = dispatcher.New(st, c, oc, logger)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to treecached.yaml (defaults to the standard search locations)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
