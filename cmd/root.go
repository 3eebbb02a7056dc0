// Package cmd contains the newsbias CLI commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"newsbias/config"
	"newsbias/di"
	"newsbias/utils/logger"
	"newsbias/utils/output"
)

var (
	logLevel  string
	colorFlag string
	cfg       *config.Config
	log       *slog.Logger
	printer   *output.Printer
	version   = "dev"

	// swapped in tests
	loadConfig   = config.NewConfig
	newContainer = di.NewApplicationComponents
)

var rootCmd = &cobra.Command{
	Use:   "newsbias",
	Short: "News bias dashboard",
	Long: `newsbias picks recent political articles from a news source, fetches
their text, and asks a language model for a summary, a bias analysis and a
devil's advocate reading.

Example usage:
  newsbias serve                 # Start the web dashboard and JSON API
  newsbias sources               # List configured news sources
  newsbias articles cnn          # Show the selected articles for CNN
  newsbias analyze "Fox News"    # Run the full analysis in the terminal`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto", "color output: auto, always, never")
}

func initConfig(cmd *cobra.Command) error {
	var err error
	cfg, err = loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	mode, err := output.ParseColorMode(colorFlag)
	if err != nil {
		return err
	}
	printer = output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ResolveColors(mode))

	// CLI 実行時のログは stderr へ出し、表示結果と混ざらないようにする
	log = logger.New(logger.Options{
		Level:   cfg.Logging.Level,
		Format:  "text",
		Output:  os.Stderr,
		Secrets: []string{cfg.NewsAPIKey, cfg.GeminiAPIKey},
	})
	log.Debug("configuration loaded",
		"search_provider", cfg.Search.Provider,
		"cache_backend", cfg.Cache.Backend,
		"sources", len(cfg.Sources))

	return nil
}

// buildContainer wires the application for one-shot commands.
func buildContainer() (*di.ApplicationComponents, error) {
	container, err := newContainer(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("building application: %w", err)
	}
	return container, nil
}
