package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/config"
	"github.com/docsift/docsift/internal/logging"
	"github.com/docsift/docsift/pkg/fetcher"
	"github.com/docsift/docsift/pkg/scraper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgFile     string
	outputPath  string
	timeout     time.Duration
	userAgent   string
	contentOnly bool
	logLevel    string
	logDir      string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "docsift [URL]",
	Short: "Harvest the text of every page linked from a URL",
	Long: `DocSift fetches a seed page, follows every hyperlink on it one level
deep, strips scripts and styling from each linked page, and writes the
extracted plain text of every page to a single file alongside its URL.

A link that fails to fetch is reported and skipped; the run carries on.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Flags override the config file and environment.
		if cmd.Flags().Changed("output") {
			cfg.Scraper.Output = outputPath
		}
		if cmd.Flags().Changed("timeout") {
			cfg.Fetcher.Timeout = timeout
		}
		if cmd.Flags().Changed("user-agent") {
			cfg.Fetcher.UserAgent = userAgent
		}
		if cmd.Flags().Changed("content-only") {
			cfg.Scraper.ContentOnly = contentOnly
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		if logDir != "" {
			cfg.Logging.LogDir = logDir
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err := logging.New(cfg.Logging)
		if err != nil {
			return err
		}

		seedURL := args[0]
		absPath, err := filepath.Abs(cfg.Scraper.Output)
		if err != nil {
			return fmt.Errorf("failed to resolve output path: %w", err)
		}

		fmt.Printf("Starting to scrape %s\n", seedURL)
		fmt.Printf("Output will be saved to %s\n", cfg.Scraper.Output)
		fmt.Printf("\nFile URI: file://%s\n", absPath)

		s, err := scraper.New(seedURL, scraper.Options{
			OutputPath:  cfg.Scraper.Output,
			ContentOnly: cfg.Scraper.ContentOnly,
			Fetcher: fetcher.Config{
				Timeout:   cfg.Fetcher.Timeout,
				UserAgent: cfg.Fetcher.UserAgent,
			},
			Console: os.Stdout,
			Logger:  logger,
		})
		if err != nil {
			return err
		}

		// Ctrl+C aborts the current fetch and ends the run.
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		summary, err := s.Run(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("\nDone. %d links found, %d scraped, %d failed in %s\n",
			summary.LinksFound, summary.Scraped, summary.Failed,
			summary.Duration.Round(time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "documentation.txt", "Output file path")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "Per-request timeout")
	rootCmd.Flags().StringVar(&userAgent, "user-agent", "", "User agent override")
	rootCmd.Flags().BoolVar(&contentOnly, "content-only", false, "Extract main content only (drops navigation and boilerplate)")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Directory for rotating log files (console only when unset)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "An error occurred: %v\n", err)
		os.Exit(1)
	}
}
