package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/adventcal/internal/config"
	"github.com/nao1215/adventcal/internal/crawler"
	"github.com/nao1215/adventcal/internal/database"
	"github.com/nao1215/adventcal/internal/model"
	"github.com/nao1215/adventcal/internal/report"
)

// durationDisplayPrecision is the rounding applied to displayed run
// durations.
const durationDisplayPrecision = time.Second

// addCrawlFlags registers the flags shared by the calendars and likers
// commands.
func addCrawlFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", config.DefaultOutputDir,
		"Output root directory for TSV files")
	cmd.Flags().StringP("category", "c", "",
		"Limit the crawl to one category (e.g. programming_language)")
	cmd.Flags().DurationP("delay", "d", config.DefaultDelay,
		"Politeness delay before every request")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-request timeout (0 = no timeout)")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent with every request")
	cmd.Flags().String("site", config.DefaultSite,
		"Base URL of the crawl target (mirrors and tests)")
	cmd.Flags().String("config", "",
		"Configuration file path (default: .adventcal in current or home directory)")
	cmd.Flags().String("history-dir", config.XDGDataDir(),
		"Directory for the run-history database (empty disables history)")

	// Run summary flags
	cmd.Flags().BoolP("json", "j", false,
		"Output the run summary as JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output the run summary as Markdown (mutually exclusive with --json)")
	cmd.Flags().String("report-file", "",
		"Write the run summary to a file instead of stdout")
}

// buildConfig creates a Config from cobra command flags and the optional
// config file. Precedence, lowest to highest: defaults, config file,
// flags the user actually set.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = configPath

	// Load the config file before flags so that explicitly set flags
	// override it. A missing file is only an error when the user named
	// it explicitly.
	foundPath := config.FindConfigFile(configPath)
	if foundPath != "" {
		file, err := config.LoadConfigFile(foundPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", foundPath, err)
		}
		file.ApplyTo(cfg)
	} else if configPath != "" {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	// The year is the single positional argument.
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("invalid year %q: must be an integer", args[0])
	}
	cfg.Year = year

	if cmd.Flags().Changed("output") {
		if cfg.OutputDir, err = cmd.Flags().GetString("output"); err != nil {
			return nil, err
		}
	}

	if cfg.Category, err = cmd.Flags().GetString("category"); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("delay") {
		if cfg.Delay, err = cmd.Flags().GetDuration("delay"); err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("timeout") {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("user-agent") {
		if cfg.UserAgent, err = cmd.Flags().GetString("user-agent"); err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("site") {
		if cfg.Site, err = cmd.Flags().GetString("site"); err != nil {
			return nil, err
		}
	}

	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("report-file"); err != nil {
		return nil, err
	}

	if cfg.HistoryDir, err = cmd.Flags().GetString("history-dir"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity setting.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	return slog.New(handler)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
// Cancellation is the only way to stop a crawl early; records already
// written stay on disk.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// newCrawler builds the crawl session from the config.
func newCrawler(cfg *config.Config, logger *slog.Logger) (*crawler.Crawler, error) {
	client := crawler.NewClient(
		crawler.WithDelay(cfg.Delay),
		crawler.WithTimeout(cfg.Timeout),
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithHeaders(cfg.Headers),
	)
	return crawler.NewCrawler(client, cfg.Site, logger)
}

// writeSummary renders the run summary in the configured format to
// stdout or to --report-file.
func writeSummary(cfg *config.Config, summary *model.Summary) error {
	var out io.Writer = os.Stdout
	if cfg.ReportFile != "" {
		if dir := filepath.Dir(cfg.ReportFile); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create report directory: %w", err)
			}
		}
		f, err := os.Create(cfg.ReportFile) //nolint:gosec // User-chosen report path is intentional
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer f.Close()
		out = f
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(out, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(out)
	default:
		w = report.NewTableWriter(out)
	}

	if _, err := w.Write(summary); err != nil {
		return fmt.Errorf("failed to write run summary: %w", err)
	}
	return nil
}

// saveHistory records the run summary in the history database.
// History failures are reported but never fail the crawl: the dataset on
// disk is the deliverable, the history row is bookkeeping.
func saveHistory(ctx context.Context, cfg *config.Config, summary *model.Summary, logger *slog.Logger) {
	if cfg.HistoryDir == "" {
		return
	}

	db, err := database.Open(cfg.HistoryDir, database.DefaultOptions())
	if err != nil {
		logger.Warn("failed to open history database", "dir", cfg.HistoryDir, "error", err)
		return
	}
	defer db.Close()

	if _, err := db.SaveRun(ctx, summary); err != nil {
		logger.Warn("failed to save run history", "error", err)
	}
}
