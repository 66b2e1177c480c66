package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/adventcal/internal/config"
	"github.com/nao1215/adventcal/internal/export"
	"github.com/nao1215/adventcal/internal/model"
)

// NewCalendarsCmd creates the calendars command.
func NewCalendarsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendars <year>",
		Short: "Crawl all calendars and items for a year",
		Long: `Calendars enumerates every advent calendar of the given year, crawls
each calendar's detail page, and writes two TSV files: one row per
calendar and one row per daily item.

Rows are streamed to disk as each calendar is crawled, so an aborted run
keeps everything crawled before the failure.

Examples:
  # Crawl the whole year 2023
  adventcal calendars 2023

  # Crawl only one category
  adventcal calendars 2023 -c programming_language

  # Write output under a custom directory
  adventcal calendars 2023 -o /data/adventcal

  # Emit the run summary as JSON
  adventcal calendars 2023 --json`,
		Args: cobra.ExactArgs(1),
		RunE: runCalendarsCmd,
	}

	addCrawlFlags(cmd)

	return cmd
}

// runCalendarsCmd executes the calendars command.
func runCalendarsCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runCalendars(ctx, cfg, logger)
}

// runCalendars executes the calendars crawl.
func runCalendars(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	layout := export.Layout{Dir: cfg.OutputDir, Year: cfg.Year, Category: cfg.Category}

	calendarsOut, err := export.CreateTSVFile(layout.CalendarsPath(), model.CalendarHeader())
	if err != nil {
		return err
	}
	itemsOut, err := export.CreateTSVFile(layout.ItemsPath(), model.ItemHeader())
	if err != nil {
		_ = calendarsOut.Close()
		return err
	}

	c, err := newCrawler(cfg, logger)
	if err != nil {
		_ = calendarsOut.Close()
		_ = itemsOut.Close()
		return err
	}

	summary := &model.Summary{
		Kind:        model.KindCalendars,
		Year:        cfg.Year,
		Category:    cfg.Category,
		StartedAt:   time.Now(),
		OutputFiles: []string{layout.CalendarsPath(), layout.ItemsPath()},
	}

	crawlErr := c.CrawlCalendars(ctx, cfg.Year, cfg.Category, func(index, total int, calendar model.Calendar, items []model.Item) error {
		fmt.Printf("[%d/%d] %s\n", index+1, total, calendar.CalendarID)

		if err := calendarsOut.Write(calendar.Record()); err != nil {
			return err
		}
		for _, item := range items {
			if err := itemsOut.Write(item.Record()); err != nil {
				return err
			}
		}

		summary.Calendars++
		summary.Items += len(items)
		return nil
	})

	summary.FinishedAt = time.Now()
	summary.RequestCount = c.RequestCount()

	// Close flushes buffered rows; on abort the already-written rows
	// stay on disk, which is the documented partial-output behavior.
	if err := calendarsOut.Close(); err != nil && crawlErr == nil {
		crawlErr = err
	}
	if err := itemsOut.Close(); err != nil && crawlErr == nil {
		crawlErr = err
	}

	if crawlErr != nil {
		return crawlErr
	}

	if err := writeSummary(cfg, summary); err != nil {
		return err
	}
	saveHistory(ctx, cfg, summary, logger)

	return nil
}
