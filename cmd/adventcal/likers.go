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

// NewLikersCmd creates the likers command.
func NewLikersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "likers <year>",
		Short: "Crawl the likers of every item for a year",
		Long: `Likers enumerates every advent calendar of the given year, crawls each
calendar's items, and walks the paginated likers sub-page of every item
hosted on the site itself. Items on foreign hosts or under private paths
are skipped without a single request.

A failure while crawling one item's likers drops just that item; the rest
of the run continues. The final summary reports how many items were
skipped this way.

Examples:
  # Crawl all likers of 2023
  adventcal likers 2023

  # Crawl one category's likers
  adventcal likers 2023 -c programming_language`,
		Args: cobra.ExactArgs(1),
		RunE: runLikersCmd,
	}

	addCrawlFlags(cmd)

	return cmd
}

// runLikersCmd executes the likers command.
func runLikersCmd(cmd *cobra.Command, args []string) error {
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

	return runLikers(ctx, cfg, logger)
}

// runLikers executes the likers crawl.
func runLikers(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	layout := export.Layout{Dir: cfg.OutputDir, Year: cfg.Year, Category: cfg.Category}

	likersOut, err := export.CreateTSVFile(layout.LikersPath(), model.LikerHeader())
	if err != nil {
		return err
	}

	c, err := newCrawler(cfg, logger)
	if err != nil {
		_ = likersOut.Close()
		return err
	}

	summary := &model.Summary{
		Kind:        model.KindLikers,
		Year:        cfg.Year,
		Category:    cfg.Category,
		StartedAt:   time.Now(),
		OutputFiles: []string{layout.LikersPath()},
	}

	crawlErr := c.CrawlLikers(ctx, cfg.Year, cfg.Category, func(index, total int, ref model.CalendarRef, likers []model.Liker) error {
		fmt.Printf("[%d/%d] %s\n", index+1, total, ref.ID)

		for _, liker := range likers {
			if err := likersOut.Write(liker.Record()); err != nil {
				return err
			}
		}

		summary.Likers += len(likers)
		return nil
	})

	summary.FinishedAt = time.Now()
	summary.RequestCount = c.RequestCount()
	summary.SkippedItems = c.SkippedItems()

	if err := likersOut.Close(); err != nil && crawlErr == nil {
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
