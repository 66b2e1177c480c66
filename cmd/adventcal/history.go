package main

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/nao1215/adventcal/internal/config"
	"github.com/nao1215/adventcal/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past crawl runs",
		Long: `History lists past crawl runs recorded in the run-history database,
newest first: what was crawled, how many records came out, and how many
requests it took.

Examples:
  # Show the 20 most recent runs
  adventcal history

  # Show everything
  adventcal history --limit 0`,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20,
		"Maximum number of runs to show (0 = all)")
	cmd.Flags().String("history-dir", config.XDGDataDir(),
		"Directory of the run-history database")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	historyDir, err := cmd.Flags().GetString("history-dir")
	if err != nil {
		return err
	}

	db, err := database.Open(historyDir, database.DefaultOptions())
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		cmd.Println("No crawl runs recorded yet.")
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"ID", "Kind", "Year", "Category", "Records", "Skipped", "Requests", "Started", "Duration"})

	for _, run := range runs {
		category := run.Category
		if category == "" {
			category = "-"
		}

		records := recordsLabel(run)

		t.AppendRow(table.Row{
			run.ID,
			run.Kind,
			run.Year,
			category,
			records,
			run.SkippedItems,
			run.RequestCount,
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			run.FinishedAt.Sub(run.StartedAt).Round(durationDisplayPrecision).String(),
		})
	}

	t.Render()
	return nil
}

// recordsLabel summarizes a run's record counts for the history table.
func recordsLabel(run database.Run) string {
	var parts []string
	if run.Calendars > 0 {
		parts = append(parts, strconv.Itoa(run.Calendars)+" calendars")
	}
	if run.Items > 0 {
		parts = append(parts, strconv.Itoa(run.Items)+" items")
	}
	if run.Likers > 0 {
		parts = append(parts, strconv.Itoa(run.Likers)+" likers")
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, ", ")
}
