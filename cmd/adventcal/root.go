package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for adventcal.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adventcal",
		Short: "Crawler for Qiita Advent Calendar datasets",
		Long: `adventcal crawls Qiita Advent Calendar listing and detail pages and
exports the results as tab-delimited files: one file of calendars, one of
their daily items, and (with the likers command) one of per-item likers.

Requests are issued strictly sequentially with a politeness delay before
every fetch, so a full-year crawl takes a while by design.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCalendarsCmd())
	cmd.AddCommand(NewLikersCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
