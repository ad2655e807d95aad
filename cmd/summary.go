package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/tim/internal/reconcile"
	"github.com/Tiliavir/tim/internal/summary"
)

var (
	summaryFormat      string
	summaryFlushOpen   bool
	summaryNoReconcile bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary <start-days-ago> [end-days-ago]",
	Short: "Show how time was distributed over a range of days",
	Long: `Aggregates the days from start-days-ago to end-days-ago (default 0,
today). Each day is offered for tagging first unless --no-reconcile is set.

  tim summary 6        the last seven days
  tim summary 14 7     the week before last`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&summaryFormat, "format", "", "Output format: md, json, yaml (default from config)")
	summaryCmd.Flags().BoolVar(&summaryFlushOpen, "flush-open-runs", false, "Count runs still open at the end of a day")
	summaryCmd.Flags().BoolVar(&summaryNoReconcile, "no-reconcile", false, "Do not ask for tags before summarizing")
}

func runSummary(cmd *cobra.Command, args []string) error {
	start, end, err := parseRange(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	format := cfg.Summary.Format
	if cmd.Flags().Changed("format") {
		format = summaryFormat
	}
	opts := summary.Options{
		FlushOpenRuns: cfg.Summary.FlushOpenRuns,
		SkipReconcile: summaryNoReconcile,
	}
	if cmd.Flags().Changed("flush-open-runs") {
		opts.FlushOpenRuns = summaryFlushOpen
	}

	s := &summary.Summarizer{
		Base:    cfg.DataDir,
		Options: opts,
		Reconciler: &reconcile.Reconciler{
			Base:     cfg.DataDir,
			Prompter: terminal(),
			Out:      os.Stdout,
		},
	}
	report, err := s.Summarize(start, end)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := summary.Render(os.Stdout, report, format); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return nil
}
