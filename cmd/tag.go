package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/tim/internal/reconcile"
	"github.com/Tiliavir/tim/internal/timecalc"
)

var tagAll bool

var tagCmd = &cobra.Command{
	Use:   "tag [days-ago]",
	Short: "Tag the events of a day and close it if needed",
	Long: `Walks through the events of a day (default today), asks for a tag for
each untagged message and offers to close the day with an END event.
Today's log is backed up to a .bak file first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTag,
}

func init() {
	tagCmd.Flags().BoolVar(&tagAll, "all", false, "Also ask for events that already have a tag")
}

func runTag(cmd *cobra.Command, args []string) error {
	n, err := parseDaysAgo(args, 0, 0)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	r := &reconcile.Reconciler{
		Base:     cfg.DataDir,
		Prompter: terminal(),
		Out:      os.Stdout,
	}
	res, err := r.Reconcile(timecalc.DaysAgo(time.Now(), n), !tagAll)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	switch {
	case res.Saved:
		fmt.Printf("Saved: %d tags changed", res.Tagged)
		if res.Closed {
			fmt.Print(", day closed")
		}
		fmt.Println(".")
	case res.Changed:
		fmt.Println("Changes discarded.")
	}
	return nil
}
