package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/tim/internal/model"
	"github.com/Tiliavir/tim/internal/storage"
	"github.com/Tiliavir/tim/internal/timecalc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current activity",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	now := time.Now()

	events, err := storage.LoadDay(cfg.DataDir, now)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if len(events) == 0 {
		fmt.Println("Nothing recorded today.")
		return nil
	}

	first, last := events[0], events[len(events)-1]
	if last.IsEnd() {
		fmt.Printf("Day closed at %s.\n", last.Time)
		fmt.Printf("Today: %s tracked.\n", timecalc.FormatMinutes(last.Time.Sub(first.Time)))
		return nil
	}

	current := model.ClockOf(now)
	fmt.Println("Running:")
	fmt.Printf("  Activity: %s\n", last.Text())
	if last.HasTag() {
		fmt.Printf("  Tag: %s\n", last.TagName())
	}
	fmt.Printf("  Since: %s\n", last.Time)
	fmt.Printf("  Elapsed: %s\n", timecalc.FormatElapsed(int64(current.Sub(last.Time))*60))
	fmt.Printf("Today: %s tracked.\n", timecalc.FormatMinutes(current.Sub(first.Time)))
	return nil
}
