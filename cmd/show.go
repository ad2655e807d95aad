package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/tim/internal/reconcile"
	"github.com/Tiliavir/tim/internal/storage"
	"github.com/Tiliavir/tim/internal/timecalc"
)

var dayHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#4A90E2"))

var showCmd = &cobra.Command{
	Use:   "show [days-ago]",
	Short: "Print the events of a day (default today)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	n, err := parseDaysAgo(args, 0, 0)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	day := timecalc.DaysAgo(time.Now(), n)

	events, err := storage.LoadDay(cfg.DataDir, day)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Println(dayHeaderStyle.Render(day.Format("Monday, 2006-01-02")))
	reconcile.Render(os.Stdout, events)
	return nil
}
