package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/tim/internal/model"
	"github.com/Tiliavir/tim/internal/storage"
	"github.com/Tiliavir/tim/internal/timecalc"
)

var (
	startAgo     int
	startCommand string
)

var startCmd = &cobra.Command{
	Use:   "start <message...>",
	Short: "Record that you started an activity",
	Args:  cobra.ArbitraryArgs,
	RunE:  runStart,
}

func init() {
	addStartFlags(startCmd)
}

func addStartFlags(c *cobra.Command) {
	c.Flags().IntVarP(&startAgo, "ago", "t", 0, "Minutes ago the activity started")
	c.Flags().StringVarP(&startCommand, "command", "c", "", "Record a control event (e.g. END) instead of a message")
}

func runStart(cmd *cobra.Command, args []string) error {
	if startAgo < 0 {
		fmt.Fprintln(os.Stderr, "--ago must not be negative")
		os.Exit(1)
	}
	message := strings.TrimSpace(strings.Join(args, " "))
	if message == "" && startCommand == "" {
		fmt.Fprintln(os.Stderr, "Nothing to record: give a message or --command.")
		os.Exit(1)
	}
	if message != "" && startCommand != "" {
		fmt.Fprintln(os.Stderr, "Give either a message or --command, not both.")
		os.Exit(1)
	}

	at := time.Now().Add(-time.Duration(startAgo) * time.Minute)
	event := newEvent(at, message, strings.ToUpper(startCommand))

	if err := storage.AppendEvent(cfg.DataDir, at, event); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if !timecalc.SameDay(at, time.Now()) {
		fmt.Printf("Recorded in the log of %s.\n", at.Format("2006-01-02"))
	}
	fmt.Printf("%s  %s\n", event.Time, event.Text())
	return nil
}

func newEvent(at time.Time, message, command string) model.Event {
	if command != "" {
		return model.NewCommand(model.ClockOf(at), command)
	}
	return model.NewMessage(model.ClockOf(at), message)
}
