package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/tim/internal/model"
	"github.com/Tiliavir/tim/internal/reconcile"
	"github.com/Tiliavir/tim/internal/storage"
	"github.com/Tiliavir/tim/internal/timecalc"
)

var (
	errNothingToday = errors.New("nothing recorded today")
	errDayClosed    = errors.New("today is already closed")
)

var stopAt string

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Close today's log with an END event",
	Args:  cobra.NoArgs,
	RunE:  runStop,
}

func init() {
	stopCmd.Flags().StringVar(&stopAt, "at", "", "Closing time (HH:MM); defaults to now")
}

func runStop(cmd *cobra.Command, args []string) error {
	last, end, err := closeDay(cfg.DataDir, time.Now(), stopAt)
	var usage bool
	switch {
	case errors.Is(err, errNothingToday), errors.Is(err, errDayClosed),
		errors.Is(err, model.ErrInvalidClock), errors.Is(err, reconcile.ErrBeforeLast):
		usage = true
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if usage {
			os.Exit(1)
		}
		os.Exit(2)
	}

	fmt.Printf("Closed the day at %s. %q ran for %s\n",
		end.Time, last.Text(), timecalc.FormatMinutes(end.Time.Sub(last.Time)))
	return nil
}

// closeDay appends END to the log of now's day. at is an optional HH:MM
// closing time; empty means now. It returns the last event before END and
// the END event itself.
func closeDay(base string, now time.Time, at string) (model.Event, model.Event, error) {
	events, err := storage.LoadDay(base, now)
	if err != nil {
		return model.Event{}, model.Event{}, err
	}
	if len(events) == 0 {
		return model.Event{}, model.Event{}, errNothingToday
	}
	last := events[len(events)-1]
	if last.IsEnd() {
		return last, model.Event{}, fmt.Errorf("%w at %s", errDayClosed, last.Time)
	}

	if at == "" {
		at = model.ClockOf(now).String()
	}
	closing, err := reconcile.ValidateClosingTime(last.Time, at)
	if err != nil {
		return last, model.Event{}, err
	}

	end := model.NewCommand(closing, model.CommandEnd)
	if err := storage.AppendEvent(base, now, end); err != nil {
		return last, model.Event{}, err
	}
	return last, end, nil
}
