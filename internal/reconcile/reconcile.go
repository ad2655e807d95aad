// Package reconcile implements the interactive pass that tags the events
// of a day and closes days that were left open.
package reconcile

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/Tiliavir/tim/internal/logging"
	"github.com/Tiliavir/tim/internal/model"
	"github.com/Tiliavir/tim/internal/prompt"
	"github.com/Tiliavir/tim/internal/storage"
)

// ErrBeforeLast is returned when a closing time precedes the last event.
var ErrBeforeLast = errors.New("closing time is before the last event")

// Result describes what a reconciliation did.
type Result struct {
	Tagged  int  // events whose tag changed
	Closed  bool // an END event was appended
	Changed bool
	Saved   bool
}

// Reconciler tags events and closes days interactively.
type Reconciler struct {
	Base     string
	Prompter prompt.Prompter
	Out      io.Writer
	// Now defaults to time.Now; it decides which day counts as today for the backup.
	Now func() time.Time
}

func (r *Reconciler) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Reconcile walks the events of day, asks for a tag for every message event
// (only untagged ones when skipTagged is set), offers to close an open day
// and saves the result when the user agrees.
func (r *Reconciler) Reconcile(day time.Time, skipTagged bool) (Result, error) {
	var res Result

	if _, err := storage.BackupDay(r.Base, r.now()); err != nil {
		return res, err
	}
	events, err := storage.LoadDay(r.Base, day)
	if err != nil {
		return res, err
	}
	if len(events) == 0 {
		return res, nil
	}
	tags, err := storage.LoadTags(r.Base)
	if err != nil {
		return res, err
	}

	for i := range events {
		e := &events[i]
		if e.Message == nil || (skipTagged && e.HasTag()) {
			continue
		}
		tag, err := r.askTag(*e, tags)
		if err != nil {
			return res, err
		}
		if e.SetTag(tag) {
			res.Tagged++
			res.Changed = true
		}
	}

	fmt.Fprintf(r.Out, "\n%s\n", day.Format("Monday, 2006-01-02"))
	Render(r.Out, events)

	last := events[len(events)-1]
	if !last.IsEnd() {
		ok, err := r.Prompter.Confirm("The day is not closed. Close it now?")
		if err != nil {
			return res, err
		}
		if ok {
			at, err := r.askClosingTime(last.Time)
			if err != nil {
				return res, err
			}
			events = append(events, model.NewCommand(at, model.CommandEnd))
			res.Closed = true
			res.Changed = true
		}
	}

	if !res.Changed {
		return res, nil
	}
	ok, err := r.Prompter.Confirm("Save changes?")
	if err != nil {
		return res, err
	}
	if !ok {
		logging.Debugf("discarded changes for %s", day.Format("2006-01-02"))
		return res, nil
	}
	if err := storage.SaveDay(r.Base, day, events); err != nil {
		return res, err
	}
	res.Saved = true
	return res, nil
}

// askTag prompts until the answer is empty or a registered tag.
func (r *Reconciler) askTag(e model.Event, tags []string) (string, error) {
	current := "-"
	if e.HasTag() {
		current = e.TagName()
	}
	fmt.Fprintf(r.Out, "\n%s  %s  (tag: %s)\n", e.Time, e.Text(), current)
	if len(tags) > 0 {
		fmt.Fprintf(r.Out, "Tags: %s\n", strings.Join(tags, ", "))
	}
	for {
		answer, err := r.Prompter.Ask("Tag (empty for none): ")
		if err != nil {
			return "", err
		}
		if answer == "" || slices.Contains(tags, answer) {
			return answer, nil
		}
		if matches := prompt.Complete(answer, tags); len(matches) > 0 {
			fmt.Fprintf(r.Out, "Did you mean: %s\n", strings.Join(matches, ", "))
		} else {
			fmt.Fprintf(r.Out, "Unknown tag %q.\n", answer)
		}
	}
}

// askClosingTime prompts until a valid closing time is entered.
func (r *Reconciler) askClosingTime(last model.Clock) (model.Clock, error) {
	for {
		answer, err := r.Prompter.Ask(fmt.Sprintf("Closing time (HH:MM, not before %s): ", last))
		if err != nil {
			return 0, err
		}
		at, err := ValidateClosingTime(last, answer)
		if err == nil {
			return at, nil
		}
		fmt.Fprintf(r.Out, "%v\n", err)
	}
}

// ValidateClosingTime parses input as HH:MM and checks it is not before last.
func ValidateClosingTime(last model.Clock, input string) (model.Clock, error) {
	at, err := model.ParseClock(input)
	if err != nil {
		return 0, err
	}
	if at < last {
		return 0, fmt.Errorf("%w: %s < %s", ErrBeforeLast, at, last)
	}
	return at, nil
}

// Render prints one line per event.
func Render(w io.Writer, events []model.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events.")
		return
	}
	for _, e := range events {
		tag := "-"
		if e.HasTag() {
			tag = e.TagName()
		}
		flags := ""
		switch {
		case e.JiraSync:
			flags = "  [synced]"
		case e.JiraSkip:
			flags = "  [skipped]"
		}
		fmt.Fprintf(w, "%s  %-12s %s%s\n", e.Time, tag, e.Text(), flags)
	}
}
