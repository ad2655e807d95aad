package jira

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Tiliavir/tim/internal/model"
	"github.com/Tiliavir/tim/internal/prompt"
	"github.com/Tiliavir/tim/internal/storage"
	"github.com/Tiliavir/tim/internal/timecalc"
)

// Worklogger submits worklogs. *Client implements it.
type Worklogger interface {
	AddWorklog(ctx context.Context, key string, w Worklog) error
}

// Result holds counters for a sync run.
type Result struct {
	Synced      int
	Skipped     int
	Failed      int
	AlreadyDone int
}

// Syncer pushes the time of issue marker events to the tracker.
type Syncer struct {
	Base     string
	Worklogs Worklogger
	Prefix   string
	Prompter prompt.Prompter
	Out      io.Writer
	// Location is used for the worklog start timestamp. Defaults to time.Local.
	Location *time.Location
}

// IssueKey turns an issue marker fragment into a full key. Fragments that
// already contain a '-' are used as they are.
func IssueKey(fragment, prefix string) string {
	if strings.Contains(fragment, "-") || prefix == "" {
		return fragment
	}
	return strings.TrimSuffix(prefix, "-") + "-" + fragment
}

// SyncDay offers every unsynced, unskipped issue marker of day for
// submission. Accepted events are marked jira_sync once the tracker confirms
// them; declined events are marked jira_skip. Failed submissions keep their
// flags so a later run offers them again. Flag changes are saved even when
// some submissions failed.
func (s *Syncer) SyncDay(ctx context.Context, day time.Time) (Result, error) {
	var res Result
	events, err := storage.LoadDay(s.Base, day)
	if err != nil {
		return res, err
	}
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}

	changed := false
	var loopErr error
	for i := 0; i+1 < len(events); i++ {
		cur, next := &events[i], events[i+1]
		if !cur.IsIssue() {
			continue
		}
		if cur.JiraSync || cur.JiraSkip {
			res.AlreadyDone++
			continue
		}

		fragment := cur.IssueFragment()
		if fragment == "" {
			fmt.Fprintf(s.Out, "  ! Warning: %s %q has no issue key, not offered\n", cur.Time, *cur.Message)
			continue
		}
		key := IssueKey(fragment, s.Prefix)
		minutes := next.Time.Sub(cur.Time)
		ok, err := s.Prompter.Confirm(fmt.Sprintf("Log %s on %s (%s %s)?",
			timecalc.FormatMinutes(minutes), key, cur.Time, *cur.Message))
		if err != nil {
			loopErr = err
			break
		}
		if !ok {
			cur.JiraSkip = true
			changed = true
			res.Skipped++
			fmt.Fprintf(s.Out, "  – Skipped:  %s\n", key)
			continue
		}

		w := Worklog{
			Comment:          worklogComment(*cur),
			TimeSpentSeconds: minutes * 60,
			Started:          cur.Time.On(day, loc).Format(StartedLayout),
		}
		if err := s.Worklogs.AddWorklog(ctx, key, w); err != nil {
			res.Failed++
			fmt.Fprintf(s.Out, "  ! Warning: %v\n", err)
			continue
		}
		cur.JiraSync = true
		changed = true
		res.Synced++
		fmt.Fprintf(s.Out, "  ✓ Synced:   %s (%s)\n", key, timecalc.FormatMinutes(minutes))
	}

	if changed {
		if err := storage.SaveDay(s.Base, day, events); err != nil {
			return res, err
		}
	}
	return res, loopErr
}

func worklogComment(e model.Event) string {
	if c := e.IssueComment(); c != "" {
		return c
	}
	return *e.Message
}
