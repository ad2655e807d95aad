// Package summary reduces day logs into time-distribution statistics.
//
// Intervals between consecutive events belong to the tag of the event that
// starts them. Consecutive intervals sharing a tag form a run; the engine
// counts runs and their durations per tag, and sums issue marker intervals
// by their verbatim message.
package summary

import (
	"math"
	"sort"

	"github.com/Tiliavir/tim/internal/model"
	"github.com/Tiliavir/tim/internal/storage"
)

// UntaggedLabel is shown for time whose starting event carries no tag.
const UntaggedLabel = "(untagged)"

// Options tune the aggregation.
type Options struct {
	// FlushOpenRuns counts a run still open at the end of a day. When false
	// such a run is dropped from the totals.
	FlushOpenRuns bool
	// SkipReconcile disables the tagging pass before each day is read.
	SkipReconcile bool
}

// TagStats are the statistics of one tag.
type TagStats struct {
	Tag          string  `json:"tag" yaml:"tag"`
	Minutes      int     `json:"minutes" yaml:"minutes"`
	Runs         int     `json:"runs" yaml:"runs"`
	Percent      float64 `json:"percent" yaml:"percent"`
	AvgRun       float64 `json:"avg_run_minutes" yaml:"avg_run_minutes"`
	AvgDailyRuns float64 `json:"avg_daily_runs" yaml:"avg_daily_runs"`
}

// IssueStats is the total time spent after one issue marker message.
type IssueStats struct {
	Issue   string `json:"issue" yaml:"issue"`
	Minutes int    `json:"minutes" yaml:"minutes"`
}

// Report is the result of aggregating a range of days.
type Report struct {
	From          string       `json:"from,omitempty" yaml:"from,omitempty"`
	To            string       `json:"to,omitempty" yaml:"to,omitempty"`
	Days          int          `json:"days" yaml:"days"`
	TotalMinutes  int          `json:"total_minutes" yaml:"total_minutes"`
	AvgDayMinutes float64      `json:"avg_day_minutes" yaml:"avg_day_minutes"`
	Tags          []TagStats   `json:"tags" yaml:"tags"`
	Issues        []IssueStats `json:"issues" yaml:"issues"`
}

// totals accumulates raw per-tag and per-issue figures across days.
type totals struct {
	minutes map[string]int
	runs    map[string]int
	issues  map[string]int
	spans   []int
}

func newTotals() *totals {
	return &totals{
		minutes: map[string]int{},
		runs:    map[string]int{},
		issues:  map[string]int{},
	}
}

func (t *totals) closeRun(tag string, minutes int) {
	t.runs[tag]++
	t.minutes[tag] += minutes
}

// addDay walks the events of one day pairwise.
func (t *totals) addDay(events []model.Event, flushOpen bool) {
	if len(events) == 0 {
		return
	}
	t.spans = append(t.spans, events[len(events)-1].Time.Sub(events[0].Time))

	var (
		buffer int
		runTag string
	)
	for i := 0; i+1 < len(events); i++ {
		prev, next := events[i], events[i+1]
		d := next.Time.Sub(prev.Time)

		if prev.IsIssue() {
			t.issues[*prev.Message] += d
		}

		prevTag, nextTag := prev.TagName(), next.TagName()
		switch {
		case buffer != 0 && nextTag != runTag:
			t.closeRun(runTag, buffer)
			buffer = 0
		case buffer != 0:
			buffer += d
		case prevTag == nextTag:
			buffer = d
			runTag = prevTag
		default:
			t.closeRun(prevTag, d)
		}
	}
	if buffer != 0 && flushOpen {
		t.closeRun(runTag, buffer)
	}
}

// percent returns part/total as a percentage truncated to one decimal.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Floor(1000*float64(part)/float64(total)) / 10
}

// Aggregate computes the report for the given days. Days without events are
// ignored.
func Aggregate(days []storage.DayLog, opts Options) Report {
	t := newTotals()
	for _, day := range days {
		t.addDay(day.Events, opts.FlushOpenRuns)
	}

	var r Report
	r.Days = len(t.spans)
	if r.Days > 0 {
		sum := 0
		for _, s := range t.spans {
			sum += s
		}
		r.AvgDayMinutes = float64(sum) / float64(r.Days)
	}
	for _, m := range t.minutes {
		r.TotalMinutes += m
	}

	r.Tags = []TagStats{}
	for tag, m := range t.minutes {
		s := TagStats{
			Tag:     tag,
			Minutes: m,
			Runs:    t.runs[tag],
			Percent: percent(m, r.TotalMinutes),
		}
		if s.Runs > 0 {
			s.AvgRun = float64(m) / float64(s.Runs)
		}
		if r.Days > 0 {
			s.AvgDailyRuns = float64(s.Runs) / float64(r.Days)
		}
		if s.Tag == "" {
			s.Tag = UntaggedLabel
		}
		r.Tags = append(r.Tags, s)
	}
	sort.Slice(r.Tags, func(i, j int) bool {
		if r.Tags[i].Minutes != r.Tags[j].Minutes {
			return r.Tags[i].Minutes > r.Tags[j].Minutes
		}
		return r.Tags[i].Tag < r.Tags[j].Tag
	})

	r.Issues = []IssueStats{}
	for issue, m := range t.issues {
		r.Issues = append(r.Issues, IssueStats{Issue: issue, Minutes: m})
	}
	sort.Slice(r.Issues, func(i, j int) bool {
		if r.Issues[i].Minutes != r.Issues[j].Minutes {
			return r.Issues[i].Minutes > r.Issues[j].Minutes
		}
		return r.Issues[i].Issue < r.Issues[j].Issue
	})
	return r
}
