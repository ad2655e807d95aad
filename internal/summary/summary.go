package summary

import (
	"time"

	"github.com/Tiliavir/tim/internal/reconcile"
	"github.com/Tiliavir/tim/internal/storage"
	"github.com/Tiliavir/tim/internal/timecalc"
)

// Summarizer builds reports over ranges of days counted back from today.
type Summarizer struct {
	Base string
	// Reconciler tags each day before it is read. It may be nil, which has
	// the same effect as Options.SkipReconcile.
	Reconciler *reconcile.Reconciler
	Options    Options
	Now        func() time.Time
}

// Summarize aggregates the days from startDaysAgo to endDaysAgo inclusive.
// The bounds may be given in either order.
func (s *Summarizer) Summarize(startDaysAgo, endDaysAgo int) (Report, error) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	dates := timecalc.DayRange(now, startDaysAgo, endDaysAgo)

	days := make([]storage.DayLog, 0, len(dates))
	for _, d := range dates {
		if s.Reconciler != nil && !s.Options.SkipReconcile {
			if _, err := s.Reconciler.Reconcile(d, true); err != nil {
				return Report{}, err
			}
		}
		events, err := storage.LoadDay(s.Base, d)
		if err != nil {
			return Report{}, err
		}
		days = append(days, storage.DayLog{Date: d, Events: events})
	}

	r := Aggregate(days, s.Options)
	r.From = dates[0].Format("2006-01-02")
	r.To = dates[len(dates)-1].Format("2006-01-02")
	return r, nil
}
