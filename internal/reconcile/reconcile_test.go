package reconcile_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/tim/internal/model"
	"github.com/Tiliavir/tim/internal/prompt"
	"github.com/Tiliavir/tim/internal/reconcile"
	"github.com/Tiliavir/tim/internal/storage"
)

var (
	today     = time.Date(2026, 2, 27, 18, 0, 0, 0, time.UTC)
	yesterday = time.Date(2026, 2, 26, 0, 0, 0, 0, time.UTC)
)

func clock(t *testing.T, s string) model.Clock {
	t.Helper()
	c, err := model.ParseClock(s)
	require.NoError(t, err)
	return c
}

func setup(t *testing.T, day time.Time, events []model.Event, tags ...string) string {
	t.Helper()
	base := t.TempDir()
	require.NoError(t, storage.SaveDay(base, day, events))
	for _, tag := range tags {
		require.NoError(t, storage.AddTag(base, tag))
	}
	return base
}

func newReconciler(base string, answers ...string) (*reconcile.Reconciler, *prompt.Scripted, *bytes.Buffer) {
	p := &prompt.Scripted{Answers: answers}
	out := &bytes.Buffer{}
	return &reconcile.Reconciler{
		Base:     base,
		Prompter: p,
		Out:      out,
		Now:      func() time.Time { return today },
	}, p, out
}

func tagged(e model.Event, tag string) model.Event {
	e.Tag = &tag
	return e
}

func TestValidateClosingTime(t *testing.T) {
	last := clock(t, "09:15")
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"09:10", true},
		{"09:15", false},
		{"09:20", false},
		{"25:00", true},
		{"later", true},
	}
	for _, tt := range tests {
		_, err := reconcile.ValidateClosingTime(last, tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
		} else {
			assert.NoError(t, err, "input %q", tt.input)
		}
	}
	_, err := reconcile.ValidateClosingTime(last, "09:10")
	assert.ErrorIs(t, err, reconcile.ErrBeforeLast)
}

func TestReconcileTagsAndCloses(t *testing.T) {
	events := []model.Event{
		model.NewMessage(clock(t, "09:00"), "code review"),
		model.NewMessage(clock(t, "10:00"), "#ABC-1 bugfix"),
	}
	base := setup(t, yesterday, events, "dev", "design")

	// "xyz" and "d" are rejected, then "dev"; second event left untagged;
	// close at "09:30" (rejected) then "17:00"; save.
	r, _, out := newReconciler(base, "xyz", "d", "dev", "", "y", "09:30", "17:00", "y")
	res, err := r.Reconcile(yesterday, false)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Tagged)
	assert.True(t, res.Closed)
	assert.True(t, res.Saved)
	assert.Contains(t, out.String(), `Unknown tag "xyz".`)
	assert.Contains(t, out.String(), "Did you mean: dev, design")

	saved, err := storage.LoadDay(base, yesterday)
	require.NoError(t, err)
	require.Len(t, saved, 3)
	assert.Equal(t, "dev", saved[0].TagName())
	assert.False(t, saved[1].HasTag())
	assert.True(t, saved[2].IsEnd())
	assert.Equal(t, "17:00", saved[2].Time.String())
}

func TestReconcileSkipTaggedNeverPrompts(t *testing.T) {
	end := model.NewCommand(clock(t, "12:00"), model.CommandEnd)
	events := []model.Event{
		tagged(model.NewMessage(clock(t, "09:00"), "code"), "dev"),
		tagged(model.NewMessage(clock(t, "10:00"), "mail"), "ops"),
		end,
	}
	base := setup(t, yesterday, events, "dev", "ops")

	r, p, _ := newReconciler(base)
	res, err := r.Reconcile(yesterday, true)
	require.NoError(t, err)
	assert.Empty(t, p.Asked)
	assert.False(t, res.Changed)
	assert.False(t, res.Saved)
}

func TestReconcileSkipTaggedPromptsOnlyUntagged(t *testing.T) {
	events := []model.Event{
		tagged(model.NewMessage(clock(t, "09:00"), "code"), "dev"),
		model.NewMessage(clock(t, "10:00"), "mail"),
		model.NewCommand(clock(t, "12:00"), model.CommandEnd),
	}
	base := setup(t, yesterday, events, "dev", "ops")

	r, p, _ := newReconciler(base, "ops", "y")
	res, err := r.Reconcile(yesterday, true)
	require.NoError(t, err)
	assert.Len(t, p.Asked, 2)
	assert.True(t, res.Saved)

	saved, err := storage.LoadDay(base, yesterday)
	require.NoError(t, err)
	assert.Equal(t, "dev", saved[0].TagName())
	assert.Equal(t, "ops", saved[1].TagName())
}

func TestReconcileDiscardWhenNotConfirmed(t *testing.T) {
	events := []model.Event{model.NewMessage(clock(t, "09:00"), "code")}
	base := setup(t, yesterday, events, "dev")

	r, _, _ := newReconciler(base, "dev", "n", "n")
	res, err := r.Reconcile(yesterday, false)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.False(t, res.Saved)

	saved, err := storage.LoadDay(base, yesterday)
	require.NoError(t, err)
	assert.False(t, saved[0].HasTag())
}

func TestReconcileSameTagIsNotAChange(t *testing.T) {
	events := []model.Event{
		tagged(model.NewMessage(clock(t, "09:00"), "code"), "dev"),
		model.NewCommand(clock(t, "10:00"), model.CommandEnd),
	}
	base := setup(t, yesterday, events, "dev")

	r, p, _ := newReconciler(base, "dev")
	res, err := r.Reconcile(yesterday, false)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Len(t, p.Asked, 1)
}

func TestReconcileEmptyDay(t *testing.T) {
	r, p, _ := newReconciler(t.TempDir())
	res, err := r.Reconcile(yesterday, false)
	require.NoError(t, err)
	assert.Equal(t, reconcile.Result{}, res)
	assert.Empty(t, p.Asked)
}

func TestReconcileBacksUpToday(t *testing.T) {
	events := []model.Event{
		model.NewMessage(clock(t, "09:00"), "code"),
		model.NewCommand(clock(t, "10:00"), model.CommandEnd),
	}
	base := setup(t, yesterday, events)
	require.NoError(t, storage.AppendEvent(base, today, model.NewMessage(clock(t, "08:00"), "mail")))

	r, _, _ := newReconciler(base, "")
	_, err := r.Reconcile(yesterday, false)
	require.NoError(t, err)

	_, err = os.Stat(storage.DayFilePath(base, today) + ".bak")
	assert.NoError(t, err, "today's file should be backed up")
}

func TestReconcileAbortsOnExhaustedInput(t *testing.T) {
	events := []model.Event{model.NewMessage(clock(t, "09:00"), "code")}
	base := setup(t, yesterday, events, "dev")

	r, _, _ := newReconciler(base)
	_, err := r.Reconcile(yesterday, false)
	assert.ErrorIs(t, err, prompt.ErrNoInput)
}

func TestReconcileAsksForEmptyStoredTag(t *testing.T) {
	base := t.TempDir()
	path := storage.DayFilePath(base, yesterday)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(
		`{"time":"09:00","message":"code","command":null,"tag":""}`+"\n"+
			`{"time":"10:00","message":null,"command":"END"}`+"\n"), 0o600))
	require.NoError(t, storage.AddTag(base, "dev"))

	r, p, _ := newReconciler(base, "dev", "y")
	res, err := r.Reconcile(yesterday, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tag (empty for none): ", "Save changes? [y/N] "}, p.Asked)
	assert.Equal(t, 1, res.Tagged)
	assert.True(t, res.Saved)

	events, err := storage.LoadDay(base, yesterday)
	require.NoError(t, err)
	assert.Equal(t, "dev", events[0].TagName())
}
