package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Tiliavir/tim/internal/model"
	"github.com/Tiliavir/tim/internal/storage"
)

func TestCsvEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"with space", "with space"},
		{"with,comma", `"with,comma"`},
		{`with"quote`, `"with""quote"`},
		{"with\nnewline", "\"with\nnewline\""},
		{"with\rreturn", "\"with\rreturn\""},
		{"", ""},
	}
	for _, tt := range tests {
		got := csvEscape(tt.input)
		if got != tt.want {
			t.Errorf("csvEscape(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestExportRows(t *testing.T) {
	tag := "dev"
	first := model.NewMessage(model.Clock(9*60), "#ABC-1 review, part 2")
	first.Tag = &tag
	first.JiraSync = true
	days := []storage.DayLog{{
		Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Events: []model.Event{
			first,
			model.NewMessage(model.Clock(10*60+30), "lunch"),
			model.NewCommand(model.Clock(11*60), model.CommandEnd),
		},
	}}

	rows := exportRows(days)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0].Minutes != 90 || rows[1].Minutes != 30 || rows[2].Minutes != 0 {
		t.Errorf("minutes = %d,%d,%d, want 90,30,0", rows[0].Minutes, rows[1].Minutes, rows[2].Minutes)
	}
	if rows[2].Command != model.CommandEnd || rows[2].Message != "" {
		t.Errorf("END row = %+v", rows[2])
	}

	var buf bytes.Buffer
	printCSV(&buf, rows)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("csv lines = %d, want 4", len(lines))
	}
	want := `2026-03-02,09:00,dev,"#ABC-1 review, part 2",,true,false,90`
	if lines[1] != want {
		t.Errorf("csv row = %q, want %q", lines[1], want)
	}
}

func TestExportRowsEmpty(t *testing.T) {
	rows := exportRows(nil)
	if rows == nil || len(rows) != 0 {
		t.Errorf("exportRows(nil) = %#v, want empty non-nil slice", rows)
	}
}
