package summary

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/tim/internal/timecalc"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4A90E2"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(0, 1)
)

// Render writes the report in the given format: md (default), json or yaml.
func Render(w io.Writer, r Report, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(r)
		if err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "", "md":
		_, err := fmt.Fprintln(w, renderText(r))
		return err
	default:
		return fmt.Errorf("unknown format %q (want md, json or yaml)", format)
	}
}

func renderText(r Report) string {
	title := titleStyle.Render(fmt.Sprintf("Summary %s → %s", r.From, r.To))
	if r.Days == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, "No events in range.")
	}

	var tags strings.Builder
	tags.WriteString(headerStyle.Render(fmt.Sprintf("%-16s %9s %6s %5s %9s %7s",
		"Tag", "Total", "%", "Runs", "Avg run", "Runs/d")))
	for _, s := range r.Tags {
		fmt.Fprintf(&tags, "\n%-16s %9s %6.1f %5d %9s %7.2f",
			s.Tag,
			timecalc.FormatMinutes(s.Minutes),
			s.Percent,
			s.Runs,
			timecalc.FormatMinutes(int(s.AvgRun)),
			s.AvgDailyRuns,
		)
	}
	fmt.Fprintf(&tags, "\n\n%-16s %9s", "Total", timecalc.FormatMinutes(r.TotalMinutes))
	fmt.Fprintf(&tags, "\n%-16s %9s", "Avg day", timecalc.FormatMinutes(int(r.AvgDayMinutes)))
	fmt.Fprintf(&tags, "\n%-16s %9d", "Days", r.Days)

	var issues strings.Builder
	issues.WriteString(headerStyle.Render(fmt.Sprintf("%-30s %9s", "Issue", "Total")))
	if len(r.Issues) == 0 {
		issues.WriteString("\n(none)")
	}
	for _, s := range r.Issues {
		fmt.Fprintf(&issues, "\n%-30s %9s", s.Issue, timecalc.FormatMinutes(s.Minutes))
	}

	tables := lipgloss.JoinHorizontal(lipgloss.Top,
		boxStyle.Render(tags.String()),
		boxStyle.Render(issues.String()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, title, tables)
}
