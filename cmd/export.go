package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/tim/internal/storage"
	"github.com/Tiliavir/tim/internal/timecalc"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export <start-days-ago> [end-days-ago]",
	Short: "Export events to stdout",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json")
}

// exportRow is one event with the length of the interval it starts.
type exportRow struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Tag      string `json:"tag,omitempty"`
	Message  string `json:"message,omitempty"`
	Command  string `json:"command,omitempty"`
	JiraSync bool   `json:"jira_sync,omitempty"`
	JiraSkip bool   `json:"jira_skip,omitempty"`
	Minutes  int    `json:"minutes"`
}

func runExport(cmd *cobra.Command, args []string) error {
	start, end, err := parseRange(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	dates := timecalc.DayRange(time.Now(), start, end)

	days, err := storage.LoadRange(cfg.DataDir, dates[0], dates[len(dates)-1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	rows := exportRows(days)

	switch exportFormat {
	case "json":
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "error encoding JSON:", err)
			os.Exit(2)
		}
		fmt.Println(string(data))
	case "csv":
		printCSV(os.Stdout, rows)
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q (want csv or json)\n", exportFormat)
		os.Exit(1)
	}
	return nil
}

func exportRows(days []storage.DayLog) []exportRow {
	rows := []exportRow{}
	for _, d := range days {
		for i, e := range d.Events {
			row := exportRow{
				Date:     d.Date.Format("2006-01-02"),
				Time:     e.Time.String(),
				Tag:      e.TagName(),
				JiraSync: e.JiraSync,
				JiraSkip: e.JiraSkip,
			}
			if e.Message != nil {
				row.Message = *e.Message
			}
			if e.Command != nil {
				row.Command = *e.Command
			}
			if i+1 < len(d.Events) {
				row.Minutes = d.Events[i+1].Time.Sub(e.Time)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func printCSV(w io.Writer, rows []exportRow) {
	fmt.Fprintln(w, "date,time,tag,message,command,jira_sync,jira_skip,minutes")
	for _, r := range rows {
		fmt.Fprintf(w, "%s,%s,%s,%s,%s,%t,%t,%d\n",
			r.Date,
			r.Time,
			csvEscape(r.Tag),
			csvEscape(r.Message),
			csvEscape(r.Command),
			r.JiraSync,
			r.JiraSkip,
			r.Minutes,
		)
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
