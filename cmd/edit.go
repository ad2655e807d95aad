package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/tim/internal/storage"
	"github.com/Tiliavir/tim/internal/timecalc"
)

var editCmd = &cobra.Command{
	Use:   "edit [days-ago]",
	Short: "Open a day log in your editor",
	Long: `Opens the day log in the configured editor ($EDITOR or "editor" in the
config file). The file is validated after the editor exits.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	n, err := parseDaysAgo(args, 0, 0)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	day := timecalc.DaysAgo(time.Now(), n)

	path, err := storage.TouchDay(cfg.DataDir, day)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	argv := strings.Fields(cfg.Editor)
	if len(argv) == 0 {
		fmt.Fprintln(os.Stderr, "no editor configured")
		os.Exit(1)
	}
	editor := exec.Command(argv[0], append(argv[1:], path)...)
	editor.Stdin = os.Stdin
	editor.Stdout = os.Stdout
	editor.Stderr = os.Stderr
	if err := editor.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "editor %s failed: %v\n", cfg.Editor, err)
		os.Exit(1)
	}

	events, err := storage.LoadDay(cfg.DataDir, day)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "The file was kept as written; run \"tim edit\" again to fix it.")
		os.Exit(2)
	}
	fmt.Printf("%s: %d events.\n", day.Format("2006-01-02"), len(events))
	return nil
}
