package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/tim/internal/config"
	"github.com/Tiliavir/tim/internal/prompt"
)

// cfg is loaded once before any command runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "tim [message...]",
	Short: "tim – a personal activity log",
	Long: `tim records what you are doing as timestamped events, one file per day
in ~/.tim/. Run "tim <message>" whenever you switch activities, tag the
events later and get a time distribution with "tim summary".

Messages starting with # are issue markers ("#PROJ-12 fix login") whose
time can be pushed to Jira with "tim sync".`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && startCommand == "" {
			return runShow(cmd, nil)
		}
		return runStart(cmd, args)
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	addStartFlags(rootCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(exportCmd)
}

func terminal() prompt.Prompter {
	return prompt.NewTerminal(os.Stdin, os.Stdout)
}

// parseDaysAgo parses args[i] as a non-negative day offset, returning def
// when the argument is absent.
func parseDaysAgo(args []string, i, def int) (int, error) {
	if i >= len(args) {
		return def, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid days-ago value %q: want a non-negative integer", args[i])
	}
	return n, nil
}

// parseRange parses "<start-days-ago> [end-days-ago]"; end defaults to 0 (today).
func parseRange(args []string) (int, int, error) {
	start, err := parseDaysAgo(args, 0, 0)
	if err != nil {
		return 0, 0, err
	}
	end, err := parseDaysAgo(args, 1, 0)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
