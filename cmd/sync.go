package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/tim/internal/jira"
	"github.com/Tiliavir/tim/internal/logging"
	"github.com/Tiliavir/tim/internal/timecalc"
)

var syncCmd = &cobra.Command{
	Use:   "sync [days-ago]",
	Short: "Push issue marker time to Jira as worklogs",
	Long: `Offers every issue marker event of a day (default today) that was
neither synced nor skipped before. Accepted events are submitted as
worklogs; declined events are marked as skipped and not offered again.

Credentials are read from the credential file (jira.credentials_file):
four lines holding host, username, password and issue key prefix. When
the file is missing you are asked for them. Set jira.token to use a
personal access token instead of a session login.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	n, err := parseDaysAgo(args, 0, 0)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	loc := time.Local
	if cfg.Jira.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Jira.Timezone)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid jira.timezone %q: %v\n", cfg.Jira.Timezone, err)
			os.Exit(1)
		}
	}

	ctx := cmd.Context()
	p := terminal()

	client, creds, err := jira.Connect(ctx, jira.ConnectOptions{
		CredentialsFile: cfg.Jira.CredentialsFile,
		Token:           cfg.Jira.Token,
		Prompter:        p,
		Out:             os.Stdout,
	})
	if errors.Is(err, jira.ErrAborted) {
		fmt.Println(err)
		return nil
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	day := timecalc.DaysAgo(time.Now(), n)
	fmt.Printf("Syncing %s to %s\n", day.Format("2006-01-02"), creds.Host)

	s := &jira.Syncer{
		Base:     cfg.DataDir,
		Worklogs: client,
		Prefix:   creds.Prefix,
		Prompter: p,
		Out:      os.Stdout,
		Location: loc,
	}
	res, err := s.SyncDay(ctx, day)
	fmt.Println()
	fmt.Printf("Sync complete: %d synced, %d skipped, %d failed, %d already done\n",
		res.Synced, res.Skipped, res.Failed, res.AlreadyDone)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if res.Failed > 0 {
		logging.Warnf("%d worklogs failed; run \"tim sync %d\" again to retry them", res.Failed, n)
		os.Exit(1)
	}
	return nil
}
