package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/tim/internal/prompt"
	"github.com/Tiliavir/tim/internal/storage"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the known tags",
	Args:  cobra.NoArgs,
	RunE:  runTags,
}

var tagsAddCmd = &cobra.Command{
	Use:   "add <tag>",
	Short: "Register a new tag",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTagsAdd,
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		tags, err := storage.LoadTags(cfg.DataDir)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return prompt.Complete(toComplete, tags), cobra.ShellCompDirectiveNoFileComp
	},
}

func init() {
	tagsCmd.AddCommand(tagsAddCmd)
}

func runTags(cmd *cobra.Command, args []string) error {
	tags, err := storage.LoadTags(cfg.DataDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if len(tags) == 0 {
		fmt.Println(`No tags yet. Add one with "tim tags add <tag>".`)
		return nil
	}
	for _, tag := range tags {
		fmt.Println(tag)
	}
	return nil
}

func runTagsAdd(cmd *cobra.Command, args []string) error {
	tag := strings.Join(args, " ")
	if err := storage.AddTag(cfg.DataDir, tag); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, storage.ErrEmptyTag) {
			os.Exit(1)
		}
		os.Exit(2)
	}
	fmt.Printf("Added tag %q.\n", strings.TrimSpace(tag))
	return nil
}
