package main

import (
	"github.com/spf13/cobra"
)

func newPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull [flags] -- <git-pull-args>...",
		Short: "Pull with rebase, retrying until the network cooperates",
		Long: "Pull runs git pull --rebase with the same supervision and retry\n" +
			"behavior as clone. The git args must contain exactly one rebase-mode\n" +
			"flag (-r, --rebase or --no-rebase); the command fails up front otherwise.",
		Args: cobra.MinimumNArgs(1),
		RunE: runPull,
	}
}

func runPull(cmd *cobra.Command, args []string) error {
	client, err := buildClient(cmd)
	if err != nil {
		return err
	}
	return client.Pull(args...)
}
