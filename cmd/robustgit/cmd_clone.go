package main

import (
	"github.com/spf13/cobra"
)

func newCloneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clone [flags] -- <git-clone-args>...",
		Short: "Clone a repository, retrying until the network cooperates",
		Long: "Clone runs git clone under supervision: output is streamed through\n" +
			"live, a transfer that goes silent for the stuck timeout is terminated,\n" +
			"and any failure short of a signal death is retried after a short pause.\n" +
			"By default it retries forever; bound it with --max-attempts.",
		Args: cobra.MinimumNArgs(1),
		RunE: runClone,
	}
}

func runClone(cmd *cobra.Command, args []string) error {
	client, err := buildClient(cmd)
	if err != nil {
		return err
	}
	return client.Clone(args...)
}
