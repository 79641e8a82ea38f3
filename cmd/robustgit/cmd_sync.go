package main

import (
	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync <url> <dir>",
		Short: "Pull if dir already tracks url, otherwise clone it fresh",
		Long: "Sync brings dir up to date with url. An existing clone of the same\n" +
			"origin is pulled with rebase; anything else (missing directory, a clone\n" +
			"of a different origin, or a pull that fails outright) is replaced by a\n" +
			"fresh retried clone.",
		Args: cobra.ExactArgs(2),
		RunE: runSync,
	}
}

func runSync(cmd *cobra.Command, args []string) error {
	client, err := buildClient(cmd)
	if err != nil {
		return err
	}
	return client.PullOrClone(args[0], args[1])
}
