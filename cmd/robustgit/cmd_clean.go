package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fpemud/robust-git/internal/git"
	"github.com/fpemud/robust-git/internal/ui"
)

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean <dir>",
		Short: "Discard all local changes in a repository (destructive)",
		Long: "Clean resets tracked files with git reset --hard and removes untracked\n" +
			"files with git clean -xfd. Both steps are local one-shots: no retry, and\n" +
			"any failure is fatal.",
		Args: cobra.ExactArgs(1),
		RunE: runClean,
	}
	cmd.Flags().Bool("force", false, "Skip the confirmation prompt")
	return cmd
}

func runClean(cmd *cobra.Command, args []string) error {
	abs, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	if !git.IsCloned(abs) {
		return fmt.Errorf("refusing to clean %s: not a git repository", abs)
	}

	force, _ := cmd.Flags().GetBool("force")
	if !force {
		if !ui.IsTerminal(os.Stdin) {
			return fmt.Errorf("clean is destructive; pass --force to confirm")
		}
		ok, err := promptConfirm(fmt.Sprintf("Discard ALL local changes in %s?", abs))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("aborted")
		}
	}

	client, err := buildClient(cmd)
	if err != nil {
		return err
	}
	if err := client.Clean(abs); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cleaned: %s\n", abs)
	return nil
}
