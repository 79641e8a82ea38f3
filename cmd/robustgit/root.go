package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fpemud/robust-git/internal/config"
	"github.com/fpemud/robust-git/internal/git"
	"github.com/fpemud/robust-git/internal/proc"
	"github.com/fpemud/robust-git/internal/retry"
	"github.com/fpemud/robust-git/internal/ui"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "robustgit",
		Short:   "Git operations that survive flaky networks and hung transfers",
		Version: version,
	}

	cmd.PersistentFlags().String("config", config.DefaultFile, "Path to the settings file")
	cmd.PersistentFlags().String("git", "", "Git binary to invoke (overrides config)")
	cmd.PersistentFlags().Duration("stuck-timeout", 0, "Silence threshold before a child is declared stuck")
	cmd.PersistentFlags().Duration("retry-every", 0, "Pause between retries of a failed network operation")
	cmd.PersistentFlags().Int("max-attempts", 0, "Give up after this many attempts (0 retries forever)")
	cmd.PersistentFlags().Bool("no-color", false, "Disable styled status output")

	cmd.AddCommand(
		newCloneCmd(),
		newPullCmd(),
		newSyncCmd(),
		newCleanCmd(),
		newDoctorCmd(),
	)

	return cmd
}

// loadSettings resolves the effective configuration: file values first,
// then flag overrides for anything the user set explicitly.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")

	var cfg *config.Config
	var err error
	if flags.Changed("config") {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadOrDefault(path)
	}
	if err != nil {
		return nil, err
	}

	if flags.Changed("git") {
		cfg.GitBin, _ = flags.GetString("git")
	}
	if flags.Changed("stuck-timeout") {
		d, _ := flags.GetDuration("stuck-timeout")
		cfg.StuckTimeout = config.Duration(d)
	}
	if flags.Changed("retry-every") {
		d, _ := flags.GetDuration("retry-every")
		cfg.RetryEvery = config.Duration(d)
	}
	if flags.Changed("max-attempts") {
		cfg.MaxAttempts, _ = flags.GetInt("max-attempts")
	}
	return cfg, nil
}

// buildClient assembles the git client from the effective configuration and
// wires retry notices to a styled printer on stderr.
func buildClient(cmd *cobra.Command) (*git.Client, error) {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	printer := ui.NewPrinter(cmd.ErrOrStderr(), !noColor && ui.IsTerminal(os.Stderr))

	client := &git.Client{
		Bin: cfg.GitBin,
		Runner: &proc.Runner{
			StuckTimeout: time.Duration(cfg.StuckTimeout),
		},
		Policy: retry.Policy{
			Backoff:     time.Duration(cfg.RetryEvery),
			MaxAttempts: cfg.MaxAttempts,
			Notify: func(a retry.Attempt) {
				printer.Retryf("attempt %d failed (%v), retrying in %s", a.N, a.Err, a.Backoff)
			},
		},
		SpeedLimit: cfg.LowSpeedLimit,
		SpeedTime:  cfg.LowSpeedTime,
	}
	return client, nil
}
