package main

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fpemud/robust-git/internal/ui"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose environment and show the effective settings",
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	ok := true

	// Check the git binary.
	fmt.Fprintf(out, "Checking %s... ", cfg.GitBin)
	gitPath, err := exec.LookPath(cfg.GitBin)
	if err != nil {
		fmt.Fprintln(out, "NOT FOUND")
		fmt.Fprintln(out, "  git is required. Install it from https://git-scm.com/")
		ok = false
	} else {
		fmt.Fprintf(out, "found at %s\n", gitPath)

		fmt.Fprint(out, "Checking git version... ")
		verOut, verr := exec.Command(cfg.GitBin, "version").Output()
		if verr != nil {
			fmt.Fprintln(out, "ERROR")
			ok = false
		} else {
			fmt.Fprintln(out, strings.TrimSpace(string(verOut)))
		}
	}

	fmt.Fprintln(out)
	t := ui.NewTable(out, "SETTING", "VALUE")
	t.Row("git_bin", cfg.GitBin)
	t.Row("stuck_timeout", time.Duration(cfg.StuckTimeout))
	t.Row("retry_every", time.Duration(cfg.RetryEvery))
	t.Row("max_attempts", maxAttemptsLabel(cfg.MaxAttempts))
	t.Row("low_speed_limit", fmt.Sprintf("%d B/s", cfg.LowSpeedLimit))
	t.Row("low_speed_time", fmt.Sprintf("%ds", cfg.LowSpeedTime))
	if err := t.Flush(); err != nil {
		return err
	}

	if !ok {
		return fmt.Errorf("doctor found problems")
	}
	return nil
}

func maxAttemptsLabel(n int) string {
	if n == 0 {
		return "unbounded"
	}
	return fmt.Sprintf("%d", n)
}
