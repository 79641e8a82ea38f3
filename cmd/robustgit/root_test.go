package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// cloneForTest makes a plain working clone of bare for command tests.
func cloneForTest(t *testing.T, bare string) string {
	t.Helper()
	dest := filepath.Join(t.TempDir(), "repo")
	cmd := exec.Command("git", "clone", bare, dest)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("clone fixture: %v", err)
	}
	return dest
}

func TestRootCmd_hasExpectedSubcommands(t *testing.T) {
	root := newRootCmd()
	want := map[string]bool{"clone": false, "pull": false, "sync": false, "clean": false, "doctor": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestCloneCmd_requiresArgs(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"clone"})
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	if err := root.Execute(); err == nil {
		t.Fatal("expected error without git args")
	}
}

func TestPullCmd_rejectsMissingRebaseFlag(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"pull", "--", "origin"})
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	err := root.Execute()
	if err == nil {
		t.Fatal("expected precondition error")
	}
	if !strings.Contains(err.Error(), "exactly one") {
		t.Errorf("error = %v", err)
	}
}

func TestRootCmd_flagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "robustgit.yaml")
	if err := os.WriteFile(path, []byte("retry_every: 9s\nmax_attempts: 2\n"), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}

	root := newRootCmd()
	root.SetArgs([]string{"--config", path, "--max-attempts", "7", "doctor"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(new(bytes.Buffer))
	if err := root.Execute(); err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if !strings.Contains(out.String(), "9s") {
		t.Errorf("doctor output should show the file's retry_every, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "7") {
		t.Errorf("doctor output should show the flag's max_attempts, got:\n%s", out.String())
	}
}

func TestDoctorCmd_reportsSettings(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"doctor"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(new(bytes.Buffer))
	if err := root.Execute(); err != nil {
		t.Fatalf("doctor: %v", err)
	}
	for _, want := range []string{"SETTING", "stuck_timeout", "1m0s", "unbounded"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("doctor output missing %q:\n%s", want, out.String())
		}
	}
}
