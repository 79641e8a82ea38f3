// Package testutil builds git fixtures and stub child processes for tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// CreateBareRepo creates a bare git repository with an initial commit in a temp directory.
// Returns the path to the bare repo.
func CreateBareRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	bare := filepath.Join(dir, "repo.git")

	// Create a working repo first, then clone it bare.
	work := filepath.Join(dir, "work")
	run(t, dir, "git", "init", "-b", "main", work)
	run(t, work, "git", "config", "user.email", "test@example.com")
	run(t, work, "git", "config", "user.name", "Test")

	readme := filepath.Join(work, "README.md")
	if err := os.WriteFile(readme, []byte("# test\n"), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
	run(t, work, "git", "add", ".")
	run(t, work, "git", "commit", "-m", "initial commit")

	run(t, dir, "git", "clone", "--bare", work, bare)
	return bare
}

// AddCommit adds a commit with the given file to the bare repo, through a
// scratch clone, so that a pull in an existing clone has something to fetch.
func AddCommit(t *testing.T, bare, name string) {
	t.Helper()
	scratch := filepath.Join(t.TempDir(), "scratch")
	run(t, filepath.Dir(scratch), "git", "clone", bare, scratch)
	run(t, scratch, "git", "config", "user.email", "test@example.com")
	run(t, scratch, "git", "config", "user.name", "Test")

	f := filepath.Join(scratch, name)
	if err := os.WriteFile(f, []byte(name+"\n"), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
	run(t, scratch, "git", "add", ".")
	run(t, scratch, "git", "commit", "-m", "add "+name)
	run(t, scratch, "git", "push", "origin", "HEAD")
}

// Script writes body as an executable shell script and returns its path.
// Used to stand in for git when tests need a child with scripted behavior.
func Script(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil { //nolint:gosec // test script
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, dir string, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("command %s %v failed: %v", name, args, err)
	}
}
