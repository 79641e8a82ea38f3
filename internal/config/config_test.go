package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseFull(t *testing.T) {
	data := []byte(`
git_bin: /usr/local/bin/git
stuck_timeout: 90s
retry_every: 2s
max_attempts: 10
low_speed_limit: 2048
low_speed_time: 30
`)
	c, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.GitBin != "/usr/local/bin/git" {
		t.Errorf("git_bin = %q", c.GitBin)
	}
	if time.Duration(c.StuckTimeout) != 90*time.Second {
		t.Errorf("stuck_timeout = %s", time.Duration(c.StuckTimeout))
	}
	if time.Duration(c.RetryEvery) != 2*time.Second {
		t.Errorf("retry_every = %s", time.Duration(c.RetryEvery))
	}
	if c.MaxAttempts != 10 {
		t.Errorf("max_attempts = %d", c.MaxAttempts)
	}
	if c.LowSpeedLimit != 2048 || c.LowSpeedTime != 30 {
		t.Errorf("low speed = %d/%d", c.LowSpeedLimit, c.LowSpeedTime)
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	c, err := Parse([]byte("retry_every: 5s\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if time.Duration(c.RetryEvery) != 5*time.Second {
		t.Errorf("retry_every = %s", time.Duration(c.RetryEvery))
	}
	if time.Duration(c.StuckTimeout) != 60*time.Second {
		t.Errorf("stuck_timeout default = %s, want 60s", time.Duration(c.StuckTimeout))
	}
	if c.GitBin != "git" {
		t.Errorf("git_bin default = %q, want git", c.GitBin)
	}
	if c.MaxAttempts != 0 {
		t.Errorf("max_attempts default = %d, want 0 (unbounded)", c.MaxAttempts)
	}
}

func TestParseBadDuration(t *testing.T) {
	_, err := Parse([]byte("stuck_timeout: sixty\n"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "duration") {
		t.Errorf("error = %v, expected duration parse failure", err)
	}
}

func TestParseRejectsNonPositiveValues(t *testing.T) {
	for _, data := range []string{
		"stuck_timeout: 0s\n",
		"retry_every: -1s\n",
		"max_attempts: -2\n",
		"low_speed_limit: 0\n",
		"git_bin: \"\"\n",
	} {
		if _, err := Parse([]byte(data)); err == nil {
			t.Errorf("Parse(%q): expected validation error", data)
		}
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	c, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if *c != Default() {
		t.Errorf("got %+v, want defaults", *c)
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "robustgit.yaml")
	if err := os.WriteFile(path, []byte("max_attempts: 4\n"), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.MaxAttempts != 4 {
		t.Errorf("max_attempts = %d, want 4", c.MaxAttempts)
	}
}
