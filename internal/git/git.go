package git

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fpemud/robust-git/internal/proc"
	"github.com/fpemud/robust-git/internal/retry"
)

// Environment knobs passed to network operations. They make git itself
// abort a transfer that crawls below the limit for the configured time, a
// second line of defense against hangs that operates inside the child
// rather than via the parent's stuck timer.
const (
	lowSpeedLimitEnv = "GIT_HTTP_LOW_SPEED_LIMIT"
	lowSpeedTimeEnv  = "GIT_HTTP_LOW_SPEED_TIME"

	DefaultLowSpeedLimit = 1024 // bytes per second
	DefaultLowSpeedTime  = 60   // seconds
)

// Client runs git operations through a supervised runner. The zero value is
// not usable; construct with New.
type Client struct {
	Bin    string // git binary; defaults to "git"
	Runner *proc.Runner
	Policy retry.Policy

	SpeedLimit int // minimum transfer rate in bytes/sec before git gives up
	SpeedTime  int // seconds the rate must stay below SpeedLimit
}

// New returns a Client with default supervision and retry settings.
func New() *Client {
	return &Client{
		Bin:        "git",
		Runner:     &proc.Runner{},
		SpeedLimit: DefaultLowSpeedLimit,
		SpeedTime:  DefaultLowSpeedTime,
	}
}

// Clone runs "git clone args..." and retries until it succeeds or the child
// is killed by a signal.
func (c *Client) Clone(args ...string) error {
	return c.network(append([]string{c.bin(), "clone"}, args...))
}

// Rebase-mode flags a caller must choose between when pulling.
var rebaseFlags = []string{"-r", "--rebase", "--no-rebase"}

// Pull runs "git pull --rebase args..." with the same retry behavior as
// Clone. Exactly one rebase-mode flag must be present among args; anything
// else is a caller bug and fails before any process is spawned.
func (c *Client) Pull(args ...string) error {
	if err := checkRebaseFlag(args); err != nil {
		return err
	}
	return c.network(append([]string{c.bin(), "pull", "--rebase"}, args...))
}

// PullOrClone brings dir up to date with url: pull when dir is already a
// clone of url, otherwise (not a repository, different origin, or the pull
// failed short of a signal death) replace dir with a fresh clone.
func (c *Client) PullOrClone(url, dir string, args ...string) error {
	if IsCloned(dir) {
		origin, err := c.OriginURL(dir)
		if err == nil && origin == url {
			pullErr := c.pullIn(dir, args...)
			if pullErr == nil {
				return nil
			}
			if !retry.Retryable(pullErr) {
				return pullErr
			}
		}
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing %s before clone: %w", dir, err)
	}
	return c.Clone(append(append([]string{}, args...), url, dir)...)
}

// pullIn runs one non-retried pull inside dir. PullOrClone falls back to a
// clone on failure, so looping here would only delay that fallback.
func (c *Client) pullIn(dir string, args ...string) error {
	argv := append([]string{c.bin(), "-C", dir, "pull", "--rebase"}, args...)
	_, err := c.runner().Run(argv, c.speedEnv())
	return err
}

// Clean discards every local change in dir: tracked modifications via
// "reset --hard", then untracked files via "clean -xfd". Both commands are
// local one-shots; any failure is fatal, no retry.
func (c *Client) Clean(dir string) error {
	if _, err := c.runner().Run([]string{c.bin(), "-C", dir, "reset", "--hard"}, nil); err != nil {
		return err
	}
	_, err := c.runner().Run([]string{c.bin(), "-C", dir, "clean", "-xfd"}, nil)
	return err
}

// OriginURL returns the URL of dir's origin remote. The query is run
// without echoing so it stays silent on the caller's streams.
func (c *Client) OriginURL(dir string) (string, error) {
	quiet := *c.runner()
	quiet.Stdout = io.Discard
	quiet.Stderr = io.Discard
	res, err := quiet.Run([]string{c.bin(), "-C", dir, "remote", "get-url", "origin"}, nil)
	if err != nil {
		return "", fmt.Errorf("reading origin URL of %s: %w", dir, err)
	}
	return strings.TrimSpace(res.Stdout), nil
}

// IsCloned returns true if dir is a git repository.
func IsCloned(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir()
}

// network runs argv with the speed env overlay under the retry policy.
func (c *Client) network(argv []string) error {
	return c.Policy.Do(func() error {
		_, err := c.runner().Run(argv, c.speedEnv())
		return err
	})
}

func (c *Client) speedEnv() map[string]string {
	limit := c.SpeedLimit
	if limit <= 0 {
		limit = DefaultLowSpeedLimit
	}
	secs := c.SpeedTime
	if secs <= 0 {
		secs = DefaultLowSpeedTime
	}
	return map[string]string{
		lowSpeedLimitEnv: strconv.Itoa(limit),
		lowSpeedTimeEnv:  strconv.Itoa(secs),
	}
}

func checkRebaseFlag(args []string) error {
	n := 0
	for _, a := range args {
		for _, f := range rebaseFlags {
			if a == f {
				n++
			}
		}
	}
	if n != 1 {
		return fmt.Errorf("pull requires exactly one of %s (got %d)", strings.Join(rebaseFlags, ", "), n)
	}
	return nil
}

func (c *Client) bin() string {
	if c.Bin != "" {
		return c.Bin
	}
	return "git"
}

func (c *Client) runner() *proc.Runner {
	if c.Runner != nil {
		return c.Runner
	}
	return &proc.Runner{}
}
