package retry

import (
	"errors"
	"fmt"
	"time"

	"github.com/fpemud/robust-git/internal/proc"
)

// DefaultBackoff is the fixed pause between attempts.
const DefaultBackoff = 1 * time.Second

// Attempt describes one failed attempt that is about to be retried.
type Attempt struct {
	N       int // 1-based attempt number
	Err     error
	Backoff time.Duration
}

// Policy drives the retry loop. The zero value retries forever with the
// default backoff using real sleeps.
type Policy struct {
	Backoff     time.Duration       // pause between attempts; 0 means DefaultBackoff
	MaxAttempts int                 // safety valve for embedders; 0 means unbounded
	Sleep       func(time.Duration) // nil means time.Sleep
	Notify      func(Attempt)       // called before each backoff sleep; may be nil
}

// Do invokes op until it succeeds or fails in a way that is not retryable.
//
// Known limitation, kept on purpose: every non-signal exit failure is
// treated as transient, so a permanent error (say, a repository that does
// not exist) retries forever unless MaxAttempts is set.
func (p Policy) Do(op func() error) error {
	backoff := p.Backoff
	if backoff <= 0 {
		backoff = DefaultBackoff
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	for n := 1; ; n++ {
		err := op()
		if err == nil {
			return nil
		}
		if !Retryable(err) {
			return err
		}
		if p.MaxAttempts > 0 && n >= p.MaxAttempts {
			return fmt.Errorf("giving up after %d attempts: %w", n, err)
		}
		if p.Notify != nil {
			p.Notify(Attempt{N: n, Err: err, Backoff: backoff})
		}
		sleep(backoff)
	}
}

// Retryable reports whether the loop should try again after err. Stuck
// children and non-signal exit failures are retryable; a signal-killed child
// is not, and neither is anything else (a missing binary, a pipe failure).
func Retryable(err error) bool {
	var stuck *proc.StuckError
	if errors.As(err, &stuck) {
		return true
	}
	var cmdErr *proc.CommandError
	if errors.As(err, &cmdErr) {
		return !cmdErr.Status.Signaled()
	}
	return false
}
