package proc

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v3/process"
)

// Default supervision intervals. Overridable per Runner so tests can use
// millisecond-scale timeouts.
const (
	DefaultStuckTimeout = 60 * time.Second
	DefaultTermGrace    = 5 * time.Second
	DefaultSignalGrace  = 1 * time.Second
)

// Runner executes one child process at a time, synchronously. Output is
// echoed live to Stdout/Stderr while being captured, and a child whose
// streams both go silent for StuckTimeout is terminated.
//
// A Runner holds no state between runs and is safe for reuse, but callers
// operating on the same working directory must serialize themselves.
type Runner struct {
	StuckTimeout time.Duration // silence threshold; 0 means DefaultStuckTimeout
	TermGrace    time.Duration // how long to wait for a terminated child to exit
	SignalGrace  time.Duration // pause after observing a signal-killed exit

	Stdout io.Writer // echo target for the child's stdout; nil means os.Stdout
	Stderr io.Writer // echo target for the child's stderr; nil means os.Stderr

	Sleep func(time.Duration) // nil means time.Sleep
}

// Result is the outcome of one successful supervised run.
type Result struct {
	RunID  string
	Stdout string
	Stderr string
	Status ExitStatus
}

// Run spawns argv[0] with the remaining elements as arguments and extraEnv
// merged over the parent environment, then supervises it to completion.
//
// It fails with *StuckError when the child went silent and was terminated,
// with *CommandError when the child exited non-zero or died from a signal,
// and with a plain error when the child could not be spawned at all.
func (r *Runner) Run(argv []string, extraEnv map[string]string) (*Result, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty argv")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	if len(extraEnv) > 0 {
		env := os.Environ()
		for k, v := range extraEnv {
			env = append(env, k+"="+v)
		}
		cmd.Env = env
	}

	outPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	errPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", argv[0], err)
	}
	runID := uuid.New().String()

	stdout, stderr, stuck := drainStreams(outPipe, errPipe, r.echoOut(), r.echoErr(), r.stuckTimeout())
	if stuck {
		r.terminate(cmd, runID)
		return nil, &StuckError{Argv: argv, Timeout: r.stuckTimeout()}
	}

	waitErr := cmd.Wait()
	status, ok := exitStatusFrom(waitErr)
	if !ok {
		return nil, fmt.Errorf("waiting for %s: %w", argv[0], waitErr)
	}
	if status.Signaled() {
		// A signal that killed the child may have been aimed at our whole
		// process group. Give our own pending signal a moment to arrive
		// before handing control back to the caller.
		r.sleep(r.signalGrace())
	}
	if !status.Success() {
		return nil, &CommandError{Argv: argv, Status: status, Stdout: stdout, Stderr: stderr}
	}
	return &Result{RunID: runID, Stdout: stdout, Stderr: stderr, Status: status}, nil
}

// terminate sends SIGTERM to a stuck child and waits briefly for it to exit.
// A child that ignores the signal is reported and left behind; the run is
// already lost either way.
func (r *Runner) terminate(cmd *exec.Cmd, runID string) {
	pid := cmd.Process.Pid
	_, _ = fmt.Fprintf(r.echoErr(), "process stuck for %s, terminating (run %s)\n", r.stuckTimeout(), runID)
	_ = cmd.Process.Signal(syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(r.termGrace()):
		if alive, err := process.PidExists(int32(pid)); err == nil && alive {
			_, _ = fmt.Fprintf(r.echoErr(), "process %d ignored SIGTERM and is still running\n", pid)
		}
	}
}

func (r *Runner) stuckTimeout() time.Duration {
	if r.StuckTimeout > 0 {
		return r.StuckTimeout
	}
	return DefaultStuckTimeout
}

func (r *Runner) termGrace() time.Duration {
	if r.TermGrace > 0 {
		return r.TermGrace
	}
	return DefaultTermGrace
}

func (r *Runner) signalGrace() time.Duration {
	if r.SignalGrace > 0 {
		return r.SignalGrace
	}
	return DefaultSignalGrace
}

func (r *Runner) echoOut() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *Runner) echoErr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}

func (r *Runner) sleep(d time.Duration) {
	if r.Sleep != nil {
		r.Sleep(d)
		return
	}
	time.Sleep(d)
}
