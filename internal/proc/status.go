package proc

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// ExitStatus records how a child exited, normalized to the shell convention:
// codes above 128 mean the child died from signal code-128.
type ExitStatus struct {
	Code int
}

// Success reports whether the child exited with code 0.
func (s ExitStatus) Success() bool { return s.Code == 0 }

// Signaled reports whether the child was killed by a signal.
func (s ExitStatus) Signaled() bool { return s.Code > 128 }

// Signal returns the signal number that killed the child, or 0 if the child
// was not signaled.
func (s ExitStatus) Signal() int {
	if !s.Signaled() {
		return 0
	}
	return s.Code - 128
}

func (s ExitStatus) String() string {
	switch {
	case s.Success():
		return "exit 0"
	case s.Signaled():
		return fmt.Sprintf("killed by signal %d (exit %d)", s.Signal(), s.Code)
	default:
		return fmt.Sprintf("exit %d", s.Code)
	}
}

// exitStatusFrom maps the error from Cmd.Wait onto an ExitStatus. A child
// killed directly by a signal is reported by the runtime through the wait
// status rather than a >128 exit code, so both forms are folded into one.
// ok is false when err is not an exit at all (spawn or wait failure).
func exitStatusFrom(err error) (status ExitStatus, ok bool) {
	if err == nil {
		return ExitStatus{}, true
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return ExitStatus{}, false
	}
	if ws, isWait := exitErr.ProcessState.Sys().(syscall.WaitStatus); isWait && ws.Signaled() {
		return ExitStatus{Code: 128 + int(ws.Signal())}, true
	}
	return ExitStatus{Code: exitErr.ProcessState.ExitCode()}, true
}

// StuckError reports a child that produced no output on either stream for
// the whole stuck timeout and was terminated.
type StuckError struct {
	Argv    []string
	Timeout time.Duration
}

func (e *StuckError) Error() string {
	return fmt.Sprintf("command %q stuck for %s, terminated", strings.Join(e.Argv, " "), e.Timeout)
}

// CommandError reports a child that exited unsuccessfully. The captured
// output is attached for diagnostics.
type CommandError struct {
	Argv   []string
	Status ExitStatus
	Stdout string
	Stderr string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q failed: %s", strings.Join(e.Argv, " "), e.Status)
}
