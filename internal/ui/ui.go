// Package ui renders the few human-facing messages robustgit prints around
// the raw child output: retry notices, warnings, and the doctor table.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	retryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // yellow
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // red
)

// Printer writes status messages. Styling is applied only when enabled,
// which callers typically tie to stderr being a terminal.
type Printer struct {
	mu    sync.Mutex
	out   io.Writer
	color bool
}

// NewPrinter creates a printer writing to out, with color on or off.
func NewPrinter(out io.Writer, color bool) *Printer {
	return &Printer{out: out, color: color}
}

// Retryf prints a retry notice.
func (p *Printer) Retryf(format string, args ...any) {
	p.print(retryStyle, format, args...)
}

// Errorf prints an error notice.
func (p *Printer) Errorf(format string, args ...any) {
	p.print(errStyle, format, args...)
}

// Infof prints an unstyled message.
func (p *Printer) Infof(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) print(style lipgloss.Style, format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	if p.color {
		msg = style.Render(msg)
	}
	_, _ = fmt.Fprintln(p.out, msg)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
