// Package proc runs a single child process under supervision: both output
// streams are echoed to the parent and captured, and a child that stops
// producing output for longer than a configured threshold is terminated
// instead of blocking the caller forever.
package proc
