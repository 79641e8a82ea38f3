// Package retry wraps a fallible operation in a fixed-backoff loop. By
// default the loop is unbounded: network hiccups are expected to clear
// eventually, and the intended outer bound is the operator killing the
// process. The one failure that is never retried is a child killed by a
// signal, since that signal almost certainly targeted the whole operation.
package retry
