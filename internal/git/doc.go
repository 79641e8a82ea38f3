// Package git exposes the small set of robust git operations: clone and
// pull retry forever on transient failures and stuck transfers, clean runs
// one-shot. It composes the supervised runner from internal/proc with the
// retry policy from internal/retry and knows nothing about either beyond
// their contracts.
package git
