// Package diag provides the one place this module logs from: a thin
// wrapper over log/slog. cmd/hotbench uses Progress for its progress
// output; Violation is offered for invariant traces, but no code in this
// module calls it. Nothing on hot.Map's hot path imports this package.
package diag

import (
	"log/slog"
	"os"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// SetLogger replaces the package-level logger, e.g. to route cmd/hotbench
// output through a different handler.
func SetLogger(l *slog.Logger) { logger = l }

// Violation logs an invariant violation before the caller panics. It never
// itself panics or returns an error; it is a diagnostic breadcrumb, not a
// control-flow mechanism.
func Violation(msg string, args ...any) {
	logger.Error(msg, args...)
}

// Progress logs a level-appropriate progress line, used by cmd/hotbench.
func Progress(msg string, args ...any) {
	logger.Info(msg, args...)
}
