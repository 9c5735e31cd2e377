// Package report defines the logging collaborator the conversion pipeline
// reports through. Callers supply a Reporter; nothing in this module writes
// to a process-wide logger.
package report

import (
	"log/slog"
	"os"
)

// Reporter receives progress and problem notifications. Args are alternating
// key/value pairs, slog style.
type Reporter interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type slogReporter struct {
	l *slog.Logger
}

// NewSlog wraps an *slog.Logger as a Reporter. A nil logger falls back to a
// text handler on stderr.
func NewSlog(l *slog.Logger) Reporter {
	if l == nil {
		l = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &slogReporter{l: l}
}

func (r *slogReporter) Info(msg string, args ...any)  { r.l.Info(msg, args...) }
func (r *slogReporter) Warn(msg string, args ...any)  { r.l.Warn(msg, args...) }
func (r *slogReporter) Error(msg string, args ...any) { r.l.Error(msg, args...) }

// Discard is a Reporter that drops everything.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Info(string, ...any)  {}
func (discard) Warn(string, ...any)  {}
func (discard) Error(string, ...any) {}
