// Package cli implements the talentmap command-line interface.
//
// The commands fetch the talent-map snapshot (from the platform API or a
// saved JSON file), lay it out as category-colored bubbles and either write
// the result to disk, print it as a ranked table, browse it interactively or
// serve it over HTTP. The CLI is built with cobra and logs through
// charmbracelet/log.
//
// # Commands
//
//   - render: write the bubble map as SVG, PNG, PDF, JSON or DOT
//   - list: print skills or languages ranked by count with bars
//   - categories: print the category filter choices
//   - browse: pick a category interactively, then render it
//   - serve: run the HTTP server
//   - cache: inspect and clean the local cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes human-readable lines with a short clock, e.g.
// "14:32:01.45 INFO render: fetched snapshot skills=12".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// commandLogger prefixes every line with the running subcommand.
func commandLogger(l *log.Logger, command string) *log.Logger {
	if command == "" || command == appName {
		return l
	}
	return l.WithPrefix(command)
}

// progress times one command and reports it when done.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the command logger, or log.Default() outside a
// command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
