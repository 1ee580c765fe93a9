// Package cli implements the cargo-dot command-line interface.
//
// The single command reads a Cargo.lock, builds the dependency graph and
// writes it as Graphviz DOT (or SVG, PNG, PDF, JSON). Flags are bound into
// viper so each one can also be set from a CARGO_DOT_* environment variable.
//
// # Logging
//
// Log records go to stderr through charmbracelet/log; --verbose (-v) lowers
// the level to debug. The logger travels through context.Context so the
// pipeline stages log through the same instance.
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	root := c.RootCommand()
//	root.SetArgs(cli.StripSubcommand(os.Args[1:]))
//	err := root.ExecuteContext(ctx)
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
// Example output: "Wrote dependency graph (42 nodes, 97 edges) (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
