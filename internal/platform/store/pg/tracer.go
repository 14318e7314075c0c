package pg

import (
	"context"
	"strings"

	"inputdash/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent describes one finished statement
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives an event per statement
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// QueryTracerFunc adapts a function to QueryTracer
type QueryTracerFunc func(context.Context, QueryEvent)

// OnQuery calls f
func (f QueryTracerFunc) OnQuery(ctx context.Context, ev QueryEvent) { f(ctx, ev) }

// Tracer logs statements through a child of root pinned to debug, so SQL
// shows up whatever the process level is. Slow or failed statements log at warn.
func Tracer(root logger.Logger) QueryTracer {
	l := root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()
	return QueryTracerFunc(func(_ context.Context, ev QueryEvent) {
		e := l.Info()
		if ev.Slow || ev.Err != nil {
			e = l.Warn()
		}
		e.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
			Bool("slow", ev.Slow).
			Str("sql", compact(ev.SQL)).
			Interface("args", ev.Args).
			Err(ev.Err).
			Msg("pg query")
	})
}

// compact folds runs of whitespace so multi-line SQL logs on one line
func compact(s string) string { return strings.Join(strings.Fields(s), " ") }
