// Package pg opens the pgxpool behind the opinion row store.
//
// Statement tracing hooks into pgx itself, so every Query, QueryRow and Exec
// issued through the pool is reported once its rows are closed.
package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures the pool
type Config struct {
	URL      string
	MaxConns int32
}

// PG owns the pool
type PG struct {
	Pool *pgxpool.Pool
}

// Option adjusts the parsed pool config before connecting
type Option func(*pgxpool.Config)

// WithTracer reports every statement to t, flagging those at or over slowMs;
// a negative slowMs disables the flag
func WithTracer(t QueryTracer, slowMs int) Option {
	return func(pc *pgxpool.Config) {
		if t != nil {
			pc.ConnConfig.Tracer = &hook{out: t, slowMs: slowMs}
		}
	}
}

// WithAppName sets application_name so sessions are attributable in pg_stat_activity
func WithAppName(name string) Option {
	return func(pc *pgxpool.Config) {
		if name != "" {
			pc.ConnConfig.RuntimeParams["application_name"] = name
		}
	}
}

var newPool = pgxpool.NewWithConfig // seam

// Open parses cfg.URL, applies opts in order and builds the pool without pinging
func Open(ctx context.Context, cfg Config, opts ...Option) (*PG, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	for _, o := range opts {
		o(pcfg)
	}
	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, err
	}
	return &PG{Pool: pool}, nil
}

// Close closes the pool
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}

type traceKey struct{}

type started struct {
	sql  string
	args []any
	at   time.Time
}

// hook adapts QueryTracer to pgx.QueryTracer
type hook struct {
	out    QueryTracer
	slowMs int
	now    func() time.Time
}

func (h *hook) clock() time.Time {
	if h.now != nil {
		return h.now()
	}
	return time.Now()
}

func (h *hook) TraceQueryStart(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, started{sql: d.SQL, args: d.Args, at: h.clock()})
}

func (h *hook) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryEndData) {
	s, ok := ctx.Value(traceKey{}).(started)
	if !ok {
		return
	}
	us := h.clock().Sub(s.at).Microseconds()
	h.out.OnQuery(ctx, QueryEvent{
		SQL:       s.sql,
		Args:      s.args,
		ElapsedUS: us,
		Err:       d.Err,
		Slow:      h.slowMs >= 0 && us >= int64(h.slowMs)*1000,
	})
}
