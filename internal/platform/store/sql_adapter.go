package store

import (
	"context"
	"errors"

	"inputdash/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
)

// pool is the slice of *pgxpool.Pool the adapter uses
type pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// pgAdapter narrows a pool to Querier; tracing is installed on the pool itself
type pgAdapter struct{ p pool }

func newPGAdapter(p *pg.PG) *pgAdapter { return &pgAdapter{p: p.Pool} }

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil || a.p == nil {
		return errors.New("pg: nil adapter")
	}
	return a.p.Ping(ctx)
}

func (a *pgAdapter) Close() error {
	if a != nil && a.p != nil {
		a.p.Close()
	}
	return nil
}

func (a *pgAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := a.p.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgxRows{rs}, nil
}

// QueryRow hands back pgx's row; its Scan already matches Row
func (a *pgAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return a.p.QueryRow(ctx, sql, args...)
}

// pgxRows adds Columns on top of pgx.Rows
type pgxRows struct{ pgx.Rows }

func (r pgxRows) Columns() []string {
	fds := r.FieldDescriptions()
	names := make([]string, 0, len(fds))
	for _, fd := range fds {
		names = append(names, fd.Name)
	}
	return names
}
