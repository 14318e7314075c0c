package store

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type stubPgxRows struct {
	pgx.Rows
	fields []pgconn.FieldDescription
}

func (r stubPgxRows) FieldDescriptions() []pgconn.FieldDescription { return r.fields }

type stubPool struct {
	rows    pgx.Rows
	err     error
	pingErr error
	closed  bool
	sql     string
}

func (p *stubPool) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	p.sql = sql
	return p.rows, p.err
}
func (p *stubPool) QueryRow(context.Context, string, ...any) pgx.Row { return nil }
func (p *stubPool) Ping(context.Context) error                       { return p.pingErr }
func (p *stubPool) Close()                                           { p.closed = true }

func TestPGAdapter(t *testing.T) {
	t.Parallel()
	sp := &stubPool{rows: stubPgxRows{fields: []pgconn.FieldDescription{{Name: "id"}, {Name: "description"}}}}
	a := &pgAdapter{p: sp}

	rs, err := a.Query(context.Background(), "select id, description from feedback_opinion")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if got := rs.Columns(); !slices.Equal(got, []string{"id", "description"}) {
		t.Fatalf("Columns = %v", got)
	}
	if sp.sql == "" {
		t.Fatalf("sql not forwarded")
	}

	boom := errors.New("boom")
	sp.err = boom
	if rs, err := a.Query(context.Background(), "select 1"); !errors.Is(err, boom) || rs != nil {
		t.Fatalf("Query err = %v rows = %v", err, rs)
	}

	sp.pingErr = boom
	if err := a.Ping(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Ping = %v", err)
	}
	if err := a.Close(); err != nil || !sp.closed {
		t.Fatalf("Close = %v closed=%v", err, sp.closed)
	}

	var nilA *pgAdapter
	if err := nilA.Ping(context.Background()); err == nil {
		t.Fatalf("nil adapter should fail ping")
	}
}
