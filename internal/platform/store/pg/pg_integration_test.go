//go:build integration_pg
// +build integration_pg

package pg

import (
	"context"
	"testing"
	"time"

	kit "inputdash/internal/platform/testkit"
)

func TestOpen_Integration(t *testing.T) {
	dsn := kit.StartPostgres(t)

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	const appName = "inputdash-pg-integration"
	var traced []string
	p, err := Open(ctx, Config{URL: dsn, MaxConns: 2},
		WithAppName(appName),
		WithTracer(QueryTracerFunc(func(_ context.Context, ev QueryEvent) { traced = append(traced, ev.SQL) }), -1),
	)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(p.Close)

	var got string
	if err := p.Pool.QueryRow(ctx, `select current_setting('application_name')`).Scan(&got); err != nil {
		t.Fatalf("query: %v", err)
	}
	if got != appName {
		t.Fatalf("application_name got %q want %q", got, appName)
	}
	if p.Pool.Config().MaxConns != 2 {
		t.Fatalf("max conns not applied")
	}
	if len(traced) == 0 {
		t.Fatalf("tracer saw no statements")
	}
}
