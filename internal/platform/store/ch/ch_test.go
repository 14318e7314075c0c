package ch

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"inputdash/internal/core/version"
	kit "inputdash/internal/platform/testkit"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

func TestOpen_RejectsEmptyAndBadDSN(t *testing.T) {
	if _, err := Open(context.Background(), Config{}); err == nil {
		t.Fatalf("expected error for empty DSN")
	}
	if _, err := Open(context.Background(), Config{DSN: "::not a url"}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestOpen_PropagatesDialError(t *testing.T) {
	kit.Serial(t)
	var seen *clickhouse.Options
	kit.Swap(t, &openConn, func(o *clickhouse.Options) (driver.Conn, error) {
		seen = o
		return nil, errors.New("refused")
	})

	_, err := Open(context.Background(), Config{DSN: "clickhouse://localhost:9000/feedback", Role: "api", Tag: "t1"})
	if err == nil || !strings.Contains(err.Error(), "refused") {
		t.Fatalf("want dial error, got %v", err)
	}
	if seen == nil || seen.Auth.Database != "feedback" {
		t.Fatalf("options not parsed from DSN: %+v", seen)
	}
	if len(seen.ClientInfo.Products) == 0 || seen.ClientInfo.Products[0].Name != version.Service {
		t.Fatalf("client info not attached: %+v", seen.ClientInfo)
	}
}

func TestBuildClientInfo(t *testing.T) {
	ci := BuildClientInfo(" api ", "")
	got := map[string]string{}
	for _, p := range ci.Products {
		got[p.Name] = p.Version
	}
	if got["role"] != "api" {
		t.Fatalf("role not trimmed: %+v", ci.Products)
	}
	if _, ok := got["tag"]; ok {
		t.Fatalf("empty tag should be dropped: %+v", ci.Products)
	}
	if !strings.HasPrefix(got[version.Service], version.Info().Version+"+") || got["go"] == "" {
		t.Fatalf("build products missing: %+v", ci.Products)
	}
}

func TestWithDeadline(t *testing.T) {
	now := time.Now()
	if got := withDeadline(context.Background(), now); got != context.Background() {
		t.Fatalf("no deadline should pass ctx through")
	}

	ctx, cancel := context.WithDeadline(context.Background(), now.Add(2500*time.Millisecond))
	defer cancel()
	if got := withDeadline(ctx, now); got == ctx {
		t.Fatalf("deadline should attach query settings")
	}
	if _, ok := withDeadline(ctx, now).Deadline(); !ok {
		t.Fatalf("deadline lost")
	}
}
