//go:build integration_redis
// +build integration_redis

package rds

import (
	"context"
	"testing"
	"time"

	kit "inputdash/internal/platform/testkit"
)

func TestClient_Integration(t *testing.T) {
	addr := kit.StartRedis(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c, err := Open(ctx, Config{Addr: addr})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if _, ok, err := c.Get(ctx, "search:missing"); err != nil || ok {
		t.Fatalf("miss got ok=%v err=%v", ok, err)
	}
	if err := c.Set(ctx, "search:k", []byte(`{"total":3}`), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	b, ok, err := c.Get(ctx, "search:k")
	if err != nil || !ok || string(b) != `{"total":3}` {
		t.Fatalf("get got %q ok=%v err=%v", b, ok, err)
	}
}
