package repokit

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"inputdash/internal/platform/store"
	kit "inputdash/internal/platform/testkit"
)

type fakePinger struct {
	lastCtx context.Context
	err     error
}

func (f *fakePinger) Ping(ctx context.Context) error {
	f.lastCtx = ctx
	return f.err
}

type fakeGuard struct{ err error }

func (g fakeGuard) Guard(context.Context) error { return g.err }

type fakeQ struct{ store.Querier }

func panicMessage(t *testing.T, fn func()) (msg string) {
	t.Helper()
	defer func() {
		switch x := recover().(type) {
		case nil:
			t.Fatalf("expected panic")
		case string:
			msg = x
		case error:
			msg = x.Error()
		}
	}()
	fn()
	return ""
}

func TestMustPing(t *testing.T) {
	t.Parallel()
	if msg := panicMessage(t, func() { MustPing(context.Background(), "pg", nil) }); !strings.Contains(msg, "pg: nil dependency") {
		t.Fatalf("got %q", msg)
	}
	bad := &fakePinger{err: errors.New("refused")}
	if msg := panicMessage(t, func() { MustPing(context.Background(), "redis", bad) }); !strings.Contains(msg, "redis ping failed: refused") {
		t.Fatalf("got %q", msg)
	}

	ok := &fakePinger{}
	MustPing(context.Background(), "pg", ok)
	if _, has := ok.lastCtx.Deadline(); !has {
		t.Fatalf("MustPing should add a deadline")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	MustPing(ctx, "pg", ok)
	if dl, _ := ok.lastCtx.Deadline(); time.Until(dl) < 30*time.Second {
		t.Fatalf("existing deadline should be kept")
	}
}

func TestMustGuard(t *testing.T) {
	t.Parallel()
	kit.MustNotPanic(t, func() { MustGuard(context.Background(), fakeGuard{}) })
	if msg := panicMessage(t, func() { MustGuard(context.Background(), fakeGuard{err: errors.New("pg down")}) }); !strings.Contains(msg, "pg down") {
		t.Fatalf("got %q", msg)
	}
}

func TestPingAll(t *testing.T) {
	t.Parallel()
	pg := &fakePinger{}
	res := PingAll(context.Background(), map[string]store.Pinger{
		"search": &fakePinger{err: errors.New("timeout")},
		"pg":     pg,
	})
	if len(res) != 2 || res[0].Name != "pg" || res[0].Err != nil || res[1].Name != "search" || res[1].Err == nil {
		t.Fatalf("got %+v", res)
	}
	if _, ok := pg.lastCtx.Deadline(); !ok {
		t.Fatalf("each ping should be bounded")
	}
	if len(PingAll(context.Background(), nil)) != 0 {
		t.Fatalf("nil map gives no results")
	}
}

func TestBind(t *testing.T) {
	t.Parallel()
	type repo struct{ q Queryer }
	b := BindFunc[repo](func(q Queryer) repo { return repo{q: q} })
	q := fakeQ{}
	if got := MustBind[repo](b, q); got.q != q {
		t.Fatalf("bind lost the queryer")
	}
	kit.MustPanic(t, func() { MustBind[repo](b, nil) })
}
