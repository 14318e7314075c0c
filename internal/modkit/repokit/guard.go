package repokit

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"inputdash/internal/platform/store"

	"golang.org/x/sync/errgroup"
)

const defaultPingTimeout = 5 * time.Second

type guarder interface {
	Guard(context.Context) error
}

// MustPing panics if a dependency doesn't answer a Ping within timeout
func MustPing(ctx context.Context, name string, p store.Pinger) {
	if p == nil {
		panic(fmt.Sprintf("%s: nil dependency", name))
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultPingTimeout)
		defer cancel()
	}
	if err := p.Ping(ctx); err != nil {
		panic(fmt.Sprintf("%s ping failed: %v", name, err))
	}
}

// MustGuard runs store.Guard and panics on any error
func MustGuard(ctx context.Context, st guarder) {
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}

// PingResult is the outcome of one dependency ping
type PingResult struct {
	Name string
	Err  error
}

// PingAll pings every dependency concurrently, each bounded by the default ping
// timeout, and reports in name order. It waits for all of them.
func PingAll(ctx context.Context, ps map[string]store.Pinger) []PingResult {
	names := slices.Sorted(maps.Keys(ps))
	out := make([]PingResult, len(names))
	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			pctx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
			defer cancel()
			out[i] = PingResult{Name: name, Err: ps[name].Ping(pctx)}
			return nil
		})
	}
	_ = g.Wait()
	return out
}
