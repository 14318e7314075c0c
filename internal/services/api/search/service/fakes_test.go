package service

import (
	"context"
	"sync"
	"time"

	"inputdash/internal/core/batch"
	"inputdash/internal/core/catcode"
	"inputdash/internal/core/filters"
	"inputdash/internal/core/vocab"
	kit "inputdash/internal/platform/testkit"
	"inputdash/internal/services/api/search/domain"
)

// fakeBackend answers each query by name and records what it was sent
type fakeBackend struct {
	mu      sync.Mutex
	byName  map[string]batch.Result
	err     error
	block   bool
	runs    int
	queries []batch.Query
}

func (f *fakeBackend) Run(ctx context.Context, qs []batch.Query) ([]batch.Result, error) {
	f.mu.Lock()
	f.runs++
	f.queries = qs
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	out := make([]batch.Result, len(qs))
	for i, q := range qs {
		out[i] = f.byName[q.Name]
	}
	return out, nil
}

func (f *fakeBackend) query(name string) (batch.Query, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, q := range f.queries {
		if q.Name == name {
			return q, true
		}
	}
	return batch.Query{}, false
}

type fakeResolver struct {
	calls int
	err   error
}

func (r *fakeResolver) ByIDs(_ context.Context, ids []int64) ([]domain.Opinion, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.Opinion, len(ids))
	for i, id := range ids {
		out[i] = domain.Opinion{ID: id, Type: vocab.Issue.ID, Sentiment: vocab.Issue.Short}
	}
	return out, nil
}

type fakeCache struct {
	mu   sync.Mutex
	m    map[string][]byte
	ttl  time.Duration
	gets int
	sets int
	err  error
}

func newFakeCache() *fakeCache { return &fakeCache{m: map[string][]byte{}} }

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.err != nil {
		return nil, false, c.err
	}
	b, ok := c.m[key]
	return b, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.err != nil {
		return c.err
	}
	c.m[key] = val
	c.ttl = ttl
	return nil
}

func (c *fakeCache) Close() error { return nil }

func matches(ids ...int64) []batch.Match {
	out := make([]batch.Match, len(ids))
	for i, id := range ids {
		out[i] = batch.Match{ID: id, Attrs: map[string]int64{}}
	}
	return out
}

func grouped(field string, rows ...[2]int64) []batch.Match {
	out := make([]batch.Match, len(rows))
	for i, r := range rows {
		out[i] = batch.Match{Attrs: map[string]int64{field: r[0], "count": r[1]}}
	}
	return out
}

func code(s string) int64 { return int64(catcode.Of(s)) }

// today is the fixed day every service test runs on
var today = kit.Date(2011, time.May, 20, time.UTC)

func testClock() filters.Clock {
	return filters.Clock{Now: kit.FixedClock(today.Add(15 * time.Hour)).Now, Loc: time.UTC}
}

func newSearcher(be batch.Backend, r Resolver) *Searcher {
	return &Searcher{Backend: be, Resolver: r, Vocab: vocab.Static(), Clock: testClock(), Index: "opinions"}
}
