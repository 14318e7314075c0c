package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	kit "inputdash/internal/platform/testkit"
)

type fakeRows struct {
	cols []string
	data [][]any
	i    int
	err  error
	scan error
	shut bool
}

func (r *fakeRows) Next() bool {
	if r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.scan != nil {
		return r.scan
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.data[r.i-1][i].(int64)
		case *string:
			*p = r.data[r.i-1][i].(string)
		}
	}
	return nil
}

func (r *fakeRows) Err() error        { return r.err }
func (r *fakeRows) Close()            { r.shut = true }
func (r *fakeRows) Columns() []string { return r.cols }

type fakeQ struct {
	rows *fakeRows
	err  error
	sql  string
}

func (q *fakeQ) Query(_ context.Context, sql string, _ ...any) (Rows, error) {
	q.sql = sql
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func (q *fakeQ) QueryRow(context.Context, string, ...any) Row { return q.rows }

type pair struct {
	ID   int64
	Body string
}

func scanPair(r Row) (pair, error) {
	var p pair
	err := r.Scan(&p.ID, &p.Body)
	return p, err
}

func TestMany(t *testing.T) {
	t.Parallel()
	rows := &fakeRows{data: [][]any{{int64(1), "a"}, {int64(2), "b"}}}
	got, err := Many(context.Background(), &fakeQ{rows: rows}, scanPair, "select id, body from t")
	if err != nil {
		t.Fatalf("Many: %v", err)
	}
	if len(got) != 2 || got[1] != (pair{2, "b"}) || !rows.shut {
		t.Fatalf("got %+v closed=%v", got, rows.shut)
	}
}

func TestMany_Errors(t *testing.T) {
	t.Parallel()
	if _, err := Many(context.Background(), &fakeQ{err: errors.New("q")}, scanPair, "x"); err == nil {
		t.Fatalf("query error not returned")
	}
	rows := &fakeRows{data: [][]any{{int64(1), "a"}}, scan: errors.New("scan")}
	if _, err := Many(context.Background(), &fakeQ{rows: rows}, scanPair, "x"); err == nil {
		t.Fatalf("scan error not returned")
	}
	rows = &fakeRows{err: errors.New("iter")}
	if _, err := Many(context.Background(), &fakeQ{rows: rows}, scanPair, "x"); err == nil {
		t.Fatalf("iterator error not returned")
	}
}

type fakeCache struct {
	closed bool
	ping   error
}

func (c *fakeCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (c *fakeCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (c *fakeCache) Close() error                                             { c.closed = true; return nil }
func (c *fakeCache) Ping(context.Context) error                               { return c.ping }

func TestOpen_WiresEnabledBackends(t *testing.T) {
	kit.Serial(t)
	cache := &fakeCache{}
	kit.Swap(t, &openRDSFn, func(context.Context, Config, *Store) (Cache, error) { return cache, nil })
	kit.Swap(t, &openPGFn, func(context.Context, Config, *Store) (Querier, error) {
		t.Fatalf("pg should not open when disabled")
		return nil, nil
	})

	s, err := Open(context.Background(), Config{RDS: RedisConfig{Enabled: true}})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.RDS != cache || s.PG != nil || s.CH != nil {
		t.Fatalf("unexpected wiring: %+v", s)
	}
	if err := s.Close(context.Background()); err != nil || !cache.closed {
		t.Fatalf("Close err=%v closed=%v", err, cache.closed)
	}
}

func TestOpen_ClosesOnLaterFailure(t *testing.T) {
	kit.Serial(t)
	kit.Swap(t, &openRDSFn, func(context.Context, Config, *Store) (Cache, error) { return nil, errors.New("redis down") })
	kit.Swap(t, &openCHFn, func(context.Context, Config, *Store) (Clickhouse, error) {
		return newCHAdapter(&fakeConn{}), nil
	})

	_, err := Open(context.Background(), Config{CH: CHConfig{Enabled: true}, RDS: RedisConfig{Enabled: true}})
	if err == nil || !strings.Contains(err.Error(), "redis down") {
		t.Fatalf("want redis error, got %v", err)
	}
}

func TestGuard(t *testing.T) {
	t.Parallel()
	var nilStore *Store
	if nilStore.Guard(context.Background()) == nil {
		t.Fatalf("nil store should fail guard")
	}

	s := &Store{RDS: &fakeCache{ping: errors.New("nope")}, CH: newCHAdapter(&fakeConn{})}
	err := s.Guard(context.Background())
	if err == nil || !strings.Contains(err.Error(), "redis: nope") {
		t.Fatalf("guard got %v", err)
	}

	if err := (&Store{}).Guard(context.Background()); err != nil {
		t.Fatalf("empty store guard got %v", err)
	}
}

type closeRecorder struct {
	fakeQ
	name  string
	order *[]string
}

func (c *closeRecorder) Close() error { *c.order = append(*c.order, c.name); return nil }

type recordingCache struct {
	fakeCache
	order *[]string
}

func (c *recordingCache) Close() error { *c.order = append(*c.order, "redis"); return nil }

func TestClose_ReverseOpenOrder(t *testing.T) {
	t.Parallel()
	var order []string
	s := &Store{
		PG:  &closeRecorder{name: "pg", order: &order},
		RDS: &recordingCache{order: &order},
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if strings.Join(order, ",") != "redis,pg" {
		t.Fatalf("close order %v", order)
	}
}

func TestKeyed(t *testing.T) {
	t.Parallel()
	rows := &fakeRows{data: [][]any{{int64(1), "a"}, {int64(2), "b"}, {int64(1), "c"}}}
	got, err := Keyed(context.Background(), &fakeQ{rows: rows}, scanPair, func(p pair) int64 { return p.ID }, "x")
	if err != nil {
		t.Fatalf("Keyed: %v", err)
	}
	if len(got) != 2 || got[1].Body != "c" || got[2].Body != "b" || !rows.shut {
		t.Fatalf("got %+v", got)
	}
	if _, err := Keyed(context.Background(), &fakeQ{err: errors.New("q")}, scanPair, func(p pair) int64 { return p.ID }, "x"); err == nil {
		t.Fatalf("query error not returned")
	}
}
