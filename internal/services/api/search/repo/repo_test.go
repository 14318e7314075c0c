package repo

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	perr "inputdash/internal/platform/errors"
	"inputdash/internal/platform/store"
	"inputdash/internal/services/api/search/domain"
)

type fakeRows struct {
	data [][]any
	i    int
	err  error
}

func (r *fakeRows) Next() bool {
	if r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.i-1]
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = row[i].(int64)
		case *int:
			*p = row[i].(int)
		case *string:
			*p = row[i].(string)
		case *time.Time:
			*p = row[i].(time.Time)
		default:
			return errors.New("unexpected scan target")
		}
	}
	return nil
}

func (r *fakeRows) Err() error        { return r.err }
func (r *fakeRows) Close()            {}
func (r *fakeRows) Columns() []string { return nil }

type fakeQ struct {
	rows    *fakeRows
	err     error
	gotArgs []any
	calls   int
}

func (q *fakeQ) Query(_ context.Context, _ string, args ...any) (store.Rows, error) {
	q.calls++
	q.gotArgs = args
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func (q *fakeQ) QueryRow(context.Context, string, ...any) store.Row { return nil }

func opinionRow(id int64, typ int) []any {
	return []any{id, typ, 1, "4.0", "win7", "en-US", "", "", "text", "", time.Unix(1300000000, 0)}
}

func TestByIDs_ManualOrderDropsMissing(t *testing.T) {
	t.Parallel()
	q := &fakeQ{rows: &fakeRows{data: [][]any{opinionRow(3, 1), opinionRow(1, 2), opinionRow(2, 3)}}}
	r := NewPG().Bind(q)

	got, err := r.ByIDs(context.Background(), []int64{2, 9, 3, 1})
	if err != nil {
		t.Fatal(err)
	}
	ids := make([]int64, len(got))
	for i, o := range got {
		ids[i] = o.ID
	}
	if !slices.Equal(ids, []int64{2, 3, 1}) {
		t.Fatalf("order got %v", ids)
	}
	if got[0].Sentiment != "idea" || got[1].Sentiment != "praise" || got[2].Sentiment != "issue" {
		t.Fatalf("sentiments %q %q %q", got[0].Sentiment, got[1].Sentiment, got[2].Sentiment)
	}
	if arg, ok := q.gotArgs[0].([]int64); !ok || len(arg) != 4 {
		t.Fatalf("ids should be passed as one array arg, got %#v", q.gotArgs)
	}
}

func TestByIDs_EmptySkipsQuery(t *testing.T) {
	t.Parallel()
	q := &fakeQ{}
	got, err := NewPG().Bind(q).ByIDs(context.Background(), nil)
	if err != nil || got == nil || len(got) != 0 || q.calls != 0 {
		t.Fatalf("got %v %v calls=%d", got, err, q.calls)
	}
}

func TestByIDs_Errors(t *testing.T) {
	t.Parallel()
	q := &fakeQ{err: context.DeadlineExceeded}
	_, err := NewPG().Bind(q).ByIDs(context.Background(), []int64{1})
	if !perr.IsCode(err, perr.ErrorCodeTimeout) {
		t.Fatalf("deadline should map to timeout, got %v", err)
	}

	q = &fakeQ{rows: &fakeRows{err: errors.New("conn reset")}}
	_, err = NewPG().Bind(q).ByIDs(context.Background(), []int64{1})
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("rows error should map to db, got %v", err)
	}
}

func TestManualOrder(t *testing.T) {
	t.Parallel()
	got := ManualOrder([]int64{5, 4, 5}, map[int64]domain.Opinion{5: {ID: 5}, 4: {ID: 4}})
	if len(got) != 3 || got[0].ID != 5 || got[1].ID != 4 || got[2].ID != 5 {
		t.Fatalf("got %+v", got)
	}
}
