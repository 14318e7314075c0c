// Package batch builds named sub-queries into a single search round trip
package batch

import (
	"context"
	stderrs "errors"
	"fmt"
	"net"
	"strings"
	"time"

	perr "inputdash/internal/platform/errors"
	"inputdash/internal/platform/logger"

	"github.com/google/uuid"
)

// HardLimit is the backend cap on offset+limit for any sub-query
const HardLimit = 1000

// TimeoutMessage is the user facing text of a timed out batch
const TimeoutMessage = "Query has timed out."

const defaultLimit = 20

// Errors returned by the builder
var (
	ErrDuplicateName = stderrs.New("batch: duplicate query name")
	ErrExecuted      = stderrs.New("batch: already executed")
	ErrEmpty         = stderrs.New("batch: no queries")
	ErrFacetName     = stderrs.New("batch: facet name must be field or field__func__over")
)

// Batch accumulates sub-queries for one request. It is not safe for concurrent use.
type Batch struct {
	id      string
	index   string
	mode    MatchMode
	filters []Filter
	ranges  []Range
	queries []Query
	pos     map[string]int
	done    bool
}

// New starts a batch against index
func New(index string) *Batch {
	return &Batch{
		id:    uuid.NewString(),
		index: index,
		pos:   map[string]int{},
	}
}

// ID identifies the batch in logs
func (b *Batch) ID() string { return b.id }

// Len is the number of queries added so far
func (b *Batch) Len() int { return len(b.queries) }

// Queries returns a copy of the queries in submission order
func (b *Batch) Queries() []Query { return append([]Query(nil), b.queries...) }

// SetMatchMode applies to queries added afterwards
func (b *Batch) SetMatchMode(m MatchMode) { b.mode = m }

// SetFilter restricts field to values for queries added afterwards, replacing an earlier filter on field
func (b *Batch) SetFilter(field string, values ...int64) {
	f := Filter{Field: field, Values: append([]int64(nil), values...)}
	for i := range b.filters {
		if b.filters[i].Field == field {
			b.filters[i] = f
			return
		}
	}
	b.filters = append(b.filters, f)
}

// SetFilterRange restricts field to [lo, hi] for queries added afterwards
func (b *Batch) SetFilterRange(field string, lo, hi int64) {
	r := Range{Field: field, Lo: lo, Hi: hi}
	for i := range b.ranges {
		if b.ranges[i].Field == field {
			b.ranges[i] = r
			return
		}
	}
	b.ranges = append(b.ranges, r)
}

// Option shapes a single query
type Option func(*Query)

// WithSelect sets the select expression
func WithSelect(expr string) Option { return func(q *Query) { q.Select = expr } }

// WithWindow sets the result window
func WithWindow(offset, limit int) Option {
	return func(q *Query) { q.Offset, q.Limit = offset, limit }
}

// WithGroupBy groups the query on field ordered by order
func WithGroupBy(field, order string) Option {
	return func(q *Query) { q.GroupBy = &GroupBy{Field: field, Order: order} }
}

// WithSort sets an extended sort expression
func WithSort(expr string) Option { return func(q *Query) { q.Sort = expr } }

// Add appends a named query and returns its position
func (b *Batch) Add(name, term string, opts ...Option) (int, error) {
	if b.done {
		return 0, ErrExecuted
	}
	if _, ok := b.pos[name]; ok {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	q := Query{
		Name:    name,
		Index:   b.index,
		Term:    term,
		Mode:    b.mode,
		Select:  "*",
		Limit:   defaultLimit,
		Filters: cloneFilters(b.filters),
		Ranges:  append([]Range(nil), b.ranges...),
	}
	for _, o := range opts {
		o(&q)
	}
	i := len(b.queries)
	b.queries = append(b.queries, q)
	b.pos[name] = i
	return i, nil
}

// AddFacet appends a grouped count query named after its field.
// A name of the form field__func__over selects func(over) per group instead of a count.
func (b *Batch) AddFacet(name, term string) (int, error) {
	field := name
	sel := field + ", SUM(1) as count"
	var agg *Aggregate
	if strings.Contains(name, "__") {
		parts := strings.Split(name, "__")
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return 0, fmt.Errorf("%w: %q", ErrFacetName, name)
		}
		field = parts[0]
		agg = &Aggregate{Func: parts[1], Over: parts[2]}
		sel = fmt.Sprintf("%s, %s(%s * 1.0) as aggregate", field, parts[1], parts[2])
	}
	i, err := b.Add(name, term,
		WithSelect(sel),
		WithWindow(0, HardLimit),
		WithGroupBy(field, "@count DESC"),
	)
	if err != nil {
		return 0, err
	}
	b.queries[i].Aggregate = agg
	return i, nil
}

// Execute runs every query in one backend call. Any failure fails the whole batch.
func (b *Batch) Execute(ctx context.Context, be Backend) (Results, error) {
	if b.done {
		return Results{}, ErrExecuted
	}
	if len(b.queries) == 0 {
		return Results{}, ErrEmpty
	}
	b.done = true

	ctx = logger.WithBatch(ctx, b.id)
	log := logger.C(ctx)
	start := time.Now()

	res, err := be.Run(ctx, b.queries)
	elapsed := time.Since(start)
	if err != nil {
		err = Classify(err)
	} else {
		err = b.check(res)
	}
	if err != nil {
		log.Warn().Stack().Err(err).
			Str("class", perr.CodeOf(err).String()).
			Dur("elapsed", elapsed).
			Msg("search batch failed")
		return Results{}, err
	}

	log.Debug().
		Strs("queries", b.names()).
		Dur("elapsed", elapsed).
		Msg("search batch")
	return Results{pos: b.pos, res: res}, nil
}

func (b *Batch) check(res []Result) error {
	if len(res) != len(b.queries) {
		return perr.Searchf("search backend error: expected %d results, got %d", len(b.queries), len(res))
	}
	for i, r := range res {
		if r.Error != "" {
			return perr.WithOp(perr.Searchf("search backend error: %s", r.Error), b.queries[i].Name)
		}
	}
	return nil
}

func (b *Batch) names() []string {
	out := make([]string, len(b.queries))
	for i, q := range b.queries {
		out[i] = q.Name
	}
	return out
}

// Classify maps a backend error to the timeout or search classification
func Classify(err error) error {
	if err == nil {
		return nil
	}
	e, ok := perr.As(err)
	if ok && (e.Code() == perr.ErrorCodeTimeout || e.Code() == perr.ErrorCodeSearch) {
		return err
	}
	if IsTimeout(err) {
		return perr.Wrap(err, perr.ErrorCodeTimeout, TimeoutMessage)
	}
	if ok {
		return perr.WithOp(perr.Wrapf(err, perr.ErrorCodeSearch, "search backend error: %s", e.Message()), e.Op())
	}
	return perr.Wrapf(err, perr.ErrorCodeSearch, "search backend error: %v", err)
}

// IsTimeout reports deadline expiry or a network timeout anywhere in err's chain
func IsTimeout(err error) bool {
	if stderrs.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return stderrs.As(err, &ne) && ne.Timeout()
}

func cloneFilters(in []Filter) []Filter {
	out := make([]Filter, len(in))
	for i, f := range in {
		out[i] = Filter{Field: f.Field, Values: append([]int64(nil), f.Values...)}
	}
	return out
}

// Results are the answers of an executed batch
type Results struct {
	pos map[string]int
	res []Result
}

// ByName returns the result of the query added under name
func (r Results) ByName(name string) (Result, bool) {
	i, ok := r.pos[name]
	if !ok || i >= len(r.res) {
		return Result{}, false
	}
	return r.res[i], true
}

// At returns the result at submission position i
func (r Results) At(i int) Result { return r.res[i] }

// Len is the number of results
func (r Results) Len() int { return len(r.res) }
