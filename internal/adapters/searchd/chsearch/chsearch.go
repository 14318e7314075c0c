// Package chsearch runs query batches as SQL against a ClickHouse opinions table.
// The table carries the same integer attributes as the search index plus the text column.
package chsearch

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"inputdash/internal/core/batch"
	"inputdash/internal/platform/logger"
	"inputdash/internal/platform/store"

	"golang.org/x/sync/errgroup"
)

// DefaultTextField is the column full text terms are matched against
const DefaultTextField = "description"

var ident = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var aggFuncs = map[string]string{"avg": "avg", "sum": "sum", "min": "min", "max": "max"}

// DefaultParallel bounds how many queries of one batch run at once
const DefaultParallel = 4

// Backend implements batch.Backend over the clickhouse seam
type Backend struct {
	ch        store.Clickhouse
	textField string
	parallel  int
}

var _ batch.Backend = (*Backend)(nil)

// Option tunes a Backend
type Option func(*Backend)

// WithParallel caps concurrent queries per batch; n < 1 means one at a time
func WithParallel(n int) Option { return func(b *Backend) { b.parallel = max(n, 1) } }

// New wraps an open clickhouse seam
func New(ch store.Clickhouse, textField string, opts ...Option) *Backend {
	if ch == nil {
		panic("chsearch: nil clickhouse")
	}
	if textField == "" {
		textField = DefaultTextField
	}
	b := &Backend{ch: ch, textField: textField, parallel: DefaultParallel}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Ping forwards to the seam when it can ping
func (b *Backend) Ping(ctx context.Context) error {
	if p, ok := b.ch.(store.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

type statement struct {
	sql  string
	args []any
}

// Run builds every statement first, so a bad identifier sends nothing, then
// runs them concurrently up to the parallel limit. The first failure cancels
// the rest and fails the batch; results keep query order.
func (b *Backend) Run(ctx context.Context, queries []batch.Query) ([]batch.Result, error) {
	stmts := make([]statement, len(queries))
	for i, q := range queries {
		sql, args, err := b.build(q)
		if err != nil {
			return nil, fmt.Errorf("chsearch: %s: %w", q.Name, err)
		}
		stmts[i] = statement{sql, args}
	}

	log := logger.C(ctx)
	out := make([]batch.Result, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.parallel)
	for i, q := range queries {
		g.Go(func() error {
			log.Trace().Str("query", q.Name).Str("sql", stmts[i].sql).Msg("clickhouse search")
			res, err := b.run(gctx, q, stmts[i].sql, stmts[i].args)
			if err != nil {
				return fmt.Errorf("chsearch: %s: %w", q.Name, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *Backend) run(ctx context.Context, q batch.Query, sql string, args []any) (batch.Result, error) {
	rows, err := b.ch.Query(ctx, sql, args...)
	if err != nil {
		return batch.Result{}, err
	}
	defer rows.Close()

	res := batch.Result{Matches: []batch.Match{}}
	for rows.Next() {
		var m batch.Match
		var total int64
		switch {
		case q.GroupBy == nil:
			err = rows.Scan(&m.ID, &total)
		case q.Aggregate != nil:
			var key, count int64
			err = rows.Scan(&key, &count, &m.Aggregate, &total)
			m.Attrs = map[string]int64{q.GroupBy.Field: key, "count": count}
		default:
			var key, count int64
			err = rows.Scan(&key, &count, &total)
			m.Attrs = map[string]int64{q.GroupBy.Field: key, "count": count}
		}
		if err != nil {
			return batch.Result{}, fmt.Errorf("scan: %w", err)
		}
		res.TotalFound = total
		res.Matches = append(res.Matches, m)
	}
	if err := rows.Err(); err != nil {
		return batch.Result{}, err
	}
	return res, nil
}

func (b *Backend) build(q batch.Query) (string, []any, error) {
	if !ident.MatchString(q.Index) {
		return "", nil, fmt.Errorf("bad table %q", q.Index)
	}
	where, args, err := b.where(q)
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	if q.GroupBy != nil {
		g := q.GroupBy.Field
		if !ident.MatchString(g) {
			return "", nil, fmt.Errorf("bad group field %q", g)
		}
		fmt.Fprintf(&sb, "SELECT toInt64(%s) AS key, toInt64(count()) AS count", g)
		if a := q.Aggregate; a != nil {
			fn, ok := aggFuncs[strings.ToLower(a.Func)]
			if !ok || !ident.MatchString(a.Over) {
				return "", nil, fmt.Errorf("bad aggregate %s(%s)", a.Func, a.Over)
			}
			fmt.Fprintf(&sb, ", toFloat64(%s(%s * 1.0)) AS aggregate", fn, a.Over)
		}
		fmt.Fprintf(&sb, ", toInt64(count() OVER ()) AS total FROM %s%s GROUP BY key", q.Index, where)
		if o := groupOrder(q.GroupBy.Order); o != "" {
			sb.WriteString(" ORDER BY " + o)
		}
	} else {
		fmt.Fprintf(&sb, "SELECT toInt64(id) AS id, toInt64(count() OVER ()) AS total FROM %s%s", q.Index, where)
		o, err := orderBy(q.Sort)
		if err != nil {
			return "", nil, err
		}
		if o != "" {
			sb.WriteString(" ORDER BY " + o)
		}
	}
	sb.WriteString(" LIMIT ? OFFSET ?")
	args = append(args, q.Limit, q.Offset)
	return sb.String(), args, nil
}

func (b *Backend) where(q batch.Query) (string, []any, error) {
	var conds []string
	var args []any

	for _, f := range q.Filters {
		if !ident.MatchString(f.Field) {
			return "", nil, fmt.Errorf("bad filter field %q", f.Field)
		}
		if len(f.Values) == 0 {
			conds = append(conds, "0")
			continue
		}
		marks := strings.TrimSuffix(strings.Repeat("?, ", len(f.Values)), ", ")
		conds = append(conds, fmt.Sprintf("%s IN (%s)", f.Field, marks))
		for _, v := range f.Values {
			args = append(args, v)
		}
	}
	for _, r := range q.Ranges {
		if !ident.MatchString(r.Field) {
			return "", nil, fmt.Errorf("bad range field %q", r.Field)
		}
		conds = append(conds, r.Field+" BETWEEN ? AND ?")
		args = append(args, r.Lo, r.Hi)
	}

	if c, a := b.match(q.Mode, strings.TrimSpace(q.Term)); c != "" {
		conds = append(conds, c)
		args = append(args, a...)
	}
	if len(conds) == 0 {
		return "", args, nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

// match approximates the match modes with case insensitive substring tests.
// In the word modes a leading - or ! excludes the word.
func (b *Backend) match(mode batch.MatchMode, term string) (string, []any) {
	if term == "" {
		return "", nil
	}
	has := fmt.Sprintf("positionCaseInsensitiveUTF8(%s, ?) > 0", b.textField)
	hasNot := fmt.Sprintf("positionCaseInsensitiveUTF8(%s, ?) = 0", b.textField)

	if mode == batch.MatchPhrase {
		return has, []any{strings.Trim(term, `"`)}
	}

	var conds []string
	var args []any
	for _, w := range strings.Fields(term) {
		if w == "|" || w == "&" {
			continue
		}
		neg := strings.HasPrefix(w, "-") || strings.HasPrefix(w, "!")
		w = strings.Trim(w, `-!+"()`)
		if w == "" {
			continue
		}
		if neg && mode != batch.MatchAny {
			conds = append(conds, hasNot)
		} else {
			conds = append(conds, has)
		}
		args = append(args, w)
	}
	if len(conds) == 0 {
		return "", nil
	}
	sep := " AND "
	if mode == batch.MatchAny {
		sep = " OR "
	}
	return "(" + strings.Join(conds, sep) + ")", args
}

// groupOrder maps "@count DESC" style expressions onto the selected columns
func groupOrder(expr string) string {
	f := strings.Fields(expr)
	if len(f) == 0 {
		return ""
	}
	dir := "ASC"
	if len(f) > 1 && strings.EqualFold(f[1], "desc") {
		dir = "DESC"
	}
	switch strings.ToLower(f[0]) {
	case "@count":
		return "count " + dir
	case "@group":
		return "key " + dir
	}
	if !ident.MatchString(f[0]) {
		return ""
	}
	return f[0] + " " + dir
}

// orderBy validates an extended sort expression; relevance keys are dropped
func orderBy(expr string) (string, error) {
	var parts []string
	for _, p := range strings.Split(expr, ",") {
		f := strings.Fields(p)
		if len(f) == 0 {
			continue
		}
		field := f[0]
		switch strings.ToLower(field) {
		case "@weight", "@relevance":
			continue
		case "@id":
			field = "id"
		}
		if !ident.MatchString(field) {
			return "", fmt.Errorf("bad sort field %q", field)
		}
		dir := "ASC"
		if len(f) > 1 && strings.EqualFold(f[1], "desc") {
			dir = "DESC"
		}
		parts = append(parts, field+" "+dir)
	}
	return strings.Join(parts, ", "), nil
}
