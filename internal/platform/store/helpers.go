package store

import "context"

// each runs sql and hands every scanned row to yield; rows are always closed
func each[T any](ctx context.Context, q Querier, scan func(Row) (T, error), yield func(T), sql string, args ...any) error {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return err
		}
		yield(v)
	}
	return rows.Err()
}

// Many maps all rows into []T in result order
func Many[T any](ctx context.Context, q Querier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	var out []T
	if err := each(ctx, q, scan, func(v T) { out = append(out, v) }, sql, args...); err != nil {
		return nil, err
	}
	return out, nil
}

// Keyed maps all rows into a map by key; a later row replaces an earlier one with the same key
func Keyed[K comparable, T any](ctx context.Context, q Querier, scan func(Row) (T, error), key func(T) K, sql string, args ...any) (map[K]T, error) {
	out := map[K]T{}
	if err := each(ctx, q, scan, func(v T) { out[key(v)] = v }, sql, args...); err != nil {
		return nil, err
	}
	return out, nil
}
