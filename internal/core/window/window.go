// Package window wraps one fetched page of results so callers can address it by absolute position
package window

import (
	"fmt"
	"iter"
)

// View is a page of items positioned at Offset within Total results
type View[T any] struct {
	items  []T
	total  int
	offset int
}

// New wraps items fetched at offset out of total
func New[T any](items []T, total, offset int) View[T] {
	return View[T]{items: items, total: total, offset: offset}
}

// Empty is a view with nothing in it
func Empty[T any]() View[T] { return View[T]{} }

// Len is the total result count, not the page size
func (v View[T]) Len() int { return v.total }

// Total is the number of matches the backend reported
func (v View[T]) Total() int { return v.total }

// Offset is the absolute position of the first wrapped item
func (v View[T]) Offset() int { return v.offset }

// Items returns the wrapped page
func (v View[T]) Items() []T { return v.items }

// All iterates the wrapped page
func (v View[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, it := range v.items {
			if !yield(v.offset+i, it) {
				return
			}
		}
	}
}

// At returns the item at absolute position i. The offset is always subtracted, and a
// negative page index counts back from the end of the page. It panics when the page
// index is still out of range.
func (v View[T]) At(i int) T {
	k := i - v.offset
	if k < 0 {
		k += len(v.items)
	}
	if k < 0 || k >= len(v.items) {
		panic(fmt.Sprintf("window: index %d out of range for page of %d at offset %d", i, len(v.items), v.offset))
	}
	return v.items[k]
}

// Slice returns items in [lo, hi). Bounds are rebased only when lo is at or past the
// offset; otherwise they apply to the page as given. Bounds clamp to the page and
// negative bounds count from the end.
func (v View[T]) Slice(lo, hi int) []T {
	if lo >= v.offset {
		lo -= v.offset
		hi -= v.offset
	}
	n := len(v.items)
	lo, hi = clamp(lo, n), clamp(hi, n)
	if lo >= hi {
		return []T{}
	}
	return v.items[lo:hi]
}

func clamp(i, n int) int {
	if i < 0 {
		i += n
		if i < 0 {
			return 0
		}
	}
	if i > n {
		return n
	}
	return i
}
