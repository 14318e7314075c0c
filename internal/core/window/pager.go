package window

// Page is one page of a View as a pager presents it
type Page[T any] struct {
	Number   int `json:"number"`
	PerPage  int `json:"per_page"`
	NumPages int `json:"num_pages"`
	Count    int `json:"count"`
	Items    []T `json:"items"`
}

// HasNext reports whether a later page exists
func (p Page[T]) HasNext() bool { return p.Number < p.NumPages }

// HasPrevious reports whether an earlier page exists
func (p Page[T]) HasPrevious() bool { return p.Number > 1 }

// StartIndex is the 1-based position of the first item, 0 when empty
func (p Page[T]) StartIndex() int {
	if p.Count == 0 {
		return 0
	}
	return (p.Number-1)*p.PerPage + 1
}

// Paginate cuts page number out of v. Numbers below 1 or past the last page fall back to the last page.
func Paginate[T any](v View[T], number, perPage int) Page[T] {
	if perPage < 1 {
		perPage = 1
	}
	count := v.Len()
	pages := 1
	if count > 0 {
		pages = (count + perPage - 1) / perPage
	}
	if number < 1 || number > pages {
		number = pages
	}
	lo := (number - 1) * perPage
	hi := min(lo+perPage, count)
	items := []T{}
	if count > 0 {
		items = v.Slice(lo, hi)
	}
	return Page[T]{Number: number, PerPage: perPage, NumPages: pages, Count: count, Items: items}
}
