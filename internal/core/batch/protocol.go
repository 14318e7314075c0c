package batch

import "context"

// MatchMode selects how the backend interprets the query term
type MatchMode int

const (
	MatchAll MatchMode = iota
	MatchAny
	MatchPhrase
	MatchBoolean
	MatchExtended
)

// String names the mode for logs
func (m MatchMode) String() string {
	switch m {
	case MatchAny:
		return "any"
	case MatchPhrase:
		return "phrase"
	case MatchBoolean:
		return "boolean"
	case MatchExtended:
		return "extended"
	default:
		return "all"
	}
}

// Filter restricts an attribute to a set of values
type Filter struct {
	Field  string
	Values []int64
}

// Range restricts an attribute to [Lo, Hi]
type Range struct {
	Field  string
	Lo, Hi int64
}

// GroupBy groups matches on an attribute; Order is an expression such as "@count DESC"
type GroupBy struct {
	Field string
	Order string
}

// Aggregate is a custom aggregate over a grouped field, e.g. avg(happy)
type Aggregate struct {
	Func string
	Over string
}

// Query is one sub-query of a batch as sent to a backend
type Query struct {
	Name   string
	Index  string
	Term   string
	Mode   MatchMode
	Select string

	Offset int
	Limit  int

	Filters []Filter
	Ranges  []Range

	GroupBy   *GroupBy
	Aggregate *Aggregate

	// Sort is an extended sort expression, empty means relevance
	Sort string
}

// Match is one row of a result. Grouped rows carry the group key and count in Attrs.
type Match struct {
	ID        int64
	Attrs     map[string]int64
	Aggregate float64
}

// Result is the answer to one sub-query. Nil Matches means the backend sent no matches structure.
type Result struct {
	Matches    []Match
	TotalFound int64
	Error      string
}

// Backend runs a batch of sub-queries in one round trip, results in query order
type Backend interface {
	Run(ctx context.Context, queries []Query) ([]Result, error)
}

// BackendFunc adapts a function to Backend
type BackendFunc func(ctx context.Context, queries []Query) ([]Result, error)

// Run calls f
func (f BackendFunc) Run(ctx context.Context, queries []Query) ([]Result, error) {
	return f(ctx, queries)
}
