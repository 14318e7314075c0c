// Package repokit provides common types and helpers for repository implementations
package repokit

import (
	"inputdash/internal/platform/store"
)

// Queryer is the read surface sql repos bind to
type Queryer = store.Querier

type (
	// Rows are the result set of a query
	Rows = store.Rows

	// Row is a single row result from a query
	Row = store.Row
)
