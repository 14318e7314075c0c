// Package catcode maps categorical strings to the 32 bit codes the search index filters and groups on.
//
// The code is CRC32 (IEEE) of the UTF-8 bytes, the same function the indexer
// uses. It is not a bijection: two values may share a code and that is
// accepted. Changing the function would orphan every indexed document.
package catcode

import (
	"hash/crc32"
	"strings"
)

// Code is a categorical code as stored in the index
type Code = uint32

// Unknown is the code for an empty value, which is how the index stores "unknown"
var Unknown = Of("")

// Of returns the code for s; case sensitive
func Of(s string) Code { return crc32.ChecksumIEEE([]byte(s)) }

// Fold treats "unknown" in any case as the empty value
func Fold(s string) Code {
	if strings.EqualFold(s, "unknown") {
		return Unknown
	}
	return Of(s)
}

// FoldExact treats only the literal "unknown" as the empty value
func FoldExact(s string) Code {
	if s == "unknown" {
		return Unknown
	}
	return Of(s)
}

// Table reverses codes back to the vocabulary values that produced them
type Table struct {
	m map[Code]string
}

// NewTable builds a reverse lookup over values; on collision the first value wins
func NewTable(values []string) Table {
	m := make(map[Code]string, len(values))
	for _, v := range values {
		c := Of(v)
		if _, ok := m[c]; !ok {
			m[c] = v
		}
	}
	return Table{m: m}
}

// Lookup returns the value for c, ok=false when c is outside the vocabulary
func (t Table) Lookup(c int64) (string, bool) {
	if c < 0 || c > int64(^uint32(0)) {
		return "", false
	}
	v, ok := t.m[Code(c)]
	return v, ok
}

// Len is the number of distinct codes in the table
func (t Table) Len() int { return len(t.m) }
