// Package filters compiles search options into the filter sets applied to a query batch
package filters

import (
	"math"
	"sort"
	"time"

	"inputdash/internal/core/catcode"
	tim "inputdash/internal/platform/time"
)

// MaxTimestamp is the largest timestamp the index attribute can hold
const MaxTimestamp int64 = math.MaxInt32

// DefaultLookbackDays is how far back an open start date reaches
const DefaultLookbackDays = 60

// Field names as indexed
const (
	FieldProduct      = "product"
	FieldVersion      = "version"
	FieldType         = "type"
	FieldPlatform     = "platform"
	FieldManufacturer = "manufacturer"
	FieldDevice       = "device"
	FieldLocale       = "locale"
	FieldCreated      = "created"
)

// Options is a structured search request; empty strings and nil pointers mean no filter
type Options struct {
	Product      *int
	Version      string
	Type         *int
	Platform     string
	Manufacturer string
	Device       string
	Locale       string

	// DateStart and DateEnd are calendar days; only their y/m/d is read
	DateStart *time.Time
	DateEnd   *time.Time

	// UTC reads DateStart as UTC midnight. DateEnd is always local.
	UTC bool
}

// Clock supplies "today"; zero value uses time.Now in time.Local
type Clock struct {
	Now func() time.Time
	Loc *time.Location
}

func (c Clock) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c Clock) loc() *time.Location {
	if c.Loc == nil {
		return time.Local
	}
	return c.Loc
}

// Filter is an equality filter on an integer attribute
type Filter struct {
	Field string
	Value int64
}

// Range is an inclusive integer range on an attribute
type Range struct {
	Field  string
	Lo, Hi int64
}

// Compiled is the classification of a request's options
type Compiled struct {
	Exact  []Filter
	Ranges []Range
	Metas  []Filter
}

// Compile classifies opts; output slices are sorted by field so the applied order is stable
func Compile(o Options, c Clock) Compiled {
	var out Compiled

	if o.Product != nil {
		out.Metas = append(out.Metas, Filter{FieldProduct, int64(*o.Product)})
	}
	if o.Version != "" {
		out.Exact = append(out.Exact, Filter{FieldVersion, int64(catcode.Of(o.Version))})
	}
	if o.Type != nil {
		out.Metas = append(out.Metas, Filter{FieldType, int64(*o.Type)})
	}
	for _, m := range []struct{ field, val string }{
		{FieldPlatform, o.Platform},
		{FieldManufacturer, o.Manufacturer},
		{FieldDevice, o.Device},
	} {
		if m.val != "" {
			out.Metas = append(out.Metas, Filter{m.field, int64(catcode.Fold(m.val))})
		}
	}
	if o.Locale != "" {
		out.Exact = append(out.Exact, Filter{FieldLocale, int64(catcode.FoldExact(o.Locale))})
	}

	out.Ranges = append(out.Ranges, createdRange(o, c))

	sortFilters(out.Exact)
	sortFilters(out.Metas)
	return out
}

func createdRange(o Options, c Clock) Range {
	loc := c.loc()
	today := tim.Today(c.now(), loc)

	startDay := tim.AddDays(today, -DefaultLookbackDays)
	if o.DateStart != nil {
		startDay = *o.DateStart
	}
	startLoc := loc
	if o.UTC {
		startLoc = time.UTC
	}

	endDay := today
	if o.DateEnd != nil {
		endDay = *o.DateEnd
	}
	endDay = tim.AddDays(tim.Midnight(endDay, loc), 1)

	return Range{
		Field: FieldCreated,
		Lo:    Timestamp(tim.Midnight(startDay, startLoc)),
		Hi:    Timestamp(endDay),
	}
}

// Timestamp is t in unix seconds, clamped to MaxTimestamp
func Timestamp(t time.Time) int64 {
	ts := t.Unix()
	if ts > MaxTimestamp {
		return MaxTimestamp
	}
	return ts
}

func sortFilters(fs []Filter) {
	sort.SliceStable(fs, func(i, j int) bool { return fs[i].Field < fs[j].Field })
}
