// Package facets decodes grouped aggregate results into labelled facet summaries
package facets

import (
	"sort"

	"inputdash/internal/core/batch"
	"inputdash/internal/core/catcode"
	"inputdash/internal/core/vocab"
)

// CountAttr is the attribute grouped rows carry their count in
const CountAttr = "count"

// Kind is a facet the dashboard knows how to decode
type Kind int

const (
	Type Kind = iota + 1
	Locale
	Platform
	Manufacturer
	Device
	DaySentiment
)

type decodeFunc func(k Kind, r batch.Result, p vocab.Provider) Set

var decoders = map[Kind]decodeFunc{
	Type:         decodeType,
	Locale:       decodeLocale,
	Platform:     decodePlatform,
	Manufacturer: collapsing(vocab.Provider.Manufacturers),
	Device:       collapsing(vocab.Provider.Devices),
	DaySentiment: decodeDaySentiment,
}

// Kinds lists every kind in declaration order
func Kinds() []Kind { return []Kind{Type, Locale, Platform, Manufacturer, Device, DaySentiment} }

// ParseKind resolves a facet name
func ParseKind(name string) (Kind, bool) {
	for _, k := range Kinds() {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// String is the facet name, which is also the grouped attribute
func (k Kind) String() string {
	switch k {
	case Type:
		return "type"
	case Locale:
		return "locale"
	case Platform:
		return "platform"
	case Manufacturer:
		return "manufacturer"
	case Device:
		return "device"
	case DaySentiment:
		return "day_sentiment"
	default:
		return "invalid"
	}
}

// Field is the attribute the facet groups on
func (k Kind) Field() string { return k.String() }

// Row is a decoded (label, count) pair; Label is nil for codes outside the vocabulary
type Row struct {
	Label *string `json:"label"`
	Count int64   `json:"count"`
}

// Point is one day of a sentiment series; Day is a unix timestamp
type Point struct {
	Day   int64 `json:"day"`
	Count int64 `json:"count"`
}

// Series splits day counts by opinion type
type Series struct {
	Praise []Point `json:"praise"`
	Issue  []Point `json:"issue"`
	Idea   []Point `json:"idea"`
}

// Set is a decoded facet. Which field is filled depends on Kind.
type Set struct {
	Kind Kind

	// Attrs holds type rows unchanged
	Attrs []map[string]int64

	// Rows holds labelled counts; nil for a locale result without matches
	Rows []Row

	Days *Series
}

// Decode turns r into the facet for k
func Decode(k Kind, r batch.Result, p vocab.Provider) Set {
	fn, ok := decoders[k]
	if !ok {
		return Set{Kind: k}
	}
	return fn(k, r, p)
}

func decodeType(k Kind, r batch.Result, _ vocab.Provider) Set {
	out := make([]map[string]int64, 0, len(r.Matches))
	for _, m := range r.Matches {
		out = append(out, m.Attrs)
	}
	return Set{Kind: k, Attrs: out}
}

func decodePlatform(k Kind, r batch.Result, p vocab.Provider) Set {
	return Set{Kind: k, Rows: perRow(r, k.Field(), catcode.NewTable(p.Platforms()))}
}

func decodeLocale(k Kind, r batch.Result, p vocab.Provider) Set {
	if r.Matches == nil {
		return Set{Kind: k}
	}
	return Set{Kind: k, Rows: perRow(r, k.Field(), catcode.NewTable(p.Locales()))}
}

// perRow keeps one row per match in backend order
func perRow(r batch.Result, field string, t catcode.Table) []Row {
	out := make([]Row, 0, len(r.Matches))
	for _, m := range r.Matches {
		out = append(out, Row{Label: label(t, m.Attrs[field]), Count: m.Attrs[CountAttr]})
	}
	return out
}

func collapsing(values func(vocab.Provider) []string) decodeFunc {
	return func(k Kind, r batch.Result, p vocab.Provider) Set {
		return Set{Kind: k, Rows: Collapse(r.Matches, k.Field(), catcode.NewTable(values(p)))}
	}
}

// Collapse sums counts of rows that decode to the same label and orders by count descending.
// Ties keep first seen order.
func Collapse(ms []batch.Match, field string, t catcode.Table) []Row {
	type key struct {
		label string
		known bool
	}
	idx := map[key]int{}
	out := make([]Row, 0, len(ms))
	for _, m := range ms {
		l := label(t, m.Attrs[field])
		k := key{}
		if l != nil {
			k = key{*l, true}
		}
		if i, ok := idx[k]; ok {
			out[i].Count += m.Attrs[CountAttr]
			continue
		}
		idx[k] = len(out)
		out = append(out, Row{Label: l, Count: m.Attrs[CountAttr]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func label(t catcode.Table, code int64) *string {
	if v, ok := t.Lookup(code); ok {
		return &v
	}
	return nil
}

// SplitDay unpacks a composite day_sentiment value into its day timestamp and type code
func SplitDay(c int64) (day int64, typ int64) {
	typ = c % 10
	return c - typ, typ
}

func decodeDaySentiment(k Kind, r batch.Result, _ vocab.Provider) Set {
	s := &Series{Praise: []Point{}, Issue: []Point{}, Idea: []Point{}}
	for _, m := range r.Matches {
		day, typ := SplitDay(m.Attrs[k.Field()])
		pt := Point{Day: day, Count: m.Attrs[CountAttr]}
		switch typ {
		case int64(vocab.Praise.ID):
			s.Praise = append(s.Praise, pt)
		case int64(vocab.Idea.ID):
			s.Idea = append(s.Idea, pt)
		default:
			s.Issue = append(s.Issue, pt)
		}
	}
	return Set{Kind: k, Days: s}
}
