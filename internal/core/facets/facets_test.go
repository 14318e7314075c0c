package facets

import (
	"testing"

	"inputdash/internal/core/batch"
	"inputdash/internal/core/catcode"
	"inputdash/internal/core/vocab"
)

type fixedVocab struct{}

func (fixedVocab) Platforms() []string     { return []string{"win7", "mac", "linux"} }
func (fixedVocab) Manufacturers() []string { return []string{"Samsung", "HTC"} }
func (fixedVocab) Devices() []string       { return []string{"Nexus One", "Droid"} }
func (fixedVocab) Locales() []string       { return []string{"en-US", "de"} }

func row(field string, code uint32, count int64) batch.Match {
	return batch.Match{Attrs: map[string]int64{field: int64(code), CountAttr: count}}
}

func labelOf(r Row) string {
	if r.Label == nil {
		return "<nil>"
	}
	return *r.Label
}

func TestParseKind(t *testing.T) {
	t.Parallel()
	for _, k := range Kinds() {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Fatalf("ParseKind(%q) = %v %v", k.String(), got, ok)
		}
	}
	if _, ok := ParseKind("happy__avg__x"); ok {
		t.Fatalf("aggregate names have no decoder")
	}
	if Kind(99).String() != "invalid" {
		t.Fatalf("unknown kind name")
	}
	if DaySentiment.Field() != "day_sentiment" {
		t.Fatalf("field got %q", DaySentiment.Field())
	}
}

func TestDecode_TypePassesThrough(t *testing.T) {
	t.Parallel()
	r := batch.Result{Matches: []batch.Match{
		{Attrs: map[string]int64{"type": 1, CountAttr: 5}},
		{Attrs: map[string]int64{"type": 2, CountAttr: 7}},
	}}
	got := Decode(Type, r, fixedVocab{})
	if len(got.Attrs) != 2 || got.Attrs[1]["type"] != 2 || got.Attrs[1][CountAttr] != 7 {
		t.Fatalf("got %+v", got.Attrs)
	}
}

func TestDecode_PlatformPerRow(t *testing.T) {
	t.Parallel()
	r := batch.Result{Matches: []batch.Match{
		row("platform", catcode.Of("mac"), 3),
		row("platform", catcode.Of("beos"), 2),
		row("platform", catcode.Of("mac"), 1),
	}}
	got := Decode(Platform, r, fixedVocab{}).Rows
	if len(got) != 3 {
		t.Fatalf("platform does not collapse, got %d rows", len(got))
	}
	if labelOf(got[0]) != "mac" || got[0].Count != 3 {
		t.Fatalf("row 0 got %s %d", labelOf(got[0]), got[0].Count)
	}
	if got[1].Label != nil || got[1].Count != 2 {
		t.Fatalf("unknown code keeps count with nil label, got %s %d", labelOf(got[1]), got[1].Count)
	}
}

func TestDecode_LocaleNeedsMatches(t *testing.T) {
	t.Parallel()
	if got := Decode(Locale, batch.Result{}, fixedVocab{}); got.Rows != nil {
		t.Fatalf("no matches structure should give nil rows, got %+v", got.Rows)
	}
	got := Decode(Locale, batch.Result{Matches: []batch.Match{row("locale", catcode.Of("de"), 4)}}, fixedVocab{})
	if len(got.Rows) != 1 || labelOf(got.Rows[0]) != "de" {
		t.Fatalf("got %+v", got.Rows)
	}
	empty := Decode(Locale, batch.Result{Matches: []batch.Match{}}, fixedVocab{})
	if empty.Rows == nil || len(empty.Rows) != 0 {
		t.Fatalf("empty matches should give empty rows")
	}
}

func TestCollapse(t *testing.T) {
	t.Parallel()
	tbl := catcode.NewTable([]string{"Samsung", "HTC", "LG"})
	ms := []batch.Match{
		row("manufacturer", catcode.Of("LG"), 4),
		row("manufacturer", catcode.Of("HTC"), 2),
		row("manufacturer", catcode.Of("Samsung"), 4),
		row("manufacturer", catcode.Of("HTC"), 3),
		row("manufacturer", 12345, 1),
		row("manufacturer", 67890, 1),
	}
	got := Collapse(ms, "manufacturer", tbl)
	want := []struct {
		label string
		count int64
	}{{"HTC", 5}, {"LG", 4}, {"Samsung", 4}, {"<nil>", 2}}
	if len(got) != len(want) {
		t.Fatalf("got %d rows", len(got))
	}
	for i, w := range want {
		if labelOf(got[i]) != w.label || got[i].Count != w.count {
			t.Fatalf("row %d got %s %d want %s %d", i, labelOf(got[i]), got[i].Count, w.label, w.count)
		}
	}
}

func TestDecode_DeviceUsesDeviceVocab(t *testing.T) {
	t.Parallel()
	r := batch.Result{Matches: []batch.Match{row("device", catcode.Of("Droid"), 9)}}
	got := Decode(Device, r, fixedVocab{}).Rows
	if len(got) != 1 || labelOf(got[0]) != "Droid" {
		t.Fatalf("got %+v", got)
	}
	if got := Decode(Manufacturer, batch.Result{}, fixedVocab{}); got.Rows == nil {
		t.Fatalf("collapsing decoder returns an empty slice")
	}
}

func TestSplitDayRoundTrip(t *testing.T) {
	t.Parallel()
	for _, day := range []int64{0, 1300000000, 1718409600} {
		for typ := int64(0); typ < 10; typ++ {
			d, c := SplitDay(day*10 + typ)
			if d != day*10 || c != typ {
				t.Fatalf("SplitDay(%d) = %d,%d", day*10+typ, d, c)
			}
		}
	}
}

func TestDecode_DaySentiment(t *testing.T) {
	t.Parallel()
	const day = int64(1718409600)
	r := batch.Result{Matches: []batch.Match{
		{Attrs: map[string]int64{"day_sentiment": day + 1, CountAttr: 10}},
		{Attrs: map[string]int64{"day_sentiment": day + 2, CountAttr: 4}},
		{Attrs: map[string]int64{"day_sentiment": day + 3, CountAttr: 2}},
		{Attrs: map[string]int64{"day_sentiment": day + 7, CountAttr: 1}},
	}}
	got := Decode(DaySentiment, r, vocab.Static()).Days
	if got == nil {
		t.Fatalf("expected series")
	}
	if len(got.Praise) != 1 || got.Praise[0] != (Point{day, 10}) {
		t.Fatalf("praise %+v", got.Praise)
	}
	if len(got.Idea) != 1 || got.Idea[0] != (Point{day, 2}) {
		t.Fatalf("idea %+v", got.Idea)
	}
	if len(got.Issue) != 2 || got.Issue[1] != (Point{day, 1}) {
		t.Fatalf("unrecognised codes land in issue: %+v", got.Issue)
	}
}

func TestDecode_UnknownKind(t *testing.T) {
	t.Parallel()
	got := Decode(Kind(0), batch.Result{}, fixedVocab{})
	if got.Rows != nil || got.Attrs != nil || got.Days != nil {
		t.Fatalf("got %+v", got)
	}
}
