package window

import (
	"slices"
	"testing"

	kit "inputdash/internal/platform/testkit"
)

func page() View[string] { return New([]string{"a", "b", "c"}, 103, 40) }

func TestView_LenIsTotal(t *testing.T) {
	t.Parallel()
	v := page()
	if v.Len() != 103 || v.Total() != 103 || v.Offset() != 40 || len(v.Items()) != 3 {
		t.Fatalf("got len=%d offset=%d items=%d", v.Len(), v.Offset(), len(v.Items()))
	}
	if Empty[int]().Len() != 0 {
		t.Fatalf("empty view has no length")
	}
}

func TestView_AtRebases(t *testing.T) {
	t.Parallel()
	v := page()
	for k, want := range []string{"a", "b", "c"} {
		if got := v.At(40 + k); got != want {
			t.Fatalf("At(%d) = %q want %q", 40+k, got, want)
		}
	}
}

func TestView_AtBelowOffsetWrapsFromEnd(t *testing.T) {
	t.Parallel()
	v := page()
	if got := v.At(39); got != "c" {
		t.Fatalf("At(39) = %q, want last item", got)
	}
	if got := v.At(37); got != "a" {
		t.Fatalf("At(37) = %q", got)
	}
	kit.MustPanic(t, func() { v.At(36) })
	kit.MustPanic(t, func() { v.At(43) })
}

func TestView_Slice(t *testing.T) {
	t.Parallel()
	v := page()
	cases := []struct {
		lo, hi int
		want   []string
	}{
		{40, 43, []string{"a", "b", "c"}},
		{41, 60, []string{"b", "c"}},
		{43, 50, []string{}},
		{0, 2, []string{"a", "b"}},
		{0, -1, []string{"a", "b"}},
		{39, 45, []string{}},
	}
	for _, c := range cases {
		if got := v.Slice(c.lo, c.hi); !slices.Equal(got, c.want) {
			t.Fatalf("Slice(%d,%d) = %v want %v", c.lo, c.hi, got, c.want)
		}
	}
}

func TestView_All(t *testing.T) {
	t.Parallel()
	var pos []int
	var got []string
	for i, s := range page().All() {
		pos = append(pos, i)
		got = append(got, s)
		if i == 41 {
			break
		}
	}
	if !slices.Equal(pos, []int{40, 41}) || !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("got %v %v", pos, got)
	}
}

func TestPaginate(t *testing.T) {
	t.Parallel()
	items := []int{20, 21, 22, 23, 24, 25, 26, 27, 28, 29}
	v := New(items, 45, 20)

	p := Paginate(v, 3, 10)
	if p.Number != 3 || p.NumPages != 5 || p.Count != 45 || !slices.Equal(p.Items, items) {
		t.Fatalf("page 3 got %+v", p)
	}
	if !p.HasNext() || !p.HasPrevious() || p.StartIndex() != 21 {
		t.Fatalf("page 3 navigation wrong: %+v", p)
	}

	last := Paginate(New([]int{40, 41, 42, 43, 44}, 45, 40), 99, 10)
	if last.Number != 5 || len(last.Items) != 5 || last.HasNext() {
		t.Fatalf("out of range should fall back to last page, got %+v", last)
	}
}

func TestPaginate_Empty(t *testing.T) {
	t.Parallel()
	p := Paginate(Empty[int](), 1, 20)
	if p.Number != 1 || p.NumPages != 1 || len(p.Items) != 0 || p.StartIndex() != 0 || p.HasPrevious() {
		t.Fatalf("got %+v", p)
	}
	if p.Items == nil {
		t.Fatalf("items should be an empty slice")
	}
}
