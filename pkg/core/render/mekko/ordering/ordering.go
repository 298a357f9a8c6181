// Package ordering re-sorts the series stack inside each category.
//
// Reordering only changes where a point sits in its category's stack: its
// category, series, color and value are untouched, and so are the width spans.
// Every category is ordered independently.
package ordering

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/mekko/pkg/core/chart"
	"github.com/matzehuels/mekko/pkg/core/render/mekko/stack"
)

// Entry is one present point of a category as seen by an [Orderer].
type Entry struct {
	Series int
	Value  float64
}

// Orderer decides the bottom-to-top stack order of one category.
type Orderer interface {
	// Order returns entries in stacking order. It must return a permutation
	// of its input.
	Order(entries []Entry) []Entry
}

// Identity keeps series index order.
type Identity struct{}

// Order returns entries unchanged.
func (Identity) Order(entries []Entry) []Entry { return entries }

// ByValue sorts ascending by value, ties broken by series index, and
// reverses the result when Descending is set.
type ByValue struct {
	Descending bool
}

// Order implements Orderer.
func (o ByValue) Order(entries []Entry) []Entry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b Entry) int {
		if c := cmp.Compare(a.Value, b.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.Series, b.Series)
	})
	if o.Descending {
		slices.Reverse(out)
	}
	return out
}

// For returns the Orderer for a sort direction.
func For(d chart.SortDirection) Orderer {
	switch d {
	case chart.SortAscending:
		return ByValue{}
	case chart.SortDescending:
		return ByValue{Descending: true}
	default:
		return Identity{}
	}
}

// slot locates the regular point and its optional highlight in the series
// point slices.
type slot struct {
	regular   int
	highlight int // -1 when absent
}

// Reorder returns a copy of points (indexed by series) with positions and
// stack indices recomputed in the order chosen by o. Absent placeholders
// are skipped and keep their values.
func Reorder(points [][]chart.DataPoint, categoryCount int, o Orderer) [][]chart.DataPoint {
	out := make([][]chart.DataPoint, len(points))
	for s := range points {
		out[s] = slices.Clone(points[s])
	}
	if o == nil {
		o = Identity{}
	}

	slots := make([]map[int]slot, categoryCount)
	for c := range slots {
		slots[c] = make(map[int]slot)
	}
	for s, row := range out {
		for i, p := range row {
			if p.Absent || p.CategoryIndex < 0 || p.CategoryIndex >= categoryCount {
				continue
			}
			sl, ok := slots[p.CategoryIndex][s]
			if !ok {
				sl = slot{regular: -1, highlight: -1}
			}
			if p.IsHighlight {
				sl.highlight = i
			} else {
				sl.regular = i
			}
			slots[p.CategoryIndex][s] = sl
		}
	}

	for c := range categoryCount {
		entries := make([]Entry, 0, len(slots[c]))
		for s := range out {
			if sl, ok := slots[c][s]; ok && sl.regular >= 0 {
				entries = append(entries, Entry{Series: s, Value: out[s][sl.regular].ValueOriginal})
			}
		}

		var posBase, negBase float64
		for rank, e := range o.Order(entries) {
			sl := slots[c][e.Series]
			p := &out[e.Series][sl.regular]

			h := chart.Absent()
			if sl.highlight >= 0 {
				h = chart.Num(out[e.Series][sl.highlight].ValueOriginal)
			}
			var position float64
			if stack.Negative(p.ValueOriginal, h) {
				position = negBase
				negBase -= math.Abs(p.ValueOriginal)
			} else {
				position = posBase
				posBase += math.Abs(p.ValueOriginal)
			}
			p.Position = position
			p.OriginalPosition = position
			p.StackIndex = rank

			if sl.highlight >= 0 {
				hp := &out[e.Series][sl.highlight]
				hp.Position = position
				hp.OriginalPosition = position
				hp.StackIndex = rank
			}
		}
	}
	return out
}
