// Package width converts the width measure into normalized category spans.
//
// Spans partition [0, 1]: the first category starts at 0, every category
// starts where the previous one ends, and the last one ends at 1. Missing,
// negative or non-finite widths contribute 0. When every width is 0 the
// categories share the axis equally.
package width

import (
	"math"

	"github.com/matzehuels/mekko/pkg/core/chart"
)

// Span is the normalized horizontal extent of one category.
type Span struct {
	Start float64 `json:"start"`
	Size  float64 `json:"size"`
}

// End returns Start + Size.
func (s Span) End() float64 { return s.Start + s.Size }

// Clamped describes a width value that was replaced by 0.
type Clamped struct {
	Category int
	Value    chart.Number
}

// Allocation is the output of [Allocate].
type Allocation struct {
	Spans []Span
	// Raw holds the per-category widths after clamping.
	Raw   []float64
	Total float64
	// Equal is set when the total was zero and the equal-share fallback
	// was used.
	Equal   bool
	Clamped []Clamped
}

// Starts returns the span starts in category order.
func (a Allocation) Starts() []float64 {
	out := make([]float64, len(a.Spans))
	for i, s := range a.Spans {
		out[i] = s.Start
	}
	return out
}

// Sizes returns the span sizes in category order.
func (a Allocation) Sizes() []float64 {
	out := make([]float64, len(a.Spans))
	for i, s := range a.Spans {
		out[i] = s.Size
	}
	return out
}

// Uniform returns one width of 1 per category, used when the input has no
// width measure.
func Uniform(categoryCount int) [][]chart.Number {
	row := make([]chart.Number, categoryCount)
	for i := range row {
		row[i] = chart.Num(1)
	}
	return [][]chart.Number{row}
}

// Allocate sums the width columns per category and normalizes the result.
// Each column is indexed by category; short columns contribute 0.
func Allocate(columns [][]chart.Number, categoryCount int) Allocation {
	n := max(categoryCount, 0)
	a := Allocation{
		Spans: make([]Span, n),
		Raw:   make([]float64, n),
	}
	if n == 0 {
		return a
	}

	for c := range n {
		for _, col := range columns {
			if c >= len(col) {
				continue
			}
			v := col[c]
			if !v.Present() || v.Value < 0 {
				a.Clamped = append(a.Clamped, Clamped{Category: c, Value: v})
				continue
			}
			a.Raw[c] += v.Value
		}
	}

	cum := make([]float64, n+1)
	for c := range n {
		cum[c+1] = cum[c] + a.Raw[c]
	}
	a.Total = cum[n]

	if a.Total == 0 || math.IsInf(a.Total, 0) {
		a.Equal = true
		share := 1 / float64(n)
		for c := range n {
			a.Spans[c] = Span{Start: float64(c) * share, Size: share}
		}
		return a
	}

	for c := range n {
		a.Spans[c] = Span{Start: cum[c] / a.Total, Size: a.Raw[c] / a.Total}
	}
	return a
}
