package geometry

import "math"

// Scale maps a domain value to a pixel coordinate.
type Scale interface {
	Scale(v float64) float64
}

// ScaleFunc adapts a function to the Scale interface.
type ScaleFunc func(float64) float64

// Scale calls f(v).
func (f ScaleFunc) Scale(v float64) float64 { return f(v) }

// Linear maps [D0, D1] onto [R0, R1]. A zero-span domain maps every value to
// R0 instead of dividing by zero.
type Linear struct {
	D0, D1 float64
	R0, R1 float64
}

// NewLinear returns a linear scale from domain [d0, d1] to range [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{D0: d0, D1: d1, R0: r0, R1: r1}
}

// Scale implements Scale.
func (l Linear) Scale(v float64) float64 {
	span := l.D1 - l.D0
	if span == 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return l.R0
	}
	return l.R0 + (v-l.D0)/span*(l.R1-l.R0)
}

// Invert maps a pixel coordinate back into the domain. A zero-span range
// returns D0.
func (l Linear) Invert(px float64) float64 {
	span := l.R1 - l.R0
	if span == 0 || math.IsNaN(span) {
		return l.D0
	}
	return l.D0 + (px-l.R0)/span*(l.D1-l.D0)
}

// CategoryScale maps the normalized width domain [0, 1] onto a plot area
// starting at left, leaving borderWidth pixels between adjacent categories.
func CategoryScale(left, plotWidth, borderWidth float64, categoryCount int) Linear {
	gaps := borderWidth * float64(max(categoryCount-1, 0))
	return NewLinear(0, 1, left, left+max(plotWidth-gaps, 0))
}

// ValueScale maps [lo, hi] onto a plot area whose top edge is at top, with
// larger values drawn higher (smaller y).
func ValueScale(lo, hi, top, plotHeight float64) Linear {
	return NewLinear(lo, hi, top+plotHeight, top)
}

// Frame is the pixel plot area a layout is mapped into.
type Frame struct {
	Left, Top     float64
	Width, Height float64
	BorderWidth   float64
	ThinnerRatio  float64
}

// Mapper returns a mapper for categoryCount categories whose stacked values
// span [lo, hi].
func (f Frame) Mapper(lo, hi float64, categoryCount int) Mapper {
	return Mapper{
		X:            CategoryScale(f.Left, f.Width, f.BorderWidth, categoryCount),
		Y:            ValueScale(lo, hi, f.Top, f.Height),
		BorderWidth:  f.BorderWidth,
		ThinnerRatio: f.ThinnerRatio,
	}
}
