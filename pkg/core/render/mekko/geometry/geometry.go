// Package geometry maps stacked data points onto pixel rectangles.
//
// The mapper is given two scales by its caller: X maps the normalized
// category width domain [0, 1] to pixels and Y maps the stacked value domain
// to pixels. It owns no drawing concerns; sinks turn the rectangles into
// output.
//
// Degenerate scales are valid input. A zero-span domain collapses to a
// constant and yields zero-width or zero-height rectangles, never an error.
package geometry

import (
	"math"

	"github.com/matzehuels/mekko/pkg/core/chart"
)

// DefaultThinnerRatio is the width factor applied to points flagged
// IsDrawnThinner.
const DefaultThinnerRatio = 0.5

// Rect is a pixel rectangle. X and Y are the top-left corner; Anchor is the
// y coordinate of the edge nearest the zero baseline.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Anchor float64 `json:"anchor"`
}

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Mapper converts data points into rectangles.
type Mapper struct {
	X Scale
	Y Scale
	// BorderWidth is the pixel gap reserved between adjacent categories.
	BorderWidth float64
	// ThinnerRatio scales the width of IsDrawnThinner points; 0 selects
	// DefaultThinnerRatio.
	ThinnerRatio float64
}

// Rect returns the regular rectangle of p.
func (m Mapper) Rect(p chart.DataPoint) Rect {
	return m.rect(p, p.Position, p.ValueAbsolute, p.ValueOriginal < 0)
}

// ZeroHeight returns a zero-height rectangle on the bottom edge of the
// regular rectangle, for positive and negative values alike. It serves as
// enter/exit placeholder geometry.
func (m Mapper) ZeroHeight(p chart.DataPoint) Rect {
	r := m.Rect(p)
	r.Y = r.Bottom()
	r.Height = 0
	return r
}

// WithoutHighlight returns the rectangle of the full, un-highlighted value
// beneath a highlight point. For regular points it equals Rect.
func (m Mapper) WithoutHighlight(p chart.DataPoint) Rect {
	return m.rect(p, p.OriginalPosition, p.OriginalValueAbsolute, p.OriginalValue < 0)
}

// Rects maps every point; absent placeholders map to zero-height rectangles.
func (m Mapper) Rects(points []chart.DataPoint) []Rect {
	out := make([]Rect, len(points))
	for i, p := range points {
		if p.Absent {
			out[i] = m.ZeroHeight(p)
			continue
		}
		out[i] = m.Rect(p)
	}
	return out
}

func (m Mapper) rect(p chart.DataPoint, position, abs float64, negative bool) Rect {
	x0 := m.X.Scale(0)
	x := m.X.Scale(p.CategoryWidthStart) + m.BorderWidth*float64(p.CategoryIndex)
	w := math.Abs(m.X.Scale(p.CategoryWidthSize) - x0)

	if p.IsDrawnThinner {
		ratio := m.ThinnerRatio
		if ratio <= 0 {
			ratio = DefaultThinnerRatio
		}
		thin := w * ratio
		x += (w - thin) / 2
		w = thin
	}

	end := position + abs
	if negative {
		end = position - abs
	}
	anchor := m.Y.Scale(position)
	far := m.Y.Scale(end)

	return Rect{
		X:      x,
		Y:      min(anchor, far),
		Width:  w,
		Height: math.Abs(m.Y.Scale(0) - m.Y.Scale(abs)),
		Anchor: anchor,
	}
}
