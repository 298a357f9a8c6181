package styles

import (
	"fmt"

	svg "github.com/ajstarks/svgo/float"
)

// Outline draws unfilled bars stroked in the series color. Highlights are
// filled so they stand out against their outlined parents.
type Outline struct{}

func (Outline) Name() string { return "outline" }

func (Outline) RenderDefs(*svg.SVG) {}

func (Outline) RenderBar(canvas *svg.SVG, b Bar) {
	fill := "none"
	if b.Highlight {
		fill = escape(b.Color)
	}
	dash := ""
	if b.Thinner {
		dash = ` stroke-dasharray="4 2"`
	}
	canvas.Rect(b.X, b.Y, b.W, b.H,
		fmt.Sprintf(`id="%s" class="%s" fill="%s" stroke="%s" stroke-width="1.5"%s`, escape(b.ID), barClass(b), fill, escape(b.Color), dash))
}

func (Outline) RenderLabel(canvas *svg.SVG, b Bar) {
	renderLabel(canvas, b, "#333")
}

func (Outline) RenderAxisLabel(canvas *svg.SVG, x, y float64, label string) {
	canvas.Text(x, y, label, fontFamily+";font-size:11px;text-anchor:middle;fill:#555")
}

func (Outline) RenderBaseline(canvas *svg.SVG, x1, x2, y float64) {
	canvas.Line(x1, y, x2, y, "stroke:#555;stroke-width:1;stroke-dasharray:2 2")
}

func (Outline) RenderLegend(canvas *svg.SVG, x, y float64, items []LegendItem) {
	renderLegend(canvas, x, y, items, func(sx, sy float64, color string) {
		canvas.Rect(sx, sy, legendSwatch, legendSwatch, fmt.Sprintf(`fill="none" stroke="%s"`, escape(color)))
	})
}
