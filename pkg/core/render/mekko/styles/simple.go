package styles

import (
	"fmt"

	svg "github.com/ajstarks/svgo/float"
)

const (
	fontFamily   = "font-family:Helvetica,Arial,sans-serif"
	dimmedAlpha  = 0.4
	legendSwatch = 12.0
)

// Simple draws solid series fills separated by thin white borders.
type Simple struct{}

func (Simple) Name() string { return "simple" }

func (Simple) RenderDefs(*svg.SVG) {}

func (Simple) RenderBar(canvas *svg.SVG, b Bar) {
	opacity := 1.0
	if b.Dimmed {
		opacity = dimmedAlpha
	}
	class := barClass(b)
	if b.Title != "" {
		canvas.Gid(b.ID)
		canvas.Title(b.Title)
		canvas.Rect(b.X, b.Y, b.W, b.H,
			fmt.Sprintf(`class="%s" fill="%s" fill-opacity="%.2f" stroke="white" stroke-width="1"`, class, escape(b.Color), opacity))
		canvas.Gend()
		return
	}
	canvas.Rect(b.X, b.Y, b.W, b.H,
		fmt.Sprintf(`id="%s" class="%s" fill="%s" fill-opacity="%.2f" stroke="white" stroke-width="1"`, escape(b.ID), class, escape(b.Color), opacity))
}

func (Simple) RenderLabel(canvas *svg.SVG, b Bar) {
	renderLabel(canvas, b, "white")
}

func (Simple) RenderAxisLabel(canvas *svg.SVG, x, y float64, label string) {
	canvas.Text(x, y, label, fontFamily+";font-size:11px;text-anchor:middle;fill:#333")
}

func (Simple) RenderBaseline(canvas *svg.SVG, x1, x2, y float64) {
	canvas.Line(x1, y, x2, y, "stroke:#333;stroke-width:1")
}

func (Simple) RenderLegend(canvas *svg.SVG, x, y float64, items []LegendItem) {
	renderLegend(canvas, x, y, items, func(sx, sy float64, color string) {
		canvas.Rect(sx, sy, legendSwatch, legendSwatch, fmt.Sprintf(`fill="%s"`, escape(color)))
	})
}

func barClass(b Bar) string {
	switch {
	case b.Highlight:
		return "bar highlight"
	case b.Thinner:
		return "bar thinner"
	case b.Dimmed:
		return "bar dimmed"
	}
	return "bar"
}

func renderLabel(canvas *svg.SVG, b Bar, fill string) {
	if b.Label == "" {
		return
	}
	size := FontSize(b)
	if size == 0 {
		return
	}
	canvas.Text(b.CX, b.CY+size*0.35, b.Label,
		fmt.Sprintf("%s;font-size:%.1fpx;text-anchor:middle;fill:%s", fontFamily, size, fill))
}

func renderLegend(canvas *svg.SVG, x, y float64, items []LegendItem, swatch func(x, y float64, color string)) {
	canvas.Gstyle(fontFamily + ";font-size:11px;fill:#333")
	for i, it := range items {
		row := y + float64(i)*LegendItemHeight
		swatch(x, row, it.Color)
		canvas.Text(x+legendSwatch+6, row+legendSwatch-2, it.Label)
	}
	canvas.Gend()
}
