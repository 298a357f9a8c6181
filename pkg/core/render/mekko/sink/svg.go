package sink

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo/float"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/matzehuels/mekko/pkg/core/render/mekko/geometry"
	"github.com/matzehuels/mekko/pkg/core/render/mekko/layout"
	"github.com/matzehuels/mekko/pkg/core/render/mekko/styles"
)

const (
	DefaultWidth       = 800.0
	DefaultHeight      = 500.0
	DefaultBorderWidth = 2.0

	margin      = 20.0
	titleHeight = 28.0
	axisHeight  = 22.0
	legendGap   = 12.0
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style        styles.Style
	width        float64
	height       float64
	borderWidth  float64
	thinnerRatio float64
	legend       bool
	labels       bool
	title        string
	printer      *message.Printer
}

// WithStyle sets the bar style. A nil style keeps [styles.Simple].
func WithStyle(s styles.Style) SVGOption {
	return func(r *svgRenderer) {
		if s != nil {
			r.style = s
		}
	}
}

// WithSize sets the document size in pixels. Non-positive values keep the
// defaults.
func WithSize(width, height float64) SVGOption {
	return func(r *svgRenderer) {
		if width > 0 {
			r.width = width
		}
		if height > 0 {
			r.height = height
		}
	}
}

// WithBorderWidth sets the pixel gap between adjacent categories.
func WithBorderWidth(px float64) SVGOption { return func(r *svgRenderer) { r.borderWidth = max(px, 0) } }

// WithThinnerRatio scales the width of overflowing bars. 0 selects the default.
func WithThinnerRatio(v float64) SVGOption { return func(r *svgRenderer) { r.thinnerRatio = v } }

// WithoutLegend omits the series legend.
func WithoutLegend() SVGOption { return func(r *svgRenderer) { r.legend = false } }

// WithLabels draws value labels on bars that fit them.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithTitle sets the document title, drawn above the plot.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithLanguage selects the locale used to format value labels.
func WithLanguage(tag language.Tag) SVGOption {
	return func(r *svgRenderer) { r.printer = message.NewPrinter(tag) }
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		style:       styles.Simple{},
		width:       DefaultWidth,
		height:      DefaultHeight,
		borderWidth: DefaultBorderWidth,
		legend:      true,
		printer:     message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Frame returns the plot area RenderSVG uses for l with the given options.
func Frame(l layout.Layout, opts ...SVGOption) geometry.Frame {
	r := newSVGRenderer(opts...)
	return r.frame(l)
}

func (r svgRenderer) frame(l layout.Layout) geometry.Frame {
	top := margin
	if r.title != "" {
		top += titleHeight
	}
	bottom := margin + axisHeight
	if r.legend && len(l.Legend) > 0 {
		bottom += legendGap + float64(len(l.Legend))*styles.LegendItemHeight
	}
	return geometry.Frame{
		Left:         margin,
		Top:          top,
		Width:        max(r.width-2*margin, 0),
		Height:       max(r.height-top-bottom, 0),
		BorderWidth:  r.borderWidth,
		ThinnerRatio: r.thinnerRatio,
	}
}

// RenderSVG renders l as a standalone SVG document.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	f := r.frame(l)
	m := l.Mapper(f)

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(r.width, r.height)
	if r.title != "" {
		canvas.Title(r.title)
		canvas.Text(r.width/2, margin+titleHeight/2, r.title,
			"font-family:Helvetica,Arial,sans-serif;font-size:16px;text-anchor:middle;fill:#222")
	}
	r.style.RenderDefs(canvas)

	bars := r.bars(l, f)
	for _, b := range bars {
		r.style.RenderBar(canvas, b)
	}
	if !l.Empty() {
		r.style.RenderBaseline(canvas, f.Left, f.Left+f.Width, m.Y.Scale(0))
	}
	if r.labels {
		for _, b := range bars {
			if !b.Dimmed {
				r.style.RenderLabel(canvas, b)
			}
		}
	}

	axisY := f.Top + f.Height + axisHeight*0.7
	for c, key := range l.Categories {
		x, w := CategorySpan(l, m, c)
		r.style.RenderAxisLabel(canvas, x+w/2, axisY, styles.TruncateLabel(fmt.Sprint(key.Value), w))
	}

	if r.legend && len(l.Legend) > 0 {
		items := make([]styles.LegendItem, len(l.Legend))
		for i, e := range l.Legend {
			items[i] = styles.LegendItem{Label: e.Label, Color: e.Color}
		}
		r.style.RenderLegend(canvas, f.Left, f.Top+f.Height+axisHeight+legendGap, items)
	}

	canvas.End()
	return buf.Bytes()
}

func (r svgRenderer) bars(l layout.Layout, f geometry.Frame) []styles.Bar {
	placed := Place(l, f)
	out := make([]styles.Bar, 0, len(placed))
	for _, pl := range placed {
		p := pl.Point
		out = append(out, styles.Bar{
			ID:        pl.ID,
			Label:     r.formatValue(l, p.ValueOriginal),
			Title:     r.tooltip(l, pl),
			X:         pl.Rect.X,
			Y:         pl.Rect.Y,
			W:         pl.Rect.Width,
			H:         pl.Rect.Height,
			CX:        pl.Rect.CenterX(),
			CY:        pl.Rect.CenterY(),
			Color:     p.Color,
			Highlight: p.IsHighlight,
			Dimmed:    pl.Dimmed,
			Thinner:   p.IsDrawnThinner,
		})
	}
	return out
}

func (r svgRenderer) formatValue(l layout.Layout, v float64) string {
	if l.Options.Is100PercentStacked {
		return r.printer.Sprintf("%.1f%%", v*100)
	}
	return r.printer.Sprintf("%.6g", v)
}

func (r svgRenderer) tooltip(l layout.Layout, pl Placed) string {
	p := pl.Point
	var series, category string
	if p.SeriesIndex < len(l.Series) {
		series = l.Series[p.SeriesIndex].DisplayName
	}
	if p.CategoryIndex < len(l.Categories) {
		category = fmt.Sprint(l.Categories[p.CategoryIndex].Value)
	}
	return fmt.Sprintf("%s / %s: %s", category, series, r.formatValue(l, p.ValueOriginal))
}
