package layout

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mekko/pkg/core/chart"
	"github.com/matzehuels/mekko/pkg/core/render/mekko/geometry"
	"github.com/matzehuels/mekko/pkg/core/render/mekko/gradient"
	"github.com/matzehuels/mekko/pkg/core/render/mekko/ordering"
	"github.com/matzehuels/mekko/pkg/core/render/mekko/stack"
	"github.com/matzehuels/mekko/pkg/core/render/mekko/stats"
	"github.com/matzehuels/mekko/pkg/core/render/mekko/width"
)

// Series is one stacked series with its points in category order.
type Series struct {
	Key         chart.SeriesKey   `json:"key"`
	DisplayName string            `json:"display_name"`
	Color       string            `json:"color"`
	Points      []chart.DataPoint `json:"points"`
}

// LegendEntry is consumed by legend renderers.
type LegendEntry struct {
	Label          string         `json:"label"`
	Color          string         `json:"color"`
	Identity       string         `json:"identity"`
	ValueSum       float64        `json:"value_sum"`
	CategoryValues []chart.Number `json:"category_values"`
}

// Domain is the closed value range covered by every stacked extent. It always
// contains zero.
type Domain struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Span returns Max - Min.
func (d Domain) Span() float64 { return d.Max - d.Min }

// Layout is the output of one conversion.
type Layout struct {
	Categories     []chart.CategoryKey       `json:"categories"`
	Series         []Series                  `json:"series"`
	CategoryStarts []float64                 `json:"category_starts"`
	CategoryWidths []float64                 `json:"category_widths"`
	Totals         []stack.Totals            `json:"totals"`
	Aggregates     []chart.CategoryAggregate `json:"aggregates"`
	// Gradients is set only when gradient coloring was applied.
	Gradients   []gradient.CategoryGradient `json:"gradients,omitempty"`
	Legend      []LegendEntry               `json:"legend"`
	ValueDomain Domain                      `json:"value_domain"`

	HasHighlights    bool `json:"has_highlights"`
	HasDynamicSeries bool `json:"has_dynamic_series"`
	// HighlightsReplacedValues reports the overflow fallback.
	HighlightsReplacedValues bool `json:"highlights_replaced_values,omitempty"`

	// Options are the effective options: requested features that were
	// disabled during the pass are cleared.
	Options chart.Options `json:"options"`
}

// Empty reports whether the layout has nothing to draw.
func (l Layout) Empty() bool {
	return len(l.Series) == 0 || len(l.Categories) == 0
}

// Points returns every data point in series order.
func (l Layout) Points() []chart.DataPoint {
	var out []chart.DataPoint
	for _, s := range l.Series {
		out = append(out, s.Points...)
	}
	return out
}

// Mapper returns the geometry mapper that places l into f.
func (l Layout) Mapper(f geometry.Frame) geometry.Mapper {
	return f.Mapper(l.ValueDomain.Min, l.ValueDomain.Max, len(l.Categories))
}

// Option configures [Build].
type Option func(*builder)

// WithLogger routes edge-case debug output (clamped widths, overflow
// fallback, disabled gradient) to logger.
func WithLogger(logger *log.Logger) Option {
	return func(b *builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

type builder struct {
	logger *log.Logger
}

// Build converts in into a layout according to opts.
func Build(in chart.Input, opts chart.Options, options ...Option) Layout {
	b := builder{logger: log.New(io.Discard)}
	for _, opt := range options {
		opt(&b)
	}
	return b.build(in, opts)
}

func (b *builder) build(in chart.Input, opts chart.Options) Layout {
	n := in.CategoryCount()
	columns := in.SeriesColumns()

	out := Layout{
		HasDynamicSeries: in.DynamicSeries,
		Options:          opts,
	}
	if n == 0 || len(columns) == 0 {
		b.logger.Debug("empty layout", "categories", n, "series", len(columns))
		return out
	}

	values := make([][]chart.Number, len(columns))
	highlights := make([][]chart.Number, len(columns))
	for s, col := range columns {
		values[s] = fitRow(col.Values, n)
		if len(col.Highlights) > 0 {
			highlights[s] = fitRow(col.Highlights, n)
		}
	}

	out.Categories = categoryKeys(in.Categories)

	res := stack.Normalize(stack.Input{
		Values:        values,
		Highlights:    highlights,
		CategoryCount: n,
	}, stack.Options{
		PercentStacked:   opts.Is100PercentStacked,
		SupportsOverflow: opts.SupportsOverflow,
	})
	out.Totals = res.Totals
	out.HasHighlights = res.HasHighlights
	out.HighlightsReplacedValues = res.HighlightsReplacedValues
	if res.HighlightsReplacedValues {
		b.logger.Debug("highlights overflow their values; highlighting disabled")
		values = replaced(values, highlights)
	}
	out.Aggregates = stats.Collect(values, n)

	alloc := width.Allocate(widthRows(in, n), n)
	for _, cl := range alloc.Clamped {
		b.logger.Debug("width clamped to 0", "category", cl.Category, "valid", cl.Value.Valid, "value", cl.Value.Value)
	}
	if alloc.Equal {
		b.logger.Debug("zero total width; using equal category widths", "categories", n)
	}
	out.CategoryStarts = alloc.Starts()
	out.CategoryWidths = alloc.Sizes()

	points := res.Points
	for s := range points {
		for i := range points[s] {
			c := points[s][i].CategoryIndex
			points[s][i].CategoryWidthStart = alloc.Spans[c].Start
			points[s][i].CategoryWidthSize = alloc.Spans[c].Size
		}
	}

	if opts.Sorted() {
		points = ordering.Reorder(points, n, ordering.For(opts.SortSeries))
	}

	colors := make([]string, len(columns))
	for s, col := range columns {
		colors[s] = col.Color
		if colors[s] == "" {
			colors[s] = chart.SeriesColor(opts.Palette, s)
		}
	}
	out.Legend = legendEntries(columns, values, colors)

	if opts.ColorGradient && !checkDataToFeatures(out.Legend) {
		b.logger.Debug("gradient disabled: a legend entry has more than one value")
		out.Options.ColorGradient = false
	}
	if out.Options.ColorGradient {
		out.Gradients, points = gradient.Assign(points, colors, n)
	} else {
		for s := range points {
			for i := range points[s] {
				points[s][i].Color = colors[s]
			}
		}
	}

	out.Series = make([]Series, len(columns))
	for s, col := range columns {
		out.Series[s] = Series{
			Key: chart.SeriesKey{
				Index:       s,
				DisplayName: col.Name,
				Color:       colors[s],
				Identity:    chart.SeriesIdentity(s, col),
			},
			DisplayName: col.Name,
			Color:       colors[s],
			Points:      points[s],
		}
	}
	out.ValueDomain = valueDomain(points)
	return out
}

// checkDataToFeatures reports whether gradient coloring is meaningful: every
// legend entry must carry at most one present category value.
func checkDataToFeatures(legend []LegendEntry) bool {
	for _, e := range legend {
		count := 0
		for _, v := range e.CategoryValues {
			if v.Present() {
				count++
			}
		}
		if count > 1 {
			return false
		}
	}
	return true
}

func categoryKeys(categories []chart.Category) []chart.CategoryKey {
	out := make([]chart.CategoryKey, len(categories))
	for i, c := range categories {
		out[i] = chart.CategoryKey{
			Index:    i,
			Value:    c.Value,
			Identity: chart.CategoryIdentity(i, c),
		}
	}
	return out
}

func legendEntries(columns []chart.Column, values [][]chart.Number, colors []string) []LegendEntry {
	out := make([]LegendEntry, len(columns))
	for s, col := range columns {
		out[s] = LegendEntry{
			Label:          col.Name,
			Color:          colors[s],
			Identity:       chart.SeriesIdentity(s, col),
			ValueSum:       stats.SeriesSum(values[s]),
			CategoryValues: values[s],
		}
	}
	return out
}

// widthRows returns the width measure rows, or one uniform row when the
// input has none.
func widthRows(in chart.Input, n int) [][]chart.Number {
	cols := in.WidthColumns()
	if len(cols) == 0 {
		return width.Uniform(n)
	}
	rows := make([][]chart.Number, len(cols))
	for i, c := range cols {
		rows[i] = c.Values
	}
	return rows
}

func valueDomain(points [][]chart.DataPoint) Domain {
	var d Domain
	for _, row := range points {
		for _, p := range row {
			if p.Absent {
				continue
			}
			end := p.Position + p.ValueAbsolute
			if p.Negative() {
				end = p.Position - p.ValueAbsolute
			}
			d.Min = math.Min(d.Min, math.Min(p.Position, end))
			d.Max = math.Max(d.Max, math.Max(p.Position, end))
		}
	}
	return d
}

// replaced returns values with every present highlight substituted.
func replaced(values, highlights [][]chart.Number) [][]chart.Number {
	out := make([][]chart.Number, len(values))
	for s := range values {
		if highlights[s] == nil {
			out[s] = values[s]
			continue
		}
		out[s] = highlights[s]
	}
	return out
}

func fitRow(row []chart.Number, n int) []chart.Number {
	out := make([]chart.Number, n)
	for i := range min(len(row), n) {
		out[i] = row[i].Sanitize()
	}
	return out
}
