package sink

import (
	"encoding/json"

	"github.com/matzehuels/mekko/pkg/core/chart"
	"github.com/matzehuels/mekko/pkg/core/render/mekko/geometry"
	"github.com/matzehuels/mekko/pkg/core/render/mekko/layout"
)

type jsonOutput struct {
	Width      float64              `json:"width"`
	Height     float64              `json:"height"`
	Frame      geometry.Frame       `json:"frame"`
	Baseline   float64              `json:"baseline"`
	Domain     layout.Domain        `json:"value_domain"`
	Categories []jsonCategory       `json:"categories"`
	Rects      []Placed             `json:"rects"`
	Legend     []layout.LegendEntry `json:"legend"`
	Options    chart.Options        `json:"options"`

	HasHighlights    bool `json:"has_highlights"`
	HasDynamicSeries bool `json:"has_dynamic_series"`
}

type jsonCategory struct {
	chart.CategoryKey
	X     float64 `json:"x"`
	Width float64 `json:"width"`
}

// RenderJSON renders the placed geometry of l as JSON. It accepts the same
// options as [RenderSVG] so both outputs describe the same pixels.
func RenderJSON(l layout.Layout, opts ...SVGOption) ([]byte, error) {
	r := newSVGRenderer(opts...)
	f := r.frame(l)
	m := l.Mapper(f)

	out := jsonOutput{
		Width:            r.width,
		Height:           r.height,
		Frame:            f,
		Baseline:         m.Y.Scale(0),
		Domain:           l.ValueDomain,
		Rects:            Place(l, f),
		Legend:           l.Legend,
		Options:          l.Options,
		HasHighlights:    l.HasHighlights,
		HasDynamicSeries: l.HasDynamicSeries,
	}
	for c, key := range l.Categories {
		x, w := CategorySpan(l, m, c)
		out.Categories = append(out.Categories, jsonCategory{CategoryKey: key, X: x, Width: w})
	}
	return json.MarshalIndent(out, "", "  ")
}
