package styles

import (
	"fmt"
	"slices"
	"strings"

	svg "github.com/ajstarks/svgo/float"
)

// Style defines the visual appearance of a rendered chart.
type Style interface {
	// Name returns the lookup name of the style.
	Name() string
	// RenderDefs writes SVG <defs> content. Styles without defs write nothing.
	RenderDefs(canvas *svg.SVG)
	// RenderBar writes a single data rectangle.
	RenderBar(canvas *svg.SVG, b Bar)
	// RenderLabel writes a bar's value label.
	RenderLabel(canvas *svg.SVG, b Bar)
	// RenderAxisLabel writes a category label centered at x.
	RenderAxisLabel(canvas *svg.SVG, x, y float64, label string)
	// RenderBaseline writes the zero line.
	RenderBaseline(canvas *svg.SVG, x1, x2, y float64)
	// RenderLegend writes the legend with its top-left corner at (x, y).
	RenderLegend(canvas *svg.SVG, x, y float64, items []LegendItem)
}

// Bar contains all data needed to render one data rectangle.
type Bar struct {
	ID         string  // element id, unique within the document
	Label      string  // value label (empty to skip)
	Title      string  // hover tooltip
	X, Y, W, H float64 // top-left corner and size
	CX, CY     float64 // center (for labels)
	Color      string  // fill color
	Highlight  bool    // highlighted subset drawn over its parent
	Dimmed     bool    // regular companion of a highlight
	Thinner    bool    // overflowing companion drawn at reduced width
}

// LegendItem is one legend swatch.
type LegendItem struct {
	Label string
	Color string
}

// LegendItemHeight is the vertical space taken by one legend row.
const LegendItemHeight = 18.0

var registry = []Style{Simple{}, Outline{}}

// Names returns the names of the available styles.
func Names() []string {
	out := make([]string, len(registry))
	for i, s := range registry {
		out[i] = s.Name()
	}
	return out
}

// Lookup returns the style registered under name (case-insensitive). The
// empty name selects [Simple].
func Lookup(name string) (Style, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Simple{}, nil
	}
	i := slices.IndexFunc(registry, func(s Style) bool { return s.Name() == name })
	if i < 0 {
		return nil, fmt.Errorf("unknown style %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return registry[i], nil
}
