package sink

import (
	"fmt"

	"github.com/matzehuels/mekko/pkg/core/chart"
	"github.com/matzehuels/mekko/pkg/core/render/mekko/geometry"
	"github.com/matzehuels/mekko/pkg/core/render/mekko/layout"
)

// Placed is a data point together with its rectangle.
type Placed struct {
	ID    string          `json:"id"`
	Point chart.DataPoint `json:"point"`
	Rect  geometry.Rect   `json:"rect"`
	// Under is the un-highlighted rectangle beneath a highlight point.
	Under *geometry.Rect `json:"under,omitempty"`
	// Dimmed marks a regular point drawn beneath its highlight.
	Dimmed bool `json:"dimmed,omitempty"`
}

// Place maps every drawable point of l into f. Absent placeholders are
// skipped.
func Place(l layout.Layout, f geometry.Frame) []Placed {
	m := l.Mapper(f)
	var out []Placed
	for _, s := range l.Series {
		for i, p := range s.Points {
			if p.Absent {
				continue
			}
			pl := Placed{
				ID:    pointID(p),
				Point: p,
				Rect:  m.Rect(p),
			}
			if p.IsHighlight {
				under := m.WithoutHighlight(p)
				pl.Under = &under
			} else if next := i + 1; next < len(s.Points) && s.Points[next].IsHighlight && s.Points[next].CategoryIndex == p.CategoryIndex {
				pl.Dimmed = true
			}
			out = append(out, pl)
		}
	}
	return out
}

// CategorySpan returns the horizontal pixel extent of category c.
func CategorySpan(l layout.Layout, m geometry.Mapper, c int) (x, width float64) {
	if c < 0 || c >= len(l.CategoryStarts) {
		return 0, 0
	}
	x = m.X.Scale(l.CategoryStarts[c]) + m.BorderWidth*float64(c)
	width = m.X.Scale(l.CategoryWidths[c]) - m.X.Scale(0)
	if width < 0 {
		width = -width
	}
	return x, width
}

func pointID(p chart.DataPoint) string {
	if p.IsHighlight {
		return fmt.Sprintf("bar-%d-%d-hl", p.SeriesIndex, p.CategoryIndex)
	}
	return fmt.Sprintf("bar-%d-%d", p.SeriesIndex, p.CategoryIndex)
}
