// Package gradient colors series points by their rank inside a category.
//
// For each category the series holding the largest value supplies the start
// color and the series holding the smallest value supplies the end color.
// Every point is then colored by linear RGB interpolation from the end color
// (rank 0, the smallest value) to the start color (the largest value).
package gradient

import (
	"cmp"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/mekko/pkg/core/chart"
	"github.com/matzehuels/mekko/pkg/core/render/mekko/stats"
)

// CategoryGradient is the color pair chosen for one category.
type CategoryGradient struct {
	StartColor  string `json:"start_color"`
	EndColor    string `json:"end_color"`
	StartSeries int    `json:"start_series"`
	EndSeries   int    `json:"end_series"`
	ItemCount   int    `json:"item_count"`
}

// Lerp interpolates linearly in RGB between from (t = 0) and to (t = 1).
// t is clamped to [0, 1]; the endpoints are returned verbatim.
func Lerp(from, to string, t float64) (string, error) {
	a, err := colorful.Hex(from)
	if err != nil {
		return "", err
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return "", err
	}
	t = max(0, min(1, t))
	switch t {
	case 0:
		return from, nil
	case 1:
		return to, nil
	}
	return a.BlendRgb(b, t).Clamped().Hex(), nil
}

// Fraction returns the interpolation parameter for rank out of itemCount.
// A single item maps to 1 so it takes the start color.
func Fraction(rank, itemCount int) float64 {
	if itemCount <= 1 {
		return 1
	}
	rank = max(0, min(rank, itemCount-1))
	return float64(rank) / float64(itemCount-1)
}

type member struct {
	series int
	value  float64
	idx    int // position in points[series]
}

// Assign computes one gradient per category and returns a copy of points
// with every point's Color set. seriesColors is indexed by series and holds
// each series' solid color. Points whose category has an unparsable color
// keep their series color.
func Assign(points [][]chart.DataPoint, seriesColors []string, categoryCount int) ([]CategoryGradient, [][]chart.DataPoint) {
	out := make([][]chart.DataPoint, len(points))
	for s := range points {
		out[s] = slices.Clone(points[s])
		for i := range out[s] {
			out[s][i].Color = colorAt(seriesColors, s)
		}
	}

	members := make([][]member, categoryCount)
	for s, row := range out {
		for i, p := range row {
			if p.Absent || p.IsHighlight || p.CategoryIndex < 0 || p.CategoryIndex >= categoryCount {
				continue
			}
			members[p.CategoryIndex] = append(members[p.CategoryIndex], member{series: s, value: p.ValueOriginal, idx: i})
		}
	}

	gradients := make([]CategoryGradient, categoryCount)
	for c, ms := range members {
		if len(ms) == 0 {
			continue
		}
		vals := make([]float64, len(ms))
		for i, m := range ms {
			vals[i] = m.value
		}
		hi, lo := ms[stats.ArgMax(vals)], ms[stats.ArgMin(vals)]
		g := CategoryGradient{
			StartColor:  colorAt(seriesColors, hi.series),
			EndColor:    colorAt(seriesColors, lo.series),
			StartSeries: hi.series,
			EndSeries:   lo.series,
			ItemCount:   len(ms),
		}
		gradients[c] = g

		ranked := slices.Clone(ms)
		slices.SortStableFunc(ranked, func(a, b member) int {
			if r := cmp.Compare(a.value, b.value); r != 0 {
				return r
			}
			return cmp.Compare(a.series, b.series)
		})
		for rank, m := range ranked {
			color, err := Lerp(g.EndColor, g.StartColor, Fraction(rank, g.ItemCount))
			if err != nil {
				continue
			}
			out[m.series][m.idx].Color = color
			if h := m.idx + 1; h < len(out[m.series]) && out[m.series][h].IsHighlight && out[m.series][h].CategoryIndex == c {
				out[m.series][h].Color = color
			}
		}
	}
	return gradients, out
}

func colorAt(colors []string, s int) string {
	if s >= 0 && s < len(colors) {
		return colors[s]
	}
	return chart.SeriesColor(nil, s)
}
