package stack

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mekko/pkg/core/chart"
)

func TestNormalizePositions(t *testing.T) {
	res := Normalize(Input{
		Values: [][]chart.Number{
			chart.Nums(10, 5),
			chart.Nums(-5, 3),
			{chart.Num(7), chart.Absent()},
		},
		CategoryCount: 2,
	}, Options{})

	require.Len(t, res.Points, 3)
	require.Len(t, res.Points[2], 1, "absent non-anchor series emits no point")

	c0 := []chart.DataPoint{res.Points[0][0], res.Points[1][0], res.Points[2][0]}
	assert.InDelta(t, 0, c0[0].Position, 1e-12)
	assert.InDelta(t, 0, c0[1].Position, 1e-12)
	assert.InDelta(t, 10, c0[2].Position, 1e-12)
	assert.InDelta(t, 5, c0[1].ValueAbsolute, 1e-12)
	assert.True(t, c0[1].Negative())

	assert.Equal(t, Totals{Positive: 17, Negative: -5}, res.Totals[0])
	assert.Equal(t, Totals{Positive: 8, Negative: 0}, res.Totals[1])
	assert.InDelta(t, 5, res.Points[1][1].Position, 1e-12)
	assert.Equal(t, 1, res.Points[1][1].StackIndex)

	assert.InDelta(t, -5, res.Min, 1e-12)
	assert.InDelta(t, 17, res.Max, 1e-12)
}

func TestNormalizeNegativeStartsAtZero(t *testing.T) {
	res := Normalize(Input{
		Values:        [][]chart.Number{chart.Nums(4), chart.Nums(-5), chart.Nums(6)},
		CategoryCount: 1,
	}, Options{})

	neg := res.Points[1][0]
	assert.Equal(t, 0.0, neg.Position)
	assert.Equal(t, -5.0, neg.ValueOriginal)
	assert.Equal(t, 4.0, res.Points[2][0].Position)
}

func TestNormalizePercentStacked(t *testing.T) {
	res := Normalize(Input{
		Values:        [][]chart.Number{chart.Nums(30), chart.Nums(20), chart.Nums(10)},
		CategoryCount: 1,
	}, Options{PercentStacked: true})

	want := []float64{0.5, 1.0 / 3, 1.0 / 6}
	var sum float64
	for s, w := range want {
		p := res.Points[s][0]
		assert.InDelta(t, w, p.ValueOriginal, 1e-9)
		sum += p.ValueAbsolute
	}
	assert.True(t, SumsToOne(sum))
	assert.True(t, SumsToOne(res.Totals[0].Positive))
	assert.Equal(t, 0.0, res.Multipliers[0].Negative)
}

func TestNormalizePercentStackedBothSigns(t *testing.T) {
	res := Normalize(Input{
		Values:        [][]chart.Number{chart.Nums(2), chart.Nums(-3), chart.Nums(6), chart.Nums(-1)},
		CategoryCount: 1,
	}, Options{PercentStacked: true})

	assert.InDelta(t, 1, res.Totals[0].Positive, Epsilon)
	assert.InDelta(t, -1, res.Totals[0].Negative, Epsilon)
	assert.InDelta(t, -0.75, res.Points[1][0].ValueOriginal, 1e-9)
	assert.InDelta(t, -0.75, res.Points[3][0].Position, 1e-9)
}

func TestNormalizePercentZeroTotal(t *testing.T) {
	res := Normalize(Input{
		Values:        [][]chart.Number{chart.Nums(0), chart.Nums(0)},
		CategoryCount: 1,
	}, Options{PercentStacked: true})

	for s := range res.Points {
		v := res.Points[s][0].ValueOriginal
		assert.False(t, math.IsNaN(v))
		assert.Equal(t, 0.0, v)
	}
	assert.Equal(t, Multiplier{}, res.Multipliers[0])
}

func TestNormalizeAnchorPlaceholder(t *testing.T) {
	res := Normalize(Input{
		Values:        [][]chart.Number{{chart.Absent(), chart.Num(math.NaN())}, chart.Nums(4, 2)},
		CategoryCount: 2,
	}, Options{})

	require.Len(t, res.Points[0], 2)
	for _, p := range res.Points[0] {
		assert.True(t, p.Absent)
		assert.Equal(t, -1, p.StackIndex)
	}
	assert.Equal(t, 0, res.Points[1][0].StackIndex)
	assert.Equal(t, 0.0, res.Points[1][0].Position)
}

func TestNormalizePadsAndTruncates(t *testing.T) {
	res := Normalize(Input{
		Values:        [][]chart.Number{chart.Nums(1), chart.Nums(1, 2, 3, 4)},
		CategoryCount: 3,
	}, Options{})

	require.Len(t, res.Points[0], 3)
	assert.False(t, res.Points[0][0].Absent)
	assert.True(t, res.Points[0][1].Absent)
	assert.True(t, res.Points[0][2].Absent)
	require.Len(t, res.Points[1], 3)
	assert.Len(t, res.Totals, 3)
}

func TestNormalizeEmpty(t *testing.T) {
	res := Normalize(Input{CategoryCount: 3}, Options{})
	assert.Empty(t, res.Points)
	assert.Len(t, res.Totals, 3)

	res = Normalize(Input{Values: [][]chart.Number{chart.Nums(1)}}, Options{})
	assert.Empty(t, res.Points)
}

func TestNormalizeHighlights(t *testing.T) {
	tests := []struct {
		name             string
		highlight        float64
		supportsOverflow bool
		wantHighlights   bool
		wantReplaced     bool
		wantPoints       int
		wantThinner      bool
		wantValue        float64
	}{
		{name: "nested", highlight: 4, wantHighlights: true, wantPoints: 2, wantValue: 10},
		{name: "overflow fallback", highlight: 12, wantReplaced: true, wantPoints: 1, wantValue: 12},
		{name: "overflow supported", highlight: 12, supportsOverflow: true, wantHighlights: true, wantPoints: 2, wantThinner: true, wantValue: 10},
		{name: "opposite sign", highlight: -1, supportsOverflow: true, wantHighlights: true, wantPoints: 2, wantThinner: true, wantValue: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Normalize(Input{
				Values:        [][]chart.Number{chart.Nums(10)},
				Highlights:    [][]chart.Number{chart.Nums(tt.highlight)},
				CategoryCount: 1,
			}, Options{SupportsOverflow: tt.supportsOverflow})

			assert.Equal(t, tt.wantHighlights, res.HasHighlights)
			assert.Equal(t, tt.wantReplaced, res.HighlightsReplacedValues)
			require.Len(t, res.Points[0], tt.wantPoints)

			regular := res.Points[0][0]
			assert.False(t, regular.IsHighlight)
			assert.Equal(t, tt.wantThinner, regular.IsDrawnThinner)
			assert.Equal(t, tt.wantValue, regular.ValueOriginal)

			if tt.wantPoints == 2 {
				hl := res.Points[0][1]
				assert.True(t, hl.IsHighlight)
				assert.False(t, hl.IsDrawnThinner)
				assert.Equal(t, tt.highlight, hl.ValueOriginal)
				assert.Equal(t, regular.Position, hl.Position)
				assert.Equal(t, regular.ValueAbsolute, hl.OriginalValueAbsolute)
			}
		})
	}
}

func TestNormalizeOverflowIsGlobal(t *testing.T) {
	res := Normalize(Input{
		Values:        [][]chart.Number{chart.Nums(10, 10), chart.Nums(5, 5)},
		Highlights:    [][]chart.Number{chart.Nums(2, 3), chart.Nums(1, 9)},
		CategoryCount: 2,
	}, Options{})

	assert.True(t, res.HighlightsReplacedValues)
	assert.False(t, res.HasHighlights)
	assert.Equal(t, 2.0, res.Points[0][0].ValueOriginal, "non-overflowing series is replaced too")
	assert.Equal(t, 9.0, res.Points[1][1].ValueOriginal)
}

func TestNormalizeHighlightPercentUsesParentMultiplier(t *testing.T) {
	res := Normalize(Input{
		Values:        [][]chart.Number{chart.Nums(30), chart.Nums(10)},
		Highlights:    [][]chart.Number{chart.Nums(15), nil},
		CategoryCount: 1,
	}, Options{PercentStacked: true})

	require.Len(t, res.Points[0], 2)
	assert.InDelta(t, 0.375, res.Points[0][1].ValueOriginal, 1e-9)
	assert.InDelta(t, 0.75, res.Points[1][0].Position, 1e-9)
}

func TestStackConservation(t *testing.T) {
	values := [][]chart.Number{
		chart.Nums(3.5, -2, 0),
		chart.Nums(-1.25, 8, 4),
		chart.Nums(7, -0.5, 1e6),
		chart.Nums(0.1, 0.2, -0.3),
	}
	for _, percent := range []bool{false, true} {
		res := Normalize(Input{Values: values, CategoryCount: 3}, Options{PercentStacked: percent})
		for c := range 3 {
			var pos, neg float64
			var posSpans, negSpans [][2]float64
			for s := range values {
				p := res.Points[s][c]
				if p.Negative() {
					neg += p.ValueAbsolute
					negSpans = append(negSpans, [2]float64{p.Position, p.Position - p.ValueAbsolute})
				} else {
					pos += p.ValueAbsolute
					posSpans = append(posSpans, [2]float64{p.Position, p.Position + p.ValueAbsolute})
				}
			}
			if percent {
				assert.True(t, pos == 0 || SumsToOne(pos), "category %d positive %v", c, pos)
				assert.True(t, neg == 0 || SumsToOne(neg), "category %d negative %v", c, neg)
			} else {
				assert.InDelta(t, res.Totals[c].Positive, pos, 1e-9)
				assert.InDelta(t, -res.Totals[c].Negative, neg, 1e-9)
			}
			assertContiguous(t, posSpans)
			assertContiguous(t, negSpans)
		}
	}
}

func assertContiguous(t *testing.T, spans [][2]float64) {
	t.Helper()
	var base float64
	for _, s := range spans {
		assert.InDelta(t, base, s[0], 1e-9)
		base = s[1]
	}
}

func TestOverflows(t *testing.T) {
	tests := []struct {
		p, h float64
		want bool
	}{
		{10, 4, false},
		{10, 10, false},
		{10, 12, true},
		{10, -1, true},
		{-10, -4, false},
		{-10, -12, true},
		{-10, 1, true},
		{0, 0, false},
		{0, 1, true},
	}
	for _, tt := range tests {
		if got := Overflows(tt.p, tt.h); got != tt.want {
			t.Errorf("Overflows(%v, %v) = %v, want %v", tt.p, tt.h, got, tt.want)
		}
	}
}

func TestDetectOverflowAbsentParent(t *testing.T) {
	got := DetectOverflow(
		[][]chart.Number{{chart.Absent()}, chart.Nums(3)},
		[][]chart.Number{chart.Nums(2), nil},
	)
	assert.Equal(t, []bool{true, false}, got)
}

func TestNormalizeHighlightOverAbsentParent(t *testing.T) {
	res := Normalize(Input{
		Values:        [][]chart.Number{chart.Nums(3), {chart.Absent()}, {chart.Absent()}},
		Highlights:    [][]chart.Number{nil, chart.Nums(5), chart.Nums(-2)},
		CategoryCount: 1,
	}, Options{SupportsOverflow: true})

	assert.Equal(t, []bool{false, true, true}, res.Overflowing)
	require.Len(t, res.Points[1], 2, "highlight is emitted with a zero-valued parent")

	regular, hl := res.Points[1][0], res.Points[1][1]
	assert.False(t, regular.IsHighlight)
	assert.True(t, regular.IsDrawnThinner)
	assert.Equal(t, 0.0, regular.ValueOriginal)
	assert.Equal(t, 3.0, regular.Position)
	assert.True(t, hl.IsHighlight)
	assert.Equal(t, 5.0, hl.ValueOriginal)
	assert.Equal(t, 3.0, hl.Position)
	assert.Equal(t, regular.StackIndex, hl.StackIndex)

	require.Len(t, res.Points[2], 2)
	assert.Equal(t, 0.0, res.Points[2][1].Position, "negative highlight grows from the negative base")
	assert.Equal(t, -2.0, res.Points[2][1].ValueOriginal)

	assert.Equal(t, Totals{Positive: 3, Negative: 0}, res.Totals[0])
	assert.InDelta(t, 8, res.Max, 1e-12)
	assert.InDelta(t, -2, res.Min, 1e-12)
}

func TestNormalizeHighlightOverAbsentParentFallback(t *testing.T) {
	res := Normalize(Input{
		Values:        [][]chart.Number{{chart.Absent()}},
		Highlights:    [][]chart.Number{chart.Nums(5)},
		CategoryCount: 1,
	}, Options{})

	assert.True(t, res.HighlightsReplacedValues)
	require.Len(t, res.Points[0], 1)
	assert.Equal(t, 5.0, res.Points[0][0].ValueOriginal)
}

func TestNegative(t *testing.T) {
	assert.True(t, Negative(-1, chart.Num(4)))
	assert.False(t, Negative(1, chart.Num(-4)))
	assert.True(t, Negative(0, chart.Num(-4)))
	assert.False(t, Negative(0, chart.Num(4)))
	assert.False(t, Negative(0, chart.Absent()))
}
