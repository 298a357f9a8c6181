package stack

import (
	"math"

	"github.com/matzehuels/mekko/pkg/core/chart"
)

// Epsilon is the tolerance used when comparing a 100% stack total to 1.
const Epsilon = 1e-4

// Options control normalization.
type Options struct {
	PercentStacked   bool
	SupportsOverflow bool
}

// Input holds the raw values of one dataset.
type Input struct {
	// Values is indexed [series][category].
	Values [][]chart.Number
	// Highlights is indexed [series][category]; a nil row means the series
	// carries no highlights.
	Highlights [][]chart.Number
	// CategoryCount is authoritative: shorter rows are padded with absent
	// values and longer rows are truncated.
	CategoryCount int
}

// Totals are the final accumulator values of one category.
type Totals struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"` // always <= 0
}

// Multiplier is the pair of 100% stacking multipliers of one category.
type Multiplier struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
}

// Result is the output of [Normalize].
type Result struct {
	// Points is indexed by series. Within a series, points follow category
	// order and a highlight point directly follows its regular companion.
	Points [][]chart.DataPoint
	// Totals and Multipliers are indexed by category. Multipliers are all 1
	// unless percent stacking is active.
	Totals      []Totals
	Multipliers []Multiplier
	// Overflowing marks the series with at least one overflowing highlight.
	Overflowing []bool
	// HasHighlights is false when no highlights exist or when they were
	// folded into the base values.
	HasHighlights bool
	// HighlightsReplacedValues is set when overflow forced the fallback.
	HighlightsReplacedValues bool
	// Min and Max bound every stacked extent, including zero.
	Min, Max float64
}

// Normalize stacks in according to opts. It never fails: empty or
// malformed input produces an empty or padded result.
func Normalize(in Input, opts Options) Result {
	n := max(in.CategoryCount, 0)
	res := Result{
		Totals:      make([]Totals, n),
		Multipliers: make([]Multiplier, n),
	}
	seriesCount := len(in.Values)
	if seriesCount == 0 || n == 0 {
		return res
	}

	values := make([][]chart.Number, seriesCount)
	highlights := make([][]chart.Number, seriesCount)
	for s := range seriesCount {
		values[s] = fit(in.Values[s], n)
		if s < len(in.Highlights) && len(in.Highlights[s]) > 0 {
			highlights[s] = fit(in.Highlights[s], n)
			res.HasHighlights = true
		}
	}

	res.Overflowing = DetectOverflow(values, highlights)
	if anyTrue(res.Overflowing) && !opts.SupportsOverflow {
		for s := range seriesCount {
			if highlights[s] != nil {
				values[s] = highlights[s]
			}
			highlights[s] = nil
		}
		res.Overflowing = make([]bool, seriesCount)
		res.HasHighlights = false
		res.HighlightsReplacedValues = true
	}

	for c := range n {
		res.Multipliers[c] = Multiplier{Positive: 1, Negative: 1}
		if opts.PercentStacked {
			res.Multipliers[c] = percentMultiplier(values, c)
		}
	}

	res.Points = make([][]chart.DataPoint, seriesCount)
	for c := range n {
		res.Totals[c] = stackCategory(&res, values, highlights, c)
	}
	return res
}

// stackCategory folds the series of category c into res.Points and returns
// the category totals. Accumulators are local to the call.
func stackCategory(res *Result, values, highlights [][]chart.Number, c int) Totals {
	m := res.Multipliers[c]
	var posBase, negBase float64
	order := 0

	for s := range values {
		v := values[s][c]
		h := chart.Absent()
		if highlights[s] != nil {
			h = highlights[s][c]
		}
		if !v.Present() && h.Present() {
			v = chart.Num(0)
		}
		if !v.Present() {
			if s == 0 {
				res.Points[s] = append(res.Points[s], chart.DataPoint{
					CategoryIndex: c,
					SeriesIndex:   s,
					StackIndex:    -1,
					Absent:        true,
				})
			}
			continue
		}

		negative := Negative(v.Value, h)
		mult := m.Positive
		if negative {
			mult = m.Negative
		}
		scaled := v.Value * mult
		abs := math.Abs(scaled)

		var position float64
		if negative {
			position = negBase
			negBase -= abs
		} else {
			position = posBase
			posBase += abs
		}
		res.extend(position, scaled)

		regular := chart.DataPoint{
			CategoryIndex:         c,
			SeriesIndex:           s,
			ValueOriginal:         scaled,
			ValueAbsolute:         abs,
			Position:              position,
			OriginalValue:         scaled,
			OriginalValueAbsolute: abs,
			OriginalPosition:      position,
			StackIndex:            order,
		}

		var hl *chart.DataPoint
		if h.Present() {
			hv := h.Value * mult
			regular.IsDrawnThinner = res.Overflowing[s]
			p := regular
			p.IsHighlight = true
			p.IsDrawnThinner = false
			p.ValueOriginal = hv
			p.ValueAbsolute = math.Abs(hv)
			res.extend(position, hv)
			hl = &p
		}

		res.Points[s] = append(res.Points[s], regular)
		if hl != nil {
			res.Points[s] = append(res.Points[s], *hl)
		}
		order++
	}
	return Totals{Positive: posBase, Negative: negBase}
}

// extend grows the value domain to cover a rectangle anchored at position.
func (r *Result) extend(position, value float64) {
	end := position + value
	r.Min = min(r.Min, position, end)
	r.Max = max(r.Max, position, end)
}

// Negative reports whether a parent value stacks below the baseline. A zero
// parent follows the sign of its highlight h, so that a negative highlight
// grows from the negative base.
func Negative(parent float64, h chart.Number) bool {
	if parent != 0 {
		return parent < 0
	}
	return h.Present() && h.Value < 0
}

// DetectOverflow reports, per series, whether any highlight has the opposite
// sign of its parent or exceeds it in magnitude. An absent parent counts as
// zero. Rows must already be aligned to the same category count.
func DetectOverflow(values, highlights [][]chart.Number) []bool {
	out := make([]bool, len(values))
	for s := range values {
		if s >= len(highlights) || highlights[s] == nil {
			continue
		}
		for c, h := range highlights[s] {
			if !h.Present() || c >= len(values[s]) {
				continue
			}
			if Overflows(values[s][c].Or(0), h.Value) {
				out[s] = true
				break
			}
		}
	}
	return out
}

// Overflows reports whether highlight h does not nest inside parent p.
func Overflows(p, h float64) bool {
	if (p >= 0 && h < 0) || (p < 0 && h > 0) {
		return true
	}
	return math.Abs(h) > math.Abs(p)
}

// SumsToOne reports whether total is 1 within [Epsilon].
func SumsToOne(total float64) bool {
	return math.Abs(math.Abs(total)-1) <= Epsilon
}

func percentMultiplier(values [][]chart.Number, c int) Multiplier {
	var pos, neg float64
	for s := range values {
		v := values[s][c]
		if !v.Present() {
			continue
		}
		if v.Value >= 0 {
			pos += v.Value
		} else {
			neg -= v.Value
		}
	}
	var m Multiplier
	if pos != 0 {
		m.Positive = 1 / pos
	}
	if neg != 0 {
		m.Negative = 1 / neg
	}
	return m
}

// fit returns row resized to n, sanitized, padding with absent values.
func fit(row []chart.Number, n int) []chart.Number {
	out := make([]chart.Number, n)
	for i := range min(n, len(row)) {
		out[i] = row[i].Sanitize()
	}
	return out
}

func anyTrue(bs []bool) bool {
	for _, b := range bs {
		if b {
			return true
		}
	}
	return false
}
