// Package stats collects per-category aggregates over series values.
//
// Aggregates are recomputed from scratch on every conversion. Absent and
// non-finite values are excluded from every aggregate, including Count.
package stats

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/matzehuels/mekko/pkg/core/chart"
)

// Collect returns one aggregate per category. values is indexed
// [series][category]; short series are treated as absent for the missing
// categories. A category without present values yields the zero aggregate.
func Collect(values [][]chart.Number, categoryCount int) []chart.CategoryAggregate {
	out := make([]chart.CategoryAggregate, categoryCount)
	column := make([]float64, 0, len(values))

	for c := range categoryCount {
		column = column[:0]
		for _, series := range values {
			if c < len(series) && series[c].Present() {
				column = append(column, series[c].Value)
			}
		}
		out[c] = aggregate(column)
	}
	return out
}

// Column returns the present values of category c in series order, along
// with the index of the series each value came from.
func Column(values [][]chart.Number, c int) (vals []float64, series []int) {
	for s, row := range values {
		if c < len(row) && row[c].Present() {
			vals = append(vals, row[c].Value)
			series = append(series, s)
		}
	}
	return vals, series
}

// ArgMax returns the position of the largest value, first wins ties.
// It returns -1 for an empty slice.
func ArgMax(vals []float64) int {
	if len(vals) == 0 {
		return -1
	}
	return floats.MaxIdx(vals)
}

// ArgMin returns the position of the smallest value, first wins ties.
// It returns -1 for an empty slice.
func ArgMin(vals []float64) int {
	if len(vals) == 0 {
		return -1
	}
	return floats.MinIdx(vals)
}

// SeriesSum returns the sum of the present values of one series.
func SeriesSum(series []chart.Number) float64 {
	var sum float64
	for _, n := range series {
		if n.Present() {
			sum += n.Value
		}
	}
	return sum
}

func aggregate(vals []float64) chart.CategoryAggregate {
	if len(vals) == 0 {
		return chart.CategoryAggregate{}
	}
	return chart.CategoryAggregate{
		Sum:   floats.Sum(vals),
		Max:   floats.Max(vals),
		Min:   floats.Min(vals),
		Mean:  stat.Mean(vals, nil),
		Count: len(vals),
	}
}
