package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/mekko/pkg/core/chart"
	"github.com/matzehuels/mekko/pkg/core/render/mekko/layout"
	"github.com/matzehuels/mekko/pkg/dataset"
	"github.com/matzehuels/mekko/pkg/observability"
)

// BuildLayout converts d into a layout using d's options merged with opts.
// The returned layout carries the effective options.
func BuildLayout(ctx context.Context, d dataset.Dataset, opts Options) (layout.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, err
	}
	chartOpts := opts.ChartOptions(d.Options)

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, d.Input.CategoryCount(), len(d.Input.SeriesColumns()))
	start := time.Now()

	l := layout.Build(d.Input, chartOpts, layout.WithLogger(opts.Logger))

	hooks.OnLayoutComplete(ctx, time.Since(start), nil)
	logEffective(opts, chartOpts, l.Options)
	return l, nil
}

// logEffective reports options the engine switched off for this dataset.
func logEffective(opts Options, requested, effective chart.Options) {
	if requested.ColorGradient && !effective.ColorGradient {
		opts.Logger.Warn("color gradient disabled: a series has more than one category value")
	}
}
