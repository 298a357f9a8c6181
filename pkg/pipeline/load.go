package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/mekko/pkg/dataset"
	mio "github.com/matzehuels/mekko/pkg/io"
	"github.com/matzehuels/mekko/pkg/observability"
)

// Load reads and validates the dataset named by opts.Source.
func Load(ctx context.Context, opts Options) (dataset.Dataset, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return dataset.Dataset{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Source)
	start := time.Now()

	d, err := mio.Open(ctx, opts.Source, opts.Fetcher, opts.Refresh)
	if err == nil {
		err = d.Validate()
	}
	hooks.OnLoadComplete(ctx, opts.Source, d.Input.CategoryCount(), len(d.Input.SeriesColumns()), time.Since(start), err)
	if err != nil {
		return dataset.Dataset{}, err
	}

	opts.Logger.Debug("loaded dataset",
		"source", opts.Source,
		"categories", d.Input.CategoryCount(),
		"series", len(d.Input.SeriesColumns()))
	return d, nil
}

