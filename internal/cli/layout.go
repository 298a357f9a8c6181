package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mekko/pkg/dataset"
	"github.com/matzehuels/mekko/pkg/pipeline"
)

// bindLayoutFlags registers the flags that shape a layout.
func bindLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().BoolVar(&opts.PercentStacked, "percent", false, "stack each column to 100%")
	cmd.Flags().BoolVar(&opts.SupportsOverflow, "overflow", false, "draw overflowing highlights as thinner companions")
	cmd.Flags().StringVar(&opts.SortSeries, "sort", "", "order series by total: none, asc, desc")
	cmd.Flags().BoolVar(&opts.ColorGradient, "gradient", false, "shade series by rank within each column")
	cmd.Flags().StringSliceVar(&opts.Palette, "palette", nil, "series colors, hex (comma-separated)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "refetch remote datasets")
}

func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		opts    pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "layout [dataset]",
		Short: "Compute a chart layout from a dataset",
		Long: `Compute a chart layout from a dataset.

The layout holds every column span, stacked segment and legend entry. It is
written as JSON, or msgpack when the output ends in .msgpack, and can be
rendered later with 'visualize'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	bindLayoutFlags(cmd, &opts)
	return cmd
}

func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger
	opts.Fetcher = fetcher(runner)

	d, _, err := runner.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.Source, err)
	}

	sp := newSpinner(ctx, "Computing layout...")
	sp.Start()
	l, hit, err := runner.LayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		sp.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	sp.Stop()
	if sp.Cancelled() {
		return ctx.Err()
	}

	path := output
	if path == "" {
		path = basePath("", opts.Source) + ".layout.json"
	}
	if err := dataset.WriteLayoutFile(l, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printSuccess("Layout complete")
	printFile(path)
	printStats(len(l.Categories), len(l.Series), hit)
	printNewline()
	printNextStep("Render", appName+" visualize "+path)
	return nil
}
