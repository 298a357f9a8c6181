package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mekko/pkg/dataset"
	"github.com/matzehuels/mekko/pkg/pipeline"
)

func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formats string
		output  string
		noCache bool
		opts    pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a previously computed layout",
		Long: `Render a previously computed layout.

The input is a layout written by 'layout'. Use 'render' to go straight from
a dataset to an image.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formats)
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	bindRenderFlags(cmd, &opts, &formats)
	return cmd
}

func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	l, err := dataset.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}
	cfg, err := c.config()
	if err != nil {
		return err
	}
	cfg.ApplyRender(&opts)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	sp := newSpinner(ctx, "Rendering...")
	sp.Start()
	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		sp.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	sp.Stop()

	paths, err := writeArtifacts(artifacts, opts.Formats, basePath(output, trimLayoutSuffix(input)), output)
	if err != nil {
		return err
	}
	printSuccess("Rendered %s", plural(len(paths), "file", "files"))
	for _, p := range paths {
		printFile(p)
	}
	printStats(len(l.Categories), len(l.Series), hit)
	return nil
}
