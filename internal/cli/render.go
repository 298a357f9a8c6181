package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mekko/pkg/errors"
	"github.com/matzehuels/mekko/pkg/pipeline"
	"github.com/matzehuels/mekko/pkg/storage"
)

// bindRenderFlags registers the flags that shape an artifact. Size and
// style flags left at zero fall back to the config file.
func bindRenderFlags(cmd *cobra.Command, opts *pipeline.Options, formats *string) {
	cmd.Flags().StringVarP(formats, "format", "f", "", "output format(s): svg, json, msgpack, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.Style, "style", "", "bar style: simple, outline")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "frame width (default 800)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "frame height (default 500)")
	cmd.Flags().Float64Var(&opts.BorderWidth, "border-width", 0, "gap between columns in pixels")
	cmd.Flags().Float64Var(&opts.ThinnerRatio, "thinner-ratio", 0, "width ratio of overflow companions (0-1]")
	cmd.Flags().BoolVar(&opts.NoLegend, "no-legend", false, "omit the legend")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "print values inside segments")
	cmd.Flags().StringVar(&opts.Title, "title", "", "chart title (default: dataset title)")
	cmd.Flags().StringVar(&opts.Language, "lang", "", "BCP 47 language for number labels")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "PNG scale factor")
}

func (c *CLI) renderCommand() *cobra.Command {
	var (
		formats string
		output  string
		noCache bool
		upload  bool
		opts    pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "render [dataset]",
		Short: "Render a dataset to SVG, JSON, msgpack, PNG or PDF",
		Long: `Render a dataset to SVG, JSON, msgpack, PNG or PDF.

Runs load, layout and render in one step. PNG and PDF need rsvg-convert on
PATH. With --upload, artifacts are also copied to the configured S3 bucket.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			opts.Formats = parseFormats(formats)
			return c.runRender(cmd.Context(), opts, output, noCache, upload)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&upload, "upload", false, "upload artifacts to the configured S3 bucket")
	bindLayoutFlags(cmd, &opts)
	bindRenderFlags(cmd, &opts, &formats)
	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache, upload bool) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	cfg.ApplyRender(&opts)

	var uploader *storage.Uploader
	if upload {
		if uploader, err = cfg.OpenUploader(ctx); err != nil {
			return err
		}
		if uploader == nil {
			return errors.New(errors.ErrCodeInvalidOption, "--upload needs upload.s3_bucket or MEKKO_S3_BUCKET")
		}
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger
	opts.Fetcher = fetcher(runner)

	prog := newProgress(loggerFromContext(ctx))
	sp := newSpinner(ctx, "Rendering "+opts.Source+"...")
	sp.Start()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		sp.StopWithError("Render failed")
		return err
	}
	sp.Stop()
	prog.done(fmt.Sprintf("Rendered %s", plural(len(res.Artifacts), "artifact", "artifacts")))

	paths, err := writeArtifacts(res.Artifacts, opts.Formats, basePath(output, opts.Source), output)
	if err != nil {
		return err
	}
	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(res.Stats.Categories, res.Stats.Series, res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit)

	if uploader != nil {
		for i, format := range opts.Formats {
			uri, err := uploader.Upload(ctx, filepath.Base(paths[i]), res.Artifacts[format], storage.ContentType(format))
			if err != nil {
				return err
			}
			printKeyValue("uploaded", StyleLink.Render(uri))
		}
	}
	return nil
}

// writeArtifacts writes one file per format and returns the paths in
// format order. A single format with an explicit output uses it verbatim.
func writeArtifacts(artifacts map[string][]byte, formats []string, base, output string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if len(formats) == 1 && output != "" {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// trimLayoutSuffix maps "sales.layout.json" to "sales".
func trimLayoutSuffix(path string) string {
	for _, ext := range []string{".layout.json", ".layout.msgpack"} {
		if strings.HasSuffix(path, ext) {
			return strings.TrimSuffix(path, ext)
		}
	}
	return path
}
