package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/text/language"

	"github.com/matzehuels/mekko/pkg/core/render/mekko/layout"
	"github.com/matzehuels/mekko/pkg/core/render/mekko/sink"
	"github.com/matzehuels/mekko/pkg/core/render/mekko/styles"
	"github.com/matzehuels/mekko/pkg/dataset"
	"github.com/matzehuels/mekko/pkg/observability"
)

// Render produces one artifact per requested format.
func Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	svgOpts, err := buildSVGOptions(opts)
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		switch format {
		case dataset.FormatSVG:
			data = sink.RenderSVG(l, svgOpts...)
		case dataset.FormatJSON:
			data, err = sink.RenderJSON(l, svgOpts...)
		case dataset.FormatMsgpack:
			data, err = dataset.MarshalLayoutMsgpack(l)
		case dataset.FormatPNG:
			data, err = sink.RenderPNG(ctx, l, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
		case dataset.FormatPDF:
			data, err = sink.RenderPDF(ctx, l, svgOpts...)
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, nil
}

func buildSVGOptions(opts Options) ([]sink.SVGOption, error) {
	style, err := styles.Lookup(opts.Style)
	if err != nil {
		return nil, err
	}
	svgOpts := []sink.SVGOption{
		sink.WithStyle(style),
		sink.WithSize(opts.Width, opts.Height),
		sink.WithBorderWidth(opts.BorderWidth),
		sink.WithThinnerRatio(opts.ThinnerRatio),
	}
	if opts.NoLegend {
		svgOpts = append(svgOpts, sink.WithoutLegend())
	}
	if opts.Labels {
		svgOpts = append(svgOpts, sink.WithLabels())
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	if opts.Language != "" {
		tag, err := language.Parse(opts.Language)
		if err != nil {
			return nil, err
		}
		svgOpts = append(svgOpts, sink.WithLanguage(tag))
	}
	return svgOpts, nil
}
