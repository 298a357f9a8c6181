// Package pipeline runs the load → layout → render pipeline shared by the
// CLI and the HTTP server.
//
// # Stages
//
//  1. Load: read a dataset from a file or URL (pkg/io)
//  2. Layout: convert it into a [layout.Layout]
//  3. Render: produce SVG, JSON, msgpack, PNG or PDF artifacts
//
// Each stage can run on its own. [Runner] adds caching: layouts are keyed by
// the dataset hash plus the effective chart options, artifacts by the layout
// hash plus the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "share.csv",
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// [layout.Layout]: github.com/matzehuels/mekko/pkg/core/render/mekko/layout.Layout
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"

	"github.com/matzehuels/mekko/pkg/cache"
	"github.com/matzehuels/mekko/pkg/core/chart"
	"github.com/matzehuels/mekko/pkg/core/render/mekko/geometry"
	"github.com/matzehuels/mekko/pkg/core/render/mekko/layout"
	"github.com/matzehuels/mekko/pkg/core/render/mekko/sink"
	"github.com/matzehuels/mekko/pkg/dataset"
	"github.com/matzehuels/mekko/pkg/errors"
	"github.com/matzehuels/mekko/pkg/httputil"
)

// Defaults shared by the CLI, the server and the config file.
const (
	DefaultWidth        = sink.DefaultWidth
	DefaultHeight       = sink.DefaultHeight
	DefaultBorderWidth  = sink.DefaultBorderWidth
	DefaultThinnerRatio = geometry.DefaultThinnerRatio
	DefaultScale        = 2.0
	DefaultStyle        = dataset.StyleSimple
	DefaultFormat       = dataset.FormatSVG
)

// Options configure a pipeline run. The JSON form is the HTTP request body.
type Options struct {
	// Load
	Source  string `json:"source,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`

	// Layout. Set flags switch the corresponding dataset option on; a
	// non-empty SortSeries or Palette replaces the dataset's.
	PercentStacked   bool     `json:"percent_stacked,omitempty"`
	SupportsOverflow bool     `json:"supports_overflow,omitempty"`
	SortSeries       string   `json:"sort_series,omitempty"`
	ColorGradient    bool     `json:"color_gradient,omitempty"`
	Palette          []string `json:"palette,omitempty"`

	// Render
	Formats      []string `json:"formats,omitempty"`
	Style        string   `json:"style,omitempty"`
	Width        float64  `json:"width,omitempty"`
	Height       float64  `json:"height,omitempty"`
	BorderWidth  float64  `json:"border_width,omitempty"`
	ThinnerRatio float64  `json:"thinner_ratio,omitempty"`
	NoLegend     bool     `json:"no_legend,omitempty"`
	Labels       bool     `json:"labels,omitempty"`
	Title        string   `json:"title,omitempty"`
	Language     string   `json:"language,omitempty"`
	Scale        float64  `json:"scale,omitempty"`

	Logger  *log.Logger      `json:"-"`
	Fetcher *httputil.Client `json:"-"`

	validated bool
}

// Result holds the outputs of [Runner.Execute].
type Result struct {
	Dataset     dataset.Dataset
	DatasetHash string
	Layout      layout.Layout
	Artifacts   map[string][]byte
	Stats       Stats
	CacheInfo   CacheInfo
}

// Stats are sizes and stage timings.
type Stats struct {
	Categories int
	Series     int
	Points     int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo records which stages were served from cache.
type CacheInfo struct {
	LoadHit   bool
	LayoutHit bool
	RenderHit bool
}

// ValidateFormat checks a single output format.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, dataset.Formats)
}

// ValidateFormats checks every format in formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks a bar style name.
func ValidateStyle(style string) error {
	if !slices.Contains(dataset.Styles, style) {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style %q (must be one of: simple, outline)", style)
	}
	return nil
}

// ValidateAndSetDefaults validates every stage. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks the dataset source.
func (o *Options) ValidateForLoad() error {
	o.setLogger()
	if o.Source == "" {
		return errors.New(errors.ErrCodeInvalidInput, "dataset source is required")
	}
	return nil
}

// SetLayoutDefaults fills layout defaults.
func (o *Options) SetLayoutDefaults() {
	o.setLogger()
}

// ValidateForLayout checks the layout options.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateSortDirection(o.SortSeries); err != nil {
		return err
	}
	for _, c := range o.Palette {
		if err := errors.ValidateColor(c); err != nil {
			return err
		}
	}
	return nil
}

// SetRenderDefaults fills render defaults.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.BorderWidth <= 0 {
		o.BorderWidth = DefaultBorderWidth
	}
	if o.ThinnerRatio <= 0 || o.ThinnerRatio > 1 {
		o.ThinnerRatio = DefaultThinnerRatio
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

// ValidateForRender fills defaults and checks the render options.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if o.Language != "" {
		if _, err := language.Parse(o.Language); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidOption, err, "invalid language %q", o.Language)
		}
	}
	return nil
}

// ChartOptions merges o into the dataset's own options.
func (o *Options) ChartOptions(base chart.Options) chart.Options {
	out := base
	out.Is100PercentStacked = base.Is100PercentStacked || o.PercentStacked
	out.SupportsOverflow = base.SupportsOverflow || o.SupportsOverflow
	out.ColorGradient = base.ColorGradient || o.ColorGradient
	if o.SortSeries != "" {
		if dir, err := chart.ParseSortDirection(o.SortSeries); err == nil {
			out.SortSeries = dir
		}
	}
	if len(o.Palette) > 0 {
		out.Palette = slices.Clone(o.Palette)
	}
	return out
}

// LayoutKeyOpts returns the layout cache key options for effective chart
// options.
func LayoutKeyOpts(opts chart.Options) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		PercentStacked:   opts.Is100PercentStacked,
		SupportsOverflow: opts.SupportsOverflow,
		SortSeries:       opts.SortSeries.String(),
		ColorGradient:    opts.ColorGradient,
		Palette:          opts.Palette,
	}
}

// ArtifactKeyOpts returns the artifact cache key options for format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:       format,
		Style:        o.Style,
		Width:        o.Width,
		Height:       o.Height,
		BorderWidth:  o.BorderWidth,
		ThinnerRatio: o.ThinnerRatio,
		Legend:       !o.NoLegend,
		Labels:       o.Labels,
		Title:        o.Title,
		Language:     o.Language,
	}
	if format == dataset.FormatPNG {
		k.Scale = o.Scale
	}
	return k
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}
