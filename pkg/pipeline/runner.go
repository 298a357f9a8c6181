package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mekko/pkg/cache"
	"github.com/matzehuels/mekko/pkg/core/render/mekko/layout"
	"github.com/matzehuels/mekko/pkg/dataset"
	"github.com/matzehuels/mekko/pkg/observability"
)

// Runner executes the pipeline with caching. It holds no per-run state and
// is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner returns a runner. A nil cache disables caching and a nil keyer
// uses [cache.DefaultKeyer].
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs load → layout → render for opts.Source.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	d, hit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result, err := r.ExecuteDataset(ctx, d, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(start) - result.Stats.LayoutTime - result.Stats.RenderTime
	result.CacheInfo.LoadHit = hit
	return result, nil
}

// ExecuteDataset runs layout → render for a dataset already in memory.
func (r *Runner) ExecuteDataset(ctx context.Context, d dataset.Dataset, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.Title == "" {
		opts.Title = d.Title
	}

	result := &Result{Dataset: d}
	result.DatasetHash, _ = d.Hash()

	layoutStart := time.Now()
	l, layoutHit, err := r.LayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit
	result.Stats.Categories = len(l.Categories)
	result.Stats.Series = len(l.Series)
	result.Stats.Points = len(l.Points())

	r.Logger.Info("computed layout",
		"categories", result.Stats.Categories,
		"series", result.Stats.Series,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// LoadWithCacheInfo loads opts.Source. Parsed remote datasets are cached;
// local files are always read fresh.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (dataset.Dataset, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return dataset.Dataset{}, false, err
	}

	remote := strings.HasPrefix(opts.Source, "http://") || strings.HasPrefix(opts.Source, "https://")
	key := r.Keyer.DatasetKey(opts.Source)
	if remote && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if d, err := dataset.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "dataset")
				return d, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "dataset")
	}

	d, err := Load(ctx, opts)
	if err != nil {
		return dataset.Dataset{}, false, err
	}
	if remote {
		if data, err := dataset.Marshal(d); err == nil {
			r.set(ctx, key, "dataset", data, cache.TTLDataset)
		}
	}
	return d, false, nil
}

// LayoutWithCacheInfo builds the layout of d, reusing a cached one when the
// dataset and effective options match.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, d dataset.Dataset, opts Options) (layout.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, false, err
	}

	hash, err := d.Hash()
	if err != nil {
		return layout.Layout{}, false, fmt.Errorf("hash dataset: %w", err)
	}
	key := r.Keyer.LayoutKey(hash, LayoutKeyOpts(opts.ChartOptions(d.Options)))

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		if l, err := dataset.UnmarshalLayoutMsgpack(data); err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return l, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	l, err := BuildLayout(ctx, d, opts)
	if err != nil {
		return layout.Layout{}, false, err
	}
	if data, err := dataset.MarshalLayoutMsgpack(l); err == nil {
		r.set(ctx, key, "layout", data, cache.TTLLayout)
	}
	return l, false, nil
}

// RenderWithCacheInfo renders l in every requested format. The hit flag is
// set only when every artifact came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := dataset.MarshalLayoutMsgpack(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)))
		if err != nil || !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := Render(ctx, l, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		r.set(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)), "artifact", data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Close closes the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) set(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
