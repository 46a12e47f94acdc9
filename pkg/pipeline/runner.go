package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/laserfinity/laserfinity/pkg/baseplate"
	"github.com/laserfinity/laserfinity/pkg/cache"
	"github.com/laserfinity/laserfinity/pkg/config"
	"github.com/laserfinity/laserfinity/pkg/errors"
	"github.com/laserfinity/laserfinity/pkg/observability"
	"github.com/laserfinity/laserfinity/pkg/render/sink"
)

// Runner executes the pipeline against a profile config, optionally
// caching rendered artifacts.
//
// The Runner holds no per-run state. Multiple goroutines can share one
// Runner with different options.
type Runner struct {
	Config *config.Config
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil config means built-in profiles only; a
// nil cache disables caching.
func NewRunner(cfg *config.Config, c cache.Cache, logger *log.Logger) *Runner {
	if cfg == nil {
		cfg = config.Builtin()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Config: cfg, Cache: c, Logger: logger}
}

// Execute runs parse → layout → render and returns the encoded artifact.
// Artifacts are cached by drawer, constants, format, title and PNG scale.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	result, err := r.prepare(ctx, &opts)
	if err != nil {
		return nil, err
	}

	key := cache.ArtifactKey(result.Drawer, result.Constants, opts.Format, opts.Title, rasterScale(opts))
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, opts.Format)
			result.Artifact = data
			result.CacheHit = true
			result.Stats.Bytes = len(data)
			r.logger(opts).Debug("artifact cache hit", "format", opts.Format, "bytes", len(data))
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, opts.Format)
	}

	start := time.Now()
	data, err := Render(ctx, result.Layout, opts)
	result.Stats.RenderTime = time.Since(start)
	observability.Pipeline().OnRenderComplete(ctx, opts.Format, len(data), result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifact = data
	result.Stats.Bytes = len(data)

	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		r.logger(opts).Warn("artifact cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, opts.Format, len(data))
	}

	r.logger(opts).Debug("rendered",
		"format", opts.Format,
		"bytes", len(data),
		"duration", result.Stats.RenderTime)
	return result, nil
}

// WriteFile runs the pipeline and streams the output to opts.Output. The
// cache is not consulted.
func (r *Runner) WriteFile(ctx context.Context, opts Options) (*Result, error) {
	result, err := r.prepare(ctx, &opts)
	if err != nil {
		return nil, err
	}
	if opts.Output == "" {
		return nil, errors.NewMissingArgument("an output path is required", "output")
	}

	start := time.Now()
	err = Save(ctx, result.Layout, opts)
	result.Stats.RenderTime = time.Since(start)
	if err == nil {
		if fi, statErr := os.Stat(opts.Output); statErr == nil {
			result.Stats.Bytes = int(fi.Size())
		}
	}
	observability.Pipeline().OnRenderComplete(ctx, opts.Format, result.Stats.Bytes, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Path = opts.Output

	r.logger(opts).Debug("wrote file",
		"path", opts.Output,
		"format", opts.Format,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// prepare validates opts and runs the parse and layout stages.
func (r *Runner) prepare(ctx context.Context, opts *Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(opts)

	start := time.Now()
	drawer, err := ParseDrawer(opts.Width, opts.Height)
	parseTime := time.Since(start)
	observability.Pipeline().OnParseComplete(ctx, opts.Width, opts.Height, parseTime, err)
	if err != nil {
		return nil, err
	}
	consts, err := r.Config.Profile(opts.Profile)
	if err != nil {
		return nil, err
	}
	if err := baseplate.CheckSize(drawer, consts); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	layout := r.ComputeLayout(drawer, consts, *opts)
	layoutTime := time.Since(start)
	observability.Pipeline().OnLayoutComplete(ctx, layout.Columns, layout.Rows, layoutTime)

	return &Result{
		Drawer:      drawer,
		Constants:   consts,
		Layout:      layout,
		Format:      opts.Format,
		ContentType: ContentType(opts.Format),
		Stats: Stats{
			Shapes:     layout.ShapeCount(),
			ParseTime:  parseTime,
			LayoutTime: layoutTime,
		},
	}, nil
}

// ComputeLayout runs the layout stage and reports the grid it chose.
func (r *Runner) ComputeLayout(d baseplate.Drawer, c baseplate.Constants, opts Options) baseplate.Layout {
	l := baseplate.Compute(d, c)
	logger := r.logger(opts)

	logger.Infof("Fitting %d columns and %d rows within a %s in x %s in drawer",
		l.Columns, l.Rows, formatInches(d.Width), formatInches(d.Height))
	if l.Overflows() {
		mx, my := l.Margins()
		logger.Warn("drawer is smaller than one grid unit, cells extend past the border",
			"margin_x_mm", mx, "margin_y_mm", my)
	}
	return l
}

// rasterScale is the scale that affects the output bytes: the PNG scale with
// zero meaning 1, and nothing for vector formats.
func rasterScale(opts Options) float64 {
	if opts.Format != sink.FormatPNG {
		return 0
	}
	if opts.Scale == 0 {
		return 1
	}
	return opts.Scale
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
