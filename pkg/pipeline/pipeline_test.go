package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/laserfinity/laserfinity/pkg/cache"
	"github.com/laserfinity/laserfinity/pkg/config"
	"github.com/laserfinity/laserfinity/pkg/errors"
	"github.com/laserfinity/laserfinity/pkg/observability"
	"github.com/laserfinity/laserfinity/pkg/render/sink"
)

func testLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}), &buf
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name       string
		opts       Options
		wantCode   errors.Code
		wantFormat string
		wantOutput string
	}{
		{"defaults", Options{Width: "16.5", Height: "11.5"}, "", sink.FormatSVG, DefaultOutput},
		{"format from output", Options{Width: "1", Height: "1", Output: "plate.png"}, "", sink.FormatPNG, "plate.png"},
		{"explicit format wins", Options{Width: "1", Height: "1", Output: "plate.svg", Format: "json"}, "", sink.FormatJSON, "plate.svg"},
		{"format without output", Options{Width: "1", Height: "1", Format: "xlsx"}, "", sink.FormatXLSX, ""},
		{"unknown extension", Options{Width: "1", Height: "1", Output: "plate.dxf"}, "", sink.FormatSVG, "plate.dxf"},
		{"missing width", Options{Height: "1"}, errors.ErrCodeMissingArgument, "", ""},
		{"missing both", Options{}, errors.ErrCodeMissingArgument, "", ""},
		{"bad format", Options{Width: "1", Height: "1", Format: "dxf"}, errors.ErrCodeInvalidFormat, "", ""},
		{"negative scale", Options{Width: "1", Height: "1", Scale: -1}, errors.ErrCodeInvalidConfig, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			err := opts.ValidateAndSetDefaults()
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("error = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if opts.Format != tt.wantFormat {
				t.Errorf("Format = %q, want %q", opts.Format, tt.wantFormat)
			}
			if opts.Output != tt.wantOutput {
				t.Errorf("Output = %q, want %q", opts.Output, tt.wantOutput)
			}
		})
	}
}

func TestMissingDimensionsMessage(t *testing.T) {
	opts := Options{Width: "10"}
	err := opts.ValidateAndSetDefaults()
	if got := errors.UserMessage(err); got != MissingDimensionsMessage {
		t.Errorf("UserMessage = %q, want %q", got, MissingDimensionsMessage)
	}
	var missing *errors.MissingArgumentError
	if !errors.As(err, &missing) {
		t.Fatalf("error %v does not wrap MissingArgumentError", err)
	}
	if len(missing.Names) != 1 || missing.Names[0] != "drawer_height" {
		t.Errorf("Names = %v, want [drawer_height]", missing.Names)
	}
}

func TestParseDrawer(t *testing.T) {
	tests := []struct {
		width, height string
		wantW, wantH  float64
	}{
		{"16.5", "11.5", 16.5, 11.5},
		{"22 1/2", "16in", 22.5, 16},
		{"254mm", "25.4 cm", 10, 10},
	}
	for _, tt := range tests {
		d, err := ParseDrawer(tt.width, tt.height)
		if err != nil {
			t.Errorf("ParseDrawer(%q, %q) error: %v", tt.width, tt.height, err)
			continue
		}
		if d.Width != tt.wantW || d.Height != tt.wantH {
			t.Errorf("ParseDrawer(%q, %q) = %+v, want %v x %v", tt.width, tt.height, d, tt.wantW, tt.wantH)
		}
	}
}

func TestParseDrawerErrors(t *testing.T) {
	_, err := ParseDrawer("abc", "10")
	if !errors.Is(err, errors.ErrCodeInvalidDimension) {
		t.Fatalf("error = %v, want INVALID_DIMENSION", err)
	}
	var pe *errors.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error %v does not wrap ParseError", err)
	}
	if !strings.Contains(errors.UserMessage(err), "drawer width") {
		t.Errorf("UserMessage = %q, should name the width", errors.UserMessage(err))
	}

	if _, err := ParseDrawer("10", "1 1/0"); !strings.Contains(errors.UserMessage(err), "drawer height") {
		t.Errorf("height error = %v, should name the height", err)
	}
	for _, tc := range [][2]string{{"0", "10"}, {"10", "0mm"}, {"0in", "0"}} {
		_, err := ParseDrawer(tc[0], tc[1])
		if !errors.Is(err, errors.ErrCodeMissingArgument) || errors.UserMessage(err) != MissingDimensionsMessage {
			t.Errorf("ParseDrawer(%q, %q) error = %v, want the missing-dimensions message", tc[0], tc[1], err)
		}
	}
}

func TestExecuteSVG(t *testing.T) {
	logger, logs := testLogger()
	r := NewRunner(nil, nil, logger)

	result, err := r.Execute(context.Background(), Options{Width: "16.5", Height: "11.5", Format: "svg"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if result.Layout.Columns != 9 || result.Layout.Rows != 6 {
		t.Errorf("grid = %dx%d, want 9x6", result.Layout.Columns, result.Layout.Rows)
	}
	if got := bytes.Count(result.Artifact, []byte("<rect")); got != 55 {
		t.Errorf("SVG has %d rects, want 55", got)
	}
	if result.ContentType != "image/svg+xml" {
		t.Errorf("ContentType = %q", result.ContentType)
	}
	if result.Stats.Shapes != 55 || result.Stats.Bytes != len(result.Artifact) {
		t.Errorf("Stats = %+v", result.Stats)
	}
	if result.CacheHit {
		t.Error("first run should not be a cache hit")
	}

	want := "Fitting 9 columns and 6 rows within a 16.5 in x 11.5 in drawer"
	if !strings.Contains(logs.String(), want) {
		t.Errorf("logs missing %q:\n%s", want, logs.String())
	}
}

func TestExecuteWarnsOnOverflow(t *testing.T) {
	logger, logs := testLogger()
	r := NewRunner(nil, nil, logger)

	result, err := r.Execute(context.Background(), Options{Width: "1", Height: "1", Format: "json"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if result.Layout.Columns != 1 || result.Layout.Rows != 1 {
		t.Errorf("grid = %dx%d, want 1x1", result.Layout.Columns, result.Layout.Rows)
	}
	if !strings.Contains(logs.String(), "smaller than one grid unit") {
		t.Errorf("expected overflow warning, got:\n%s", logs.String())
	}
}

func TestExecuteCache(t *testing.T) {
	logger, _ := testLogger()
	c := cache.NewMemoryCache(0)
	r := NewRunner(nil, c, logger)
	ctx := context.Background()
	opts := Options{Width: "16.5", Height: "11.5", Format: "svg"}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !second.CacheHit {
		t.Error("second run should hit the cache")
	}
	if !bytes.Equal(first.Artifact, second.Artifact) {
		t.Error("cached artifact differs from rendered one")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if third.CacheHit {
		t.Error("Refresh should bypass the cache")
	}

	opts.Refresh = false
	opts.Format = "json"
	if res, _ := r.Execute(ctx, opts); res.CacheHit {
		t.Error("a different format should miss")
	}
	if c.Len() != 2 {
		t.Errorf("cache holds %d entries, want 2", c.Len())
	}
}

func TestExecuteCacheKeysOnScale(t *testing.T) {
	logger, _ := testLogger()
	r := NewRunner(nil, cache.NewMemoryCache(0), logger)
	ctx := context.Background()
	opts := Options{Width: "4", Height: "4", Format: "png"}

	small, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	opts.Scale = 3
	large, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if large.CacheHit {
		t.Error("a different scale should miss the cache")
	}
	if bytes.Equal(small.Artifact, large.Artifact) {
		t.Error("scale 3 returned the scale 1 image")
	}

	opts.Scale = 1
	again, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !again.CacheHit {
		t.Error("scale 1 should share the entry rendered with the default scale")
	}

	svg := Options{Width: "4", Height: "4", Format: "svg"}
	if _, err := r.Execute(ctx, svg); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	svg.Scale = 2
	if res, _ := r.Execute(ctx, svg); !res.CacheHit {
		t.Error("scale should not split the cache for vector formats")
	}
}

func TestExecuteProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.toml")
	data := "[profiles.fine]\ndpi = 192\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	logger, _ := testLogger()
	r := NewRunner(cfg, nil, logger)

	result, err := r.Execute(context.Background(), Options{Width: "10", Height: "10", Format: "svg", Profile: "fine"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if result.Layout.Width != 1920 {
		t.Errorf("canvas width = %v, want 1920", result.Layout.Width)
	}

	_, err = r.Execute(context.Background(), Options{Width: "10", Height: "10", Format: "svg", Profile: "nope"})
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown profile error = %v, want NOT_FOUND", err)
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	logger, _ := testLogger()
	r := NewRunner(nil, nil, logger)

	if _, err := r.Execute(ctx, Options{Width: "10", Height: "10", Format: "svg"}); err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestWriteFile(t *testing.T) {
	logger, _ := testLogger()
	r := NewRunner(nil, nil, logger)
	out := filepath.Join(t.TempDir(), "drawer.svg")

	result, err := r.WriteFile(context.Background(), Options{Width: "16.5", Height: "11.5", Output: out})
	if err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	if result.Path != out || result.Format != sink.FormatSVG {
		t.Errorf("Result = %+v", result)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if got := bytes.Count(data, []byte("<rect")); got != 55 {
		t.Errorf("file has %d rects, want 55", got)
	}
}

func TestWriteFileErrors(t *testing.T) {
	logger, _ := testLogger()
	r := NewRunner(nil, nil, logger)

	_, err := r.WriteFile(context.Background(), Options{Width: "10", Height: "10", Format: "svg"})
	if !errors.Is(err, errors.ErrCodeMissingArgument) {
		t.Errorf("no output error = %v, want MISSING_ARGUMENT", err)
	}

	bad := filepath.Join(t.TempDir(), "missing", "dir", "out.svg")
	_, err = r.WriteFile(context.Background(), Options{Width: "10", Height: "10", Output: bad})
	if !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("unwritable path error = %v, want IO_ERROR", err)
	}
}

func TestStatsTotal(t *testing.T) {
	s := Stats{ParseTime: 1, LayoutTime: 2, RenderTime: 3}
	if s.Total() != 6 {
		t.Errorf("Total = %v, want 6", s.Total())
	}
}

func TestExecuteEmitsHooks(t *testing.T) {
	counters := observability.NewCounters()
	observability.SetPipelineHooks(counters)
	observability.SetCacheHooks(counters)
	t.Cleanup(observability.Reset)

	logger, _ := testLogger()
	r := NewRunner(nil, cache.NewMemoryCache(0), logger)
	ctx := context.Background()
	opts := Options{Width: "16.5", Height: "11.5", Format: "svg"}

	for i := 0; i < 2; i++ {
		if _, err := r.Execute(ctx, opts); err != nil {
			t.Fatalf("Execute error: %v", err)
		}
	}
	_, _ = r.Execute(ctx, Options{Width: "nope", Height: "1", Format: "svg"})

	s := counters.Snapshot()
	if s.Layouts != 2 || s.Cells != 108 {
		t.Errorf("layouts = %d, cells = %d; want 2, 108", s.Layouts, s.Cells)
	}
	if s.Renders["svg"] != 1 {
		t.Errorf("svg renders = %d, want 1", s.Renders["svg"])
	}
	if s.CacheMisses != 1 || s.CacheHits != 1 {
		t.Errorf("cache misses/hits = %d/%d, want 1/1", s.CacheMisses, s.CacheHits)
	}
	if s.ParseErrors != 1 {
		t.Errorf("parse errors = %d, want 1", s.ParseErrors)
	}
}
