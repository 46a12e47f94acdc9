// Package pipeline runs the parse → layout → render sequence shared by the
// CLI and the HTTP server.
//
// # Stages
//
//  1. Parse: turn drawer dimension strings into a [baseplate.Drawer] and
//     resolve the requested profile to [baseplate.Constants]
//  2. Layout: compute the grid with [baseplate.Compute]
//  3. Render: emit the shapes into a format sink (SVG, PNG, PDF, JSON, XLSX)
//
// # Usage
//
//	runner := pipeline.NewRunner(cfg, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Width:  "22 1/2",
//	    Height: "16.5",
//	    Format: "svg",
//	})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(result.Artifact)
//
// [Runner.WriteFile] streams the output straight to Options.Output instead.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/laserfinity/laserfinity/pkg/baseplate"
	"github.com/laserfinity/laserfinity/pkg/errors"
	"github.com/laserfinity/laserfinity/pkg/render/sink"
)

// DefaultOutput is the file written when no output path is given.
const DefaultOutput = "gridfinity_baseplate.svg"

// MissingDimensionsMessage is shown when either drawer dimension is absent.
const MissingDimensionsMessage = "Please provide drawer dimensions in inches."

// Options describes one baseplate render.
type Options struct {
	// Drawer dimensions as typed by the user: "16.5", "22 1/2", "420mm".
	Width  string `json:"width"`
	Height string `json:"height"`

	Profile string  `json:"profile,omitempty"` // Empty selects the config default
	Format  string  `json:"format,omitempty"`  // Empty infers from Output
	Output  string  `json:"output,omitempty"`  // File path for WriteFile
	Title   string  `json:"title,omitempty"`   // SVG/PDF document title
	Scale   float64 `json:"scale,omitempty"`   // PNG pixel scale
	Refresh bool    `json:"refresh,omitempty"` // Bypass the artifact cache

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result is the outcome of one pipeline run.
type Result struct {
	Drawer    baseplate.Drawer
	Constants baseplate.Constants
	Layout    baseplate.Layout

	Format      string
	ContentType string

	// Artifact holds the encoded output for Execute. It is nil after
	// WriteFile, which streams to disk.
	Artifact []byte
	Path     string

	Stats    Stats
	CacheHit bool
}

// Stats contains timing and size information.
type Stats struct {
	Shapes     int
	Bytes      int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// Total is the wall time spent across all stages.
func (s Stats) Total() time.Duration {
	return s.ParseTime + s.LayoutTime + s.RenderTime
}

// ValidateAndSetDefaults checks required fields and fills in defaults. It
// is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	var missing []string
	if o.Width == "" {
		missing = append(missing, "drawer_width")
	}
	if o.Height == "" {
		missing = append(missing, "drawer_height")
	}
	if len(missing) > 0 {
		return errors.NewMissingArgument(MissingDimensionsMessage, missing...)
	}

	if o.Output == "" && o.Format == "" {
		o.Output = DefaultOutput
	}
	if o.Format == "" {
		o.Format = sink.FormatFromPath(o.Output)
	}
	if err := sink.ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be positive, got %g", o.Scale)
	}
	o.validated = true
	return nil
}
