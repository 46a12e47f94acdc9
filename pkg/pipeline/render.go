package pipeline

import (
	"context"
	"strconv"

	"github.com/laserfinity/laserfinity/pkg/baseplate"
	"github.com/laserfinity/laserfinity/pkg/render/sink"
)

// ContentType returns the MIME type for format.
func ContentType(format string) string {
	return sink.ContentType(format)
}

// Render emits the layout into a sink for opts.Format and returns the
// encoded bytes.
func Render(ctx context.Context, l baseplate.Layout, opts Options) ([]byte, error) {
	enc, err := newEncoder(l, opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return sink.Render(enc)
}

// Save emits the layout into a sink for opts.Format and writes it to
// opts.Output.
func Save(ctx context.Context, l baseplate.Layout, opts Options) error {
	enc, err := newEncoder(l, opts)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return enc.Save(opts.Output)
}

func newEncoder(l baseplate.Layout, opts Options) (sink.Encoder, error) {
	enc, err := sink.New(opts.Format, l.Width, l.Height, sink.Options{
		Title:      opts.Title,
		Scale:      opts.Scale,
		Resolution: l.Constants.Resolution,
		Columns:    l.Columns,
		Rows:       l.Rows,
	})
	if err != nil {
		return nil, err
	}
	baseplate.Emit(l, enc)
	return enc, nil
}

// formatInches prints a drawer dimension without trailing zeros.
func formatInches(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
