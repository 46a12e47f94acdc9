package sink

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/laserfinity/laserfinity/pkg/errors"
	"github.com/laserfinity/laserfinity/pkg/shape"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatXLSX: true,
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, xlsx)", format)
	}
	return nil
}

// FormatFromPath infers the output format from a file extension, falling
// back to SVG when the extension is missing or unknown.
func FormatFromPath(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ValidFormats[ext] {
		return ext
	}
	return FormatSVG
}

// ContentType returns the MIME type of format, or an empty string when the
// format is unknown.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return ""
}

// Encoder is a [shape.Sink] that can also stream its output.
type Encoder interface {
	shape.Sink
	Encode(w io.Writer) error
	ContentType() string
}

// Recorder collects shapes in emission order on a canvas of fixed size.
// Format sinks embed it; it is also useful on its own in tests.
type Recorder struct {
	Width  float64
	Height float64
	Shapes []shape.RoundedRect
}

// AddRoundedRect appends r to the recorded shapes.
func (r *Recorder) AddRoundedRect(s shape.RoundedRect) {
	r.Shapes = append(r.Shapes, s)
}

// Count returns the number of shapes of kind k.
func (r *Recorder) Count(k shape.Kind) int {
	n := 0
	for _, s := range r.Shapes {
		if s.Kind == k {
			n++
		}
	}
	return n
}

// Options configures sinks created by [New]. Fields that do not apply to the
// chosen format are ignored.
type Options struct {
	Title      string  // SVG/PDF document title
	Scale      float64 // PNG pixel scale (default 1)
	Resolution float64 // Pixels per inch: PDF page size, millimetre columns in XLSX and JSON
	Columns    int     // Grid size recorded in JSON/XLSX metadata
	Rows       int
}

// New creates an empty sink for format on a width × height pixel canvas.
func New(format string, width, height float64, o Options) (Encoder, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	switch format {
	case FormatPNG:
		var opts []PNGOption
		if o.Scale > 0 {
			opts = append(opts, WithScale(o.Scale))
		}
		return NewPNG(width, height, opts...), nil
	case FormatPDF:
		return NewPDF(width, height, WithPDFTitle(o.Title), WithPDFResolution(o.Resolution)), nil
	case FormatJSON:
		return NewJSON(width, height, WithJSONGrid(o.Columns, o.Rows), WithJSONResolution(o.Resolution)), nil
	case FormatXLSX:
		return NewXLSX(width, height, WithXLSXResolution(o.Resolution)), nil
	default:
		return NewSVG(width, height, WithTitle(o.Title)), nil
	}
}

// Render encodes enc into memory.
func Render(enc Encoder) ([]byte, error) {
	var buf bytes.Buffer
	if err := enc.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// saveFile creates path and streams encode into it. The file is closed on
// every path; a close error is reported when the write itself succeeded.
func saveFile(path string, encode func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(errors.ErrCodeIO, cerr, "close %s", path)
		}
	}()

	if err := encode(f); err != nil {
		if errors.GetCode(err) != "" {
			return err
		}
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}
