package sink

import (
	"context"
	"io"
	"time"

	"github.com/laserfinity/laserfinity/pkg/render"
)

// PDF renders the layout as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
type PDF struct {
	SVG
	resolution float64
	timeout    time.Duration
}

// PDFOption configures a PDF sink.
type PDFOption func(*PDF)

// WithPDFTitle sets the title of the underlying SVG document.
func WithPDFTitle(t string) PDFOption { return func(p *PDF) { p.title = t } }

// WithPDFResolution sets the pixels per inch of the canvas so the page is
// printed at physical size.
func WithPDFResolution(dpi float64) PDFOption { return func(p *PDF) { p.resolution = dpi } }

// WithPDFTimeout bounds the external conversion.
func WithPDFTimeout(d time.Duration) PDFOption { return func(p *PDF) { p.timeout = d } }

// NewPDF creates an empty PDF sink.
func NewPDF(width, height float64, opts ...PDFOption) *PDF {
	p := &PDF{SVG: *NewSVG(width, height), timeout: render.DefaultTimeout}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ContentType returns the MIME type of PDF output.
func (p *PDF) ContentType() string { return ContentType(FormatPDF) }

// Encode converts the SVG document to PDF and writes it to w.
func (p *PDF) Encode(w io.Writer) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	data, err := render.ToPDF(ctx, p.SVG.Bytes(), p.resolution)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Save writes the PDF to path.
func (p *PDF) Save(path string) error {
	return saveFile(path, p.Encode)
}
