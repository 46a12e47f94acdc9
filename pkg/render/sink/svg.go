package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/laserfinity/laserfinity/pkg/shape"
)

// SVGOption configures SVG rendering.
type SVGOption func(*SVG)

// WithTitle adds a <title> element to the document. An empty title is ignored.
func WithTitle(t string) SVGOption { return func(s *SVG) { s.title = t } }

// SVG renders shapes as an SVG document whose width and height are the
// canvas size in px, with a matching viewBox so user units are pixels.
type SVG struct {
	Recorder
	title string
}

// NewSVG creates an empty SVG sink for a width × height pixel canvas.
func NewSVG(width, height float64, opts ...SVGOption) *SVG {
	s := &SVG{Recorder: Recorder{Width: width, Height: height}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ContentType returns the MIME type of SVG output.
func (s *SVG) ContentType() string { return ContentType(FormatSVG) }

// Bytes renders the document into memory.
func (s *SVG) Bytes() []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%spx" height="%spx" viewBox="0 0 %s %s">`+"\n",
		num(s.Width), num(s.Height), num(s.Width), num(s.Height))
	if s.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(s.title))
	}
	for _, r := range s.Shapes {
		renderRect(&buf, r)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// Encode writes the document to w.
func (s *SVG) Encode(w io.Writer) error {
	_, err := w.Write(s.Bytes())
	return err
}

// Save writes the document to path.
func (s *SVG) Save(path string) error {
	return saveFile(path, s.Encode)
}

func renderRect(buf *bytes.Buffer, r shape.RoundedRect) {
	fmt.Fprintf(buf, `  <rect class="%s" x="%s" y="%s" width="%s" height="%s" rx="%s" ry="%s" fill="%s" stroke="%s" stroke-width="%s"/>`+"\n",
		r.Kind,
		num(r.X), num(r.Y), num(r.W), num(r.H),
		num(r.Radius), num(r.Radius),
		escapeXML(r.Style.Fill), escapeXML(r.Style.Stroke), num(r.Style.StrokeWidth))
}

// num formats v with the shortest exact representation and no exponent, so
// laser software reads back the same geometry the engine computed.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
