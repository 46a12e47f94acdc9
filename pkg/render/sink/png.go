package sink

import (
	"image/color"
	"io"
	"math"
	"strings"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/colornames"
)

// PNGOption configures PNG rendering.
type PNGOption func(*PNG)

// WithScale sets the PNG scale factor (default 1, one image pixel per canvas pixel).
func WithScale(s float64) PNGOption {
	return func(p *PNG) { p.scale = s }
}

// PNG rasterises shapes into a preview image. Hairline strokes are widened
// to one image pixel so they stay visible.
type PNG struct {
	Recorder
	scale float64
}

// NewPNG creates an empty PNG sink for a width × height pixel canvas.
func NewPNG(width, height float64, opts ...PNGOption) *PNG {
	p := &PNG{Recorder: Recorder{Width: width, Height: height}, scale: 1}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ContentType returns the MIME type of PNG output.
func (p *PNG) ContentType() string { return ContentType(FormatPNG) }

// Encode draws the shapes on a white background and writes the PNG to w.
func (p *PNG) Encode(w io.Writer) error {
	dc := gg.NewContext(imageSize(p.Width, p.scale), imageSize(p.Height, p.scale))
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for _, s := range p.Shapes {
		dc.DrawRoundedRectangle(s.X*p.scale, s.Y*p.scale, s.W*p.scale, s.H*p.scale, s.Radius*p.scale)
		if fill, ok := namedColor(s.Style.Fill); ok {
			dc.SetColor(fill)
			dc.FillPreserve()
		}
		stroke, ok := namedColor(s.Style.Stroke)
		if !ok {
			stroke = color.Black
		}
		dc.SetColor(stroke)
		dc.SetLineWidth(math.Max(s.Style.StrokeWidth*p.scale, 1))
		dc.Stroke()
	}
	return dc.EncodePNG(w)
}

// Save writes the PNG to path.
func (p *PNG) Save(path string) error {
	return saveFile(path, p.Encode)
}

func imageSize(v, scale float64) int {
	return max(int(math.Ceil(v*scale)), 1)
}

// namedColor resolves an SVG colour keyword. "none" and unknown names report false.
func namedColor(name string) (color.Color, bool) {
	c, ok := colornames.Map[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return c, true
}
