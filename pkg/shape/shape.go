// Package shape defines the drawing primitives produced by the layout engine
// and the minimal sink interface that consumes them.
//
// The layout engine only knows about [RoundedRect] and [Adder]; output
// formats live in the sink package and implement [Sink].
package shape

// Kind distinguishes the enclosing border from grid cells.
type Kind string

const (
	KindBorder Kind = "border"
	KindCell   Kind = "cell"
)

// Style holds stroke and fill attributes in SVG terms.
type Style struct {
	Stroke      string  // Stroke colour, e.g. "black"
	StrokeWidth float64 // Stroke width in pixels
	Fill        string  // Fill colour, "none" for outlines only
}

// Hairline returns the laser-cut outline style: black stroke of the given
// width and no fill.
func Hairline(width float64) Style {
	return Style{Stroke: "black", StrokeWidth: width, Fill: "none"}
}

// RoundedRect is a rectangle with equal x/y corner radii, positioned by its
// top-left corner in pixels.
type RoundedRect struct {
	Kind   Kind
	Column int // Grid column, -1 for the border
	Row    int // Grid row, -1 for the border
	X, Y   float64
	W, H   float64
	Radius float64
	Style  Style
}

// Adder receives shapes one at a time.
type Adder interface {
	AddRoundedRect(r RoundedRect)
}

// Sink is an [Adder] that can persist the shapes it received.
type Sink interface {
	Adder
	Save(path string) error
}
