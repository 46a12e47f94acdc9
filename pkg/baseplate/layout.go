package baseplate

import (
	"math"

	"github.com/laserfinity/laserfinity/pkg/errors"
	"github.com/laserfinity/laserfinity/pkg/shape"
	"github.com/laserfinity/laserfinity/pkg/units"
)

// Layout is a computed baseplate grid. All lengths are in pixels; (0, 0) is
// the top-left corner of the drawer.
type Layout struct {
	Drawer    Drawer
	Constants Constants

	Columns int
	Rows    int

	Width  float64 // Canvas width, equal to the drawer width
	Height float64 // Canvas height, equal to the drawer height

	OriginX float64 // Left edge of the first pitch slot, may be negative
	OriginY float64 // Top edge of the first pitch slot, may be negative

	Pitch        float64
	CellSize     float64
	CornerRadius float64
	StrokeWidth  float64
	Inset        float64 // Gap between a pitch slot and the cell drawn in it
}

// MaxCells bounds the number of cells in one template. At the default pitch
// that is a 4.2 m square.
const MaxCells = 10_000

// CheckSize rejects drawers whose grid at c would hold more than [MaxCells]
// cells, including drawers too large to count in an int.
func CheckSize(d Drawer, c Constants) error {
	pitch := c.PitchPx()
	cols := slots(units.ToPixels(d.Width, c.Resolution), pitch)
	rows := slots(units.ToPixels(d.Height, c.Resolution), pitch)
	if !(cols*rows <= MaxCells) {
		return errors.New(errors.ErrCodeInvalidDimension,
			"drawer %g in x %g in needs %g x %g cells, more than the %d a template may hold",
			d.Width, d.Height, cols, rows, MaxCells)
	}
	return nil
}

// Compute lays out as many whole cells as fit in the drawer, at least one
// per axis, centred on both axes. It does not validate its inputs; callers
// check [Drawer.Validate], [Constants.Validate] and [CheckSize] first.
func Compute(d Drawer, c Constants) Layout {
	l := Layout{
		Drawer:       d,
		Constants:    c,
		Width:        units.ToPixels(d.Width, c.Resolution),
		Height:       units.ToPixels(d.Height, c.Resolution),
		Pitch:        c.PitchPx(),
		CellSize:     c.CellSizePx(),
		CornerRadius: c.CornerRadiusPx(),
		StrokeWidth:  c.StrokeWidthPx(),
	}

	l.Columns = fit(l.Width, l.Pitch)
	l.Rows = fit(l.Height, l.Pitch)
	l.OriginX = (l.Width - float64(l.Columns)*l.Pitch) / 2
	l.OriginY = (l.Height - float64(l.Rows)*l.Pitch) / 2
	l.Inset = (l.Pitch - l.CellSize) / 2
	return l
}

// slots is the number of whole pitches in span, never less than one.
func slots(span, pitch float64) float64 {
	return math.Max(math.Floor(span/pitch), 1)
}

func fit(span, pitch float64) int {
	return int(slots(span, pitch))
}

// CellCount is Columns × Rows.
func (l Layout) CellCount() int {
	return l.Columns * l.Rows
}

// ShapeCount is the number of shapes [Emit] produces, the cells plus the border.
func (l Layout) ShapeCount() int {
	return l.CellCount() + 1
}

// Overflows reports whether the grid is wider or taller than the drawer,
// which only happens when the drawer is smaller than one pitch.
func (l Layout) Overflows() bool {
	return l.OriginX < 0 || l.OriginY < 0
}

// Coverage is the fraction of the drawer area covered by pitch slots.
func (l Layout) Coverage() float64 {
	if l.Width == 0 || l.Height == 0 {
		return 0
	}
	return float64(l.Columns) * l.Pitch * float64(l.Rows) * l.Pitch / (l.Width * l.Height)
}

// Margins returns the left/right and top/bottom margins in millimetres.
func (l Layout) Margins() (x, y float64) {
	return units.PixelsToMillimeters(l.OriginX, l.Constants.Resolution),
		units.PixelsToMillimeters(l.OriginY, l.Constants.Resolution)
}

func (l Layout) style() shape.Style {
	s := shape.Hairline(l.StrokeWidth)
	if l.Constants.StrokeColor != "" {
		s.Stroke = l.Constants.StrokeColor
	}
	return s
}

// Border is the rectangle enclosing the whole drawer.
func (l Layout) Border() shape.RoundedRect {
	return shape.RoundedRect{
		Kind:   shape.KindBorder,
		Column: -1,
		Row:    -1,
		W:      l.Width,
		H:      l.Height,
		Radius: l.CornerRadius,
		Style:  l.style(),
	}
}

// Cell is the rounded square drawn in the slot at (col, row).
func (l Layout) Cell(col, row int) shape.RoundedRect {
	return shape.RoundedRect{
		Kind:   shape.KindCell,
		Column: col,
		Row:    row,
		X:      l.OriginX + float64(col)*l.Pitch + l.Inset,
		Y:      l.OriginY + float64(row)*l.Pitch + l.Inset,
		W:      l.CellSize,
		H:      l.CellSize,
		Radius: l.CornerRadius,
		Style:  l.style(),
	}
}

// Shapes returns the border followed by every cell, columns outer and rows inner.
func (l Layout) Shapes() []shape.RoundedRect {
	out := make([]shape.RoundedRect, 0, l.ShapeCount())
	out = append(out, l.Border())
	for col := 0; col < l.Columns; col++ {
		for row := 0; row < l.Rows; row++ {
			out = append(out, l.Cell(col, row))
		}
	}
	return out
}

// Emit sends [Layout.Shapes] to dst in order.
func Emit(l Layout, dst shape.Adder) {
	for _, s := range l.Shapes() {
		dst.AddRoundedRect(s)
	}
}
