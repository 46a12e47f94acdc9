package baseplate

import (
	"github.com/laserfinity/laserfinity/pkg/errors"
	"github.com/laserfinity/laserfinity/pkg/units"
)

// Gridfinity defaults. Changing any of these breaks compatibility with
// standard bins.
const (
	DefaultPitch        = 42.0 // mm between cell origins
	DefaultCellSize     = 37.1 // mm, drawn square
	DefaultCornerRadius = 1.6  // mm
	DefaultStrokeWidth  = 0.01 // mm, hairline for laser cutters
	DefaultResolution   = 96.0 // px per inch
	DefaultStrokeColor  = "black"
)

// Constants are the physical parameters of a baseplate. Lengths are in
// millimetres, Resolution in pixels per inch.
type Constants struct {
	Pitch        float64 `toml:"pitch_mm" yaml:"pitch_mm" json:"pitch_mm"`
	CellSize     float64 `toml:"cell_size_mm" yaml:"cell_size_mm" json:"cell_size_mm"`
	CornerRadius float64 `toml:"corner_radius_mm" yaml:"corner_radius_mm" json:"corner_radius_mm"`
	StrokeWidth  float64 `toml:"stroke_width_mm" yaml:"stroke_width_mm" json:"stroke_width_mm"`
	Resolution   float64 `toml:"dpi" yaml:"dpi" json:"dpi"`
	StrokeColor  string  `toml:"stroke_color" yaml:"stroke_color" json:"stroke_color,omitempty"`
}

// DefaultConstants returns the standard gridfinity constants at 96 dpi.
func DefaultConstants() Constants {
	return Constants{
		Pitch:        DefaultPitch,
		CellSize:     DefaultCellSize,
		CornerRadius: DefaultCornerRadius,
		StrokeWidth:  DefaultStrokeWidth,
		Resolution:   DefaultResolution,
		StrokeColor:  DefaultStrokeColor,
	}
}

// WithDefaults fills zero fields from [DefaultConstants].
func (c Constants) WithDefaults() Constants {
	d := DefaultConstants()
	if c.Pitch == 0 {
		c.Pitch = d.Pitch
	}
	if c.CellSize == 0 {
		c.CellSize = d.CellSize
	}
	if c.CornerRadius == 0 {
		c.CornerRadius = d.CornerRadius
	}
	if c.StrokeWidth == 0 {
		c.StrokeWidth = d.StrokeWidth
	}
	if c.Resolution == 0 {
		c.Resolution = d.Resolution
	}
	if c.StrokeColor == "" {
		c.StrokeColor = d.StrokeColor
	}
	return c
}

// Validate checks that every length is positive and that a cell fits in its
// pitch slot.
func (c Constants) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"pitch", c.Pitch},
		{"cell size", c.CellSize},
		{"corner radius", c.CornerRadius},
		{"stroke width", c.StrokeWidth},
		{"resolution", c.Resolution},
	} {
		if !(f.value > 0) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be positive, got %v", f.name, f.value)
		}
	}
	if c.CellSize > c.Pitch {
		return errors.New(errors.ErrCodeInvalidConfig, "cell size %vmm exceeds pitch %vmm", c.CellSize, c.Pitch)
	}
	return nil
}

func (c Constants) px(mm float64) float64 {
	return units.MillimetersToPixels(mm, c.Resolution)
}

// PitchPx is the pitch in pixels.
func (c Constants) PitchPx() float64 { return c.px(c.Pitch) }

// CellSizePx is the drawn cell size in pixels.
func (c Constants) CellSizePx() float64 { return c.px(c.CellSize) }

// CornerRadiusPx is the corner radius in pixels.
func (c Constants) CornerRadiusPx() float64 { return c.px(c.CornerRadius) }

// StrokeWidthPx is the hairline stroke width in pixels.
func (c Constants) StrokeWidthPx() float64 { return c.px(c.StrokeWidth) }

// Drawer is the inside footprint of a drawer in inches.
type Drawer struct {
	Width  float64
	Height float64
}

// Validate rejects non-positive dimensions.
func (d Drawer) Validate() error {
	if !(d.Width > 0) || !(d.Height > 0) {
		return errors.New(errors.ErrCodeInvalidDimension, "drawer dimensions must be positive, got %v in x %v in", d.Width, d.Height)
	}
	return nil
}
