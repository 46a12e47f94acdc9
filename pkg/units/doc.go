// Package units converts physical lengths to device pixels and parses the
// dimension strings users type for drawer sizes.
//
// # Conversion
//
// All physical constants are held in millimetres and all drawer sizes in
// inches. Pixels are derived from a resolution in pixels per inch:
//
//	px := units.ToPixels(16.5, 96)              // inches → px
//	px := units.MillimetersToPixels(42, 96)     // mm → px
//
// # Parsing
//
// [ParseQuantity] accepts plain decimals ("10.5"), mixed numbers ("10 1/2")
// and bare fractions ("3/4"). [ParseDimension] additionally splits off a
// trailing, case-insensitive unit suffix:
//
//	d, err := units.ParseDimension("10 1/2in")  // {10.5, in}
//	d, err := units.ParseDimension("300mm")     // {300, mm}
//	inches := d.Inches()
//
// Unknown or missing suffixes are read as inches. Malformed input returns an
// error carrying [errors.ErrCodeInvalidDimension] that also unwraps to
// *errors.ParseError.
//
// [errors.ErrCodeInvalidDimension]: github.com/laserfinity/laserfinity/pkg/errors.ErrCodeInvalidDimension
package units
