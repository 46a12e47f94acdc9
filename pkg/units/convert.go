package units

// MillimetersPerInch is the exact inch definition.
const MillimetersPerInch = 25.4

// ToPixels converts a length in inches to pixels at the given resolution
// (pixels per inch).
func ToPixels(inches, resolution float64) float64 {
	return inches * resolution
}

// MillimetersToPixels converts a length in millimetres to pixels at the given
// resolution (pixels per inch).
func MillimetersToPixels(mm, resolution float64) float64 {
	return mm * (resolution / MillimetersPerInch)
}

// PixelsToMillimeters is the inverse of [MillimetersToPixels].
func PixelsToMillimeters(px, resolution float64) float64 {
	return px * MillimetersPerInch / resolution
}

// MillimetersToInches converts millimetres to inches.
func MillimetersToInches(mm float64) float64 {
	return mm / MillimetersPerInch
}

// InchesToMillimeters converts inches to millimetres.
func InchesToMillimeters(in float64) float64 {
	return in * MillimetersPerInch
}
