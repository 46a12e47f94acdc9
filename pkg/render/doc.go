// Package render turns computed baseplate layouts into output files.
//
// # Overview
//
// Output formats live in the [sink] subpackage. Every sink receives shapes
// through [shape.Adder] and can encode itself to an [io.Writer] or save to a
// path.
//
// # Format Conversion
//
// [ToPDF] converts SVG bytes to PDF using the external rsvg-convert tool
// (from librsvg). The PDF sink relies on it so that PDF output is a
// faithful rendering of the SVG template. Passing the layout resolution
// makes the page the drawer's physical size.
//
//	pdf, err := render.ToPDF(ctx, svg, 96)
//
// [sink]: github.com/laserfinity/laserfinity/pkg/render/sink
// [shape.Adder]: github.com/laserfinity/laserfinity/pkg/shape.Adder
package render
