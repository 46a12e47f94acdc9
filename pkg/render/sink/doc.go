// Package sink provides output format renderers for baseplate layouts.
//
// # Overview
//
// A "sink" collects the shapes emitted by the layout engine and encodes them
// into a final output format:
//
//   - SVG: The cut template itself, sized exactly to the drawer in pixels
//   - PNG: Raster preview drawn with gg
//   - PDF: Print-ready output (requires rsvg-convert)
//   - JSON: Shape data export for external tools
//   - XLSX: Cut list with every shape's position in millimetres
//
// Every sink implements [shape.Sink], so the layout engine can drive any of
// them without knowing the format:
//
//	svg := sink.NewSVG(l.Width, l.Height, sink.WithTitle("16.5 x 11.5 in"))
//	baseplate.Emit(l, svg)
//	err := svg.Save("gridfinity_baseplate.svg")
//
// [New] picks a sink by format name, and [FormatFromPath] infers the format
// from an output file extension.
//
// # Adding New Formats
//
//  1. Embed [Recorder] to collect shapes
//  2. Implement Encode(io.Writer) error and ContentType() string
//  3. Implement Save with [saveFile]
//  4. Register the format in [ValidFormats] and [New]
//
// [shape.Sink]: github.com/laserfinity/laserfinity/pkg/shape.Sink
package sink
