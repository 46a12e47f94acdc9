// Package pkg provides the public API for laserfinity, a generator of
// laser-cut templates for gridfinity baseplates.
//
// # Overview
//
// Laserfinity fits a whole-number grid of 42 mm gridfinity cells into a
// drawer, centres it with balanced margins and writes one rounded rectangle
// per cell plus an enclosing border. The template is emitted as SVG for a
// laser cutter, or as PNG, PDF, JSON or XLSX for previews and cut lists.
//
// # Architecture
//
// Rendering flows through three stages:
//
//  1. Parse: drawer dimensions like "16 1/2", "419mm" or "41.9cm" become
//     inches ([units])
//  2. Layout: the grid is fitted at the profile's resolution ([baseplate])
//  3. Render: the border and cells are written to an output sink ([render/sink])
//
// [pipeline] runs all three and is shared by the CLI and the HTTP [server].
//
// # Quick Start
//
//	d, _ := pipeline.ParseDrawer("16 1/2", "11 1/2")
//	l := baseplate.Compute(d, baseplate.DefaultConstants())
//
//	s := sink.NewSVG(l.Width, l.Height)
//	baseplate.Emit(l, s)
//	_ = s.Save("gridfinity_baseplate.svg")
//
// # Main Packages
//
// [units] - Physical unit conversion and parsing of decimal, fractional and
// mixed-number dimensions with optional mm, cm or inch suffixes.
//
// [baseplate] - Physical constants, grid layout computation and shape
// emission in the fixed border-then-cells order.
//
// [shape] - Rounded rectangle primitive and the Adder interface the layout
// engine writes to.
//
// [render/sink] - Output formats: SVG, PNG, PDF (via rsvg-convert), JSON and
// XLSX.
//
// [config] - Named constant profiles loaded from TOML or YAML.
//
// [cache] - Artifact cache keyed by drawer, constants and format. File,
// memory and null implementations.
//
// [observability] - Hooks for parse, layout, render, cache and HTTP events,
// plus in-memory counters served by the stats endpoint.
//
// [errors] - Coded errors shared by every layer.
//
// [units]: https://pkg.go.dev/github.com/laserfinity/laserfinity/pkg/units
// [baseplate]: https://pkg.go.dev/github.com/laserfinity/laserfinity/pkg/baseplate
// [shape]: https://pkg.go.dev/github.com/laserfinity/laserfinity/pkg/shape
// [render/sink]: https://pkg.go.dev/github.com/laserfinity/laserfinity/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/laserfinity/laserfinity/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/laserfinity/laserfinity/pkg/server
// [config]: https://pkg.go.dev/github.com/laserfinity/laserfinity/pkg/config
// [cache]: https://pkg.go.dev/github.com/laserfinity/laserfinity/pkg/cache
// [observability]: https://pkg.go.dev/github.com/laserfinity/laserfinity/pkg/observability
// [errors]: https://pkg.go.dev/github.com/laserfinity/laserfinity/pkg/errors
package pkg
