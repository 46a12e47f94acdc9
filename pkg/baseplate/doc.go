// Package baseplate computes gridfinity baseplate cut layouts.
//
// # Overview
//
// Given a drawer footprint and a set of physical [Constants], [Compute]
// works out how many whole grid cells fit along each axis, centres the grid
// with equal margins, and returns a [Layout] in device pixels. [Emit] then
// hands the border and every cell to a [shape.Adder] in a fixed order: the
// border first, then cells column by column, rows within each column.
//
//	c := baseplate.DefaultConstants()
//	l := baseplate.Compute(baseplate.Drawer{Width: 16.5, Height: 11.5}, c)
//	baseplate.Emit(l, svg)
//
// # Geometry
//
// Columns and rows are floor(drawer / pitch), never fewer than one. When a
// drawer is smaller than one pitch the single cell overflows the border and
// the centring offset goes negative; that geometry is returned as is.
//
// Every cell sits inside its pitch-sized slot with an inset of
// (pitch - cellSize) / 2 on each side.
//
// [shape.Adder]: github.com/laserfinity/laserfinity/pkg/shape.Adder
package baseplate
