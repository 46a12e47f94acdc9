package sink

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/laserfinity/laserfinity/pkg/errors"
	"github.com/laserfinity/laserfinity/pkg/shape"
	"github.com/laserfinity/laserfinity/pkg/units"
)

const cutListSheet = "Cut List"

var cutListHeader = []any{"Kind", "Column", "Row", "X (mm)", "Y (mm)", "Width (mm)", "Height (mm)", "Radius (mm)"}

// XLSXOption configures cut-list rendering.
type XLSXOption func(*XLSX)

// WithXLSXResolution sets the pixels per inch used to convert back to
// millimetres. A non-positive resolution is ignored.
func WithXLSXResolution(dpi float64) XLSXOption {
	return func(x *XLSX) {
		if dpi > 0 {
			x.resolution = dpi
		}
	}
}

// XLSX writes a spreadsheet cut list with one row per shape, in millimetres,
// for shops that program cutters from tables instead of drawings.
type XLSX struct {
	Recorder
	resolution float64
}

// NewXLSX creates an empty cut-list sink for a width × height pixel canvas.
func NewXLSX(width, height float64, opts ...XLSXOption) *XLSX {
	x := &XLSX{Recorder: Recorder{Width: width, Height: height}, resolution: 96}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// ContentType returns the MIME type of XLSX output.
func (x *XLSX) ContentType() string { return ContentType(FormatXLSX) }

// Encode builds the workbook and writes it to w.
func (x *XLSX) Encode(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", cutListSheet); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "name sheet")
	}
	if err := f.SetSheetRow(cutListSheet, "A1", &cutListHeader); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write header")
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create header style")
	}
	if err := f.SetCellStyle(cutListSheet, "A1", "H1", bold); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "style header")
	}

	for i, s := range x.Shapes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "row %d", i+2)
		}
		row := x.row(s)
		if err := f.SetSheetRow(cutListSheet, cell, &row); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write row %d", i+2)
		}
	}

	_, err = f.WriteTo(w)
	return err
}

// row converts a shape to a cut-list row. Grid positions are 1-based; the
// border has none.
func (x *XLSX) row(s shape.RoundedRect) []any {
	mm := func(px float64) float64 { return units.PixelsToMillimeters(px, x.resolution) }
	var col, row any = "", ""
	if s.Kind == shape.KindCell {
		col, row = s.Column+1, s.Row+1
	}
	return []any{string(s.Kind), col, row, mm(s.X), mm(s.Y), mm(s.W), mm(s.H), mm(s.Radius)}
}

// Save writes the workbook to path.
func (x *XLSX) Save(path string) error {
	return saveFile(path, x.Encode)
}
