package sink

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/laserfinity/laserfinity/pkg/errors"
	"github.com/laserfinity/laserfinity/pkg/render"
	"github.com/laserfinity/laserfinity/pkg/shape"
)

func testShapes() []shape.RoundedRect {
	style := shape.Hairline(0.0377952755905512)
	return []shape.RoundedRect{
		{Kind: shape.KindBorder, Column: -1, Row: -1, W: 400, H: 200, Radius: 6.047244094488189, Style: style},
		{Kind: shape.KindCell, Column: 0, Row: 0, X: 43.5, Y: 23.75, W: 140.22047244094486, H: 140.22047244094486, Radius: 6.047244094488189, Style: style},
		{Kind: shape.KindCell, Column: 1, Row: 0, X: 202.25, Y: 23.75, W: 140.22047244094486, H: 140.22047244094486, Radius: 6.047244094488189, Style: style},
	}
}

func fill(a shape.Adder) {
	for _, s := range testShapes() {
		a.AddRoundedRect(s)
	}
}

type svgDoc struct {
	Width  string    `xml:"width,attr"`
	Height string    `xml:"height,attr"`
	Title  string    `xml:"title"`
	Rects  []svgRect `xml:"rect"`
}

type svgRect struct {
	Class       string `xml:"class,attr"`
	X           string `xml:"x,attr"`
	Width       string `xml:"width,attr"`
	Rx          string `xml:"rx,attr"`
	Fill        string `xml:"fill,attr"`
	Stroke      string `xml:"stroke,attr"`
	StrokeWidth string `xml:"stroke-width,attr"`
}

func TestSVG(t *testing.T) {
	s := NewSVG(400, 200, WithTitle("8 x 4 <in>"))
	fill(s)

	var doc svgDoc
	if err := xml.Unmarshal(s.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid XML: %v\n%s", err, s.Bytes())
	}

	if doc.Width != "400px" || doc.Height != "200px" {
		t.Errorf("size = %s x %s, want 400px x 200px", doc.Width, doc.Height)
	}
	if doc.Title != "8 x 4 <in>" {
		t.Errorf("Title = %q", doc.Title)
	}
	if len(doc.Rects) != 3 {
		t.Fatalf("rect count = %d, want 3", len(doc.Rects))
	}

	border := doc.Rects[0]
	if border.Class != "border" || border.Fill != "none" || border.Stroke != "black" {
		t.Errorf("border attrs = %+v", border)
	}
	if border.StrokeWidth != "0.0377952755905512" {
		t.Errorf("stroke-width = %s, want full precision", border.StrokeWidth)
	}
	if doc.Rects[1].X != "43.5" || doc.Rects[1].Width != "140.22047244094486" {
		t.Errorf("cell attrs = %+v", doc.Rects[1])
	}
	if doc.Rects[1].Rx != "6.047244094488189" {
		t.Errorf("rx = %s", doc.Rects[1].Rx)
	}
}

func TestSVGNoTitle(t *testing.T) {
	s := NewSVG(10, 10)
	if bytes.Contains(s.Bytes(), []byte("<title>")) {
		t.Error("empty title should be omitted")
	}
}

func TestSVGSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plate.svg")
	s := NewSVG(400, 200)
	fill(s)

	if err := s.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !bytes.Equal(data, s.Bytes()) {
		t.Error("saved file differs from Bytes()")
	}
}

func TestSaveUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "plate.svg")
	err := NewSVG(10, 10).Save(path)
	if !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("Save() error = %v, want IO_ERROR", err)
	}
}

func TestJSON(t *testing.T) {
	j := NewJSON(400, 200, WithJSONGrid(2, 1), WithJSONResolution(96), WithJSONID("fixed"))
	fill(j)

	var buf bytes.Buffer
	if err := j.Encode(&buf); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	var doc jsonDocument
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if doc.ID != "fixed" {
		t.Errorf("ID = %q, want fixed", doc.ID)
	}
	if doc.Columns != 2 || doc.Rows != 1 {
		t.Errorf("grid = %dx%d, want 2x1", doc.Columns, doc.Rows)
	}
	if len(doc.Shapes) != 3 {
		t.Fatalf("Shapes = %d, want 3", len(doc.Shapes))
	}
	if doc.Shapes[0].Column != nil {
		t.Error("border should have no column")
	}
	if doc.Shapes[2].Column == nil || *doc.Shapes[2].Column != 1 {
		t.Errorf("cell column = %v, want 1", doc.Shapes[2].Column)
	}
	if got := doc.Shapes[1].WidthMM; got < 37.0999 || got > 37.1001 {
		t.Errorf("WidthMM = %v, want ~37.1", got)
	}
}

func TestJSONContentID(t *testing.T) {
	docID := func(width float64) string {
		t.Helper()
		j := NewJSON(width, 200, WithJSONGrid(2, 1))
		fill(j)
		var buf bytes.Buffer
		if err := j.Encode(&buf); err != nil {
			t.Fatalf("Encode() error: %v", err)
		}
		var doc jsonDocument
		if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
			t.Fatalf("json.Unmarshal() error: %v", err)
		}
		if _, err := uuid.Parse(doc.ID); err != nil {
			t.Fatalf("id %q is not a UUID", doc.ID)
		}
		return doc.ID
	}

	a, b, c := docID(400), docID(400), docID(401)
	if a != b {
		t.Errorf("identical documents got ids %q and %q", a, b)
	}
	if a == c {
		t.Error("different documents should get different ids")
	}
}

func TestPNG(t *testing.T) {
	p := NewPNG(400, 200, WithScale(0.5))
	fill(p)

	var buf bytes.Buffer
	if err := p.Encode(&buf); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("image size = %dx%d, want 200x100", b.Dx(), b.Dy())
	}
}

func TestXLSX(t *testing.T) {
	x := NewXLSX(400, 200)
	fill(x)

	var buf bytes.Buffer
	if err := x.Encode(&buf); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(cutListSheet)
	if err != nil {
		t.Fatalf("GetRows() error: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want header + 3", len(rows))
	}
	if rows[0][0] != "Kind" || rows[1][0] != "border" || rows[2][0] != "cell" {
		t.Errorf("kinds = %q, %q, %q", rows[0][0], rows[1][0], rows[2][0])
	}
	if rows[3][1] != "2" || rows[3][2] != "1" {
		t.Errorf("second cell position = (%s, %s), want (2, 1)", rows[3][1], rows[3][2])
	}
}

func TestPDF(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	p := NewPDF(400, 200, WithPDFTitle("plate"), WithPDFResolution(96))
	fill(p)

	var buf bytes.Buffer
	if err := p.Encode(&buf); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "%PDF") {
		t.Error("output is not a PDF")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"gridfinity_baseplate.svg", FormatSVG},
		{"plate.PNG", FormatPNG},
		{"out/plate.pdf", FormatPDF},
		{"plate.json", FormatJSON},
		{"cuts.xlsx", FormatXLSX},
		{"plate", FormatSVG},
		{"plate.dxf", FormatSVG},
	}

	for _, tt := range tests {
		if got := FormatFromPath(tt.path); got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	for format := range ValidFormats {
		t.Run(format, func(t *testing.T) {
			enc, err := New(format, 10, 10, Options{Resolution: 96})
			if err != nil {
				t.Fatalf("New(%q) error: %v", format, err)
			}
			if got, want := enc.ContentType(), ContentType(format); got == "" || got != want {
				t.Errorf("ContentType() = %q, want %q", got, want)
			}
		})
	}

	if ContentType("dxf") != "" {
		t.Error("ContentType(dxf) should be empty")
	}
	if _, err := New("dxf", 10, 10, Options{}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("New(dxf) error = %v, want INVALID_FORMAT", err)
	}
}

func TestRecorderCount(t *testing.T) {
	var r Recorder
	fill(&r)
	if r.Count(shape.KindCell) != 2 || r.Count(shape.KindBorder) != 1 {
		t.Errorf("counts = %d cells, %d borders", r.Count(shape.KindCell), r.Count(shape.KindBorder))
	}
}

func TestPDFTimeout(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	p := NewPDF(400, 200, WithPDFTimeout(time.Nanosecond))
	fill(p)

	if err := p.Encode(io.Discard); err == nil {
		t.Error("Encode() should fail once the conversion times out")
	}
}
