package render

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"time"

	"github.com/laserfinity/laserfinity/pkg/errors"
)

// converter is the external tool used for SVG → PDF conversion.
const converter = "rsvg-convert"

// DefaultTimeout bounds a single conversion.
const DefaultTimeout = 30 * time.Second

// Available reports whether rsvg-convert is on PATH.
func Available() bool {
	_, err := exec.LookPath(converter)
	return err == nil
}

// ToPDF converts SVG bytes to PDF using rsvg-convert. A positive dpi tells
// the converter how many SVG pixels make an inch, so the PDF page matches
// the drawer's physical size.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(ctx context.Context, svg []byte, dpi float64) ([]byte, error) {
	var args []string
	if dpi > 0 {
		d := strconv.FormatFloat(dpi, 'f', -1, 64)
		args = append(args, "--dpi-x", d, "--dpi-y", d)
	}
	return rsvgConvert(ctx, svg, "pdf", args...)
}

func rsvgConvert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if !Available() {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.CommandContext(ctx, converter, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s: %s", converter, errBuf.String())
	}
	return out.Bytes(), nil
}
