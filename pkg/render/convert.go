package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// rsvgConvert is the librsvg command line converter.
const rsvgConvert = "rsvg-convert"

// ErrNoConverter reports that rsvg-convert is not on PATH.
var ErrNoConverter = errors.New("rsvg-convert not found; install librsvg (brew install librsvg, apt install librsvg2-bin)")

// ToPDF converts SVG bytes to PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, "pdf")
}

// ToPNG converts SVG bytes to PNG. A scale of 2.0 doubles the resolution.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("png scale must be positive, got %g", scale)
	}
	return convert(ctx, svg, "png", "--zoom", strconv.FormatFloat(scale, 'f', 2, 64))
}

// convert pipes svg through rsvg-convert and returns the converted document.
func convert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	bin, err := exec.LookPath(rsvgConvert)
	if err != nil {
		return nil, fmt.Errorf("%s output: %w", format, ErrNoConverter)
	}

	cmd := exec.CommandContext(ctx, bin, append([]string{"--format", format}, extraArgs...)...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%s %s: %w: %s", rsvgConvert, format, err, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
