package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/cargodot/pkg/render"
)

// withGraph parses dot with a fresh Graphviz instance and calls fn with both.
// Everything is released when fn returns.
func withGraph(ctx context.Context, dot []byte, fn func(*graphviz.Graphviz, *graphviz.Graph) error) error {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(dot)
	if err != nil {
		return fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	return fn(gv, g)
}

// Validate parses dot with Graphviz and reports any syntax error.
func Validate(ctx context.Context, dot []byte) error {
	return withGraph(ctx, dot, func(*graphviz.Graphviz, *graphviz.Graph) error { return nil })
}

// RenderSVG lays out a DOT document with Graphviz and returns SVG bytes whose
// root element starts at the origin.
func RenderSVG(ctx context.Context, dot []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := withGraph(ctx, dot, func(gv *graphviz.Graphviz, g *graphviz.Graph) error {
		if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
			return fmt.Errorf("render SVG: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgRootRe = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root <svg> tag with one whose viewBox starts
// at 0 0 and whose width and height equal the viewBox size. Documents
// without a usable viewBox are returned unchanged.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}

	width, _ := strconv.ParseFloat(string(m[3]), 64)
	height, _ := strconv.ParseFloat(string(m[4]), 64)
	if width == 0 || height == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		width, height, width, height)
	return svgRootRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT document as PDF. It needs rsvg-convert.
func RenderPDF(ctx context.Context, dot []byte) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT document as PNG at the given scale. It needs
// rsvg-convert.
func RenderPNG(ctx context.Context, dot []byte, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
