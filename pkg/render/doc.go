// Package render provides output conversion shared by the graph renderers.
//
// The [ToPDF] and [ToPNG] functions convert SVG to other formats using the
// external rsvg-convert tool (from librsvg):
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// The [nodelink] subpackage writes the dependency graph as Graphviz DOT and
// lays it out with Graphviz.
//
// [nodelink]: github.com/matzehuels/cargodot/pkg/render/nodelink
package render
