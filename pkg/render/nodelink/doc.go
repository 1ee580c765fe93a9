// Package nodelink renders dependency graphs as Graphviz node-link diagrams.
//
// # DOT Output
//
// [WriteDOT] serializes a [graph.Graph] as a single digraph:
//
//	digraph app {
//	    N0 [label="app"];
//	    N1 [label="lib-a"];
//	    N0 -> N1;
//	}
//
// The graph is named after the root package via [GraphID]. Node identifiers
// are synthetic ("N" plus the node index) so they are valid whatever the
// package is called. Labels are double-quoted and pass through [Escape];
// their content depends on the graph's [graph.LabelMode].
//
// Nodes come in index order and edges in insertion order, with no
// reordering or deduplication. Rendering the same graph twice yields the
// same bytes.
//
// # Graphviz Rendering
//
// [RenderSVG] lays the DOT document out in-process, and [RenderPDF] and
// [RenderPNG] convert that SVG further. [Validate] only parses the document
// and is used to check generated DOT.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process parsing
// and SVG rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
//
// [graph.Graph]: github.com/matzehuels/cargodot/pkg/graph
// [graph.LabelMode]: github.com/matzehuels/cargodot/pkg/graph
package nodelink
