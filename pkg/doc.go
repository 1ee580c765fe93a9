// Package pkg provides the libraries behind cargo-dot.
//
// # Overview
//
// cargo-dot turns the resolved dependency set recorded in a Cargo.lock into a
// Graphviz digraph: one node per package reachable from the root, one edge
// per dependency relation. The pkg directory is organized as follows:
//
//  1. [cargo] - Cargo.lock and Cargo.toml decoding, package identities
//  2. [graph] - the dependency graph builder
//  3. [render/nodelink] - DOT encoding and Graphviz rendering
//  4. [io] - JSON export of the graph
//  5. [sink] - buffered output destinations
//  6. [pipeline] - orchestration (load → build → render → write)
//
// # Architecture
//
//	Cargo.lock (+ Cargo.toml)
//	         ↓
//	    [cargo] package (Resolve: root, packages, dependencies)
//	         ↓
//	    [graph] package (reachable nodes + edges)
//	         ↓
//	    [render/nodelink] or [io] (DOT / SVG / PNG / PDF / JSON)
//	         ↓
//	    [sink] package (file or standard output)
//
// # Quick Start
//
//	res, err := cargo.Load("Cargo.lock")
//	if err != nil {
//	    return err
//	}
//	g := graph.New(res.Root(), graph.LabelName)
//	g.AddDependencies(res)
//	return nodelink.WriteDOT(os.Stdout, g)
//
// [cargo]: https://pkg.go.dev/github.com/matzehuels/cargodot/pkg/cargo
// [graph]: https://pkg.go.dev/github.com/matzehuels/cargodot/pkg/graph
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/cargodot/pkg/render/nodelink
// [io]: https://pkg.go.dev/github.com/matzehuels/cargodot/pkg/io
// [sink]: https://pkg.go.dev/github.com/matzehuels/cargodot/pkg/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/cargodot/pkg/pipeline
package pkg
