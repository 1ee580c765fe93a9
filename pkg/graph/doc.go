// Package graph builds the package dependency graph rendered by cargo-dot.
//
// # Overview
//
// A [Graph] is an ordered list of packages (nodes) plus a list of directed
// edges between node indices. Node 0 is always the root package. Every other
// package gets the next free index the first time it is seen, so indices are
// stable for a given traversal order.
//
// # Building
//
//	g := graph.New(res.Root(), graph.LabelName)
//	g.AddDependencies(res)
//
// [Graph.AddDependencies] walks a [Resolver] once. For every package with
// known dependencies it records one edge per listed dependency, in listing
// order. Edges are never deduplicated: a dependency listed twice yields two
// edges. Packages without dependency information are skipped unless some
// other package depends on them.
//
// # Deduplication
//
// Packages are compared by value. A map from identity to index backs
// [Graph.FindOrInsert], with the node slice preserving insertion order.
//
// # Labels
//
// The [LabelMode] chosen at construction decides what [Graph.Label] returns:
// the package name, or the package's source location.
//
// A Graph is not safe for concurrent mutation. Once built it is only read.
package graph
