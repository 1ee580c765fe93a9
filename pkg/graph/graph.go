package graph

import (
	"github.com/matzehuels/cargodot/pkg/cargo"
)

// LabelMode selects the text shown for each node.
type LabelMode int

const (
	// LabelName labels nodes with the package name.
	LabelName LabelMode = iota
	// LabelSource labels nodes with the package source location.
	LabelSource
)

// String returns "name" or "source".
func (m LabelMode) String() string {
	if m == LabelSource {
		return "source"
	}
	return "name"
}

// Edge is a dependency from node From to node To, both indices into
// [Graph.Nodes].
type Edge struct {
	From int
	To   int
}

// Resolver is the resolved dependency set a Graph is built from.
// [cargo.Resolve] implements it.
type Resolver interface {
	// Packages lists every package in iteration order.
	Packages() []cargo.PackageID
	// Deps returns the direct dependencies of id, and false when nothing
	// is known about them.
	Deps(id cargo.PackageID) ([]cargo.PackageID, bool)
}

// Graph is a dependency graph with stable, insertion-ordered node indices.
//
// The zero value is not usable; use [New].
type Graph struct {
	nodes []cargo.PackageID
	index map[cargo.PackageID]int
	edges []Edge
	mode  LabelMode
}

// New creates a graph holding only root, at index 0.
func New(root cargo.PackageID, mode LabelMode) *Graph {
	return &Graph{
		nodes: []cargo.PackageID{root},
		index: map[cargo.PackageID]int{root: 0},
		mode:  mode,
	}
}

// AddDependencies records the edges of every package in r that has known
// dependencies, in r's iteration order.
func (g *Graph) AddDependencies(r Resolver) {
	for _, pkg := range r.Packages() {
		deps, ok := r.Deps(pkg)
		if !ok {
			continue
		}
		from := g.FindOrInsert(pkg)
		for _, dep := range deps {
			g.edges = append(g.edges, Edge{From: from, To: g.FindOrInsert(dep)})
		}
	}
}

// FindOrInsert returns the index of id, appending a node when id has not
// been seen yet.
func (g *Graph) FindOrInsert(id cargo.PackageID) int {
	if i, ok := g.index[id]; ok {
		return i
	}
	i := len(g.nodes)
	g.nodes = append(g.nodes, id)
	g.index[id] = i
	return i
}

// Index returns the node index of id, if present.
func (g *Graph) Index(id cargo.PackageID) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// Root returns the root package.
func (g *Graph) Root() cargo.PackageID { return g.nodes[0] }

// Node returns the package at index i.
func (g *Graph) Node(i int) cargo.PackageID { return g.nodes[i] }

// Nodes returns the packages in index order. The slice must not be modified.
func (g *Graph) Nodes() []cargo.PackageID { return g.nodes }

// Edges returns the edges in insertion order. The slice must not be modified.
func (g *Graph) Edges() []Edge { return g.edges }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges, duplicates included.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Mode returns the label mode.
func (g *Graph) Mode() LabelMode { return g.mode }

// Label returns the unescaped label text of node i.
func (g *Graph) Label(i int) string {
	id := g.nodes[i]
	if g.mode == LabelSource {
		return id.Source.URL
	}
	return id.Name
}
