package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/cargodot/pkg/cargo"
	"github.com/matzehuels/cargodot/pkg/graph"
)

// Checksums looks up the recorded checksum of a package.
// [cargo.Resolve] implements it.
type Checksums interface {
	Checksum(id cargo.PackageID) string
}

type document struct {
	Root  int    `json:"root"`
	Label string `json:"label"`
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Version  string `json:"version,omitempty"`
	Source   string `json:"source,omitempty"`
	Checksum string `json:"checksum,omitempty"`
	Label    string `json:"label"`
}

type edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// WriteJSON encodes g as indented JSON and writes it to w.
// Nodes appear in index order and edges in insertion order, mirroring the
// DOT output, so equal graphs encode to identical bytes. Package checksums
// are looked up in sums, which may be nil.
func WriteJSON(w io.Writer, g *graph.Graph, sums Checksums) error {
	out := document{
		Root:  0,
		Label: g.Mode().String(),
		Nodes: make([]node, g.NodeCount()),
		Edges: make([]edge, g.EdgeCount()),
	}

	for i, id := range g.Nodes() {
		out.Nodes[i] = node{
			Index:   i,
			Name:    id.Name,
			Version: id.Version,
			Source:  id.Source.String(),
			Label:   g.Label(i),
		}
		if sums != nil {
			out.Nodes[i].Checksum = sums.Checksum(id)
		}
	}
	for i, e := range g.Edges() {
		out.Edges[i] = edge{From: e.From, To: e.To}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
