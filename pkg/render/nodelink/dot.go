package nodelink

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/cargodot/pkg/graph"
)

// DefaultGraphID names the digraph when the root package name yields no
// usable identifier.
const DefaultGraphID = "dependencies"

// keywords cannot be used as bare IDs (DOT keywords are case-insensitive).
var keywords = map[string]bool{
	"node": true, "edge": true, "graph": true,
	"digraph": true, "subgraph": true, "strict": true,
}

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Escape makes s safe inside a double-quoted DOT string by escaping
// backslashes and double quotes. Everything else is kept as is.
func Escape(s string) string {
	return labelEscaper.Replace(s)
}

// GraphID turns a package name into a bare DOT identifier.
// ASCII letters, digits and '_' are kept, any other rune becomes '_', and a
// leading digit or a DOT keyword gets a '_' prefix. Names with no valid
// character at all fall back to [DefaultGraphID].
func GraphID(name string) string {
	var b strings.Builder
	valid := false
	for _, r := range name {
		if isIDRune(r) {
			valid = true
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	if !valid {
		return DefaultGraphID
	}

	id := b.String()
	if (id[0] >= '0' && id[0] <= '9') || keywords[strings.ToLower(id)] {
		id = "_" + id
	}
	return id
}

func isIDRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// NodeID returns the DOT identifier of node i ("N0", "N1", ...).
func NodeID(i int) string {
	return "N" + strconv.Itoa(i)
}

// WriteDOT writes g to w as a Graphviz digraph: one node statement per node
// in index order, then one edge statement per edge in insertion order.
// The output depends only on g, so equal graphs produce identical bytes.
//
// The only possible error is the first one returned by w.
func WriteDOT(w io.Writer, g *graph.Graph) error {
	ew := &errWriter{w: w}

	ew.printf("digraph %s {\n", GraphID(g.Root().Name))
	for i := range g.Nodes() {
		ew.printf("    %s [label=\"%s\"];\n", NodeID(i), Escape(g.Label(i)))
	}
	for _, e := range g.Edges() {
		ew.printf("    %s -> %s;\n", NodeID(e.From), NodeID(e.To))
	}
	ew.printf("}\n")

	return ew.err
}

// ToDOT returns the DOT document for g as a string.
func ToDOT(g *graph.Graph) string {
	var buf bytes.Buffer
	_ = WriteDOT(&buf, g) // bytes.Buffer writes do not fail
	return buf.String()
}

// errWriter stops writing after the first failure and keeps that error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
