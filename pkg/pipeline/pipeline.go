// Package pipeline runs the load → build → render → write sequence of
// cargo-dot.
//
// # Architecture
//
// The pipeline consists of four stages, run once and strictly in order:
//
//  1. Load: decode the lock file into a resolved dependency set
//  2. Build: turn the dependency set into a [graph.Graph]
//  3. Render: encode the graph as DOT (or SVG, PDF, PNG, JSON)
//  4. Write: hand the bytes to the output sink and flush it
//
// Any error stops the run; nothing is retried.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    LockFile: "Cargo.lock",
//	    Format:   pipeline.FormatDOT,
//	})
//
// [graph.Graph]: github.com/matzehuels/cargodot/pkg/graph
package pipeline

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/cargodot/pkg/cargo"
	errs "github.com/matzehuels/cargodot/pkg/errors"
	"github.com/matzehuels/cargodot/pkg/graph"
)

// Format constants for output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// DefaultPNGScale is the resolution multiplier for PNG output.
const DefaultPNGScale = 2.0

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatDOT, FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// Options configures a pipeline run.
type Options struct {
	// LockFile is the lock file to read. Defaults to "Cargo.lock".
	LockFile string
	// Output is the destination file; empty or "-" writes to standard output.
	Output string
	// Format is one of [ValidFormats]. Defaults to [FormatDOT].
	Format string
	// SourceLabels labels nodes with their source location instead of
	// their name.
	SourceLabels bool
	// Check parses generated DOT with Graphviz before anything is written.
	Check bool
}

// ValidateAndSetDefaults fills in defaults and rejects unknown formats.
func (o *Options) ValidateAndSetDefaults() error {
	if o.LockFile == "" {
		o.LockFile = cargo.LockFile
	}
	if o.Format == "" {
		o.Format = FormatDOT
	}
	o.Format = strings.ToLower(o.Format)
	if !slices.Contains(ValidFormats, o.Format) {
		return errs.New(errs.ErrCodeConfigurationError,
			"invalid format %q (must be one of %s)", o.Format, strings.Join(ValidFormats, ", "))
	}
	if err := errs.ValidatePath("lock file", o.LockFile); err != nil {
		return err
	}
	return errs.ValidatePath("output", o.Output)
}

// LabelMode returns the graph label mode selected by the options.
func (o Options) LabelMode() graph.LabelMode {
	if o.SourceLabels {
		return graph.LabelSource
	}
	return graph.LabelName
}

// Result describes a completed run.
type Result struct {
	Graph  *graph.Graph
	Output string // sink name: file path or "<stdout>"
	Bytes  int64  // bytes written to the sink
	Stats  Stats
}

// Stats holds per-stage timings and graph size.
type Stats struct {
	Packages   int
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// String summarizes the graph size.
func (s Stats) String() string {
	return fmt.Sprintf("%d nodes, %d edges", s.NodeCount, s.EdgeCount)
}
