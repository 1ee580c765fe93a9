package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cargodot/pkg/cargo"
	"github.com/matzehuels/cargodot/pkg/graph"
	cdio "github.com/matzehuels/cargodot/pkg/io"
	"github.com/matzehuels/cargodot/pkg/observability"
	"github.com/matzehuels/cargodot/pkg/render/nodelink"
	"github.com/matzehuels/cargodot/pkg/sink"
)

// Runner executes the pipeline. It keeps no state between runs.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs load → build → render → write with opts.
// The output is opened only after the graph is built, so input errors never
// truncate an existing output file.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	loadStart := time.Now()
	res, err := r.Load(ctx, opts.LockFile)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Packages = res.Len()

	buildStart := time.Now()
	g := r.Build(ctx, res, opts.LabelMode())
	result.Graph = g
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Format)
	name, n, err := r.write(ctx, res, g, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Format, n, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Output = name
	result.Bytes = n

	r.Logger.Debug("pipeline complete",
		"load", result.Stats.LoadTime,
		"build", result.Stats.BuildTime,
		"render", result.Stats.RenderTime)
	return result, nil
}

// Load reads the lock file at path.
func (r *Runner) Load(ctx context.Context, path string) (*cargo.Resolve, error) {
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, path)

	res, err := cargo.Load(path)
	n := 0
	if res != nil {
		n = res.Len()
	}
	observability.Pipeline().OnLoadComplete(ctx, path, n, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("loaded lock file",
		"path", path,
		"version", res.Version,
		"packages", n,
		"root", res.Root().Name)
	return res, nil
}

// Build creates the dependency graph rooted at res.Root().
func (r *Runner) Build(ctx context.Context, res *cargo.Resolve, mode graph.LabelMode) *graph.Graph {
	start := time.Now()
	g := graph.New(res.Root(), mode)
	g.AddDependencies(res)
	duration := time.Since(start)

	observability.Pipeline().OnBuildComplete(ctx, g.NodeCount(), g.EdgeCount(), duration)
	r.Logger.Info("built dependency graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", duration)
	return g
}

// Render encodes g in the requested format. res supplies package checksums
// for JSON output and may be nil.
// DOT output is checked with Graphviz first when check is set.
func (r *Runner) Render(ctx context.Context, res *cargo.Resolve, g *graph.Graph, format string, check bool) ([]byte, error) {
	if format == FormatJSON {
		var sums cdio.Checksums
		if res != nil {
			sums = res
		}
		var buf bytes.Buffer
		if err := cdio.WriteJSON(&buf, g, sums); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	dot := []byte(nodelink.ToDOT(g))
	if check || format != FormatDOT {
		if err := nodelink.Validate(ctx, dot); err != nil {
			return nil, fmt.Errorf("generated DOT is invalid: %w", err)
		}
		r.Logger.Debug("DOT document parsed with Graphviz", "bytes", len(dot))
	}

	switch format {
	case FormatDOT:
		return dot, nil
	case FormatSVG:
		r.Logger.Info("Rendering SVG with Graphviz")
		return nodelink.RenderSVG(ctx, dot)
	case FormatPDF:
		r.Logger.Info("Rendering PDF")
		return nodelink.RenderPDF(ctx, dot)
	case FormatPNG:
		r.Logger.Info("Rendering PNG")
		return nodelink.RenderPNG(ctx, dot, DefaultPNGScale)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// write renders g and sends it to the configured sink. Plain DOT is
// streamed straight into the sink; every other format is rendered in full
// before the sink is opened.
func (r *Runner) write(ctx context.Context, res *cargo.Resolve, g *graph.Graph, opts Options) (string, int64, error) {
	var data []byte
	if opts.Format != FormatDOT || opts.Check {
		var err error
		if data, err = r.Render(ctx, res, g, opts.Format, opts.Check); err != nil {
			return "", 0, err
		}
	}

	s, err := sink.Open(opts.Output)
	if err != nil {
		return "", 0, err
	}
	cw := &countingWriter{w: s}

	if data != nil {
		_, err = cw.Write(data)
	} else {
		err = nodelink.WriteDOT(cw, g)
	}
	if closeErr := s.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", 0, err
	}

	r.Logger.Debug("wrote output", "sink", s.Name(), "format", opts.Format, "bytes", cw.n)
	return s.Name(), cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
