package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/cargodot/pkg/errors"
	"github.com/matzehuels/cargodot/pkg/graph"
)

const lockFixture = `version = 3

[[package]]
name = "app"
version = "0.1.0"
dependencies = [
 "lib-a",
 "lib-b",
]

[[package]]
name = "lib-a"
version = "1.0.0"
source = "registry+https://github.com/rust-lang/crates.io-index"
checksum = "4f2c9ab0"
dependencies = [
 "lib-b",
]

[[package]]
name = "lib-b"
version = "2.0.0"
source = "registry+https://github.com/rust-lang/crates.io-index"
`

func writeLock(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "Cargo.lock")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestRunner() *Runner {
	return NewRunner(log.New(io.Discard))
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name       string
		opts       Options
		wantErr    bool
		wantFormat string
		wantLock   string
	}{
		{name: "defaults", opts: Options{}, wantFormat: FormatDOT, wantLock: "Cargo.lock"},
		{name: "json", opts: Options{Format: "json", LockFile: "x.lock"}, wantFormat: FormatJSON, wantLock: "x.lock"},
		{name: "uppercase", opts: Options{Format: "SVG"}, wantFormat: FormatSVG, wantLock: "Cargo.lock"},
		{name: "unknown format", opts: Options{Format: "gif"}, wantErr: true},
		{name: "bad output path", opts: Options{Output: "a\x00b"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			err := opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAndSetDefaults() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errs.Is(err, errs.ErrCodeConfigurationError) {
					t.Errorf("error code = %v, want CONFIGURATION_ERROR", errs.GetCode(err))
				}
				return
			}
			if opts.Format != tt.wantFormat {
				t.Errorf("Format = %q, want %q", opts.Format, tt.wantFormat)
			}
			if opts.LockFile != tt.wantLock {
				t.Errorf("LockFile = %q, want %q", opts.LockFile, tt.wantLock)
			}
		})
	}
}

func TestOptionsLabelMode(t *testing.T) {
	if (Options{}).LabelMode() != graph.LabelName {
		t.Error("default label mode should be name")
	}
	if (Options{SourceLabels: true}).LabelMode() != graph.LabelSource {
		t.Error("SourceLabels should select source labels")
	}
}

func TestExecute_DOTToFile(t *testing.T) {
	lock := writeLock(t, lockFixture)
	out := filepath.Join(t.TempDir(), "deps.dot")

	result, err := newTestRunner().Execute(context.Background(), Options{LockFile: lock, Output: out})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	want := `digraph app {
    N0 [label="app"];
    N1 [label="lib-a"];
    N2 [label="lib-b"];
    N0 -> N1;
    N0 -> N2;
    N1 -> N2;
}
`
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}

	if result.Output != out {
		t.Errorf("Output = %q, want %q", result.Output, out)
	}
	if result.Bytes != int64(len(want)) {
		t.Errorf("Bytes = %d, want %d", result.Bytes, len(want))
	}
	if result.Stats.NodeCount != 3 || result.Stats.EdgeCount != 3 || result.Stats.Packages != 3 {
		t.Errorf("Stats = %+v", result.Stats)
	}
	if result.Stats.String() != "3 nodes, 3 edges" {
		t.Errorf("Stats.String() = %q", result.Stats.String())
	}
}

func TestExecute_CheckMatchesStreaming(t *testing.T) {
	lock := writeLock(t, lockFixture)
	dir := t.TempDir()
	streamed := filepath.Join(dir, "a.dot")
	checked := filepath.Join(dir, "b.dot")

	r := newTestRunner()
	if _, err := r.Execute(context.Background(), Options{LockFile: lock, Output: streamed, SourceLabels: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Execute(context.Background(), Options{LockFile: lock, Output: checked, SourceLabels: true, Check: true}); err != nil {
		t.Fatal(err)
	}

	a, _ := os.ReadFile(streamed)
	b, _ := os.ReadFile(checked)
	if string(a) != string(b) {
		t.Errorf("--check output differs from streamed output:\n%s\n---\n%s", a, b)
	}
	if !strings.Contains(string(a), `[label="https://github.com/rust-lang/crates.io-index"]`) {
		t.Errorf("source labels missing:\n%s", a)
	}
}

func TestExecute_JSON(t *testing.T) {
	lock := writeLock(t, lockFixture)
	out := filepath.Join(t.TempDir(), "deps.json")

	if _, err := newTestRunner().Execute(context.Background(), Options{LockFile: lock, Output: out, Format: FormatJSON}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Nodes []struct{ Name, Checksum string } `json:"nodes"`
		Edges []struct{ From, To int }          `json:"edges"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(doc.Nodes) != 3 || len(doc.Edges) != 3 {
		t.Fatalf("json = %d nodes, %d edges; want 3, 3", len(doc.Nodes), len(doc.Edges))
	}
	if doc.Nodes[1].Name != "lib-a" || doc.Nodes[1].Checksum != "4f2c9ab0" {
		t.Errorf("lib-a node = %+v, want checksum from the lock file", doc.Nodes[1])
	}
	if doc.Nodes[0].Checksum != "" {
		t.Errorf("path package should have no checksum, got %q", doc.Nodes[0].Checksum)
	}
}

func TestExecute_MissingLockFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "deps.dot")

	_, err := newTestRunner().Execute(context.Background(), Options{
		LockFile: filepath.Join(dir, "Cargo.lock"),
		Output:   out,
	})
	if !errs.Is(err, errs.ErrCodeInputUnavailable) {
		t.Fatalf("Execute() error = %v, want INPUT_UNAVAILABLE", err)
	}
	if _, statErr := os.Stat(out); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("output should not be created when the input cannot be read")
	}
}

func TestExecute_RootUnresolvable(t *testing.T) {
	lock := writeLock(t, `[[package]]
name = "only-registry"
version = "1.0.0"
source = "registry+https://github.com/rust-lang/crates.io-index"
`)
	_, err := newTestRunner().Execute(context.Background(), Options{LockFile: lock, Output: filepath.Join(t.TempDir(), "x.dot")})
	if !errs.Is(err, errs.ErrCodeRootUnresolvable) {
		t.Fatalf("Execute() error = %v, want ROOT_UNRESOLVABLE", err)
	}
}

func TestExecute_SinkFailure(t *testing.T) {
	lock := writeLock(t, lockFixture)
	out := filepath.Join(t.TempDir(), "no-such-dir", "deps.dot")

	_, err := newTestRunner().Execute(context.Background(), Options{LockFile: lock, Output: out})
	if !errs.Is(err, errs.ErrCodeSinkWriteFailure) {
		t.Fatalf("Execute() error = %v, want SINK_WRITE_FAILURE", err)
	}
}

func TestExecute_Canceled(t *testing.T) {
	lock := writeLock(t, lockFixture)
	out := filepath.Join(t.TempDir(), "deps.dot")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestRunner().Execute(ctx, Options{LockFile: lock, Output: out})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Execute() error = %v, want context.Canceled", err)
	}
	if _, statErr := os.Stat(out); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("output should not be created after cancellation")
	}
}

func TestRender_Deterministic(t *testing.T) {
	lock := writeLock(t, lockFixture)
	r := newTestRunner()

	res, err := r.Load(context.Background(), lock)
	if err != nil {
		t.Fatal(err)
	}
	g := r.Build(context.Background(), res, graph.LabelName)

	first, err := r.Render(context.Background(), res, g, FormatDOT, true)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Render(context.Background(), res, g, FormatDOT, true)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Error("rendering the same graph twice should be byte-identical")
	}
}

func TestNewRunner_DefaultLogger(t *testing.T) {
	if NewRunner(nil).Logger == nil {
		t.Error("NewRunner(nil) should fall back to the default logger")
	}
}

func TestExecute_SVG(t *testing.T) {
	lock := writeLock(t, lockFixture)
	out := filepath.Join(t.TempDir(), "deps.svg")

	result, err := newTestRunner().Execute(context.Background(), Options{LockFile: lock, Output: out, Format: FormatSVG})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	svg := string(data)
	root := svg[strings.Index(svg, "<svg"):]
	if !strings.HasPrefix(root, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("unexpected SVG root element:\n%.200s", root)
	}
	if result.Bytes != int64(len(data)) {
		t.Errorf("Bytes = %d, want %d", result.Bytes, len(data))
	}
}

// Every [[package]] entry becomes a node, even one nothing depends on.
func TestExecute_UnreferencedPackageIsKept(t *testing.T) {
	lock := writeLock(t, `version = 3

[[package]]
name = "app"
version = "0.1.0"
dependencies = [
 "serde",
]

[[package]]
name = "serde"
version = "1.0.0"
source = "registry+https://github.com/rust-lang/crates.io-index"

[[package]]
name = "stale"
version = "9.9.9"
source = "registry+https://github.com/rust-lang/crates.io-index"
`)
	out := filepath.Join(t.TempDir(), "deps.dot")

	result, err := newTestRunner().Execute(context.Background(), Options{LockFile: lock, Output: out})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	want := `digraph app {
    N0 [label="app"];
    N1 [label="serde"];
    N2 [label="stale"];
    N0 -> N1;
}
`
	got, _ := os.ReadFile(out)
	if string(got) != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}
	if result.Stats.NodeCount != 3 || result.Stats.EdgeCount != 1 {
		t.Errorf("Stats = %+v, want 3 nodes, 1 edge", result.Stats)
	}
}
