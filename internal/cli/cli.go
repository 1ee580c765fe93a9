package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cargodot/pkg/buildinfo"
	"github.com/matzehuels/cargodot/pkg/cargo"
	errs "github.com/matzehuels/cargodot/pkg/errors"
	"github.com/matzehuels/cargodot/pkg/pipeline"
	"github.com/matzehuels/cargodot/pkg/sink"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the binary name cargo looks up for `cargo dot`.
	appName = "cargo-dot"

	// subcommandName is the argument cargo inserts before the user's flags.
	subcommandName = "dot"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for the command.
type CLI struct {
	Logger *log.Logger

	// stderr receives log records and the end-of-run summary.
	stderr io.Writer
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		stderr: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the cargo-dot command.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Generate a Graphviz DOT file of a Cargo dependency graph",
		Long: `cargo-dot reads Cargo.lock and writes the project's dependency graph as a
Graphviz digraph. Every flag can also be set through a CARGO_DOT_* environment
variable, for example CARGO_DOT_SOURCE_LABELS=true.

Render the result with Graphviz:

  cargo dot | dot -Tsvg > deps.svg`,
		Version:       buildinfo.Version,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cmd)
			if err != nil {
				return usageError(cmd, err)
			}
			if cfg.Verbose {
				c.SetLogLevel(LogDebug)
			}
			return c.run(withLogger(cmd.Context(), c.Logger), cfg)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(cmd, errs.Wrap(errs.ErrCodeConfigurationError, err, "invalid arguments"))
	})

	f := root.Flags()
	f.String(flagLockFile, cargo.LockFile, "path to the Cargo.lock file")
	f.StringP(flagDotFile, "o", "", "output file (default: standard output)")
	f.Bool(flagSourceLabels, false, "label nodes with their source location instead of their name")
	f.StringP(flagFormat, "f", pipeline.FormatDOT,
		fmt.Sprintf("output format (%s)", strings.Join(pipeline.ValidFormats, ", ")))
	f.Bool(flagCheck, false, "parse the generated DOT with Graphviz before writing it")
	f.BoolP(flagVerbose, "v", false, "enable verbose logging")
	f.BoolP("version", "V", false, "print version information")

	return root
}

// noArgs rejects positional arguments as a configuration error.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageError(cmd, errs.New(errs.ErrCodeConfigurationError,
			"unexpected argument %q for %q", args[0], cmd.CommandPath()))
	}
	return nil
}

// usageError prints the command usage to stderr when err is a configuration
// error, and returns err unchanged.
func usageError(cmd *cobra.Command, err error) error {
	if errs.Is(err, errs.ErrCodeConfigurationError) {
		fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
	}
	return err
}

// run executes the pipeline with cfg and reports the result.
func (c *CLI) run(ctx context.Context, cfg *Config) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	result, err := pipeline.NewRunner(logger).Execute(ctx, cfg.Options())
	if err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Wrote dependency graph (%s)", result.Stats))
	if cfg.DotFile != "" && cfg.DotFile != sink.Stdout {
		printSummary(c.stderr, result)
	}
	return nil
}

// StripSubcommand removes the leading "dot" argument cargo passes when the
// binary is invoked as `cargo dot`.
func StripSubcommand(args []string) []string {
	if len(args) > 0 && args[0] == subcommandName {
		return args[1:]
	}
	return args
}
