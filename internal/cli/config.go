package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	errs "github.com/matzehuels/cargodot/pkg/errors"
	"github.com/matzehuels/cargodot/pkg/pipeline"
)

// envPrefix namespaces the environment variables read by cargo-dot.
const envPrefix = "CARGO_DOT"

// Flag names, also used as configuration keys.
const (
	flagLockFile     = "lock-file"
	flagDotFile      = "dot-file"
	flagSourceLabels = "source-labels"
	flagFormat       = "format"
	flagCheck        = "check"
	flagVerbose      = "verbose"
)

// Config is the resolved invocation configuration.
type Config struct {
	// LockFile is the Cargo.lock to read.
	LockFile string `mapstructure:"lock-file"`

	// DotFile is the output path; empty writes to standard output.
	DotFile string `mapstructure:"dot-file"`

	// SourceLabels labels nodes with their source URL.
	SourceLabels bool `mapstructure:"source-labels"`

	// Format is the output format.
	Format string `mapstructure:"format"`

	// Check parses the generated DOT before writing it.
	Check bool `mapstructure:"check"`

	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose"`
}

// LoadConfig resolves the configuration from cmd's flags and CARGO_DOT_*
// environment variables. Flags set on the command line win over the
// environment, which wins over flag defaults. A fresh viper instance is used
// on every call.
func LoadConfig(cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, errs.Wrap(errs.ErrCodeConfigurationError, err, "binding flags")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errs.Wrap(errs.ErrCodeConfigurationError, err, "reading configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration and normalizes the format name.
func (c *Config) Validate() error {
	opts := c.Options()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	c.LockFile = opts.LockFile
	c.Format = opts.Format
	return nil
}

// Options converts the configuration into pipeline options.
func (c *Config) Options() pipeline.Options {
	return pipeline.Options{
		LockFile:     c.LockFile,
		Output:       c.DotFile,
		Format:       c.Format,
		SourceLabels: c.SourceLabels,
		Check:        c.Check,
	}
}
