// Package cli implements the effectsize command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/MatthieuRouland/effectsize/pkg/buildinfo"
	"github.com/MatthieuRouland/effectsize/pkg/observability"
	"github.com/MatthieuRouland/effectsize/pkg/refit"
	"github.com/MatthieuRouland/effectsize/pkg/standardize"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "effectsize"

	// configFile is the name of the configuration file inside configDir.
	configFile = "config.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives command output. Defaults to os.Stdout.
	Out io.Writer

	// ConfigPath overrides the configuration file location.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Effectsize computes standardized regression coefficients",
		Long:         `Effectsize reads a fitted regression model and reports its coefficients on a standardized scale, using refitting or post-hoc rescaling by the standard deviations of predictors and response.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/effectsize/config.toml)")

	// Register all subcommands
	root.AddCommand(c.parametersCommand())
	root.AddCommand(c.posteriorsCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.methodsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Options Factory
// =============================================================================

// loadConfig reads the configuration file selected by --config.
func (c *CLI) loadConfig() (config, error) {
	return loadConfig(c.configPath())
}

// standardizeOptions builds the options for a standardization call: config
// defaults first, then the flags the user actually set.
func (c *CLI) standardizeOptions(cmd *cobra.Command, flags *stdFlags, cfg config) (standardize.Options, error) {
	opts := cfg.Standardize.options()
	if err := flags.apply(cmd, &opts); err != nil {
		return standardize.Options{}, err
	}

	hooks := observability.NewLogHooks(c.Logger)
	refitter := refit.NewStandardizer(refit.OLS{}, c.Logger)
	refitter.Hooks = hooks

	opts.Logger = c.Logger
	opts.Hooks = hooks
	opts.Refitter = refitter
	return opts, nil
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/effectsize/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// configPath returns the --config path, or the default file under configDir.
// An empty result means no config file is used.
func (c *CLI) configPath() string {
	if c.ConfigPath != "" {
		return c.ConfigPath
	}
	dir, err := configDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, configFile)
}
