// Package cli implements the laserfinity command-line interface.
//
// The root command renders a baseplate template for a drawer:
//
//	laserfinity --drawer_width 22.5 --drawer_height "16 1/4" -o drawer.svg
//
// Subcommands:
//   - profiles: list the physical-constant profiles that can be selected
//   - serve: render templates over HTTP
//   - cache: inspect and clear the server's artifact cache
//   - completion: generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is carried on context.Context so pipeline stages log through it.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/laserfinity/laserfinity/pkg/buildinfo"
	"github.com/laserfinity/laserfinity/pkg/cache"
	"github.com/laserfinity/laserfinity/pkg/config"
	"github.com/laserfinity/laserfinity/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "laserfinity"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Stdout receives status lines, usage text and the missing-dimensions
	// message.
	// Stderr receives other errors.
	Stdout io.Writer
	Stderr io.Writer

	configPath string
	verbose    bool
}

// New creates a CLI whose logger writes to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := c.rootCommand()
	buildinfo.Resolve()
	root.Version = buildinfo.Version
	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Stdout)
	root.SetErr(c.Stderr)

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "profile file (TOML or YAML); defaults to $"+config.EnvPath+" or ~/.config/laserfinity/profiles.toml")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		c.SetLogLevel(levelFor(c.verbose))
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	root.AddCommand(c.profilesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the --config file, or the default location when unset.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.configPath != "" {
		return config.Load(c.configPath)
	}
	return config.LoadDefault()
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(cc cache.Cache) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		c.Logger.Debug("loaded profiles", "path", cfg.Path, "count", len(cfg.Profiles))
	}
	return pipeline.NewRunner(cfg, cc, c.Logger), nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/laserfinity/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
