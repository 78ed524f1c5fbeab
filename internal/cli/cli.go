package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bracketmaker/pkg/buildinfo"
	"github.com/matzehuels/bracketmaker/pkg/cache"
	"github.com/matzehuels/bracketmaker/pkg/config"
	bmerrors "github.com/matzehuels/bracketmaker/pkg/errors"
	"github.com/matzehuels/bracketmaker/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "bracketmaker"

	// envConfig names the config file when --config is not given.
	envConfig = "BRACKETMAKER_CONFIG"
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

	configPath string
	verbose    bool
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Config returns the loaded file settings.
func (c *CLI) Config() config.Config {
	return c.cfg
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Bracketmaker generates double-elimination brackets for the tournament ladder editor",
		Long: `Bracketmaker generates the match and progression layout of a double-elimination
bracket for a power-of-two number of teams, and imports team rosters from sign-up
sheets, writing the bracket.json the ladder editor reads.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (TOML, default $"+envConfig+")")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.teamsCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// cliEnv holds the environment settings the CLI reads before any command runs.
type cliEnv struct {
	ConfigPath string `env:"BRACKETMAKER_CONFIG"`
}

// loadConfig reads the config file named by --config or the environment.
func (c *CLI) loadConfig() error {
	path := c.configPath
	if path == "" {
		var e cliEnv
		if err := config.ParseEnv(&e); err != nil {
			return bmerrors.Wrap(bmerrors.ErrCodeInvalidConfig, err, "environment")
		}
		path = e.ConfigPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return bmerrors.Wrap(bmerrors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	c.cfg = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the per-user cache directory (~/.cache/bracketmaker/ on Linux).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}
