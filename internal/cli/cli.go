package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jugglesearch/pkg/buildinfo"
	"github.com/matzehuels/jugglesearch/pkg/cache"
	"github.com/matzehuels/jugglesearch/pkg/observability"
	"github.com/matzehuels/jugglesearch/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "jugglesearch"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	// configPath overrides the default config file location.
	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Search juggling patterns and transitions in siteswap notation",
		Long: `jugglesearch enumerates juggling patterns by walking the state graph of
siteswap notation, and finds the shortest transitions between two patterns.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/jugglesearch/config.toml)")

	root.AddCommand(c.genCommand())
	root.AddCommand(c.transCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file, registers the logging hooks and attaches
// the logger to the command context.
func (c *CLI) setup(cmd *cobra.Command) error {
	path := c.configPath
	if path == "" {
		p, err := configFile()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		cfg, err := LoadConfig(path)
		if err != nil {
			return err
		}
		c.Config = cfg
	}

	c.applyVerbose()
	observability.SetSearchHooks(logHooks{c.Logger})
	observability.SetCacheHooks(logHooks{c.Logger})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

func (c *CLI) applyVerbose() {
	if c.verbose {
		c.SetLogLevel(LogDebug)
	}
}

// runnerOptions are the per-command cache switches.
type runnerOptions struct {
	noCache bool
	refresh bool
}

// newRunner creates a pipeline runner on the configured cache backend.
func (c *CLI) newRunner(ctx context.Context, opts runnerOptions) *pipeline.Runner {
	cc := cache.NewNullCache()
	if !opts.noCache {
		var err error
		if cc, err = c.openCache(ctx); err != nil {
			c.Logger.Warn("cache unavailable, continuing without", "backend", c.Config.Cache.Backend, "err", err)
			cc = cache.NewNullCache()
		}
	}
	r := pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, c.Config.Cache.Prefix), c.Logger)
	r.Refresh = opts.refresh
	return r
}

// openCache opens the backend named in the config.
func (c *CLI) openCache(ctx context.Context) (cache.Cache, error) {
	cfg := c.Config.Cache
	switch cfg.Backend {
	case "", CacheFile:
		dir, err := c.cacheDir()
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	case CacheBolt:
		dir, err := c.cacheDir()
		if err != nil {
			return nil, err
		}
		return cache.NewBoltCache(filepath.Join(dir, "results.db"))
	case CacheRedis:
		return cache.NewRedisCache(ctx, cfg.Addr, cfg.Prefix)
	case CacheNone:
		return cache.NewNullCache(), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}

// cacheDir returns the configured cache directory or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/jugglesearch/).
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

// configFile returns the config file path using XDG standard
// (~/.config/jugglesearch/config.toml).
func configFile() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
