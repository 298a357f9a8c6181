// Package cli implements the mekko command-line interface.
package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mekko/internal/config"
	"github.com/matzehuels/mekko/pkg/buildinfo"
	"github.com/matzehuels/mekko/pkg/cache"
	"github.com/matzehuels/mekko/pkg/dataset"
	"github.com/matzehuels/mekko/pkg/httputil"
	"github.com/matzehuels/mekko/pkg/observability"
	"github.com/matzehuels/mekko/pkg/pipeline"
)

const appName = "mekko"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool

	cfgOnce sync.Once
	cfg     *config.Config
	cfgErr  error
}

// New creates a CLI writing logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Mekko lays out variable-width stacked column charts",
		Long: `Mekko turns categorical datasets into Marimekko chart layouts: columns whose
widths follow one measure and whose stacked segments follow another.

Datasets are read from CSV or TSV (long format), JSON or TOML files, or http(s) URLs.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				observability.NewLogHooks(c.Logger).Register()
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/mekko/config.toml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// config loads the configuration once per process.
func (c *CLI) config() (*config.Config, error) {
	c.cfgOnce.Do(func() {
		c.cfg, c.cfgErr = config.Load(c.configPath)
	})
	return c.cfg, c.cfgErr
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	store := cache.NewNullCache()
	if !noCache {
		if store, err = cfg.OpenCache(ctx); err != nil {
			return nil, err
		}
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// fetcher returns an HTTP client sharing the runner's cache for remote
// dataset sources.
func fetcher(r *pipeline.Runner) *httputil.Client {
	return httputil.NewClient(r.Cache, nil, httputil.WithKeyer(r.Keyer))
}

// parseFormats parses a comma-separated format string. Empty input yields
// nil so configured defaults apply.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// basePath derives the output base path. Without output it strips the
// input's extension; with one it strips a known format extension.
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		if strings.Contains(base, "://") {
			base = filepath.Base(base)
		}
		return base
	}
	ext := filepath.Ext(output)
	for _, f := range dataset.Formats {
		if strings.EqualFold(strings.TrimPrefix(ext, "."), f) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}
