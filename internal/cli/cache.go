package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mekko/internal/config"
	"github.com/matzehuels/mekko/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local layout and artifact cache",
	}
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached dataset, layout and artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := c.fileCache(cmd.Context())
			if err != nil {
				return err
			}
			if fc == nil {
				return nil
			}
			n, err := fc.Clear()
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if n == 0 {
				printInfo("Cache is empty")
			} else {
				printSuccess("Cleared %d cached entries", n)
			}
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := c.fileCache(cmd.Context())
			if err != nil || fc == nil {
				return err
			}
			fmt.Println(fc.Dir())
			return nil
		},
	}
}

// fileCache opens the file cache, or warns and returns nil when another
// backend is configured.
func (c *CLI) fileCache(ctx context.Context) (*cache.FileCache, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	if cfg.Cache.Backend != config.BackendFile {
		printWarning("cache backend is %q; only the file cache is managed locally", cfg.Cache.Backend)
		return nil, nil
	}
	store, err := cfg.OpenCache(ctx)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	fc, ok := store.(*cache.FileCache)
	if !ok {
		return nil, fmt.Errorf("cache directory unavailable")
	}
	return fc, nil
}
