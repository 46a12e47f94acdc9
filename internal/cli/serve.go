package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/laserfinity/laserfinity/pkg/cache"
	"github.com/laserfinity/laserfinity/pkg/observability"
	"github.com/laserfinity/laserfinity/pkg/server"
)

type serveOpts struct {
	addr        string
	noCache     bool
	memoryCache int
	timeout     time.Duration
}

// serveCommand runs the HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: server.DefaultAddr, timeout: 30 * time.Second}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Render baseplate templates over HTTP",
		Long: `Start an HTTP server that renders templates on demand:

  GET /baseplate.svg?width=22.5&height=16.25
  GET /baseplate.png?width=420mm&height=300mm&profile=snug
  GET /profiles
  GET /stats
  GET /healthz

Rendered artifacts are cached on disk under the cache directory unless
--no-cache is set or --memory-cache selects an in-process cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cc, err := c.serveCache(ctx, opts)
			if err != nil {
				return err
			}
			defer cc.Close()

			runner, err := c.newRunner(cc)
			if err != nil {
				return err
			}

			counters := observability.NewCounters()
			observability.RegisterAll(counters)

			srv := server.New(runner, logger,
				server.WithAddr(opts.addr),
				server.WithTimeout(opts.timeout),
				server.WithStats(counters))
			c.ui().info("Serving on %s", StyleHighlight.Render(srv.Addr()))
			c.ui().detail("Profiles: %v", runner.Config.Names())
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().IntVar(&opts.memoryCache, "memory-cache", 0, "keep up to N artifacts in memory instead of on disk")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "per-request render timeout")
	return cmd
}

func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	switch {
	case opts.noCache:
		return cache.NewNullCache(), nil
	case opts.memoryCache > 0:
		return cache.NewMemoryCache(opts.memoryCache), nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	if n, err := fc.Prune(ctx); err != nil {
		c.Logger.Warn("cache prune failed", "error", err)
	} else {
		c.Logger.Debug("artifact cache", "dir", fc.Dir(), "pruned", n)
	}
	return fc, nil
}
