package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/talentmap/internal/server"
	"github.com/matzehuels/talentmap/pkg/cache"
	"github.com/matzehuels/talentmap/pkg/integrations/talentmap"
	"github.com/matzehuels/talentmap/pkg/metrics"
	"github.com/matzehuels/talentmap/pkg/pipeline"
)

// serveCommand runs the HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		noMetrics bool
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the talent map over HTTP",
		Long: `Serve renders and ranked lists over HTTP.

Snapshots and rendered maps are cached in Redis when --redis (or
TALENTMAP_REDIS_ADDR) is set, and in the local cache directory otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			if redisAddr == "" {
				redisAddr = cfg.Server.RedisAddr
			}
			return c.runServe(cmd.Context(), addr, redisAddr, noCache, !noMetrics)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, localhost:8080)")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address or redis:// URL for the shared cache")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable /metrics and request metrics")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisAddr string, noCache, withMetrics bool) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}

	backend, err := c.serverCache(ctx, redisAddr, noCache)
	if err != nil {
		return err
	}

	p, err := cfg.BuildPalette()
	if err != nil {
		backend.Close()
		return err
	}
	var m *metrics.Manager
	if withMetrics {
		m = metrics.NewManager(metrics.WithRuntimeCollectors(), metrics.WithCategories(p.Categories()...))
		m.Register()
	}
	backend = cache.WithHooks(backend)

	clientOpts, err := cfg.ClientOptions()
	if err != nil {
		backend.Close()
		return err
	}
	runner := pipeline.NewRunner(talentmap.NewClient(backend, clientOpts), backend, nil, c.Logger)
	defer runner.Close()

	defaults, err := c.baseOptions()
	if err != nil {
		return err
	}

	srv := server.New(server.Options{
		Runner:   runner,
		Defaults: defaults,
		Metrics:  m,
		Logger:   c.Logger,
		AllLabel: c.allLabel(),
	})
	printInfo("Serving talent map on %s", StyleHighlight.Render("http://"+addr))
	printDetail("API: %s", clientOpts.BaseURL)
	return srv.ListenAndServe(ctx, addr)
}

// serverCache picks Redis when configured, else the local file cache.
func (c *CLI) serverCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, redisAddr)
		if err != nil {
			return nil, err
		}
		c.Logger.Info("using redis cache", "addr", redisAddr)
		return rc, nil
	}
	return newCache(false)
}
