package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/bitgraph-dev/bitgraph/internal/server"
	"github.com/bitgraph-dev/bitgraph/pkg/cache"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bitgraph HTTP API",
		Long: `Run the HTTP API for uploading, querying, scoring, and rendering
graphs. The cache backend is taken from the config file; use the redis
backend when running several replicas behind a load balancer.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				cch cache.Cache
				err error
			)
			switch c.Config.Cache.Backend {
			case "redis":
				// The ping comes back retryable, so a redis that is
				// still starting up gets a few chances before serve
				// gives up.
				err = cache.RetryWithBackoff(ctx, func() error {
					cch, err = cache.NewRedisCache(ctx, c.Config.Cache.RedisAddr)
					return err
				})
				if err != nil {
					return err
				}
				c.Logger.Info("using redis cache", "addr", c.Config.Cache.RedisAddr)
			default:
				cch = c.newCache(false)
			}
			defer cch.Close()

			srv := server.New(server.Config{
				Addr:     addr,
				CacheTTL: time.Duration(c.Config.Cache.TTLMinutes) * time.Minute,
			}, c.Logger, cch)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.Config.Server.Addr, "listen address")
	return cmd
}
