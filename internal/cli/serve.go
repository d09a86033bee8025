package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mermaidtools/drawbridge/internal/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string        // listen address
	redisURL string        // redis connection URL (caching disabled if empty)
	cacheTTL time.Duration // lifetime of cached responses
}

// newServeCmd creates the serve command for running the HTTP API.
//
// Conversions are cached in redis when --redis is set; without it the server
// runs with caching disabled.
func newServeCmd() *cobra.Command {
	opts := serveOpts{
		addr:     ":8080",
		cacheTTL: server.DefaultTTL,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cache := server.NewNullCache()
			if opts.redisURL != "" {
				c, err := server.NewRedisCache(cmd.Context(), opts.redisURL)
				if err != nil {
					return err
				}
				cache = c
				logger.Info("connected to redis")
			}

			srv := server.New(server.Config{
				Cache:  cache,
				TTL:    opts.cacheTTL,
				Logger: logger,
			})
			defer srv.Close()

			printInfo("Serving HTTP API on %s", opts.addr)
			return srv.Run(cmd.Context(), opts.addr)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "redis URL for response caching (e.g. redis://localhost:6379/0)")
	cmd.Flags().DurationVar(&opts.cacheTTL, "cache-ttl", opts.cacheTTL, "lifetime of cached responses")

	return cmd
}
