package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/refgraph/internal/server"
	"github.com/matzehuels/refgraph/pkg/cache"
	"github.com/matzehuels/refgraph/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the graph API over HTTP",
		Long: `Serve the graph API over HTTP.

Stored graphs are exposed under /api/graphs with endpoints for upload,
listing, reachability, components, stats, and rendering. The store and
cache backends follow REFGRAPH_MONGO_URI and REFGRAPH_REDIS_URL; both
default to local files.

The server runs until interrupted and shuts down gracefully.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")

	return cmd
}

// runServe wires the store and cache backends, waits for remote ones to
// come up, and runs the server until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	st, err := newStore(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	cc, err := newCache(noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}

	if err := pingBackends(ctx, st, cc); err != nil {
		return err
	}

	srv := server.New(server.Config{
		Addr:   addr,
		Store:  st,
		Cache:  cc,
		Logger: c.Logger,
	})

	printInfo("Serving on %s", StyleHighlight.Render(addr))
	return srv.ListenAndServe(ctx)
}

// pingBackends waits for remote backends with a short retry loop so the
// server does not come up pointing at dead dependencies.
func pingBackends(ctx context.Context, st store.Store, cc cache.Cache) error {
	logger := loggerFromContext(ctx)

	if ms, ok := st.(*store.MongoStore); ok {
		logger.Debug("pinging mongodb")
		err := cache.RetryWithBackoff(ctx, func() error {
			return cache.Retryable(ms.Ping(ctx))
		})
		if err != nil {
			return fmt.Errorf("mongodb not reachable: %w", err)
		}
	}
	if rc, ok := cc.(*cache.RedisCache); ok {
		logger.Debug("pinging redis")
		err := cache.RetryWithBackoff(ctx, func() error {
			return cache.Retryable(rc.Ping(ctx))
		})
		if err != nil {
			return fmt.Errorf("redis not reachable: %w", err)
		}
	}
	return nil
}
