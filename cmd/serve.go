package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/clipmark/internal/cache"
	"github.com/gaurav-prasanna/clipmark/internal/server"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the paste-to-Markdown web service",
	Long: `Serve runs an HTTP service with a paste page at /, a POST /convert endpoint
and a /ws websocket for live conversion.

Configuration comes from CLIPMARK_* environment variables; conversions are
cached in Redis when CLIPMARK_REDIS_ADDR is set and in memory otherwise.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from CLIPMARK_HOST and CLIPMARK_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := newCache(ctx)
	if err != nil {
		return err
	}
	if closer, ok := c.(io.Closer); ok {
		defer closer.Close()
	}

	addr := flagAddr
	if addr == "" {
		addr = cfg.Addr()
	}

	srv := server.New(server.Options{MaxBody: cfg.MaxBody, Cache: c})
	return srv.ListenAndServe(ctx, addr)
}

// newCache picks Redis when an address is configured, else memory.
func newCache(ctx context.Context) (cache.Cache, error) {
	if cfg.RedisAddr == "" {
		slog.Info("using in-memory cache", "ttl", cfg.CacheTTL.String())
		return cache.NewMemory(cfg.CacheTTL, cache.DefaultMaxEntries), nil
	}

	client, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, fmt.Errorf("initializing cache: %w", err)
	}
	return cache.NewRedis(client, cfg.CacheTTL), nil
}
