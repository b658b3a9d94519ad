package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/searxng/searxng-mcp-server/internal/app"
	"github.com/searxng/searxng-mcp-server/internal/config"
	"github.com/searxng/searxng-mcp-server/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	addr := flag.String("addr", cfg.ListenAddr(), "HTTP listen address (e.g., :8091)")
	flag.Parse()

	log := logging.New("mcp-server", cfg.LogLevel)

	httpServer := app.NewHTTPServer(cfg, log)
	srv := &http.Server{Addr: *addr, Handler: httpServer.Router()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("MCP SearXNG server listening on %s (SearXNG at %s)", *addr, cfg.SearxngURL)
		log.Info("endpoints: /health, /mcp, /sse, /messages")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
