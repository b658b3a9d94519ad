package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/searxng/searxng-mcp-server/internal/app"
	"github.com/searxng/searxng-mcp-server/internal/config"
	"github.com/searxng/searxng-mcp-server/internal/logging"
	"github.com/searxng/searxng-mcp-server/internal/mcp"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	// Logs go to stderr; stdout carries only framed MCP messages.
	log := logging.New("mcp-stdio", cfg.LogLevel)

	server := app.NewServer(cfg, log)

	log.Info("MCP SearXNG stdio server started")
	if err := mcp.RunStdio(context.Background(), server, os.Stdin, os.Stdout, log); err != nil {
		log.Fatalf("stdio server error: %v", err)
	}
	log.Info("MCP SearXNG stdio server stopped")
}
