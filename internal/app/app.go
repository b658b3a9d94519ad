package app

import (
	"github.com/sirupsen/logrus"

	"github.com/searxng/searxng-mcp-server/internal/config"
	"github.com/searxng/searxng-mcp-server/internal/fetch"
	"github.com/searxng/searxng-mcp-server/internal/mcp"
	"github.com/searxng/searxng-mcp-server/internal/searx"
	"github.com/searxng/searxng-mcp-server/internal/tools"
)

// NewToolbox builds the SearXNG toolbox against the given backend client.
func NewToolbox(cfg config.Config, backend *searx.Client) *mcp.Toolbox {
	fetcher := fetch.New(cfg.RequestTimeout)
	return mcp.NewToolbox(
		tools.WebSearch(backend, cfg.DefaultMaxResults),
		tools.NewsSearch(backend, cfg.DefaultMaxResults),
		tools.ImagesSearch(backend, cfg.DefaultMaxResults),
		tools.FetchPageContent(fetcher),
	)
}

// NewServer constructs the MCP dispatcher with the shared toolbox.
func NewServer(cfg config.Config, log *logrus.Entry) *mcp.Server {
	backend := searx.NewClient(cfg.SearxngURL, cfg.RequestTimeout, log)
	return mcp.NewServer(NewToolbox(cfg, backend), mcp.ServerInfo{
		Name:    cfg.ServerName,
		Version: cfg.ServerVersion,
	}, log)
}

// NewHTTPServer constructs the HTTP/SSE transport around the dispatcher.
func NewHTTPServer(cfg config.Config, log *logrus.Entry) *mcp.HTTPServer {
	backend := searx.NewClient(cfg.SearxngURL, cfg.RequestTimeout, log)
	server := mcp.NewServer(NewToolbox(cfg, backend), mcp.ServerInfo{
		Name:    cfg.ServerName,
		Version: cfg.ServerVersion,
	}, log)
	return mcp.NewHTTPServer(server, backend, log)
}
