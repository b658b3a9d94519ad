package tools

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/searxng/searxng-mcp-server/internal/protocol"
	"github.com/searxng/searxng-mcp-server/internal/searx"
)

// newsSearchTool searches the SearXNG news category.
type newsSearchTool struct {
	backend    *searx.Client
	defaultMax int
}

// NewsSearch constructs the news_search tool.
func NewsSearch(backend *searx.Client, defaultMax int) *newsSearchTool {
	return &newsSearchTool{backend: backend, defaultMax: defaultMax}
}

func (t *newsSearchTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name: "news_search",
		Description: "Searches recent news via SearXNG. Shortcut for the 'news' category. " +
			"Returns titles, URLs, dates and sources.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"query": {Type: "string", Description: "News search term"},
				"language": {
					Type:        "string",
					Description: "Language code (e.g. en, pt-BR). Optional.",
				},
				"time_range": {
					Type:        "string",
					Description: "Time filter: day, month, year. Optional.",
					Enum:        []any{"day", "month", "year"},
				},
				"pageno": {
					Type:        "integer",
					Description: "Result page number. Default: 1",
					Default:     1,
				},
				"max_results": {
					Type:        "integer",
					Description: "Maximum number of results. Default: 10",
					Default:     10,
				},
			},
			Required: []string{"query"},
		},
	}
}

type newsSearchArgs struct {
	Query      string `json:"query"`
	Language   string `json:"language"`
	TimeRange  string `json:"time_range"`
	Pageno     int    `json:"pageno"`
	MaxResults *int   `json:"max_results"`
}

func (t *newsSearchTool) Invoke(ctx context.Context, raw json.RawMessage) protocol.CallResult {
	var args newsSearchArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return protocol.ErrorResult("invalid arguments: " + err.Error())
		}
	}
	if args.Query == "" {
		return protocol.ErrorResult("parameter 'query' is required")
	}

	params := url.Values{}
	params.Set("q", args.Query)
	params.Set("categories", "news")
	if args.Language != "" {
		params.Set("language", args.Language)
	}
	if args.TimeRange != "" {
		params.Set("time_range", args.TimeRange)
	}
	if args.Pageno > 0 {
		params.Set("pageno", strconv.Itoa(args.Pageno))
	}

	maxResults := t.defaultMax
	if args.MaxResults != nil {
		maxResults = *args.MaxResults
	}

	data, err := t.backend.Search(ctx, params)
	if err != nil {
		return protocol.ErrorResult(err.Error())
	}
	return protocol.TextResult(searx.FormatSearchResults(data, args.Query, maxResults, true))
}
