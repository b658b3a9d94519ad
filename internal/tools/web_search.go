package tools

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/searxng/searxng-mcp-server/internal/protocol"
	"github.com/searxng/searxng-mcp-server/internal/searx"
)

// webSearchTool performs a general web search via SearXNG.
type webSearchTool struct {
	backend    *searx.Client
	defaultMax int
}

// WebSearch constructs the web_search tool.
func WebSearch(backend *searx.Client, defaultMax int) *webSearchTool {
	return &webSearchTool{backend: backend, defaultMax: defaultMax}
}

func (t *webSearchTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name: "web_search",
		Description: "Performs a general web search using SearXNG (a metasearch engine aggregating " +
			"results from Google, Bing, DuckDuckGo, Brave, etc). " +
			"Returns titles, URLs, snippets and source engines.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"query": {Type: "string", Description: "Search term"},
				"categories": {
					Type:        "string",
					Description: "Comma-separated categories (e.g. general, it, science, social media). Default: general",
					Default:     "general",
				},
				"engines": {
					Type:        "string",
					Description: "Specific engines, comma-separated (e.g. google,bing,duckduckgo). Optional.",
				},
				"language": {
					Type:        "string",
					Description: "Language code (e.g. en, pt-BR, es). Optional.",
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
				"safesearch": {
					Type:        "integer",
					Description: "SafeSearch level: 0 (off), 1 (moderate), 2 (strict). Default: 0",
					Enum:        []any{0, 1, 2},
					Default:     0,
				},
				"max_results": {
					Type:        "integer",
					Description: "Maximum number of results to return. Default: 10",
					Default:     10,
				},
			},
			Required: []string{"query"},
		},
	}
}

type webSearchArgs struct {
	Query      string `json:"query"`
	Categories string `json:"categories"`
	Engines    string `json:"engines"`
	Language   string `json:"language"`
	TimeRange  string `json:"time_range"`
	Pageno     int    `json:"pageno"`
	Safesearch *int   `json:"safesearch"`
	MaxResults *int   `json:"max_results"`
}

func (t *webSearchTool) Invoke(ctx context.Context, raw json.RawMessage) protocol.CallResult {
	var args webSearchArgs
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
	// Empty string means "use default", not an empty passthrough.
	if args.Categories != "" {
		params.Set("categories", args.Categories)
	} else {
		params.Set("categories", "general")
	}
	if args.Engines != "" {
		params.Set("engines", args.Engines)
	}
	if args.Language != "" {
		params.Set("language", args.Language)
	}
	if args.TimeRange != "" {
		params.Set("time_range", args.TimeRange)
	}
	if args.Pageno > 0 {
		params.Set("pageno", strconv.Itoa(args.Pageno))
	}
	if args.Safesearch != nil {
		params.Set("safesearch", strconv.Itoa(*args.Safesearch))
	}

	maxResults := t.defaultMax
	if args.MaxResults != nil {
		maxResults = *args.MaxResults
	}

	data, err := t.backend.Search(ctx, params)
	if err != nil {
		return protocol.ErrorResult(err.Error())
	}
	return protocol.TextResult(searx.FormatSearchResults(data, args.Query, maxResults, false))
}
