package tools

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/searxng/searxng-mcp-server/internal/protocol"
	"github.com/searxng/searxng-mcp-server/internal/searx"
)

// imagesSearchTool searches the SearXNG images category.
type imagesSearchTool struct {
	backend    *searx.Client
	defaultMax int
}

// ImagesSearch constructs the images_search tool.
func ImagesSearch(backend *searx.Client, defaultMax int) *imagesSearchTool {
	return &imagesSearchTool{backend: backend, defaultMax: defaultMax}
}

func (t *imagesSearchTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name: "images_search",
		Description: "Searches the web for images via SearXNG. " +
			"Returns image URLs, thumbnails, titles and sources.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"query": {Type: "string", Description: "Image search term"},
				"engines": {
					Type:        "string",
					Description: "Specific engines (e.g. google images, bing images). Optional.",
				},
				"language": {
					Type:        "string",
					Description: "Language code. Optional.",
				},
				"safesearch": {
					Type:        "integer",
					Description: "SafeSearch level: 0, 1, 2. Default: 1",
					Enum:        []any{0, 1, 2},
					Default:     1,
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

type imagesSearchArgs struct {
	Query      string `json:"query"`
	Engines    string `json:"engines"`
	Language   string `json:"language"`
	Safesearch *int   `json:"safesearch"`
	Pageno     int    `json:"pageno"`
	MaxResults *int   `json:"max_results"`
}

func (t *imagesSearchTool) Invoke(ctx context.Context, raw json.RawMessage) protocol.CallResult {
	var args imagesSearchArgs
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
	params.Set("categories", "images")
	if args.Engines != "" {
		params.Set("engines", args.Engines)
	}
	if args.Language != "" {
		params.Set("language", args.Language)
	}
	if args.Safesearch != nil {
		params.Set("safesearch", strconv.Itoa(*args.Safesearch))
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
	return protocol.TextResult(searx.FormatImageResults(data, args.Query, maxResults))
}
