package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/searxng/searxng-mcp-server/internal/fetch"
	"github.com/searxng/searxng-mcp-server/internal/protocol"
)

const defaultMaxLength = 20000

// fetchPageTool retrieves a page and returns it as clean Markdown.
type fetchPageTool struct {
	fetcher *fetch.Fetcher
}

// FetchPageContent constructs the fetch_page_content tool.
func FetchPageContent(fetcher *fetch.Fetcher) *fetchPageTool {
	return &fetchPageTool{fetcher: fetcher}
}

func (t *fetchPageTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name: "fetch_page_content",
		Description: "Fetches the content of a URL and returns it as clean Markdown text. " +
			"Useful for reading pages found through searches. " +
			"Removes scripts, styles and other boilerplate elements.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"url": {Type: "string", Description: "URL of the page to read"},
				"max_length": {
					Type:        "integer",
					Description: "Maximum content length in characters. Default: 20000",
					Default:     defaultMaxLength,
				},
			},
			Required: []string{"url"},
		},
	}
}

type fetchPageArgs struct {
	URL       string `json:"url"`
	MaxLength int    `json:"max_length"`
}

func (t *fetchPageTool) Invoke(ctx context.Context, raw json.RawMessage) protocol.CallResult {
	var args fetchPageArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return protocol.ErrorResult("invalid arguments: " + err.Error())
		}
	}
	if args.URL == "" {
		return protocol.ErrorResult("parameter 'url' is required")
	}
	if args.MaxLength <= 0 {
		args.MaxLength = defaultMaxLength
	}

	content, err := t.fetcher.Page(ctx, args.URL, args.MaxLength)
	if err != nil {
		return protocol.ErrorResult(err.Error())
	}
	return protocol.TextResult(fmt.Sprintf("## Content from: %s\n\n%s", args.URL, content))
}
