package mcp

import (
	"context"
	"encoding/json"

	"github.com/searxng/searxng-mcp-server/internal/protocol"
)

// Tool defines the behavior of a single MCP tool. Invoke never fails at the
// protocol level; failures are carried inside the returned envelope.
type Tool interface {
	Descriptor() protocol.ToolDescriptor
	Invoke(ctx context.Context, raw json.RawMessage) protocol.CallResult
}

// Toolbox stores and dispatches tools by name. It is built once at startup
// and read-only afterwards.
type Toolbox struct {
	tools map[string]Tool
	order []string
}

// NewToolbox constructs a toolbox with the provided tools, preserving
// declaration order for listings.
func NewToolbox(tools ...Tool) *Toolbox {
	m := make(map[string]Tool, len(tools))
	order := make([]string, 0, len(tools))
	for _, t := range tools {
		desc := t.Descriptor()
		if _, dup := m[desc.Name]; !dup {
			order = append(order, desc.Name)
		}
		m[desc.Name] = t
	}
	return &Toolbox{tools: m, order: order}
}

// Describe returns all tool descriptors in declaration order.
func (tb *Toolbox) Describe() []protocol.ToolDescriptor {
	list := make([]protocol.ToolDescriptor, 0, len(tb.order))
	for _, name := range tb.order {
		list = append(list, tb.tools[name].Descriptor())
	}
	return list
}

// Call invokes a named tool. An unknown name is a tool error, not a
// protocol fault.
func (tb *Toolbox) Call(ctx context.Context, name string, args json.RawMessage) protocol.CallResult {
	tool, ok := tb.tools[name]
	if !ok {
		return protocol.ErrorResult("unknown tool: " + name)
	}
	return tool.Invoke(ctx, args)
}
