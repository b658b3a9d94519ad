package mcp

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/searxng/searxng-mcp-server/internal/protocol"
)

// ProtocolVersion is the MCP protocol revision this server speaks.
const ProtocolVersion = "2024-11-05"

// ServerInfo identifies this server to clients.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Server routes MCP JSON-RPC requests against a toolbox. It is
// transport-agnostic: plain request in, plain response out, no I/O.
type Server struct {
	toolbox *Toolbox
	info    ServerInfo
	log     *logrus.Entry
}

// NewServer wires a toolbox into an MCP server.
func NewServer(tb *Toolbox, info ServerInfo, log *logrus.Entry) *Server {
	return &Server{toolbox: tb, info: info, log: log}
}

// Info returns the advertised server identity.
func (s *Server) Info() ServerInfo {
	return s.info
}

// Handle routes a single request.
func (s *Server) Handle(ctx context.Context, req protocol.Request) protocol.Response {
	id := normalizeID(req.ID)

	if req.JSONRPC != "" && req.JSONRPC != "2.0" {
		return protocol.Response{JSONRPC: "2.0", ID: id, Error: &protocol.ResponseError{Code: -32600, Message: "invalid jsonrpc version"}}
	}

	switch req.Method {
	case "initialize":
		return protocol.Response{JSONRPC: "2.0", ID: id, Result: map[string]any{
			"protocolVersion": ProtocolVersion,
			"serverInfo":      s.info,
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
		}}
	case "tools/list":
		return protocol.Response{JSONRPC: "2.0", ID: id, Result: protocol.ListResult{Tools: s.toolbox.Describe()}}
	case "tools/call":
		var params protocol.CallParams
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &params); err != nil {
				return protocol.Response{JSONRPC: "2.0", ID: id, Error: &protocol.ResponseError{Code: -32602, Message: "invalid params"}}
			}
		}
		s.log.WithField("tool", params.Name).Info("tool call")
		result := s.toolbox.Call(ctx, params.Name, params.Args)
		return protocol.Response{JSONRPC: "2.0", ID: id, Result: result}
	case "notifications/initialized":
		return protocol.Response{JSONRPC: "2.0", ID: id, Result: map[string]any{}}
	default:
		return protocol.Response{JSONRPC: "2.0", ID: id, Error: &protocol.ResponseError{Code: -32601, Message: "method not found: " + req.Method}}
	}
}

// normalizeID echoes the request id, generating one when the request
// carried none.
func normalizeID(id any) any {
	if id == nil {
		return uuid.NewString()
	}
	return id
}
