package mcp

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/searxng/searxng-mcp-server/internal/protocol"
)

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

// echoTool is a minimal tool requiring a query argument.
type echoTool struct{}

func (echoTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{Name: "echo", Description: "echoes the query"}
}

func (echoTool) Invoke(_ context.Context, raw json.RawMessage) protocol.CallResult {
	var args struct {
		Query string `json:"query"`
	}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &args)
	}
	if args.Query == "" {
		return protocol.ErrorResult("parameter 'query' is required")
	}
	return protocol.TextResult("echo: " + args.Query)
}

func newTestServer() *Server {
	return NewServer(NewToolbox(echoTool{}), ServerInfo{Name: "test-server", Version: "0.0.1"}, testLogger())
}

func TestHandleEchoesID(t *testing.T) {
	s := newTestServer()

	for _, method := range []string{"initialize", "tools/list", "notifications/initialized"} {
		resp := s.Handle(context.Background(), protocol.Request{JSONRPC: "2.0", ID: "req-1", Method: method})
		if resp.ID != "req-1" {
			t.Fatalf("%s: id not echoed, got %v", method, resp.ID)
		}
		if resp.Error != nil {
			t.Fatalf("%s: unexpected error %v", method, resp.Error)
		}
	}
}

func TestHandleGeneratesIDWhenAbsent(t *testing.T) {
	s := newTestServer()

	resp := s.Handle(context.Background(), protocol.Request{JSONRPC: "2.0", Method: "tools/list"})
	id, ok := resp.ID.(string)
	if !ok || id == "" {
		t.Fatalf("expected generated id, got %v", resp.ID)
	}
}

func TestHandleInitialize(t *testing.T) {
	s := newTestServer()

	resp := s.Handle(context.Background(), protocol.Request{ID: 1, Method: "initialize"})
	result, ok := resp.Result.(map[string]any)
	if !ok {
		t.Fatalf("unexpected result type: %T", resp.Result)
	}
	if result["protocolVersion"] != ProtocolVersion {
		t.Fatalf("protocolVersion: %v", result["protocolVersion"])
	}
	info, ok := result["serverInfo"].(ServerInfo)
	if !ok || info.Name != "test-server" || info.Version != "0.0.1" {
		t.Fatalf("serverInfo: %v", result["serverInfo"])
	}
	caps, ok := result["capabilities"].(map[string]any)
	if !ok {
		t.Fatalf("capabilities: %v", result["capabilities"])
	}
	if _, ok := caps["tools"]; !ok {
		t.Fatalf("tool capability not advertised: %v", caps)
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer()

	resp := s.Handle(context.Background(), protocol.Request{ID: 1, Method: "tools/list"})
	list, ok := resp.Result.(protocol.ListResult)
	if !ok {
		t.Fatalf("unexpected result type: %T", resp.Result)
	}
	if len(list.Tools) != 1 || list.Tools[0].Name != "echo" {
		t.Fatalf("unexpected tool list: %+v", list)
	}
}

func TestHandleToolsCall(t *testing.T) {
	s := newTestServer()

	resp := s.Handle(context.Background(), protocol.Request{
		ID:     7,
		Method: "tools/call",
		Params: json.RawMessage(`{"name":"echo","arguments":{"query":"hi"}}`),
	})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}
	result, ok := resp.Result.(protocol.CallResult)
	if !ok {
		t.Fatalf("unexpected result type: %T", resp.Result)
	}
	if result.IsError || result.Content[0].Text != "echo: hi" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestHandleToolsCallMissingArgument(t *testing.T) {
	s := newTestServer()

	resp := s.Handle(context.Background(), protocol.Request{
		ID:     8,
		Method: "tools/call",
		Params: json.RawMessage(`{"name":"echo","arguments":{}}`),
	})
	if resp.Error != nil {
		t.Fatalf("tool error must not be a protocol fault: %v", resp.Error)
	}
	result := resp.Result.(protocol.CallResult)
	if !result.IsError || len(result.Content) == 0 {
		t.Fatalf("expected error envelope: %+v", result)
	}
}

func TestHandleToolsCallUnknownTool(t *testing.T) {
	s := newTestServer()

	resp := s.Handle(context.Background(), protocol.Request{
		ID:     9,
		Method: "tools/call",
		Params: json.RawMessage(`{"name":"nope","arguments":{}}`),
	})
	if resp.Error != nil {
		t.Fatalf("unknown tool must not be a protocol fault: %v", resp.Error)
	}
	result := resp.Result.(protocol.CallResult)
	if !result.IsError || !strings.Contains(result.Content[0].Text, "nope") {
		t.Fatalf("expected error envelope naming the tool: %+v", result)
	}
}

func TestHandleToolsCallInvalidParams(t *testing.T) {
	s := newTestServer()

	resp := s.Handle(context.Background(), protocol.Request{
		ID:     10,
		Method: "tools/call",
		Params: json.RawMessage(`"not an object"`),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Fatalf("expected invalid params error, got %+v", resp)
	}
}

func TestHandleMethodNotFound(t *testing.T) {
	s := newTestServer()

	resp := s.Handle(context.Background(), protocol.Request{ID: 2, Method: "resources/list"})
	if resp.Result != nil {
		t.Fatalf("result must be absent on error: %v", resp.Result)
	}
	if resp.Error == nil || resp.Error.Code != -32601 {
		t.Fatalf("expected -32601, got %+v", resp.Error)
	}
	if !strings.Contains(resp.Error.Message, "resources/list") {
		t.Fatalf("error should name the method: %v", resp.Error.Message)
	}
}

func TestHandleRejectsWrongJSONRPCVersion(t *testing.T) {
	s := newTestServer()

	resp := s.Handle(context.Background(), protocol.Request{JSONRPC: "1.0", ID: 3, Method: "tools/list"})
	if resp.Error == nil || resp.Error.Code != -32600 {
		t.Fatalf("expected -32600, got %+v", resp.Error)
	}
}

func TestToolboxDescribeOrder(t *testing.T) {
	tb := NewToolbox(namedTool("b"), namedTool("a"), namedTool("c"))
	descs := tb.Describe()
	got := []string{descs[0].Name, descs[1].Name, descs[2].Name}
	want := []string{"b", "a", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("declaration order not preserved: %v", got)
		}
	}
}

type namedTool string

func (n namedTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{Name: string(n)}
}

func (n namedTool) Invoke(context.Context, json.RawMessage) protocol.CallResult {
	return protocol.TextResult(string(n))
}
