package mcp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/searxng/searxng-mcp-server/internal/protocol"
	"github.com/searxng/searxng-mcp-server/internal/searx"
	"github.com/searxng/searxng-mcp-server/internal/version"
)

// defaultKeepAlive is how long the SSE delivery loop waits for a queued
// message before emitting a comment-only keep-alive frame.
const defaultKeepAlive = 30 * time.Second

// HTTPServer binds the MCP dispatcher to HTTP: a direct JSON-RPC endpoint,
// the SSE session transport, and a health probe against the backend.
type HTTPServer struct {
	server    *Server
	backend   *searx.Client
	sessions  *SessionRegistry
	log       *logrus.Entry
	keepAlive time.Duration
}

// NewHTTPServer wires the dispatcher and backend into an HTTP transport.
func NewHTTPServer(server *Server, backend *searx.Client, log *logrus.Entry) *HTTPServer {
	return &HTTPServer{
		server:    server,
		backend:   backend,
		sessions:  NewSessionRegistry(),
		log:       log,
		keepAlive: defaultKeepAlive,
	}
}

// Sessions exposes the SSE session registry.
func (h *HTTPServer) Sessions() *SessionRegistry {
	return h.sessions
}

// Router builds the HTTP surface: /health, /mcp, /sse, /messages.
func (h *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc:  func(r *http.Request, origin string) bool { return true },
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/health", h.handleHealth)
	r.Post("/mcp", h.handleMCP)
	r.Get("/sse", h.handleSSE)
	r.Post("/messages", h.handleMessages)
	return r
}

func (h *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	err := h.backend.Ping(r.Context())
	healthy := err == nil

	status := "ok"
	code := http.StatusOK
	if !healthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]any{
		"status":            status,
		"server":            h.server.Info(),
		"build":             version.Get(),
		"searxng_url":       h.backend.BaseURL(),
		"searxng_reachable": healthy,
		"timestamp":         time.Now().UTC().Format(time.RFC3339),
	})
}

// handleMCP serves one JSON-RPC call per HTTP request.
func (h *HTTPServer) handleMCP(w http.ResponseWriter, r *http.Request) {
	var req protocol.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, protocol.Response{
			JSONRPC: "2.0",
			Error:   &protocol.ResponseError{Code: -32700, Message: "parse error"},
		})
		return
	}
	writeJSON(w, http.StatusOK, h.server.Handle(r.Context(), req))
}

// handleSSE opens a session stream: it registers a fresh session, tells the
// client where to POST, then drains the session queue until the client
// disconnects. Idle periods produce comment-only keep-alive frames.
func (h *HTTPServer) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	sess := h.sessions.open()
	defer h.sessions.close(sess.id)

	log := h.log.WithField("session", sess.id)
	log.Info("SSE session opened")
	defer log.Info("SSE session closed")

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if _, err := fmt.Fprintf(w, "event: endpoint\ndata: /messages?sessionId=%s\n\n", sess.id); err != nil {
		return
	}
	flusher.Flush()

	ctx := r.Context()
	for {
		for {
			resp, ok := sess.pop()
			if !ok {
				break
			}
			data, err := json.Marshal(resp)
			if err != nil {
				log.WithError(err).Warn("dropping unencodable response")
				continue
			}
			if _, err := fmt.Fprintf(w, "event: message\ndata: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		}

		select {
		case <-ctx.Done():
			return
		case <-sess.wake:
		case <-time.After(h.keepAlive):
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// handleMessages accepts a JSON-RPC call for an open SSE session. The call
// is dispatched synchronously and its response queued for the session's
// stream; the 202 acknowledges the submission, not the delivery.
func (h *HTTPServer) handleMessages(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	sess, ok := h.sessions.get(sessionID)
	if sessionID == "" || !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "SSE session not found. Connect to GET /sse first",
		})
		return
	}

	var req protocol.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, protocol.Response{
			JSONRPC: "2.0",
			Error:   &protocol.ResponseError{Code: -32700, Message: "parse error"},
		})
		return
	}

	sess.push(h.server.Handle(r.Context(), req))
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}
