package mcp

import (
	"sync"

	"github.com/google/uuid"

	"github.com/searxng/searxng-mcp-server/internal/protocol"
)

// session is one open SSE connection's identity and its outbound queue.
// The queue is an unbounded FIFO: pushes never block, so submission
// acknowledgements are independent of stream delivery.
type session struct {
	id string

	mu      sync.Mutex
	pending []protocol.Response

	// wake is 1-buffered; a push while a signal is already pending is a
	// no-op, the drain loop empties the whole queue on each wakeup.
	wake chan struct{}
}

func (s *session) push(resp protocol.Response) {
	s.mu.Lock()
	s.pending = append(s.pending, resp)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *session) pop() (protocol.Response, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return protocol.Response{}, false
	}
	resp := s.pending[0]
	s.pending = s.pending[1:]
	return resp, true
}

// SessionRegistry tracks open SSE sessions by id. The SSE stream handler
// owns creation and removal; the submission endpoint only looks up.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*session
}

// NewSessionRegistry builds an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*session)}
}

func (r *SessionRegistry) open() *session {
	sess := &session{
		id:   uuid.NewString(),
		wake: make(chan struct{}, 1),
	}
	r.mu.Lock()
	r.sessions[sess.id] = sess
	r.mu.Unlock()
	return sess
}

func (r *SessionRegistry) close(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

func (r *SessionRegistry) get(id string) (*session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	return sess, ok
}

// Enqueue appends a response to the named session's queue. It reports
// false when the session is not registered; sessions are never created
// implicitly.
func (r *SessionRegistry) Enqueue(id string, resp protocol.Response) bool {
	sess, ok := r.get(id)
	if !ok {
		return false
	}
	sess.push(resp)
	return true
}

// Len reports the number of open sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
