package websocket

import (
	"log"
	"sync"

	"github.com/fasthttp/websocket"

	"github.com/KanishkSogani/VocaLearn/pkg/models"
)

// Registry is the concurrency-safe mapping from connection identity to quiz
// session. Each connection owns exactly one session; sessions are torn down
// independently when their connection goes away.
type Registry struct {
	mu       sync.RWMutex
	sessions map[*websocket.Conn]*models.Session
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[*websocket.Conn]*models.Session),
	}
}

// Register associates a session with its connection.
func (r *Registry) Register(conn *websocket.Conn, session *models.Session) {
	r.mu.Lock()
	r.sessions[conn] = session
	total := len(r.sessions)
	r.mu.Unlock()
	log.Printf("Quiz client connected (session %s). Active sessions: %d", session.ID, total)
}

// Unregister removes the connection's session. Safe to call for connections
// that were never registered.
func (r *Registry) Unregister(conn *websocket.Conn) {
	r.mu.Lock()
	session, ok := r.sessions[conn]
	if ok {
		delete(r.sessions, conn)
	}
	total := len(r.sessions)
	r.mu.Unlock()
	if ok {
		log.Printf("Quiz client disconnected (session %s). Active sessions: %d", session.ID, total)
	}
}

// Get returns the session for a connection, if any.
func (r *Registry) Get(conn *websocket.Conn) (*models.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[conn]
	return session, ok
}

// Count returns the number of active sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// SessionIDs returns the IDs of all active sessions.
func (r *Registry) SessionIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.sessions))
	for _, s := range r.sessions {
		ids = append(ids, s.ID)
	}
	return ids
}
