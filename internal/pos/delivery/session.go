package delivery

import (
	"sync"

	"github.com/Nhlapo2003/wings-Application/internal/pos/client"
	"github.com/Nhlapo2003/wings-Application/internal/pos/engine"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Session is one operator's terminal state. The mutex serializes the
// engine: every UI event is applied read-compute-replace, one at a
// time, exactly like the single-threaded front end it replaces.
type Session struct {
	ID     string
	Engine *engine.Engine

	mu sync.Mutex
}

func (s *Session) Do(fn func(*engine.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.Engine)
}

type SessionManager struct {
	backend client.Backend
	log     *logrus.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionManager(backend client.Backend, logger *logrus.Logger) *SessionManager {
	return &SessionManager{
		backend:  backend,
		log:      logger,
		sessions: map[string]*Session{},
	}
}

func (m *SessionManager) Create() *Session {
	session := &Session{
		ID:     uuid.NewString(),
		Engine: engine.New(m.backend, m.log),
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	m.log.Infof("Session created: %s", session.ID)
	return session
}

func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	return session, ok
}

func (m *SessionManager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	m.log.Infof("Session closed: %s", id)
	return true
}
