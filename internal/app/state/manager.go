package state

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/nchoi/atelier-backend/internal/app/model"
	"github.com/nchoi/atelier-backend/pkg/kv"
	"github.com/nchoi/atelier-backend/pkg/logger"
	"github.com/nchoi/atelier-backend/pkg/util"
)

// Manager owns the session state stores, hydrating each from its
// key-value slot on first touch.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	store      kv.Store
	newOrderID util.IDGenerator
	now        func() time.Time
}

// Option customizes a Manager; used by tests to pin the order id
// generator and the clock.
type Option func(*Manager)

func WithOrderIDGenerator(gen util.IDGenerator) Option {
	return func(m *Manager) { m.newOrderID = gen }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(store kv.Store, opts ...Option) *Manager {
	m := &Manager{
		sessions:   make(map[string]*Session),
		store:      store,
		newOrderID: util.NewOrderID,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Session returns the state store for a session id, loading the persisted
// snapshot if one exists and starting fresh otherwise.
func (m *Manager) Session(sessionID string) *Session {
	m.mu.RLock()
	session, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if ok {
		return session
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[sessionID]; ok {
		return session
	}

	session = &Session{
		id:         sessionID,
		store:      m.store,
		newOrderID: m.newOrderID,
		now:        m.now,
	}
	m.hydrate(session)
	m.sessions[sessionID] = session
	return session
}

func (m *Manager) hydrate(session *Session) {
	data, err := m.store.Get(Namespace + ":" + session.id)
	if errors.Is(err, kv.ErrNotFound) {
		return
	}
	if err != nil {
		logger.Error("Failed to load session snapshot, starting fresh", err, map[string]interface{}{
			"session_id": session.id,
		})
		return
	}

	var snapshot model.SessionSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		logger.Error("Failed to decode session snapshot, starting fresh", err, map[string]interface{}{
			"session_id": session.id,
		})
		return
	}
	session.data = snapshot

	logger.Debug("Session snapshot hydrated", map[string]interface{}{
		"session_id":  session.id,
		"cart_lines":  len(snapshot.CartItems),
		"order_count": len(snapshot.Orders),
	})
}

// SessionIDs lists every session with a persisted snapshot, loaded or not.
func (m *Manager) SessionIDs() ([]string, error) {
	keys, err := m.store.Keys(Namespace + ":")
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, strings.TrimPrefix(key, Namespace+":"))
	}
	return ids, nil
}
