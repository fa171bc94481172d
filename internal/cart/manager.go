package cart

import (
	"sync"

	"konaseema-kart/internal/storage"

	"github.com/rs/zerolog"
)

// Manager hands out one Store per session key so the HTTP layer can keep a
// cart per customer session.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store
	port   storage.Port
	logger zerolog.Logger
}

// NewManager creates a cart manager over the given storage port.
func NewManager(port storage.Port, logger zerolog.Logger) *Manager {
	return &Manager{
		stores: make(map[string]*Store),
		port:   port,
		logger: logger,
	}
}

// Get returns the cart for the session, creating it (and restoring any
// persisted snapshot) on first use.
func (m *Manager) Get(session string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[session]; ok {
		return s
	}
	s := NewStore(m.port, StorageKeyPrefix+":"+session, m.logger)
	m.stores[session] = s
	return s
}
