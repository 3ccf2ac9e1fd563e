package cart

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Manager hands out the cart store for a session, creating it on first use
// against the slot the factory binds to that session. The web layer only
// ever sees stores obtained here; it never constructs or mutates carts on
// its own.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store
	slots  SlotFactory
	log    logrus.FieldLogger
}

func NewManager(slots SlotFactory, log logrus.FieldLogger) *Manager {
	return &Manager{
		stores: make(map[string]*Store),
		slots:  slots,
		log:    log,
	}
}

// Store returns the session's cart store, restoring it from its slot the
// first time the session shows up.
func (m *Manager) Store(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[sessionID]; ok {
		return s
	}
	s := NewStore(ctx, m.slots(sessionID), m.log.WithField("session", sessionID))
	m.stores[sessionID] = s
	return s
}
