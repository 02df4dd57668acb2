package conversation

import "sync"

// Manager hands out one Store per conversation owner. Stores live for the
// duration of the process; durable persistence of turns belongs to the
// caller.
type Manager struct {
	mu        sync.Mutex
	capacity  int
	stores    map[string]*Store
	newTurnID func() string
}

func NewManager(capacity int, newTurnID func() string) *Manager {
	return &Manager{
		capacity:  capacity,
		stores:    make(map[string]*Store),
		newTurnID: newTurnID,
	}
}

// Get returns the store for ownerID, creating it on first use.
func (m *Manager) Get(ownerID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	store, ok := m.stores[ownerID]
	if !ok {
		store = NewStore(m.capacity, m.newTurnID)
		m.stores[ownerID] = store
	}
	return store
}
