package session

import (
	"sync"

	"github.com/FACorreiaa/go-edudash/internal/app/models"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps the session in process memory. It does not survive a
// restart.
type MemoryStore struct {
	mu      sync.RWMutex
	session models.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(token string, role models.Role) error {
	if err := validate(token, role); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = models.Session{Token: token, Role: role}
	return nil
}

func (m *MemoryStore) Read() models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = models.Session{}
	return nil
}
