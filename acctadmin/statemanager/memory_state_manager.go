package statemanager

import (
	"context"
	"sync"
)

// MemoryStateManager holds the snapshot in memory. It records how many
// times Save was called and can be primed to fail Load or Save.
type MemoryStateManager struct {
	mu      sync.Mutex
	data    []byte
	saved   bool
	saves   int
	LoadErr error
	SaveErr error
}

// NewMemoryStateManager returns a manager seeded with data. A nil seed
// behaves like a missing file.
func NewMemoryStateManager(seed []byte) *MemoryStateManager {
	m := &MemoryStateManager{}
	if seed != nil {
		m.data = append([]byte(nil), seed...)
		m.saved = true
	}
	return m
}

func (m *MemoryStateManager) Location() string {
	return "memory"
}

func (m *MemoryStateManager) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if !m.saved {
		return nil, ErrNoState
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemoryStateManager) Save(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.data = append([]byte(nil), data...)
	m.saved = true
	return nil
}

// Bytes returns a copy of the current snapshot.
func (m *MemoryStateManager) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}

// Saves reports how many times Save was called, including failed calls.
func (m *MemoryStateManager) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
