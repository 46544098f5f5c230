package mocks

import (
	"context"
	"sync"

	"github.com/example/fpv-storefront/internal/infrastructure/store"
)

// MockSlotStore is an in-memory SlotStore with injectable failures
type MockSlotStore struct {
	mu   sync.Mutex
	data map[string][]byte

	SaveCalls []SaveCall
	LoadErr   error
	SaveErr   error
}

// SaveCall records one Save
type SaveCall struct {
	Namespace string
	Key       string
	Data      []byte
}

// NewMockSlotStore creates a new MockSlotStore
func NewMockSlotStore() *MockSlotStore {
	return &MockSlotStore{data: make(map[string][]byte)}
}

// Slot returns a slot bound to namespace/key
func (m *MockSlotStore) Slot(namespace, key string) store.Slot {
	return store.SlotFunc{
		LoadFunc: func(ctx context.Context) ([]byte, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			if m.LoadErr != nil {
				return nil, m.LoadErr
			}
			data, ok := m.data[namespace+"/"+key]
			if !ok {
				return nil, store.ErrSlotEmpty
			}
			return data, nil
		},
		SaveFunc: func(ctx context.Context, data []byte) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.SaveCalls = append(m.SaveCalls, SaveCall{Namespace: namespace, Key: key, Data: data})
			if m.SaveErr != nil {
				return m.SaveErr
			}
			m.data[namespace+"/"+key] = append([]byte(nil), data...)
			return nil
		},
	}
}

// SetData seeds a slot directly
func (m *MockSlotStore) SetData(namespace, key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[namespace+"/"+key] = data
}

// GetData reads a slot directly
func (m *MockSlotStore) GetData(namespace, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[namespace+"/"+key]
	return data, ok
}

// SaveCount returns how many Save calls were made
func (m *MockSlotStore) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SaveCalls)
}
