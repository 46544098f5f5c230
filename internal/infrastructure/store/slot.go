package store

import (
	"context"
	"errors"
	"sync"
)

// Fixed slot keys, one per persisted shopper collection
const (
	SlotKeyCart      = "cart"
	SlotKeyFavorites = "favorites"
)

// ErrSlotEmpty is returned by Slot.Load when nothing has been saved yet
var ErrSlotEmpty = errors.New("slot is empty")

// Slot is one durable string-keyed value
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// SlotStore hands out slots scoped to a namespace (the shopper session id)
type SlotStore interface {
	Slot(namespace, key string) Slot
}

// SlotFunc adapts a pair of functions to the Slot interface
type SlotFunc struct {
	LoadFunc func(ctx context.Context) ([]byte, error)
	SaveFunc func(ctx context.Context, data []byte) error
}

func (f SlotFunc) Load(ctx context.Context) ([]byte, error)   { return f.LoadFunc(ctx) }
func (f SlotFunc) Save(ctx context.Context, data []byte) error { return f.SaveFunc(ctx, data) }

// MemorySlotStore keeps slots in process memory
type MemorySlotStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemorySlotStore() *MemorySlotStore {
	return &MemorySlotStore{slots: make(map[string][]byte)}
}

// Slot returns the slot for namespace/key
func (m *MemorySlotStore) Slot(namespace, key string) Slot {
	id := slotID(namespace, key)
	return SlotFunc{
		LoadFunc: func(ctx context.Context) ([]byte, error) {
			m.mu.RLock()
			defer m.mu.RUnlock()
			data, ok := m.slots[id]
			if !ok {
				return nil, ErrSlotEmpty
			}
			return append([]byte(nil), data...), nil
		},
		SaveFunc: func(ctx context.Context, data []byte) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.slots[id] = append([]byte(nil), data...)
			return nil
		},
	}
}

// Raw returns the stored bytes without going through a Slot
func (m *MemorySlotStore) Raw(namespace, key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.slots[slotID(namespace, key)]
	return data, ok
}

// Put seeds a slot directly
func (m *MemorySlotStore) Put(namespace, key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slotID(namespace, key)] = data
}

func slotID(namespace, key string) string {
	if namespace == "" {
		return key
	}
	return namespace + ":" + key
}
