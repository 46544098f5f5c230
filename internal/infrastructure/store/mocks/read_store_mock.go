package mocks

import (
	"sync"

	"github.com/example/fpv-storefront/internal/infrastructure/store"
)

// ReadCall is one recorded read store call.
type ReadCall struct {
	Op         string
	Collection string
	ID         string
	Data       any
}

// MockReadStore wraps the in-memory read store and records every call.
// SetData and GetData bypass recording for test setup and assertions.
type MockReadStore struct {
	inner *store.ReadStore

	mu    sync.Mutex
	calls []ReadCall
}

func NewMockReadStore() *MockReadStore {
	return &MockReadStore{inner: store.NewReadStore()}
}

func (m *MockReadStore) record(op, collection, id string, data any) {
	m.mu.Lock()
	m.calls = append(m.calls, ReadCall{Op: op, Collection: collection, ID: id, Data: data})
	m.mu.Unlock()
}

// Calls returns the recorded calls for op ("Set", "Get", "GetAll", "Delete", "Update").
func (m *MockReadStore) Calls(op string) []ReadCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []ReadCall
	for _, c := range m.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (m *MockReadStore) Set(collection, id string, data any) {
	m.record("Set", collection, id, data)
	m.inner.Set(collection, id, data)
}

func (m *MockReadStore) Get(collection, id string) (any, bool) {
	m.record("Get", collection, id, nil)
	return m.inner.Get(collection, id)
}

func (m *MockReadStore) GetAll(collection string) []any {
	m.record("GetAll", collection, "", nil)
	return m.inner.GetAll(collection)
}

func (m *MockReadStore) Delete(collection, id string) {
	m.record("Delete", collection, id, nil)
	m.inner.Delete(collection, id)
}

func (m *MockReadStore) Update(collection, id string, updateFn func(current any) any) bool {
	m.record("Update", collection, id, nil)
	return m.inner.Update(collection, id, updateFn)
}

func (m *MockReadStore) SetData(collection, id string, data any) {
	m.inner.Set(collection, id, data)
}

func (m *MockReadStore) GetData(collection, id string) (any, bool) {
	return m.inner.Get(collection, id)
}

var _ store.ReadStoreInterface = (*MockReadStore)(nil)
