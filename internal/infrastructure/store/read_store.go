package store

import (
	"sync"
)

// ReadStore keeps projected views in memory.
// GetAll returns items newest first, matching PostgresReadStore.
type ReadStore struct {
	mu    sync.RWMutex
	data  map[string]map[string]any // collection -> id -> data
	order map[string][]string       // collection -> ids in insertion order
}

func NewReadStore() *ReadStore {
	return &ReadStore{
		data:  make(map[string]map[string]any),
		order: make(map[string][]string),
	}
}

func (rs *ReadStore) Set(collection, id string, data any) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.data[collection] == nil {
		rs.data[collection] = make(map[string]any)
	}
	if _, exists := rs.data[collection][id]; !exists {
		rs.order[collection] = append(rs.order[collection], id)
	}
	rs.data[collection][id] = data
}

func (rs *ReadStore) Get(collection, id string) (any, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	data, ok := rs.data[collection][id]
	return data, ok
}

func (rs *ReadStore) GetAll(collection string) []any {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	ids := rs.order[collection]
	items := make([]any, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		items = append(items, rs.data[collection][ids[i]])
	}
	return items
}

func (rs *ReadStore) Delete(collection, id string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if _, ok := rs.data[collection][id]; !ok {
		return
	}
	delete(rs.data[collection], id)
	ids := rs.order[collection]
	for i, existing := range ids {
		if existing == id {
			rs.order[collection] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
}

func (rs *ReadStore) Update(collection, id string, updateFn func(current any) any) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	current, ok := rs.data[collection][id]
	if !ok {
		return false
	}
	rs.data[collection][id] = updateFn(current)
	return true
}
