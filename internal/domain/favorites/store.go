// Package favorites keeps the products a shopper saved for later.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/example/fpv-storefront/internal/infrastructure/store"
	"go.uber.org/zap"
)

// Item is a saved product snapshot; membership is keyed by ID
type Item struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Price    int    `json:"price"`
	OldPrice *int   `json:"oldPrice,omitempty"`
	Image    string `json:"image"`
	Category string `json:"category,omitempty"`
}

// Store is an insertion-ordered set of favorites written through to its slot
type Store struct {
	mu     sync.RWMutex
	items  []Item
	slot   store.Slot
	logger *zap.Logger
}

// NewStore loads the persisted favorites. Missing or unreadable data starts empty.
func NewStore(ctx context.Context, slot store.Slot, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		items:  []Item{},
		slot:   slot,
		logger: logger.Named("favorites"),
	}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	data, err := s.slot.Load(ctx)
	if errors.Is(err, store.ErrSlotEmpty) {
		return
	}
	if err != nil {
		s.logger.Warn("failed to load favorites, starting empty", zap.Error(err))
		return
	}

	var raw []Item
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn("corrupt favorites data, starting empty", zap.Error(err))
		return
	}
	for _, item := range raw {
		if item.ID == "" || s.indexOf(item.ID) >= 0 {
			continue
		}
		s.items = append(s.items, item)
	}
}

func (s *Store) persist(ctx context.Context) {
	data, err := json.Marshal(s.items)
	if err != nil {
		err = fmt.Errorf("failed to marshal favorites: %w", err)
	} else {
		err = s.slot.Save(ctx, data)
	}
	if err != nil {
		s.logger.Warn("failed to persist favorites", zap.Error(err))
	}
}

func (s *Store) indexOf(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Add appends item unless its id is already saved
func (s *Store) Add(ctx context.Context, item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(ctx, item)
}

func (s *Store) add(ctx context.Context, item Item) bool {
	if s.indexOf(item.ID) >= 0 {
		return false
	}
	s.items = append(s.items, copyItem(item))
	s.persist(ctx)
	return true
}

// Remove deletes id; unknown ids are ignored
func (s *Store) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(ctx, id)
}

func (s *Store) remove(ctx context.Context, id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	s.persist(ctx)
	return true
}

// Toggle removes item when saved, otherwise adds it. It returns whether
// the item is saved afterwards.
func (s *Store) Toggle(ctx context.Context, item Item) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.remove(ctx, item.ID) {
		return false
	}
	return s.add(ctx, item)
}

func (s *Store) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0
}

// Get returns the saved item for id
func (s *Store) Get(id string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return Item{}, false
	}
	return copyItem(s.items[i]), true
}

// Items returns a copy in insertion order
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, len(s.items))
	for i, item := range s.items {
		out[i] = copyItem(item)
	}
	return out
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func copyItem(item Item) Item {
	if item.OldPrice != nil {
		oldPrice := *item.OldPrice
		item.OldPrice = &oldPrice
	}
	return item
}
