package cart

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/example/fpv-storefront/internal/infrastructure/store"
	"go.uber.org/zap"
)

// Store owns the ordered line items of one shopper. Every mutation is
// written through to its slot; slot failures are logged and the in-memory
// state stays authoritative.
type Store struct {
	mu     sync.Mutex
	items  []LineItem
	slot   store.Slot
	logger *zap.Logger

	listenersMu  sync.RWMutex
	listeners    map[int]Listener
	nextListener int
}

// NewStore loads the persisted cart from slot. Missing or unreadable data
// starts an empty cart.
func NewStore(ctx context.Context, slot store.Slot, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		items:     []LineItem{},
		slot:      slot,
		logger:    logger.Named("cart"),
		listeners: make(map[int]Listener),
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
		s.logger.Warn("failed to load cart, starting empty", zap.Error(err))
		return
	}

	items, dropped, err := decodeItems(data)
	if err != nil {
		s.logger.Warn("corrupt cart data, starting empty", zap.Error(err))
		return
	}
	if dropped > 0 {
		s.logger.Warn("dropped invalid cart rows", zap.Int("dropped", dropped))
	}
	s.items = items
}

func (s *Store) persist(ctx context.Context, items []LineItem) {
	data, err := encodeItems(items)
	if err == nil {
		err = s.slot.Save(ctx, data)
	}
	if err != nil {
		s.logger.Warn("failed to persist cart", zap.Error(err))
	}
}

// apply runs a pure transition under the lock, persists the result and
// notifies listeners once the lock is released.
func (s *Store) apply(ctx context.Context, transition func([]LineItem) ([]LineItem, Event)) {
	s.mu.Lock()
	next, event := transition(s.items)
	if event.Type == "" {
		s.mu.Unlock()
		return
	}
	s.items = next
	s.persist(ctx, next)
	s.mu.Unlock()

	s.logger.Debug("cart changed",
		zap.String("event", string(event.Type)),
		zap.String("item_id", event.ItemID),
		zap.Int("quantity", event.Quantity),
	)
	s.notify(event)
}

// AddItem merges quantity into the row for ref.ID or appends a new row.
func (s *Store) AddItem(ctx context.Context, ref ProductRef, quantity int) {
	s.apply(ctx, func(items []LineItem) ([]LineItem, Event) {
		return addItem(items, ref, quantity)
	})
}

// RemoveItem deletes the row for id. Unknown ids are ignored.
func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.apply(ctx, func(items []LineItem) ([]LineItem, Event) {
		return removeItem(items, id)
	})
}

// UpdateQuantity sets the quantity of id; zero or less removes the row.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) {
	s.apply(ctx, func(items []LineItem) ([]LineItem, Event) {
		return updateQuantity(items, id, quantity)
	})
}

func (s *Store) Clear(ctx context.Context) {
	s.apply(ctx, clearItems)
}

// Items returns a copy of the rows in insertion order
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// Item returns the row for id
func (s *Store) Item(id string) (LineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.items, id)
	if i < 0 {
		return LineItem{}, false
	}
	return cloneItems(s.items[i : i+1])[0], true
}

// Snapshot returns the rows and their totals from the same state
func (s *Store) Snapshot() ([]LineItem, Totals) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items), ComputeTotals(s.items)
}

func (s *Store) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeTotals(s.items)
}

func (s *Store) TotalItems() int { return s.Totals().TotalItems }

func (s *Store) TotalPrice() int { return s.Totals().TotalPrice }

func (s *Store) TotalSavings() int { return s.Totals().TotalSavings }

func (s *Store) HasCustomPriceItems() bool { return s.Totals().HasCustomPriceItems }

// Subscribe registers l for every applied mutation. Calling cancel removes it.
func (s *Store) Subscribe(l Listener) (cancel func()) {
	s.listenersMu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = l
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			delete(s.listeners, id)
			s.listenersMu.Unlock()
		})
	}
}

func (s *Store) notify(event Event) {
	s.listenersMu.RLock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	listeners := make([]Listener, 0, len(ids))
	sort.Ints(ids)
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	s.listenersMu.RUnlock()

	for _, l := range listeners {
		l(event)
	}
}
