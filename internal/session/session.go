// Package session wires the cart, favorites and drawer of one shopper.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/example/fpv-storefront/internal/domain/cart"
	"github.com/example/fpv-storefront/internal/domain/drawer"
	"github.com/example/fpv-storefront/internal/domain/favorites"
	"github.com/example/fpv-storefront/internal/infrastructure/store"
	"go.uber.org/zap"
)

var ErrNotFavorite = errors.New("item is not in favorites")

// Session holds the stores of one shopper. The stores know nothing about
// each other; the drawer reacts to cart events through a subscription made here.
type Session struct {
	ID        string
	Cart      *cart.Store
	Favorites *favorites.Store
	Drawer    *drawer.Coordinator

	// serializes compound operations spanning several stores
	mu          sync.Mutex
	unsubscribe func()
	logger      *zap.Logger
}

// New loads the shopper's cart and favorites from slots under namespace id.
func New(ctx context.Context, id string, slots store.SlotStore, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("session_id", id))

	s := &Session{
		ID:        id,
		Cart:      cart.NewStore(ctx, slots.Slot(id, store.SlotKeyCart), logger),
		Favorites: favorites.NewStore(ctx, slots.Slot(id, store.SlotKeyFavorites), logger),
		Drawer:    drawer.NewCoordinator(),
		logger:    logger.Named("session"),
	}
	s.unsubscribe = s.Cart.Subscribe(s.onCartEvent)
	return s
}

// every add-to-cart surfaces the drawer on the cart tab
func (s *Session) onCartEvent(e cart.Event) {
	if e.Type == cart.EventItemAdded {
		s.Drawer.Open(drawer.TabCart)
	}
}

// MoveToCart adds item to the cart with quantity 1 (merging with an existing
// row), removes it from favorites and switches the drawer to the cart tab.
func (s *Session) MoveToCart(ctx context.Context, item favorites.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Cart.AddItem(ctx, ToProductRef(item), 1)
	s.Favorites.Remove(ctx, item.ID)
	s.Drawer.SetActiveTab(drawer.TabCart)

	s.logger.Debug("favorite moved to cart", zap.String("item_id", item.ID))
}

// MoveFavoriteToCart moves the saved item with id into the cart
func (s *Session) MoveFavoriteToCart(ctx context.Context, id string) error {
	item, ok := s.Favorites.Get(id)
	if !ok {
		return ErrNotFavorite
	}
	s.MoveToCart(ctx, item)
	return nil
}

// ToggleFavorite flips favorite membership of a product
func (s *Session) ToggleFavorite(ctx context.Context, ref cart.ProductRef) bool {
	return s.Favorites.Toggle(ctx, ToFavorite(ref))
}

// Close detaches the drawer from the cart
func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

// ToProductRef converts a saved favorite to the cart's product snapshot
func ToProductRef(item favorites.Item) cart.ProductRef {
	ref := cart.ProductRef{
		ID:       item.ID,
		Title:    item.Title,
		Price:    item.Price,
		Image:    item.Image,
		Category: item.Category,
	}
	if item.OldPrice != nil {
		ref.OldPrice = cart.IntPtr(*item.OldPrice)
	}
	return ref
}

// ToFavorite converts a product snapshot to a favorites entry
func ToFavorite(ref cart.ProductRef) favorites.Item {
	item := favorites.Item{
		ID:       ref.ID,
		Title:    ref.Title,
		Price:    ref.Price,
		Image:    ref.Image,
		Category: ref.Category,
	}
	if ref.OldPrice != nil {
		item.OldPrice = cart.IntPtr(*ref.OldPrice)
	}
	return item
}
