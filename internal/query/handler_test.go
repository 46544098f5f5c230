package query

import (
	"context"
	"testing"
	"time"

	"github.com/example/fpv-storefront/internal/domain/cart"
	"github.com/example/fpv-storefront/internal/domain/favorites"
	"github.com/example/fpv-storefront/internal/domain/order"
	"github.com/example/fpv-storefront/internal/infrastructure/store"
	"github.com/example/fpv-storefront/internal/infrastructure/store/mocks"
	"github.com/example/fpv-storefront/internal/readmodel"
	"github.com/example/fpv-storefront/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueryHandler() (*Handler, *session.Manager, *mocks.MockReadStore) {
	readStore := mocks.NewMockReadStore()
	sessions := session.NewManager(store.NewMemorySlotStore(), nil)
	return NewHandler(sessions, readStore), sessions, readStore
}

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func seedOrder(readStore *mocks.MockReadStore, id, status string, total, savings int, custom bool, age time.Duration) {
	readStore.SetData(store.CollectionOrders, id, &readmodel.OrderReadModel{
		ID:                  id,
		Status:              status,
		TotalPrice:          total,
		TotalSavings:        savings,
		HasCustomPriceItems: custom,
		CreatedAt:           baseTime.Add(-age),
	})
}

// ============================================
// Cart Query Tests
// ============================================

func TestHandler_GetCart_Empty(t *testing.T) {
	handler, _, _ := newTestQueryHandler()

	view := handler.GetCart(context.Background(), "sess-1")

	assert.Equal(t, "sess-1", view.SessionID)
	assert.NotNil(t, view.Items)
	assert.Empty(t, view.Items)
	assert.Equal(t, readmodel.TotalsView{}, view.Totals)
	assert.False(t, view.Drawer.IsOpen)
}

func TestHandler_GetCart_WithItems(t *testing.T) {
	handler, sessions, _ := newTestQueryHandler()
	ctx := context.Background()
	s := sessions.Get(ctx, "sess-1")
	s.Cart.AddItem(ctx, cart.ProductRef{ID: "p1", Title: "Goggles", Price: 9000, OldPrice: cart.IntPtr(10000), Image: "/g.png"}, 2)
	s.Cart.AddItem(ctx, cart.NewCustomConfiguration("Custom 7\"", "/c.png"), 1)

	view := handler.GetCart(ctx, "sess-1")

	require.Len(t, view.Items, 2)
	assert.Equal(t, "p1", view.Items[0].ID)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.False(t, view.Items[0].PriceOnRequest)
	assert.True(t, view.Items[1].PriceOnRequest)
	assert.Equal(t, readmodel.TotalsView{
		TotalItems:          3,
		TotalPrice:          18000,
		TotalSavings:        2000,
		HasCustomPriceItems: true,
	}, view.Totals)
	assert.True(t, view.Drawer.IsOpen)
	assert.Equal(t, "cart", view.Drawer.ActiveTab)
}

// ============================================
// Favorites and Drawer Query Tests
// ============================================

func TestHandler_GetFavorites(t *testing.T) {
	handler, sessions, _ := newTestQueryHandler()
	ctx := context.Background()
	s := sessions.Get(ctx, "sess-1")
	s.Favorites.Add(ctx, favorites.Item{ID: "f1", Title: "Frame", Price: 1500, Category: "Рами"})
	s.Favorites.Add(ctx, favorites.Item{ID: "f2", Title: "Props", Price: 200})

	view := handler.GetFavorites(ctx, "sess-1")

	assert.Equal(t, 2, view.Count)
	require.Len(t, view.Items, 2)
	assert.Equal(t, "f1", view.Items[0].ID)
	assert.Equal(t, "Рами", view.Items[0].Category)
}

func TestHandler_GetDrawer_ClosedHidesTab(t *testing.T) {
	handler, sessions, _ := newTestQueryHandler()
	ctx := context.Background()
	s := sessions.Get(ctx, "sess-1")
	s.Drawer.Open("favorites")
	s.Drawer.Close()

	view := handler.GetDrawer(ctx, "sess-1")

	assert.Equal(t, readmodel.DrawerView{}, view)
}

// ============================================
// Order Query Tests
// ============================================

func TestHandler_GetOrder_Found(t *testing.T) {
	handler, _, readStore := newTestQueryHandler()
	seedOrder(readStore, "order-1", "pending", 1000, 0, false, 0)

	o, err := handler.GetOrder("order-1")

	require.NoError(t, err)
	assert.Equal(t, "order-1", o.ID)
}

func TestHandler_GetOrder_NotFound(t *testing.T) {
	handler, _, _ := newTestQueryHandler()

	o, err := handler.GetOrder("missing")

	assert.ErrorIs(t, err, order.ErrOrderNotFound)
	assert.Nil(t, o)
}

func TestHandler_ListOrders_NewestFirst(t *testing.T) {
	handler, _, readStore := newTestQueryHandler()
	seedOrder(readStore, "a", "pending", 100, 0, false, 2*time.Hour)
	seedOrder(readStore, "b", "shipped", 200, 0, false, 0)
	seedOrder(readStore, "c", "pending", 300, 0, false, time.Hour)

	orders, err := handler.ListOrders("")

	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{orders[0].ID, orders[1].ID, orders[2].ID})
}

func TestHandler_ListOrders_FilterByStatus(t *testing.T) {
	handler, _, readStore := newTestQueryHandler()
	seedOrder(readStore, "a", "pending", 100, 0, false, 0)
	seedOrder(readStore, "b", "shipped", 200, 0, false, 0)

	orders, err := handler.ListOrders("Shipped")

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "b", orders[0].ID)
}

func TestHandler_ListOrders_UnknownStatus(t *testing.T) {
	handler, _, _ := newTestQueryHandler()

	_, err := handler.ListOrders("lost")

	assert.ErrorIs(t, err, order.ErrInvalidStatus)
}

func TestHandler_OrderStats(t *testing.T) {
	handler, _, readStore := newTestQueryHandler()
	seedOrder(readStore, "a", "pending", 1000, 100, false, 0)
	seedOrder(readStore, "b", "delivered", 2000, 0, true, 0)
	seedOrder(readStore, "c", "cancelled", 5000, 500, false, 0)
	seedOrder(readStore, "d", "pending", 300, 0, true, 0)

	stats := handler.OrderStats()

	assert.Equal(t, 4, stats.TotalOrders)
	assert.Equal(t, 3300, stats.Revenue)
	assert.Equal(t, 100, stats.Savings)
	assert.Equal(t, 2, stats.CustomPriceOrders)
	assert.Equal(t, []readmodel.StatusCount{
		{Status: "pending", Count: 2},
		{Status: "processing", Count: 0},
		{Status: "shipped", Count: 0},
		{Status: "delivered", Count: 1},
		{Status: "cancelled", Count: 1},
	}, stats.ByStatus)
}

func TestHandler_OrderStats_Empty(t *testing.T) {
	handler, _, _ := newTestQueryHandler()

	stats := handler.OrderStats()

	assert.Zero(t, stats.TotalOrders)
	assert.Len(t, stats.ByStatus, 5)
}
