package query

import (
	"context"
	"sort"

	"github.com/example/fpv-storefront/internal/domain/cart"
	"github.com/example/fpv-storefront/internal/domain/favorites"
	"github.com/example/fpv-storefront/internal/domain/order"
	"github.com/example/fpv-storefront/internal/infrastructure/store"
	"github.com/example/fpv-storefront/internal/readmodel"
	"github.com/example/fpv-storefront/internal/session"
)

type Handler struct {
	sessions  session.Provider
	readStore store.ReadStoreInterface
}

func NewHandler(sessions session.Provider, readStore store.ReadStoreInterface) *Handler {
	return &Handler{sessions: sessions, readStore: readStore}
}

// Cart
func (h *Handler) GetCart(ctx context.Context, sessionID string) *readmodel.CartView {
	s := h.sessions.Get(ctx, sessionID)
	items, totals := s.Cart.Snapshot()

	views := make([]readmodel.LineItemView, 0, len(items))
	for _, item := range items {
		views = append(views, lineItemView(item))
	}
	return &readmodel.CartView{
		SessionID: sessionID,
		Items:     views,
		Totals:    totalsView(totals),
		Drawer:    drawerView(s),
	}
}

func lineItemView(item cart.LineItem) readmodel.LineItemView {
	return readmodel.LineItemView{
		ID:             item.ID,
		Title:          item.Title,
		Price:          item.Price,
		OldPrice:       item.OldPrice,
		Image:          item.Image,
		Category:       item.Category,
		Quantity:       item.Quantity,
		PriceOnRequest: item.IsPriceOnRequest(),
	}
}

func totalsView(t cart.Totals) readmodel.TotalsView {
	return readmodel.TotalsView{
		TotalItems:          t.TotalItems,
		TotalPrice:          t.TotalPrice,
		TotalSavings:        t.TotalSavings,
		HasCustomPriceItems: t.HasCustomPriceItems,
	}
}

// Favorites
func (h *Handler) GetFavorites(ctx context.Context, sessionID string) *readmodel.FavoritesView {
	items := h.sessions.Get(ctx, sessionID).Favorites.Items()

	views := make([]readmodel.FavoriteView, 0, len(items))
	for _, item := range items {
		views = append(views, favoriteView(item))
	}
	return &readmodel.FavoritesView{
		SessionID: sessionID,
		Items:     views,
		Count:     len(views),
	}
}

func favoriteView(item favorites.Item) readmodel.FavoriteView {
	return readmodel.FavoriteView{
		ID:       item.ID,
		Title:    item.Title,
		Price:    item.Price,
		OldPrice: item.OldPrice,
		Image:    item.Image,
		Category: item.Category,
	}
}

// Drawer
func (h *Handler) GetDrawer(ctx context.Context, sessionID string) readmodel.DrawerView {
	return drawerView(h.sessions.Get(ctx, sessionID))
}

func drawerView(s *session.Session) readmodel.DrawerView {
	state := s.Drawer.State()
	return readmodel.DrawerView{IsOpen: state.IsOpen, ActiveTab: string(state.ActiveTab)}
}

// Orders
func (h *Handler) GetOrder(id string) (*readmodel.OrderReadModel, error) {
	data, ok := h.readStore.Get(store.CollectionOrders, id)
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return data.(*readmodel.OrderReadModel), nil
}

// ListOrders returns orders newest first. An empty status lists every order.
func (h *Handler) ListOrders(status string) ([]*readmodel.OrderReadModel, error) {
	if status != "" {
		parsed, err := order.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		status = string(parsed)
	}

	items := h.readStore.GetAll(store.CollectionOrders)
	orders := make([]*readmodel.OrderReadModel, 0, len(items))
	for _, item := range items {
		o := item.(*readmodel.OrderReadModel)
		if status != "" && o.Status != status {
			continue
		}
		orders = append(orders, o)
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// OrderStats summarizes all orders. Cancelled orders are excluded from
// revenue and savings.
func (h *Handler) OrderStats() *readmodel.OrderStats {
	counts := make(map[string]int)
	stats := &readmodel.OrderStats{}

	for _, item := range h.readStore.GetAll(store.CollectionOrders) {
		o := item.(*readmodel.OrderReadModel)
		stats.TotalOrders++
		counts[o.Status]++
		if o.HasCustomPriceItems {
			stats.CustomPriceOrders++
		}
		if o.Status == string(order.StatusCancelled) {
			continue
		}
		stats.Revenue += o.TotalPrice
		stats.Savings += o.TotalSavings
	}

	stats.ByStatus = make([]readmodel.StatusCount, 0, len(order.Statuses()))
	for _, status := range order.Statuses() {
		stats.ByStatus = append(stats.ByStatus, readmodel.StatusCount{
			Status: string(status),
			Count:  counts[string(status)],
		})
	}
	return stats
}
