package command

import (
	"context"

	"github.com/example/fpv-storefront/internal/domain/cart"
	"github.com/example/fpv-storefront/internal/domain/drawer"
	"github.com/example/fpv-storefront/internal/domain/order"
	"github.com/example/fpv-storefront/internal/session"
	"go.uber.org/zap"
)

type Handler struct {
	sessions session.Provider
	orderSvc *order.Service
	logger   *zap.Logger
}

func NewHandler(sessions session.Provider, orderSvc *order.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		sessions: sessions,
		orderSvc: orderSvc,
		logger:   logger.Named("command"),
	}
}

// AddToCart adds a product snapshot; a zero quantity means one
func (h *Handler) AddToCart(ctx context.Context, cmd AddToCart) error {
	if err := cmd.ProductRef.Validate(); err != nil {
		return err
	}
	quantity := cmd.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return cart.ErrInvalidQuantity
	}

	h.sessions.Get(ctx, cmd.SessionID).Cart.AddItem(ctx, cmd.ProductRef, quantity)
	return nil
}

// UpdateCartQuantity sets an absolute quantity; zero or less removes the row
func (h *Handler) UpdateCartQuantity(ctx context.Context, cmd UpdateCartQuantity) error {
	if cmd.ItemID == "" {
		return cart.ErrInvalidProduct
	}
	h.sessions.Get(ctx, cmd.SessionID).Cart.UpdateQuantity(ctx, cmd.ItemID, cmd.Quantity)
	return nil
}

func (h *Handler) RemoveFromCart(ctx context.Context, cmd RemoveFromCart) error {
	if cmd.ItemID == "" {
		return cart.ErrInvalidProduct
	}
	h.sessions.Get(ctx, cmd.SessionID).Cart.RemoveItem(ctx, cmd.ItemID)
	return nil
}

func (h *Handler) ClearCart(ctx context.Context, cmd ClearCart) error {
	h.sessions.Get(ctx, cmd.SessionID).Cart.Clear(ctx)
	return nil
}

// AddConfiguration adds a configurator build and returns its cart entry
func (h *Handler) AddConfiguration(ctx context.Context, cmd AddConfiguration) (cart.ProductRef, error) {
	if cmd.Title == "" {
		return cart.ProductRef{}, ErrTitleRequired
	}
	ref := cart.NewCustomConfiguration(cmd.Title, cmd.Image)
	h.sessions.Get(ctx, cmd.SessionID).Cart.AddItem(ctx, ref, 1)
	return ref, nil
}

func (h *Handler) AddFavorite(ctx context.Context, cmd AddFavorite) error {
	if err := cmd.ProductRef.Validate(); err != nil {
		return err
	}
	h.sessions.Get(ctx, cmd.SessionID).Favorites.Add(ctx, session.ToFavorite(cmd.ProductRef))
	return nil
}

// ToggleFavorite returns whether the product is saved afterwards
func (h *Handler) ToggleFavorite(ctx context.Context, cmd ToggleFavorite) (bool, error) {
	if err := cmd.ProductRef.Validate(); err != nil {
		return false, err
	}
	return h.sessions.Get(ctx, cmd.SessionID).ToggleFavorite(ctx, cmd.ProductRef), nil
}

func (h *Handler) RemoveFavorite(ctx context.Context, cmd RemoveFavorite) error {
	if cmd.ItemID == "" {
		return cart.ErrInvalidProduct
	}
	h.sessions.Get(ctx, cmd.SessionID).Favorites.Remove(ctx, cmd.ItemID)
	return nil
}

func (h *Handler) MoveFavoriteToCart(ctx context.Context, cmd MoveFavoriteToCart) error {
	return h.sessions.Get(ctx, cmd.SessionID).MoveFavoriteToCart(ctx, cmd.ItemID)
}

func (h *Handler) OpenDrawer(ctx context.Context, cmd OpenDrawer) error {
	tab, err := drawer.ParseTab(cmd.Tab)
	if err != nil {
		return err
	}
	h.sessions.Get(ctx, cmd.SessionID).Drawer.Open(tab)
	return nil
}

func (h *Handler) CloseDrawer(ctx context.Context, cmd CloseDrawer) error {
	h.sessions.Get(ctx, cmd.SessionID).Drawer.Close()
	return nil
}

func (h *Handler) SetDrawerTab(ctx context.Context, cmd SetDrawerTab) error {
	tab, err := drawer.ParseTab(cmd.Tab)
	if err != nil {
		return err
	}
	h.sessions.Get(ctx, cmd.SessionID).Drawer.SetActiveTab(tab)
	return nil
}

// Checkout reads the cart once, places the order and empties the cart.
// The cart is left untouched when placing fails.
func (h *Handler) Checkout(ctx context.Context, cmd Checkout) (*order.Order, error) {
	sess := h.sessions.Get(ctx, cmd.SessionID)
	items, totals := sess.Cart.Snapshot()
	if len(items) == 0 {
		return nil, order.ErrEmptyOrder
	}

	orderItems := make([]order.Item, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, order.Item{
			ID:       item.ID,
			Name:     item.Title,
			Price:    item.Price,
			OldPrice: item.OldPrice,
			Quantity: item.Quantity,
			Image:    item.Image,
		})
	}

	o, err := h.orderSvc.Place(ctx, order.PlaceOrder{
		SessionID:           cmd.SessionID,
		Customer:            cmd.Customer,
		Delivery:            cmd.Delivery,
		PaymentMethod:       cmd.PaymentMethod,
		Comment:             cmd.Comment,
		Items:               orderItems,
		TotalPrice:          totals.TotalPrice,
		TotalSavings:        totals.TotalSavings,
		HasCustomPriceItems: totals.HasCustomPriceItems,
	})
	if err != nil {
		return nil, err
	}

	sess.Cart.Clear(ctx)
	sess.Drawer.Close()
	h.logger.Info("checkout completed",
		zap.String("session_id", cmd.SessionID),
		zap.String("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
	)
	return o, nil
}

// ChangeOrderStatus is the admin status update
func (h *Handler) ChangeOrderStatus(ctx context.Context, cmd ChangeOrderStatus) (*order.Order, error) {
	status, err := order.ParseStatus(cmd.Status)
	if err != nil {
		return nil, err
	}
	return h.orderSvc.ChangeStatus(ctx, cmd.OrderID, status)
}
