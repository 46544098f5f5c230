package command

import (
	"github.com/example/fpv-storefront/internal/domain/cart"
	"github.com/example/fpv-storefront/internal/domain/order"
)

// Cart Commands
type AddToCart struct {
	SessionID string `json:"-"`
	cart.ProductRef
	Quantity int `json:"quantity"`
}

type UpdateCartQuantity struct {
	SessionID string `json:"-"`
	ItemID    string `json:"-"`
	Quantity  int    `json:"quantity"`
}

type RemoveFromCart struct {
	SessionID string `json:"-"`
	ItemID    string `json:"-"`
}

type ClearCart struct {
	SessionID string `json:"-"`
}

// AddConfiguration puts a configurator build in the cart as a price-on-request item
type AddConfiguration struct {
	SessionID string `json:"-"`
	Title     string `json:"title"`
	Image     string `json:"image"`
}

// Favorites Commands
type AddFavorite struct {
	SessionID string `json:"-"`
	cart.ProductRef
}

type ToggleFavorite struct {
	SessionID string `json:"-"`
	cart.ProductRef
}

type RemoveFavorite struct {
	SessionID string `json:"-"`
	ItemID    string `json:"-"`
}

type MoveFavoriteToCart struct {
	SessionID string `json:"-"`
	ItemID    string `json:"-"`
}

// Drawer Commands
type OpenDrawer struct {
	SessionID string `json:"-"`
	Tab       string `json:"tab"`
}

type CloseDrawer struct {
	SessionID string `json:"-"`
}

type SetDrawerTab struct {
	SessionID string `json:"-"`
	Tab       string `json:"tab"`
}

// Order Commands
type Checkout struct {
	SessionID     string              `json:"-"`
	Customer      order.Customer      `json:"customer"`
	Delivery      order.Delivery      `json:"delivery"`
	PaymentMethod order.PaymentMethod `json:"paymentMethod"`
	Comment       string              `json:"comment"`
}

type ChangeOrderStatus struct {
	OrderID string `json:"-"`
	Status  string `json:"status"`
}
