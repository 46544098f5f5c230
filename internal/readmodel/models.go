package readmodel

import "time"

// OrderItemReadModel is one line of a placed order, frozen at checkout
type OrderItemReadModel struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	OldPrice *int   `json:"old_price,omitempty"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image,omitempty"`
}

// OrderReadModel is the read model for orders shown in the admin back-office
type OrderReadModel struct {
	ID                  string               `json:"id"`
	OrderNumber         string               `json:"order_number"`
	SessionID           string               `json:"session_id"`
	FirstName           string               `json:"customer_first_name"`
	LastName            string               `json:"customer_last_name"`
	Phone               string               `json:"customer_phone"`
	Email               string               `json:"customer_email"`
	City                string               `json:"city"`
	DeliveryMethod      string               `json:"delivery_method"`
	Warehouse           string               `json:"warehouse,omitempty"`
	Address             string               `json:"address,omitempty"`
	PaymentMethod       string               `json:"payment_method"`
	Comment             string               `json:"comment,omitempty"`
	Items               []OrderItemReadModel `json:"items"`
	TotalPrice          int                  `json:"total_price"`
	TotalSavings        int                  `json:"total_savings"`
	HasCustomPriceItems bool                 `json:"has_custom_price_items"`
	Status              string               `json:"status"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// StatusCount is the number of orders in one status
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// OrderStats aggregates the order read models for the analytics dashboard
type OrderStats struct {
	TotalOrders       int           `json:"total_orders"`
	ByStatus          []StatusCount `json:"orders_by_status"`
	Revenue           int           `json:"revenue"`
	Savings           int           `json:"savings"`
	CustomPriceOrders int           `json:"custom_price_orders"`
}

// LineItemView is a cart line as returned to the storefront
type LineItemView struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Price          int    `json:"price"`
	OldPrice       *int   `json:"oldPrice,omitempty"`
	Image          string `json:"image"`
	Category       string `json:"category,omitempty"`
	Quantity       int    `json:"quantity"`
	PriceOnRequest bool   `json:"priceOnRequest"`
}

// TotalsView mirrors the derived cart totals
type TotalsView struct {
	TotalItems          int  `json:"totalItems"`
	TotalPrice          int  `json:"totalPrice"`
	TotalSavings        int  `json:"totalSavings"`
	HasCustomPriceItems bool `json:"hasCustomPriceItems"`
}

// DrawerView is the externally visible drawer state
type DrawerView struct {
	IsOpen    bool   `json:"isOpen"`
	ActiveTab string `json:"activeTab,omitempty"`
}

// CartView is the cart tab of the drawer
type CartView struct {
	SessionID string         `json:"sessionId"`
	Items     []LineItemView `json:"items"`
	Totals    TotalsView     `json:"totals"`
	Drawer    DrawerView     `json:"drawer"`
}

// FavoriteView is one saved product
type FavoriteView struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Price    int    `json:"price"`
	OldPrice *int   `json:"oldPrice,omitempty"`
	Image    string `json:"image"`
	Category string `json:"category"`
}

// FavoritesView is the favorites tab of the drawer
type FavoritesView struct {
	SessionID string         `json:"sessionId"`
	Items     []FavoriteView `json:"items"`
	Count     int            `json:"favoritesCount"`
}
