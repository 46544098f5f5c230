package order

import "time"

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderStatusChanged = "OrderStatusChanged"
)

// Item is the cart row as it was at checkout. Price -1 marks price on request.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	OldPrice *int   `json:"old_price,omitempty"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image"`
}

type OrderPlaced struct {
	OrderID             string        `json:"order_id"`
	OrderNumber         string        `json:"order_number"`
	SessionID           string        `json:"session_id"`
	Customer            Customer      `json:"customer"`
	Delivery            Delivery      `json:"delivery"`
	PaymentMethod       PaymentMethod `json:"payment_method"`
	Comment             string        `json:"comment,omitempty"`
	Items               []Item        `json:"items"`
	TotalPrice          int           `json:"total_price"`
	TotalSavings        int           `json:"total_savings"`
	HasCustomPriceItems bool          `json:"has_custom_price_items"`
	PlacedAt            time.Time     `json:"placed_at"`
}

type OrderStatusChanged struct {
	OrderID   string    `json:"order_id"`
	From      Status    `json:"from"`
	To        Status    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}
