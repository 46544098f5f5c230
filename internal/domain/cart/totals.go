package cart

// Totals are derived from the line items on every read
type Totals struct {
	TotalItems          int  `json:"totalItems"`
	TotalPrice          int  `json:"totalPrice"`
	TotalSavings        int  `json:"totalSavings"`
	HasCustomPriceItems bool `json:"hasCustomPriceItems"`
}

// ComputeTotals sums quantities, payable price and savings.
// Price-on-request rows count toward TotalItems only.
func ComputeTotals(items []LineItem) Totals {
	var t Totals
	for _, item := range items {
		t.TotalItems += item.Quantity
		if item.IsPriceOnRequest() {
			t.HasCustomPriceItems = true
			continue
		}
		t.TotalPrice += item.Price * item.Quantity
		if item.OldPrice != nil && *item.OldPrice > item.Price {
			t.TotalSavings += (*item.OldPrice - item.Price) * item.Quantity
		}
	}
	return t
}
