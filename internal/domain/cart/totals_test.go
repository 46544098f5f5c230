package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals_Empty(t *testing.T) {
	assert.Equal(t, Totals{}, ComputeTotals(nil))
}

func TestComputeTotals_PriceOnRequestExcluded(t *testing.T) {
	onRequest := LineItem{ProductRef: ProductRef{ID: "custom", Price: PriceOnRequest}, Quantity: 3}
	discounted := LineItem{ProductRef: ProductRef{ID: "p1", Price: 100, OldPrice: IntPtr(150)}, Quantity: 2}

	totals := ComputeTotals([]LineItem{onRequest, discounted})

	assert.Equal(t, 5, totals.TotalItems)
	assert.Equal(t, 200, totals.TotalPrice)
	assert.Equal(t, 100, totals.TotalSavings)
	assert.True(t, totals.HasCustomPriceItems)
}

func TestComputeTotals_SentinelWinsOverOldPrice(t *testing.T) {
	item := LineItem{ProductRef: ProductRef{ID: "custom", Price: PriceOnRequest, OldPrice: IntPtr(5000)}, Quantity: 1}

	totals := ComputeTotals([]LineItem{item})

	assert.Zero(t, totals.TotalPrice)
	assert.Zero(t, totals.TotalSavings)
	assert.True(t, totals.HasCustomPriceItems)
}

func TestComputeTotals_Savings(t *testing.T) {
	tests := []struct {
		name     string
		oldPrice *int
		want     int
	}{
		{"no old price", nil, 0},
		{"discount", IntPtr(120), 40},
		{"old price equal", IntPtr(100), 0},
		{"old price lower never negative", IntPtr(80), 0},
		{"old price zero", IntPtr(0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := LineItem{ProductRef: ProductRef{ID: "p1", Price: 100, OldPrice: tt.oldPrice}, Quantity: 2}
			assert.Equal(t, tt.want, ComputeTotals([]LineItem{item}).TotalSavings)
		})
	}
}

func TestComputeTotals_NoCustomPriceItems(t *testing.T) {
	items := []LineItem{
		{ProductRef: ProductRef{ID: "p1", Price: 2500}, Quantity: 1},
		{ProductRef: ProductRef{ID: "p2", Price: 0}, Quantity: 4},
	}

	totals := ComputeTotals(items)
	assert.Equal(t, 2500, totals.TotalPrice)
	assert.Equal(t, 5, totals.TotalItems)
	assert.False(t, totals.HasCustomPriceItems)
}
