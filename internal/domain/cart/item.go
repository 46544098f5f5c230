package cart

import (
	"errors"

	"github.com/google/uuid"
)

// PriceOnRequest marks a product whose price is negotiated after ordering.
// Such items never contribute to monetary totals.
const PriceOnRequest = -1

// CustomConfigurationCategory is the category assigned to configurator builds
const CustomConfigurationCategory = "FPV Дрони"

var (
	ErrInvalidProduct  = errors.New("id is required")
	ErrInvalidPrice    = errors.New("price must be non-negative or -1 (price on request)")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// ProductRef is the product snapshot taken at add time. Prices are whole hryvnia.
type ProductRef struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Price    int    `json:"price"`
	OldPrice *int   `json:"oldPrice,omitempty"`
	Image    string `json:"image"`
	Category string `json:"category,omitempty"`
}

// LineItem is one cart row
type LineItem struct {
	ProductRef
	Quantity int `json:"quantity"`
}

func (p ProductRef) IsPriceOnRequest() bool {
	return p.Price == PriceOnRequest
}

// Validate checks the fields a caller outside the process must supply.
func (p ProductRef) Validate() error {
	if p.ID == "" {
		return ErrInvalidProduct
	}
	if p.Price < PriceOnRequest {
		return ErrInvalidPrice
	}
	if p.OldPrice != nil && *p.OldPrice < 0 {
		return ErrInvalidPrice
	}
	return nil
}

// NewCustomConfiguration builds the cart entry for a configurator build.
// Every build gets a fresh id so two identical builds are separate rows.
func NewCustomConfiguration(title, image string) ProductRef {
	return ProductRef{
		ID:       "config-" + uuid.NewString(),
		Title:    title,
		Price:    PriceOnRequest,
		Image:    image,
		Category: CustomConfigurationCategory,
	}
}

// IntPtr returns a pointer to v, for OldPrice literals
func IntPtr(v int) *int {
	return &v
}
