package cart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductRef_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ref     ProductRef
		wantErr error
	}{
		{"valid", ProductRef{ID: "p1", Price: 100}, nil},
		{"price on request", ProductRef{ID: "p1", Price: PriceOnRequest}, nil},
		{"free", ProductRef{ID: "p1", Price: 0}, nil},
		{"missing id", ProductRef{Price: 100}, ErrInvalidProduct},
		{"negative price", ProductRef{ID: "p1", Price: -5}, ErrInvalidPrice},
		{"negative old price", ProductRef{ID: "p1", Price: 5, OldPrice: IntPtr(-1)}, ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, tt.ref.Validate())
		})
	}
}

func TestNewCustomConfiguration(t *testing.T) {
	a := NewCustomConfiguration(`FPV дрон на замовлення: 10" TAIPAN`, "/taipan-10.png")
	b := NewCustomConfiguration(`FPV дрон на замовлення: 10" TAIPAN`, "/taipan-10.png")

	assert.True(t, strings.HasPrefix(a.ID, "config-"))
	assert.NotEqual(t, a.ID, b.ID)
	assert.True(t, a.IsPriceOnRequest())
	assert.Equal(t, CustomConfigurationCategory, a.Category)
	assert.Nil(t, a.OldPrice)
	assert.NoError(t, a.Validate())
}
