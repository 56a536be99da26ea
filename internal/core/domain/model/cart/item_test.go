package cart_test

import (
	"math"
	"testing"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		item, err := cart.NewItem(kernel.NewUUID(), "Veg Biryani", cart.BasePlate, 2, 100, 60, 110, 10)

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.Equal(t, "Veg Biryani", item.Name())
		assert.Equal(t, 2, item.Quantity())
	})

	invalid := []struct {
		name            string
		itemName        string
		variant         cart.PlateVariant
		quantity        int
		base, half, full float64
		discountPercent float64
	}{
		{"empty_name", "", cart.BasePlate, 1, 100, 0, 0, 0},
		{"unknown_variant", "Dal", cart.PlateVariantUnknown, 1, 100, 0, 0, 0},
		{"zero_quantity", "Dal", cart.BasePlate, 0, 100, 0, 0, 0},
		{"negative_quantity", "Dal", cart.BasePlate, -1, 100, 0, 0, 0},
		{"zero_base_price", "Dal", cart.BasePlate, 1, 0, 0, 0, 0},
		{"negative_base_price", "Dal", cart.BasePlate, 1, -10, 0, 0, 0},
		{"nan_price", "Dal", cart.BasePlate, 1, math.NaN(), 0, 0, 0},
		{"infinite_price", "Dal", cart.BasePlate, 1, math.Inf(1), 0, 0, 0},
		{"negative_half_price", "Dal", cart.BasePlate, 1, 100, -1, 0, 0},
		{"negative_discount", "Dal", cart.BasePlate, 1, 100, 0, 0, -5},
		{"full_discount", "Dal", cart.BasePlate, 1, 100, 0, 0, 100},
	}

	for _, tt := range invalid {
		t.Run("rejects_"+tt.name, func(t *testing.T) {
			_, err := cart.NewItem(kernel.NewUUID(), tt.itemName, tt.variant, tt.quantity,
				tt.base, tt.half, tt.full, tt.discountPercent)
			require.Error(t, err)
		})
	}

	t.Run("rejects_zero_value_menu_item_ref", func(t *testing.T) {
		_, err := cart.NewItem(kernel.UUID{}, "Dal", cart.BasePlate, 1, 100, 0, 0, 0)
		require.Error(t, err)
	})
}

func TestItem_UnitPrice(t *testing.T) {
	tests := []struct {
		name             string
		variant          cart.PlateVariant
		base, half, full float64
		want             float64
	}{
		{"base_plate_uses_base_price", cart.BasePlate, 100, 60, 110, 100},
		{"half_plate_uses_half_price", cart.HalfPlate, 100, 60, 110, 60},
		{"full_plate_uses_full_price", cart.FullPlate, 100, 60, 110, 110},
		{"half_plate_falls_back_when_unpriced", cart.HalfPlate, 100, 0, 110, 100},
		{"full_plate_falls_back_when_unpriced", cart.FullPlate, 100, 60, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := cart.NewItem(kernel.NewUUID(), "Thali", tt.variant, 1,
				tt.base, tt.half, tt.full, 0)
			require.NoError(t, err)

			assert.InDelta(t, tt.want, item.UnitPrice(), 1e-9)
		})
	}
}

func TestItem_Discount(t *testing.T) {
	item, err := cart.NewItem(kernel.NewUUID(), "Paneer Tikka", cart.BasePlate, 2, 100, 0, 0, 10)
	require.NoError(t, err)

	assert.InDelta(t, 10.0, item.DiscountAmount(), 1e-9)
	assert.InDelta(t, 90.0, item.FinalUnitPrice(), 1e-9)
}

func TestItem_Key(t *testing.T) {
	ref := kernel.NewUUID()

	half, err := cart.NewItem(ref, "Dal", cart.HalfPlate, 1, 100, 60, 0, 0)
	require.NoError(t, err)
	full, err := cart.NewItem(ref, "Dal", cart.FullPlate, 1, 100, 0, 110, 0)
	require.NoError(t, err)

	assert.NotEqual(t, half.Key(), full.Key())
	assert.Equal(t, half.Key(), cart.ItemKey{MenuItemRef: ref, Variant: cart.HalfPlate})
}
