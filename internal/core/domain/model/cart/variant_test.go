package cart_test

import (
	"testing"

	"marketplace/internal/core/domain/model/cart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlateVariant_Validate(t *testing.T) {
	assert.NoError(t, cart.BasePlate.Validate())
	assert.NoError(t, cart.HalfPlate.Validate())
	assert.NoError(t, cart.FullPlate.Validate())
	assert.Error(t, cart.PlateVariantUnknown.Validate())
	assert.Error(t, cart.PlateVariant(42).Validate())
}

func TestPlateVariantFromString(t *testing.T) {
	for _, v := range []cart.PlateVariant{cart.BasePlate, cart.HalfPlate, cart.FullPlate} {
		parsed, err := cart.PlateVariantFromString(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, parsed)
	}

	_, err := cart.PlateVariantFromString("Unknown")
	assert.Error(t, err)
	_, err = cart.PlateVariantFromString("quarter")
	assert.Error(t, err)
}

func TestPlateVariantFromSelectors(t *testing.T) {
	tests := []struct {
		name                   string
		isHalfPlate, isFullPlate bool
		want                   cart.PlateVariant
		wantErr                bool
	}{
		{"neither_selects_base", false, false, cart.BasePlate, false},
		{"half_only", true, false, cart.HalfPlate, false},
		{"full_only", false, true, cart.FullPlate, false},
		{"both_is_invalid", true, true, cart.PlateVariantUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cart.PlateVariantFromSelectors(tt.isHalfPlate, tt.isFullPlate)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
