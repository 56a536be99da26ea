package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddCartItemCommand(t *testing.T) {
	customerID := kernel.NewUUID()
	menuItemRef := kernel.NewUUID()

	t.Run("should create command with base variant", func(t *testing.T) {
		cmd, err := commands.NewAddCartItemCommand(customerID, menuItemRef, 2, false, false)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, customerID, cmd.CustomerID())
		assert.Equal(t, menuItemRef, cmd.MenuItemRef())
		assert.Equal(t, 2, cmd.Quantity())
		assert.Equal(t, cart.BasePlate, cmd.Variant())
	})

	t.Run("should map half plate selector", func(t *testing.T) {
		cmd, err := commands.NewAddCartItemCommand(customerID, menuItemRef, 1, true, false)

		require.NoError(t, err)
		assert.Equal(t, cart.HalfPlate, cmd.Variant())
	})

	t.Run("should reject both plate selectors", func(t *testing.T) {
		_, err := commands.NewAddCartItemCommand(customerID, menuItemRef, 1, true, true)

		require.Error(t, err)
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		_, err := commands.NewAddCartItemCommand(customerID, menuItemRef, 0, false, false)

		require.ErrorIs(t, err, commands.ErrQuantityIsInvalid)
	})

	t.Run("should reject empty customer id", func(t *testing.T) {
		_, err := commands.NewAddCartItemCommand(kernel.UUID{}, menuItemRef, 1, false, false)

		require.Error(t, err)
	})

	t.Run("should reject zero value command", func(t *testing.T) {
		var cmd commands.AddCartItemCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrAddCartItemCommandIsNotConstructed)
	})
}
