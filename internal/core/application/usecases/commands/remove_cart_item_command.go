package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRemoveCartItemCommandIsNotConstructed = errors.New(
	"RemoveCartItemCommand must be created via NewRemoveCartItemCommand constructor",
)

// RemoveCartItemCommand represents a request to drop one cart line entirely,
// regardless of its quantity.
type RemoveCartItemCommand struct { //nolint:recvcheck //using for validation
	customerID  kernel.UUID
	menuItemRef kernel.UUID
	variant     cart.PlateVariant

	guard guard.ConstructorGuard
}

// NewRemoveCartItemCommand creates a command to remove a cart line.
func NewRemoveCartItemCommand(customerID, menuItemRef kernel.UUID, isHalfPlate, isFullPlate bool) (RemoveCartItemCommand, error) {
	cmd := RemoveCartItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setMenuItemRef(menuItemRef),
		cmd.setVariant(isHalfPlate, isFullPlate),
	); err != nil {
		return RemoveCartItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveCartItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCartItemCommandIsNotConstructed)
}

// CustomerID returns the owning customer's identifier.
func (c RemoveCartItemCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// MenuItemRef returns the catalog reference of the targeted line.
func (c RemoveCartItemCommand) MenuItemRef() kernel.UUID {
	return c.menuItemRef
}

// Variant returns the plate variant of the targeted line.
func (c RemoveCartItemCommand) Variant() cart.PlateVariant {
	return c.variant
}

func (c *RemoveCartItemCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *RemoveCartItemCommand) setMenuItemRef(ref kernel.UUID) error {
	if err := ref.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("menuItemRef", err)
	}
	c.menuItemRef = ref
	return nil
}

func (c *RemoveCartItemCommand) setVariant(isHalfPlate, isFullPlate bool) error {
	variant, err := cart.PlateVariantFromSelectors(isHalfPlate, isFullPlate)
	if err != nil {
		return err
	}
	c.variant = variant
	return nil
}
