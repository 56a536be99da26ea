package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrChangeItemQuantityCommandIsNotConstructed = errors.New(
	"ChangeItemQuantityCommand must be created via NewChangeItemQuantityCommand constructor",
)

// ChangeItemQuantityCommand represents a request to increment or decrement
// one cart line by one. Decrementing a line at quantity 1 removes it.
type ChangeItemQuantityCommand struct { //nolint:recvcheck //using for validation
	customerID  kernel.UUID
	menuItemRef kernel.UUID
	variant     cart.PlateVariant
	action      cart.QuantityAction

	guard guard.ConstructorGuard
}

// NewChangeItemQuantityCommand creates a command to step a cart line's
// quantity. The action string is "increment" or "decrement".
func NewChangeItemQuantityCommand(
	customerID, menuItemRef kernel.UUID,
	isHalfPlate, isFullPlate bool,
	action string,
) (ChangeItemQuantityCommand, error) {
	cmd := ChangeItemQuantityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setMenuItemRef(menuItemRef),
		cmd.setVariant(isHalfPlate, isFullPlate),
		cmd.setAction(action),
	); err != nil {
		return ChangeItemQuantityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeItemQuantityCommand) Validate() error {
	return c.guard.Validate(ErrChangeItemQuantityCommandIsNotConstructed)
}

// CustomerID returns the owning customer's identifier.
func (c ChangeItemQuantityCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// MenuItemRef returns the catalog reference of the targeted line.
func (c ChangeItemQuantityCommand) MenuItemRef() kernel.UUID {
	return c.menuItemRef
}

// Variant returns the plate variant of the targeted line.
func (c ChangeItemQuantityCommand) Variant() cart.PlateVariant {
	return c.variant
}

// Action returns the quantity step direction.
func (c ChangeItemQuantityCommand) Action() cart.QuantityAction {
	return c.action
}

func (c *ChangeItemQuantityCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *ChangeItemQuantityCommand) setMenuItemRef(ref kernel.UUID) error {
	if err := ref.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("menuItemRef", err)
	}
	c.menuItemRef = ref
	return nil
}

func (c *ChangeItemQuantityCommand) setVariant(isHalfPlate, isFullPlate bool) error {
	variant, err := cart.PlateVariantFromSelectors(isHalfPlate, isFullPlate)
	if err != nil {
		return err
	}
	c.variant = variant
	return nil
}

func (c *ChangeItemQuantityCommand) setAction(action string) error {
	parsed, err := cart.QuantityActionFromString(action)
	if err != nil {
		return err
	}
	c.action = parsed
	return nil
}
