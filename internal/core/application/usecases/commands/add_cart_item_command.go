package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrAddCartItemCommandIsNotConstructed = errors.New(
		"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
	)
	ErrQuantityIsInvalid = errors.New("quantity must be greater than 0")
)

// AddCartItemCommand represents a request to add a menu item to the
// customer's cart, merging quantities when the same (item, variant) line
// already exists.
//
// Example:
//
//	cmd, err := NewAddCartItemCommand(customerID, menuItemRef, 2, true, false)
//	if err != nil {
//	    return fmt.Errorf("invalid cart item data: %w", err)
//	}
//
//	handler := NewAddCartItemCommandHandler(uowFactory, locker, catalog, locations, charges)
//	result, err := handler.Handle(ctx, cmd)
//	if result.Switched {
//	    // warn the customer their previous cart was cleared
//	}
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	customerID  kernel.UUID
	menuItemRef kernel.UUID
	quantity    int
	variant     cart.PlateVariant

	guard guard.ConstructorGuard
}

// NewAddCartItemCommand creates a command to add a menu item to a cart.
// The half/full selectors map to the plate variant; both set is invalid,
// neither set selects the base price.
func NewAddCartItemCommand(customerID, menuItemRef kernel.UUID, quantity int, isHalfPlate, isFullPlate bool) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setMenuItemRef(menuItemRef),
		cmd.setQuantity(quantity),
		cmd.setVariant(isHalfPlate, isFullPlate),
	); err != nil {
		return AddCartItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

// CustomerID returns the owning customer's identifier.
func (c AddCartItemCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// MenuItemRef returns the catalog reference of the item being added.
func (c AddCartItemCommand) MenuItemRef() kernel.UUID {
	return c.menuItemRef
}

// Quantity returns the quantity being added.
func (c AddCartItemCommand) Quantity() int {
	return c.quantity
}

// Variant returns the selected plate variant.
func (c AddCartItemCommand) Variant() cart.PlateVariant {
	return c.variant
}

func (c *AddCartItemCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *AddCartItemCommand) setMenuItemRef(ref kernel.UUID) error {
	if err := ref.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("menuItemRef", err)
	}
	c.menuItemRef = ref
	return nil
}

func (c *AddCartItemCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}
	c.quantity = quantity
	return nil
}

func (c *AddCartItemCommand) setVariant(isHalfPlate, isFullPlate bool) error {
	variant, err := cart.PlateVariantFromSelectors(isHalfPlate, isFullPlate)
	if err != nil {
		return err
	}
	c.variant = variant
	return nil
}
