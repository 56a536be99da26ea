package order

import (
	"errors"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Line is one product position of an order: a frozen copy of a cart line
// taken at checkout. Catalog price edits after checkout never move an
// existing order's lines, so Line stores resolved amounts, not references
// into the menu.
type Line struct {
	menuItemRef    kernel.UUID
	name           string
	variant        cart.PlateVariant
	quantity       int
	unitPrice      float64
	discountAmount float64
	finalUnitPrice float64
}

// LineFromCartItem freezes a cart line into an order line, resolving the
// variant price and menu discount at this moment.
func LineFromCartItem(item *cart.Item) (Line, error) {
	if err := item.Validate(); err != nil {
		return Line{}, err
	}

	return Line{
		menuItemRef:    item.MenuItemRef(),
		name:           item.Name(),
		variant:        item.Variant(),
		quantity:       item.Quantity(),
		unitPrice:      item.UnitPrice(),
		discountAmount: item.DiscountAmount(),
		finalUnitPrice: item.FinalUnitPrice(),
	}, nil
}

// RestoreLine reconstructs an order line from persistence.
func RestoreLine(
	menuItemRef kernel.UUID,
	name string,
	variant cart.PlateVariant,
	quantity int,
	unitPrice, discountAmount, finalUnitPrice float64,
) (Line, error) {
	if err := errors.Join(menuItemRef.Validate(), variant.Validate()); err != nil {
		return Line{}, err
	}
	if name == "" {
		return Line{}, errs.NewValueIsRequiredError("lineName")
	}
	if quantity < 1 {
		return Line{}, errs.NewValueIsInvalidError("lineQuantity")
	}

	return Line{
		menuItemRef:    menuItemRef,
		name:           name,
		variant:        variant,
		quantity:       quantity,
		unitPrice:      unitPrice,
		discountAmount: discountAmount,
		finalUnitPrice: finalUnitPrice,
	}, nil
}

// MenuItemRef returns the menu item identifier captured at checkout.
func (l Line) MenuItemRef() kernel.UUID {
	return l.menuItemRef
}

// Name returns the display name captured at checkout.
func (l Line) Name() string {
	return l.name
}

// Variant returns the plate variant captured at checkout.
func (l Line) Variant() cart.PlateVariant {
	return l.variant
}

// Quantity returns the ordered quantity.
func (l Line) Quantity() int {
	return l.quantity
}

// UnitPrice returns the resolved per-unit price before the menu discount.
func (l Line) UnitPrice() float64 {
	return l.unitPrice
}

// DiscountAmount returns the per-unit menu discount captured at checkout.
func (l Line) DiscountAmount() float64 {
	return l.discountAmount
}

// FinalUnitPrice returns the per-unit price after the menu discount.
func (l Line) FinalUnitPrice() float64 {
	return l.finalUnitPrice
}
