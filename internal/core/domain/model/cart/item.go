package cart

import (
	"errors"
	"fmt"
	"math"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item was not created through NewItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// ItemKey identifies a cart line: the same menu item in two different plate
// variants forms two distinct lines, the same (item, variant) pair merges.
type ItemKey struct {
	MenuItemRef kernel.UUID
	Variant     PlateVariant
}

// NewItemKey creates a validated line identity.
func NewItemKey(menuItemRef kernel.UUID, variant PlateVariant) (ItemKey, error) {
	if err := errors.Join(menuItemRef.Validate(), variant.Validate()); err != nil {
		return ItemKey{}, err
	}
	return ItemKey{MenuItemRef: menuItemRef, Variant: variant}, nil
}

// Item is a single cart line. Prices and discount percentage are captured at
// add time from the menu catalog; later catalog edits do not move lines that
// are already in a cart.
//
// Invariants:
//   - Quantity is at least 1
//   - Prices are finite and non-negative; base price is positive
//   - Discount percentage lies in [0, 100)
type Item struct {
	menuItemRef     kernel.UUID
	name            string
	variant         PlateVariant
	quantity        int
	basePrice       float64
	halfPlatePrice  float64
	fullPlatePrice  float64
	discountPercent float64

	isConstructed bool
}

// NewItem creates a validated cart line.
//
// halfPlatePrice and fullPlatePrice may be zero, meaning the variant is not
// separately priced; UnitPrice then falls back to the base price.
func NewItem(
	menuItemRef kernel.UUID,
	name string,
	variant PlateVariant,
	quantity int,
	basePrice, halfPlatePrice, fullPlatePrice float64,
	discountPercent float64,
) (*Item, error) {
	item := &Item{
		isConstructed: true,
	}

	if err := errors.Join(
		item.setMenuItemRef(menuItemRef),
		item.setName(name),
		item.setVariant(variant),
		item.setQuantity(quantity),
		item.setPrices(basePrice, halfPlatePrice, fullPlatePrice),
		item.setDiscountPercent(discountPercent),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate ensures the item was created through NewItem.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// Key returns the line identity used for merge-on-add.
func (i *Item) Key() ItemKey {
	return ItemKey{MenuItemRef: i.menuItemRef, Variant: i.variant}
}

// MenuItemRef returns the referenced menu item's identifier.
func (i *Item) MenuItemRef() kernel.UUID {
	return i.menuItemRef
}

// Name returns the display name captured at add time.
func (i *Item) Name() string {
	return i.name
}

// Variant returns the selected plate variant.
func (i *Item) Variant() PlateVariant {
	return i.variant
}

// Quantity returns the line quantity.
func (i *Item) Quantity() int {
	return i.quantity
}

// BasePrice returns the base price captured at add time.
func (i *Item) BasePrice() float64 {
	return i.basePrice
}

// HalfPlatePrice returns the half-plate price captured at add time, zero when unset.
func (i *Item) HalfPlatePrice() float64 {
	return i.halfPlatePrice
}

// FullPlatePrice returns the full-plate price captured at add time, zero when unset.
func (i *Item) FullPlatePrice() float64 {
	return i.fullPlatePrice
}

// DiscountPercent returns the menu discount percentage captured at add time.
func (i *Item) DiscountPercent() float64 {
	return i.discountPercent
}

// UnitPrice resolves the price for the selected variant, falling back to the
// base price when the variant has no price of its own.
func (i *Item) UnitPrice() float64 {
	switch i.variant {
	case HalfPlate:
		if i.halfPlatePrice > 0 {
			return i.halfPlatePrice
		}
	case FullPlate:
		if i.fullPlatePrice > 0 {
			return i.fullPlatePrice
		}
	}
	return i.basePrice
}

// DiscountAmount returns the per-unit menu discount.
func (i *Item) DiscountAmount() float64 {
	return i.UnitPrice() * i.discountPercent / 100
}

// FinalUnitPrice returns the per-unit price after the menu discount.
func (i *Item) FinalUnitPrice() float64 {
	return i.UnitPrice() - i.DiscountAmount()
}

// addQuantity merges another line's quantity into this one.
func (i *Item) addQuantity(delta int) {
	i.quantity += delta
}

// decrementQuantity lowers the quantity by one. The caller removes the line
// when this would take the quantity below one.
func (i *Item) decrementQuantity() {
	i.quantity--
}

func (i *Item) setMenuItemRef(ref kernel.UUID) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	i.menuItemRef = ref
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("itemName")
	}
	i.name = name
	return nil
}

func (i *Item) setVariant(variant PlateVariant) error {
	if err := variant.Validate(); err != nil {
		return err
	}
	i.variant = variant
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not at least 1", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setPrices(base, half, full float64) error {
	for _, v := range []float64{base, half, full} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return errs.NewValueIsInvalidError("price")
		}
	}
	if base <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("basePrice",
			fmt.Errorf("%f is not greater than 0", base))
	}

	i.basePrice = base
	i.halfPlatePrice = half
	i.fullPlatePrice = full
	return nil
}

func (i *Item) setDiscountPercent(pct float64) error {
	if math.IsNaN(pct) || pct < 0 || pct >= 100 {
		return errs.NewValueIsOutOfRangeError("discountPercent", pct, 0, 100)
	}
	i.discountPercent = pct
	return nil
}
