package cart

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/coupon"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrCartIsNotConstructed is returned when a Cart was not created through
	// the NewCart or RestoreCart factory functions.
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart or RestoreCart")

	// ErrItemNotInCart is returned when addressing a line the cart does not contain.
	ErrItemNotInCart = errors.New("item is not in the cart")
)

// QuantityAction selects the direction of a quantity update.
type QuantityAction int

const (
	// QuantityActionUnknown represents an invalid or undefined action.
	QuantityActionUnknown QuantityAction = iota

	// Increment raises a line's quantity by one.
	Increment

	// Decrement lowers a line's quantity by one; at quantity one the line is removed.
	Decrement
)

// Validate checks the action is one of the defined values.
func (a QuantityAction) Validate() error {
	if a != Increment && a != Decrement {
		return errs.NewValueIsInvalidErrorWithCause("quantityAction",
			fmt.Errorf("%d is not a valid quantity action", a))
	}
	return nil
}

// QuantityActionFromString parses the wire form "inc" or "dec".
func QuantityActionFromString(s string) (QuantityAction, error) {
	switch s {
	case "inc":
		return Increment, nil
	case "dec":
		return Decrement, nil
	default:
		return QuantityActionUnknown, errs.NewValueIsInvalidErrorWithCause("quantityAction",
			fmt.Errorf("%q is not a valid quantity action", s))
	}
}

// Cart is the aggregate root for a customer's staging area. One cart exists
// per customer; it is bound to a single restaurant while non-empty.
//
// Cart follows these invariants:
//   - All items belong to the bound restaurant
//   - Line identity is (menu item, variant); duplicates merge quantities
//   - Totals are derived and replaced wholesale after pricing, never edited
//   - Emptying the cart unbinds the restaurant and drops the coupon
//
// The version field supports optimistic concurrency in the persistence layer:
// two racing mutations to the same cart cannot both commit.
type Cart struct {
	id            kernel.UUID
	customerID    kernel.UUID
	restaurantID  *kernel.UUID
	items         []*Item
	appliedCoupon coupon.Snapshot
	totals        Totals
	version       int64

	isConstructed bool
}

// NewCart creates an empty cart for a customer. Carts are created lazily on
// the first item add.
func NewCart(id, customerID kernel.UUID) (*Cart, error) {
	c := &Cart{
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setCustomerID(customerID),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCart reconstructs a cart from persistence.
func RestoreCart(
	id, customerID kernel.UUID,
	restaurantID *kernel.UUID,
	items []*Item,
	appliedCoupon coupon.Snapshot,
	totals Totals,
	version int64,
) (*Cart, error) {
	c, err := NewCart(id, customerID)
	if err != nil {
		return nil, err
	}

	if restaurantID != nil {
		if err = restaurantID.Validate(); err != nil {
			return nil, err
		}
	}
	for _, item := range items {
		if err = item.Validate(); err != nil {
			return nil, err
		}
	}

	c.restaurantID = restaurantID
	c.items = items
	c.appliedCoupon = appliedCoupon
	c.totals = totals
	c.version = version
	return c, nil
}

// Validate ensures the cart was created through a factory function.
func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

// ID returns the cart's unique identifier.
func (c *Cart) ID() kernel.UUID {
	return c.id
}

// CustomerID returns the owning customer's identifier.
func (c *Cart) CustomerID() kernel.UUID {
	return c.customerID
}

// RestaurantID returns the bound restaurant, nil while the cart is empty.
func (c *Cart) RestaurantID() *kernel.UUID {
	return c.restaurantID
}

// Items returns the cart lines in insertion order.
func (c *Cart) Items() []*Item {
	return c.items
}

// AppliedCoupon returns the coupon snapshot taken at apply time.
// The zero snapshot means no coupon is applied.
func (c *Cart) AppliedCoupon() coupon.Snapshot {
	return c.appliedCoupon
}

// Totals returns the derived monetary summary.
func (c *Cart) Totals() Totals {
	return c.totals
}

// Version returns the optimistic concurrency version.
func (c *Cart) Version() int64 {
	return c.version
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// UpsertItem adds an item from the given restaurant, merging quantities when
// the (menu item, variant) line already exists.
//
// If the cart is bound to a different restaurant, the entire cart is cleared
// first and rebound: carts hold items from a single restaurant only. The
// returned flag reports whether that destructive switch happened so callers
// can warn the customer.
func (c *Cart) UpsertItem(restaurantID kernel.UUID, item *Item) (switched bool, err error) {
	if err = restaurantID.Validate(); err != nil {
		return false, err
	}
	if err = item.Validate(); err != nil {
		return false, err
	}

	if c.restaurantID != nil && !c.restaurantID.IsEqual(restaurantID) {
		c.Clear()
		switched = true
	}

	if c.restaurantID == nil {
		c.restaurantID = &restaurantID
	}

	for _, existing := range c.items {
		if existing.Key() == item.Key() {
			existing.addQuantity(item.Quantity())
			return switched, nil
		}
	}

	c.items = append(c.items, item)
	return switched, nil
}

// ChangeQuantity increments or decrements a line's quantity. Decrementing a
// line at quantity one removes it; removing the last line empties the cart.
// Returns ErrItemNotInCart when the line does not exist.
func (c *Cart) ChangeQuantity(key ItemKey, action QuantityAction) error {
	if err := action.Validate(); err != nil {
		return err
	}

	for idx, item := range c.items {
		if item.Key() != key {
			continue
		}

		switch action {
		case Increment:
			item.addQuantity(1)
		case Decrement:
			if item.Quantity() <= 1 {
				c.removeAt(idx)
			} else {
				item.decrementQuantity()
			}
		}
		return nil
	}

	return ErrItemNotInCart
}

// RemoveItem deletes a line regardless of its quantity.
// Returns ErrItemNotInCart when the line does not exist.
func (c *Cart) RemoveItem(key ItemKey) error {
	for idx, item := range c.items {
		if item.Key() == key {
			c.removeAt(idx)
			return nil
		}
	}
	return ErrItemNotInCart
}

// ApplyCoupon stores a coupon snapshot on the cart. Validation of the coupon
// against the subtotal happens in the pricing pass.
func (c *Cart) ApplyCoupon(snapshot coupon.Snapshot) {
	c.appliedCoupon = snapshot
}

// RemoveCoupon drops the applied coupon snapshot.
func (c *Cart) RemoveCoupon() {
	c.appliedCoupon = coupon.Snapshot{}
}

// Clear empties the cart: items are removed, the restaurant unbound, the
// coupon dropped, and totals zeroed. The cart record itself survives;
// checkout clears rather than deletes.
func (c *Cart) Clear() {
	c.items = nil
	c.restaurantID = nil
	c.appliedCoupon = coupon.Snapshot{}
	c.totals = Totals{}
}

// ApplyPricing replaces the derived totals after a full pricing pass.
// This is the only way totals change.
func (c *Cart) ApplyPricing(totals Totals) {
	c.totals = totals
}

// removeAt drops the line at idx, emptying the cart's bound state when the
// last line goes.
func (c *Cart) removeAt(idx int) {
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	if len(c.items) == 0 {
		c.Clear()
	}
}

func (c *Cart) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Cart) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}
