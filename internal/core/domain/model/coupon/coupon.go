// Package coupon provides the coupon entity and the apply-time snapshot the
// cart keeps. Coupons themselves are admin-managed elsewhere; from the pricing
// side they are read-only.
package coupon

import (
	"errors"
	"math"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrCouponIsNotConstructed is returned when a Coupon was not created through
// the NewCoupon or RestoreCoupon factory functions.
var ErrCouponIsNotConstructed = errors.New("Coupon must be created via NewCoupon or RestoreCoupon")

// Coupon is a discount voucher: a percentage off the cart subtotal, optionally
// capped, optionally gated on a minimum cart value, optionally expiring.
//
// Invariants:
//   - Code is non-empty and stored upper-cased
//   - Discount percentage lies in (0, 100]
//   - Optional cap and minimum, when present, are positive finite values
type Coupon struct {
	id                 kernel.UUID
	code               string
	discountPercentage float64
	maxDiscountAmount  *float64
	minCartAmount      *float64
	expiresAt          *time.Time
	isActive           bool

	isConstructed bool
}

// NewCoupon creates a validated coupon.
//
// Parameters:
//   - id: unique identifier
//   - code: voucher code, case-insensitive, stored upper-cased
//   - discountPercentage: percentage off the subtotal, in (0, 100]
//   - maxDiscountAmount: optional cap on the computed discount
//   - minCartAmount: optional minimum subtotal required to apply
//   - expiresAt: optional expiry instant
//   - isActive: whether the coupon is currently enabled
func NewCoupon(
	id kernel.UUID,
	code string,
	discountPercentage float64,
	maxDiscountAmount *float64,
	minCartAmount *float64,
	expiresAt *time.Time,
	isActive bool,
) (*Coupon, error) {
	c := &Coupon{
		isActive:      isActive,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setCode(code),
		c.setDiscountPercentage(discountPercentage),
		c.setMaxDiscountAmount(maxDiscountAmount),
		c.setMinCartAmount(minCartAmount),
	); err != nil {
		return nil, err
	}

	c.expiresAt = expiresAt
	return c, nil
}

// RestoreCoupon reconstructs a coupon from persistence, applying the same
// validation as NewCoupon.
func RestoreCoupon(
	id kernel.UUID,
	code string,
	discountPercentage float64,
	maxDiscountAmount *float64,
	minCartAmount *float64,
	expiresAt *time.Time,
	isActive bool,
) (*Coupon, error) {
	return NewCoupon(id, code, discountPercentage, maxDiscountAmount, minCartAmount, expiresAt, isActive)
}

// Validate ensures the coupon was constructed through a factory function.
func (c *Coupon) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCouponIsNotConstructed
	}
	return nil
}

// ID returns the coupon's unique identifier.
func (c *Coupon) ID() kernel.UUID {
	return c.id
}

// Code returns the upper-cased voucher code.
func (c *Coupon) Code() string {
	return c.code
}

// DiscountPercentage returns the percentage off the subtotal.
func (c *Coupon) DiscountPercentage() float64 {
	return c.discountPercentage
}

// MaxDiscountAmount returns the optional discount cap, nil when uncapped.
func (c *Coupon) MaxDiscountAmount() *float64 {
	return c.maxDiscountAmount
}

// MinCartAmount returns the optional minimum subtotal, nil when absent.
func (c *Coupon) MinCartAmount() *float64 {
	return c.minCartAmount
}

// ExpiresAt returns the optional expiry instant, nil when the coupon never expires.
func (c *Coupon) ExpiresAt() *time.Time {
	return c.expiresAt
}

// IsActive reports whether the coupon is administratively enabled.
func (c *Coupon) IsActive() bool {
	return c.isActive
}

// IsUsableAt reports whether the coupon can be applied at the given instant:
// it must be active and not expired.
func (c *Coupon) IsUsableAt(at time.Time) bool {
	if !c.isActive {
		return false
	}
	if c.expiresAt != nil && !c.expiresAt.After(at) {
		return false
	}
	return true
}

// Snapshot captures the coupon's pricing-relevant fields for storage on a
// cart. Later pricing passes re-validate the snapshot, never re-fetch the
// coupon.
func (c *Coupon) Snapshot() Snapshot {
	return Snapshot{
		code:               c.code,
		discountPercentage: c.discountPercentage,
		maxDiscountAmount:  c.maxDiscountAmount,
		minCartAmount:      c.minCartAmount,
		isConstructed:      true,
	}
}

func (c *Coupon) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Coupon) setCode(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return errs.NewValueIsRequiredError("couponCode")
	}
	c.code = code
	return nil
}

func (c *Coupon) setDiscountPercentage(pct float64) error {
	if math.IsNaN(pct) || pct <= 0 || pct > 100 {
		return errs.NewValueIsOutOfRangeError("discountPercentage", pct, 0, 100)
	}
	c.discountPercentage = pct
	return nil
}

func (c *Coupon) setMaxDiscountAmount(v *float64) error {
	if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0) {
		return errs.NewValueIsInvalidError("maxDiscountAmount")
	}
	c.maxDiscountAmount = v
	return nil
}

func (c *Coupon) setMinCartAmount(v *float64) error {
	if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0) {
		return errs.NewValueIsInvalidError("minCartAmount")
	}
	c.minCartAmount = v
	return nil
}
