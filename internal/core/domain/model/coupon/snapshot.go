package coupon

import (
	"math"

	"marketplace/internal/pkg/errs"
)

// Snapshot is the coupon state a cart stores at apply time. Pricing passes
// evaluate the snapshot against the current subtotal without re-fetching the
// coupon, so catalog edits after apply never silently change a cart's price.
// The zero value is "no coupon applied".
type Snapshot struct {
	code               string
	discountPercentage float64
	maxDiscountAmount  *float64
	minCartAmount      *float64

	isConstructed bool
}

// RestoreSnapshot reconstructs a snapshot from persistence.
func RestoreSnapshot(code string, discountPercentage float64, maxDiscountAmount, minCartAmount *float64) (Snapshot, error) {
	if code == "" {
		return Snapshot{}, errs.NewValueIsRequiredError("couponCode")
	}
	if math.IsNaN(discountPercentage) || discountPercentage <= 0 || discountPercentage > 100 {
		return Snapshot{}, errs.NewValueIsOutOfRangeError("discountPercentage", discountPercentage, 0, 100)
	}

	return Snapshot{
		code:               code,
		discountPercentage: discountPercentage,
		maxDiscountAmount:  maxDiscountAmount,
		minCartAmount:      minCartAmount,
		isConstructed:      true,
	}, nil
}

// IsZero reports whether no coupon is applied.
func (s Snapshot) IsZero() bool {
	return !s.isConstructed
}

// Code returns the voucher code captured at apply time.
func (s Snapshot) Code() string {
	return s.code
}

// DiscountPercentage returns the percentage captured at apply time.
func (s Snapshot) DiscountPercentage() float64 {
	return s.discountPercentage
}

// MaxDiscountAmount returns the optional cap captured at apply time.
func (s Snapshot) MaxDiscountAmount() *float64 {
	return s.maxDiscountAmount
}

// MinCartAmount returns the optional minimum captured at apply time.
func (s Snapshot) MinCartAmount() *float64 {
	return s.minCartAmount
}

// MeetsMinimum reports whether the given subtotal satisfies the snapshot's
// minimum cart value, if one was set.
func (s Snapshot) MeetsMinimum(subTotal float64) bool {
	return s.minCartAmount == nil || subTotal >= *s.minCartAmount
}

// DiscountFor computes the coupon discount for a subtotal: the percentage of
// the subtotal rounded down to a whole currency unit, capped at the maximum
// discount when one was set. Returns zero when the minimum is not met.
func (s Snapshot) DiscountFor(subTotal float64) float64 {
	if s.IsZero() || !s.MeetsMinimum(subTotal) {
		return 0
	}

	discount := math.Floor(subTotal * s.discountPercentage / 100)
	if s.maxDiscountAmount != nil && discount > *s.maxDiscountAmount {
		discount = *s.maxDiscountAmount
	}
	return discount
}
