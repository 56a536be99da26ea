package services

import (
	"fmt"
	"math"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/pricing"
	"marketplace/internal/pkg/errs"
)

// Coupon outcome reasons returned to the customer when a coupon could not be
// applied. These are business outcomes, not errors: the cart is priced
// without the coupon and the reason travels with the result.
const (
	ReasonMinimumNotMet  = "minimum cart value not met"
	ReasonCouponInactive = "coupon inactive"
)

// CouponOutcome describes what happened to the cart's coupon during a
// pricing pass.
type CouponOutcome struct {
	// Applied reports whether the coupon discount entered the totals.
	Applied bool
	// Reason explains a non-applied coupon; empty when Applied or when
	// no coupon was on the cart.
	Reason string
	// Discount is the amount subtracted from the final total.
	Discount float64
}

// PricingEngine is a domain service that derives a cart's complete monetary
// summary from its items, its coupon snapshot and the fee schedule.
//
// Pricing is a pure, full recomputation: every mutating cart operation runs
// the whole pass over the current item list, so totals can never drift from
// their inputs. Re-pricing an already priced cart yields identical totals.
//
// Business rules:
//   - An empty cart prices to all-zero totals regardless of configuration
//   - GST and packing apply on the item subtotal; GST-on-delivery applies
//     on the delivery charge
//   - Delivery is distance-banded and waived above the free-delivery
//     threshold when one is configured
//   - The platform fee applies to every non-empty cart
//   - Coupon rejection is an outcome, never an error: the cart is priced
//     without the coupon and the reason is reported
//
// Example usage:
//
//	engine := NewPricingEngine()
//	totals, outcome, err := engine.Price(c, pricing.DefaultChargeConfig(), 7.0)
//	if err != nil {
//	    // invalid input, not a business rejection
//	}
//	if !outcome.Applied && outcome.Reason != "" {
//	    // surface the coupon rejection to the customer
//	}
type PricingEngine struct{}

// NewPricingEngine creates a new PricingEngine instance.
func NewPricingEngine() PricingEngine {
	return PricingEngine{}
}

// Price computes the cart's totals against a fee schedule and the delivery
// distance between restaurant and customer in kilometers.
//
// Parameters:
//   - c: the cart to price (must be valid)
//   - cfg: the fee schedule (must be constructed)
//   - deliveryDistanceKm: restaurant-to-customer distance; ignored for
//     empty carts
//
// Returns:
//   - cart.Totals: the complete derived summary
//   - CouponOutcome: whether and why the coupon did or did not apply
//   - error: validation error on invalid input only
func (e PricingEngine) Price(c *cart.Cart, cfg pricing.ChargeConfig, deliveryDistanceKm float64) (cart.Totals, CouponOutcome, error) {
	if err := c.Validate(); err != nil {
		return cart.Totals{}, CouponOutcome{}, err
	}
	if err := cfg.Validate(); err != nil {
		return cart.Totals{}, CouponOutcome{}, err
	}
	if math.IsNaN(deliveryDistanceKm) || math.IsInf(deliveryDistanceKm, 0) || deliveryDistanceKm < 0 {
		return cart.Totals{}, CouponOutcome{}, errs.NewValueIsInvalidErrorWithCause("deliveryDistanceKm",
			fmt.Errorf("%f is not a valid distance", deliveryDistanceKm))
	}

	if c.IsEmpty() {
		return cart.Totals{}, CouponOutcome{}, nil
	}

	totals := cart.Totals{}
	for _, item := range c.Items() {
		quantity := float64(item.Quantity())
		totals.TotalItems += item.Quantity()
		totals.SubTotal += item.FinalUnitPrice() * quantity
		totals.TotalDiscount += item.DiscountAmount() * quantity
	}

	totals.GSTAmount = cfg.GST().ValueOn(totals.SubTotal)
	totals.PlatformCharge = cfg.Platform().ValueOn(totals.SubTotal)
	totals.PackingCharge = cfg.Packing().ValueOn(totals.SubTotal)
	totals.DeliveryCharge = e.deliveryCharge(cfg, totals.SubTotal, deliveryDistanceKm)
	totals.GSTAmount += cfg.GSTOnDelivery().ValueOn(totals.DeliveryCharge)

	outcome := e.applyCoupon(c, totals.SubTotal)
	totals.CouponDiscount = outcome.Discount

	totals.FinalAmount = totals.SubTotal +
		totals.GSTAmount +
		totals.DeliveryCharge +
		totals.PlatformCharge +
		totals.PackingCharge -
		totals.CouponDiscount

	return totals, outcome, nil
}

// deliveryCharge evaluates the distance bands, waiving the fee entirely when
// the subtotal clears an active free-delivery threshold.
func (e PricingEngine) deliveryCharge(cfg pricing.ChargeConfig, subTotal, distanceKm float64) float64 {
	threshold := cfg.FreeDeliveryThreshold()
	if threshold.IsActive() && subTotal >= threshold.Amount() {
		return 0
	}
	return cfg.Delivery().ChargeFor(distanceKm)
}

// applyCoupon evaluates the cart's coupon snapshot against the subtotal.
func (e PricingEngine) applyCoupon(c *cart.Cart, subTotal float64) CouponOutcome {
	snapshot := c.AppliedCoupon()
	if snapshot.IsZero() {
		return CouponOutcome{}
	}

	if !snapshot.MeetsMinimum(subTotal) {
		return CouponOutcome{Reason: ReasonMinimumNotMet}
	}

	return CouponOutcome{
		Applied:  true,
		Discount: snapshot.DiscountFor(subTotal),
	}
}
