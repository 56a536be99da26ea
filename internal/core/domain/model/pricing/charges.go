// Package pricing provides the admin-managed charge schedule consumed by the
// pricing engine. Charges are read-only value objects from the engine's
// perspective; administration of the schedule lives outside the core.
package pricing

import (
	"errors"
	"math"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ChargeKind distinguishes how a charge amount is interpreted.
type ChargeKind int

const (
	// ChargeKindUnknown represents an invalid or undefined kind.
	ChargeKindUnknown ChargeKind = iota

	// Fixed means the amount is taken as an absolute currency value.
	Fixed

	// Percentage means the amount is a percentage applied to a base value.
	Percentage
)

// String returns the human-readable name of the charge kind.
func (k ChargeKind) String() string {
	switch k {
	case Fixed:
		return "fixed"
	case Percentage:
		return "percentage"
	default:
		return "unknown"
	}
}

// Validate checks the kind is one of the defined values.
func (k ChargeKind) Validate() error {
	if k != Fixed && k != Percentage {
		return errs.NewValueIsInvalidError("chargeKind")
	}
	return nil
}

// Charge is a single named fee in the schedule: an amount, how to interpret
// it, and whether it currently applies. An inactive charge always evaluates
// to zero.
type Charge struct {
	amount float64
	kind   ChargeKind
	active bool
}

// NewCharge creates a charge. Amount must be finite and non-negative.
func NewCharge(amount float64, kind ChargeKind, active bool) (Charge, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return Charge{}, errs.NewValueIsInvalidError("chargeAmount")
	}
	if err := kind.Validate(); err != nil {
		return Charge{}, err
	}

	return Charge{amount: amount, kind: kind, active: active}, nil
}

// InactiveCharge returns a disabled charge that always evaluates to zero.
func InactiveCharge() Charge {
	return Charge{amount: 0, kind: Fixed, active: false}
}

// Amount returns the raw configured amount.
func (c Charge) Amount() float64 {
	return c.amount
}

// Kind returns how the amount is interpreted.
func (c Charge) Kind() ChargeKind {
	return c.kind
}

// IsActive reports whether the charge currently applies.
func (c Charge) IsActive() bool {
	return c.active
}

// ValueOn evaluates the charge against a base value.
// Inactive charges evaluate to zero; fixed charges ignore the base.
func (c Charge) ValueOn(base float64) float64 {
	if !c.active {
		return 0
	}
	if c.kind == Percentage {
		return base * c.amount / 100
	}
	return c.amount
}

// DeliveryBands describes the distance-banded delivery fee: a flat base charge
// up to a threshold distance, plus a per-km surcharge for every started km
// beyond it.
type DeliveryBands struct {
	baseCharge     float64
	baseDistanceKm float64
	perKmSurcharge float64
}

// NewDeliveryBands creates a delivery band configuration.
// All values must be finite and non-negative.
func NewDeliveryBands(baseCharge, baseDistanceKm, perKmSurcharge float64) (DeliveryBands, error) {
	for _, v := range []float64{baseCharge, baseDistanceKm, perKmSurcharge} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return DeliveryBands{}, errs.NewValueIsInvalidError("deliveryBands")
		}
	}

	return DeliveryBands{
		baseCharge:     baseCharge,
		baseDistanceKm: baseDistanceKm,
		perKmSurcharge: perKmSurcharge,
	}, nil
}

// BaseCharge returns the flat charge applied to every non-empty delivery.
func (d DeliveryBands) BaseCharge() float64 {
	return d.baseCharge
}

// BaseDistanceKm returns the distance covered by the flat base charge.
func (d DeliveryBands) BaseDistanceKm() float64 {
	return d.baseDistanceKm
}

// PerKmSurcharge returns the surcharge per started km beyond the base distance.
func (d DeliveryBands) PerKmSurcharge() float64 {
	return d.perKmSurcharge
}

// ChargeFor computes the delivery charge for a given distance.
// Fractional kilometers beyond the base distance are rounded up.
func (d DeliveryBands) ChargeFor(distanceKm float64) float64 {
	charge := d.baseCharge
	if distanceKm > d.baseDistanceKm {
		charge += d.perKmSurcharge * math.Ceil(distanceKm-d.baseDistanceKm)
	}
	return charge
}

// ErrChargeConfigIsNotConstructed is returned when using a zero-value ChargeConfig.
var ErrChargeConfigIsNotConstructed = errors.New(
	"ChargeConfig must be created via NewChargeConfig or DefaultChargeConfig")

// ChargeConfig is the complete fee schedule the pricing engine consumes:
// GST, platform and packing fees, the delivery distance bands, GST-on-delivery
// and the free-delivery threshold. It is immutable once constructed.
type ChargeConfig struct {
	gst           Charge
	platform      Charge
	packing       Charge
	gstOnDelivery Charge
	freeDelivery  Charge
	delivery      DeliveryBands

	guard guard.ConstructorGuard
}

// NewChargeConfig assembles a fee schedule from individual charges.
//
// Parameters:
//   - gst: percentage applied to the cart subtotal
//   - platform: flat fee applied whenever the cart is non-empty
//   - packing: fixed or percentage-of-subtotal packing fee
//   - gstOnDelivery: percentage applied to the delivery charge when active
//   - freeDelivery: fixed subtotal threshold above which delivery is free
//   - delivery: distance-banded delivery fee
func NewChargeConfig(
	gst, platform, packing, gstOnDelivery, freeDelivery Charge,
	delivery DeliveryBands,
) ChargeConfig {
	return ChargeConfig{
		gst:           gst,
		platform:      platform,
		packing:       packing,
		gstOnDelivery: gstOnDelivery,
		freeDelivery:  freeDelivery,
		delivery:      delivery,
		guard:         guard.NewConstructorGuard(),
	}
}

// DefaultChargeConfig returns the production defaults: 5% GST on the subtotal,
// a 10-unit platform fee, delivery at 20 units flat up to 5 km plus 2 units
// per started km beyond, packing / GST-on-delivery / free-delivery disabled.
func DefaultChargeConfig() ChargeConfig {
	gst, _ := NewCharge(5, Percentage, true)
	platform, _ := NewCharge(10, Fixed, true)
	delivery, _ := NewDeliveryBands(20, 5, 2)

	return NewChargeConfig(gst, platform, InactiveCharge(), InactiveCharge(), InactiveCharge(), delivery)
}

// Validate checks the config was built through a constructor.
func (c ChargeConfig) Validate() error {
	return c.guard.Validate(ErrChargeConfigIsNotConstructed)
}

// GST returns the GST charge applied to the cart subtotal.
func (c ChargeConfig) GST() Charge {
	return c.gst
}

// Platform returns the flat platform fee.
func (c ChargeConfig) Platform() Charge {
	return c.platform
}

// Packing returns the packing fee.
func (c ChargeConfig) Packing() Charge {
	return c.packing
}

// GSTOnDelivery returns the GST charge applied to the delivery fee.
func (c ChargeConfig) GSTOnDelivery() Charge {
	return c.gstOnDelivery
}

// FreeDeliveryThreshold returns the free-delivery threshold charge.
// When active, carts with a subtotal at or above Amount() pay no delivery fee.
func (c ChargeConfig) FreeDeliveryThreshold() Charge {
	return c.freeDelivery
}

// Delivery returns the distance-banded delivery fee configuration.
func (c ChargeConfig) Delivery() DeliveryBands {
	return c.delivery
}
