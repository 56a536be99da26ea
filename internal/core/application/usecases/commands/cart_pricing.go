package commands

import (
	"context"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// cartPricer bundles the collaborators every cart mutation needs to run a
// full pricing pass before persisting: the fee schedule, the coordinates of
// both ends of the delivery, and the engine itself.
type cartPricer struct {
	locations ports.LocationResolver
	charges   ports.ChargeConfigProvider
	engine    services.PricingEngine
}

func newCartPricer(locations ports.LocationResolver, charges ports.ChargeConfigProvider) cartPricer {
	return cartPricer{
		locations: locations,
		charges:   charges,
		engine:    services.NewPricingEngine(),
	}
}

// reprice recomputes the cart's totals in place over the full current item
// list, using the customer's default delivery coordinates as the drop point.
// Mutating handlers call this before every persist so totals can never drift
// from their inputs.
func (p cartPricer) reprice(ctx context.Context, c *cart.Cart) (services.CouponOutcome, error) {
	if c.IsEmpty() {
		c.ApplyPricing(cart.Totals{})
		return services.CouponOutcome{}, nil
	}

	drop, err := p.locations.CustomerLocation(ctx, c.CustomerID())
	if err != nil {
		return services.CouponOutcome{}, err
	}

	return p.repriceTo(ctx, c, drop)
}

// repriceTo recomputes the cart's totals against an explicit drop point.
// Checkout uses it with the chosen delivery address, which may differ from
// the customer's default.
func (p cartPricer) repriceTo(ctx context.Context, c *cart.Cart, drop kernel.GeoPoint) (services.CouponOutcome, error) {
	if c.IsEmpty() {
		c.ApplyPricing(cart.Totals{})
		return services.CouponOutcome{}, nil
	}

	cfg, err := p.charges.Current(ctx)
	if err != nil {
		return services.CouponOutcome{}, err
	}

	restaurant, err := p.locations.RestaurantLocation(ctx, *c.RestaurantID())
	if err != nil {
		return services.CouponOutcome{}, err
	}
	distanceKm, err := restaurant.DistanceKm(drop)
	if err != nil {
		return services.CouponOutcome{}, err
	}

	totals, outcome, err := p.engine.Price(c, cfg, distanceKm)
	if err != nil {
		return services.CouponOutcome{}, err
	}

	c.ApplyPricing(totals)
	return outcome, nil
}
