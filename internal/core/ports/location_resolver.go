package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// LocationResolver resolves coordinates for parties whose profiles live
// outside this core: restaurant pickup points and customer addresses.
// The pricing engine and assignment dispatch consume the resolved points.
type LocationResolver interface {
	// RestaurantLocation resolves the restaurant's pickup coordinates.
	RestaurantLocation(ctx context.Context, restaurantID kernel.UUID) (kernel.GeoPoint, error)

	// CustomerLocation resolves the customer's default delivery
	// coordinates, used for pricing while the cart has no chosen address.
	CustomerLocation(ctx context.Context, customerID kernel.UUID) (kernel.GeoPoint, error)

	// AddressLocation resolves a specific delivery address chosen at
	// checkout.
	AddressLocation(ctx context.Context, addressID kernel.UUID) (kernel.GeoPoint, error)
}
