package locationrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormLocationResolver implements LocationResolver over the restaurants,
// customers and addresses tables.
type GormLocationResolver struct {
	db *gorm.DB
}

// NewGormLocationResolver creates a new GORM location resolver.
func NewGormLocationResolver(db *gorm.DB) *GormLocationResolver {
	return &GormLocationResolver{db: db}
}

// RestaurantLocation resolves the restaurant's pickup coordinates.
func (r *GormLocationResolver) RestaurantLocation(ctx context.Context, restaurantID kernel.UUID) (kernel.GeoPoint, error) {
	var dto RestaurantLocationDTO
	if err := r.lookup(ctx, "restaurant", restaurantID, &dto); err != nil {
		return kernel.GeoPoint{}, err
	}
	return toGeoPoint("restaurant", restaurantID, dto.Lat, dto.Lon)
}

// CustomerLocation resolves the customer's default delivery coordinates.
func (r *GormLocationResolver) CustomerLocation(ctx context.Context, customerID kernel.UUID) (kernel.GeoPoint, error) {
	var dto CustomerLocationDTO
	if err := r.lookup(ctx, "customer", customerID, &dto); err != nil {
		return kernel.GeoPoint{}, err
	}
	return toGeoPoint("customer", customerID, dto.Lat, dto.Lon)
}

// AddressLocation resolves a delivery address chosen at checkout.
func (r *GormLocationResolver) AddressLocation(ctx context.Context, addressID kernel.UUID) (kernel.GeoPoint, error) {
	var dto AddressLocationDTO
	if err := r.lookup(ctx, "address", addressID, &dto); err != nil {
		return kernel.GeoPoint{}, err
	}
	return toGeoPoint("address", addressID, dto.Lat, dto.Lon)
}

func (r *GormLocationResolver) lookup(ctx context.Context, entity string, id kernel.UUID, dto any) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(entity+"ID", err)
	}

	if err := r.db.WithContext(ctx).First(dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError(entity, id)
		}
		return err
	}
	return nil
}

// toGeoPoint maps nullable coordinate columns to a GeoPoint. A profile
// without coordinates cannot be priced or dispatched against, so it reads
// as not found.
func toGeoPoint(entity string, id kernel.UUID, lat, lon *float64) (kernel.GeoPoint, error) {
	if lat == nil || lon == nil {
		return kernel.GeoPoint{}, errs.NewObjectNotFoundError(entity+"Location", id)
	}
	return kernel.NewGeoPoint(*lat, *lon)
}
