package cartrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB, tracker aggregateTracker) *GormCartRepository {
	return &GormCartRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new cart to the database.
// The unique index on customer_id enforces the one-cart-per-customer rule
// even when two first-add requests race past the application lock.
func (r *GormCartRepository) Add(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewAlreadyHandledErrorWithCause("cart", aggregate.CustomerID().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing cart to the database using an optimistic version
// check: the row is written only while it still holds the version the
// aggregate was loaded with, and the write bumps it. A lost race surfaces as
// a version conflict error and the caller retries from a fresh read.
func (r *GormCartRepository) Update(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// Updates with a struct skips zero values, which would leave cleared
	// totals and removed coupons behind. Write the columns explicitly.
	result := r.db.WithContext(ctx).Model(&CartDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(map[string]any{
			"restaurant_id":              dto.RestaurantID,
			"coupon_code":                dto.CouponCode,
			"coupon_discount_percentage": dto.CouponDiscountPercentage,
			"coupon_max_discount":        dto.CouponMaxDiscount,
			"coupon_min_cart":            dto.CouponMinCart,
			"totals_total_items":         dto.Totals.TotalItems,
			"totals_sub_total":           dto.Totals.SubTotal,
			"totals_total_discount":      dto.Totals.TotalDiscount,
			"totals_gst_amount":          dto.Totals.GSTAmount,
			"totals_delivery_charge":     dto.Totals.DeliveryCharge,
			"totals_platform_charge":     dto.Totals.PlatformCharge,
			"totals_packing_charge":      dto.Totals.PackingCharge,
			"totals_coupon_discount":     dto.Totals.CouponDiscount,
			"totals_final_amount":        dto.Totals.FinalAmount,
			"version":                    aggregate.Version() + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("cartVersion")
	}

	if err := r.replaceItems(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// replaceItems rewrites the cart's item rows to match the aggregate.
// Carts hold a handful of lines, so delete-and-insert beats diffing.
func (r *GormCartRepository) replaceItems(ctx context.Context, dto CartDTO) error {
	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", dto.ID).
		Delete(&CartItemDTO{}).Error; err != nil {
		return err
	}

	if len(dto.Items) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Create(&dto.Items).Error
}

// Get retrieves a cart by ID.
func (r *GormCartRepository) Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CartDTO
	if err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cart", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByCustomer retrieves the customer's active cart.
func (r *GormCartRepository) GetByCustomer(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dto CartDTO
	if err := r.db.WithContext(ctx).Preload("Items").First(&dto, "customer_id = ?", customerID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cart", customerID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
