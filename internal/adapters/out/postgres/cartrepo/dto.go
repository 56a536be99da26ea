// Package cartrepo provides data transfer objects and mapping functions for cart persistence.
// This package implements the repository pattern for the cart domain aggregate, handling
// the conversion between domain entities and database representations.
package cartrepo

import (
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/coupon"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CartDTO represents the database structure for persisting cart aggregates.
// One row per customer; the coupon snapshot is denormalized into the row so
// deleting a coupon later never changes an already-priced cart.
type CartDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	RestaurantID *uuid.UUID `gorm:"type:uuid;index"`

	CouponCode               *string  `gorm:"type:varchar(64)"`
	CouponDiscountPercentage float64  `gorm:"not null;default:0"`
	CouponMaxDiscount        *float64 `gorm:""`
	CouponMinCart            *float64 `gorm:""`

	Totals  TotalsDTO `gorm:"embedded;embeddedPrefix:totals_"`
	Version int64     `gorm:"not null;default:0"`

	Items []CartItemDTO `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for cart entities.
// Overrides GORM's default naming convention to use "carts" instead of "cart_dtos".
func (CartDTO) TableName() string {
	return "carts"
}

// TotalsDTO represents the embedded monetary summary within the cart table.
// Column names are fixed: the read-side queries select them by name.
type TotalsDTO struct {
	TotalItems     int     `gorm:"column:total_items;not null"`
	SubTotal       float64 `gorm:"column:sub_total;not null"`
	TotalDiscount  float64 `gorm:"column:total_discount;not null"`
	GSTAmount      float64 `gorm:"column:gst_amount;not null"`
	DeliveryCharge float64 `gorm:"column:delivery_charge;not null"`
	PlatformCharge float64 `gorm:"column:platform_charge;not null"`
	PackingCharge  float64 `gorm:"column:packing_charge;not null"`
	CouponDiscount float64 `gorm:"column:coupon_discount;not null"`
	FinalAmount    float64 `gorm:"column:final_amount;not null"`
}

// CartItemDTO represents the database structure for persisting cart line items.
// The composite key mirrors the domain item key: one row per menu item and
// plate variant within a cart.
type CartItemDTO struct {
	CartID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	MenuItemRef     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Variant         int       `gorm:"primaryKey"`
	Name            string    `gorm:"type:varchar(255);not null"`
	Quantity        int       `gorm:"not null"`
	BasePrice       float64   `gorm:"not null"`
	HalfPlatePrice  float64   `gorm:"not null"`
	FullPlatePrice  float64   `gorm:"not null"`
	DiscountPercent float64   `gorm:"not null"`
}

// TableName specifies the database table name for cart item entities.
// Overrides GORM's default naming convention to use "cart_items" instead of "cart_item_dtos".
func (CartItemDTO) TableName() string {
	return "cart_items"
}

// fromDomain converts a cart domain aggregate to its database representation.
// Maps all aggregate state including items and the applied coupon snapshot.
func fromDomain(aggregate *cart.Cart) CartDTO {
	cartID := aggregate.ID().Bytes()

	var restaurantID *uuid.UUID
	if id := aggregate.RestaurantID(); id != nil {
		raw := id.Bytes()
		restaurantID = &raw
	}

	items := make([]CartItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, CartItemDTO{
			CartID:          cartID,
			MenuItemRef:     item.MenuItemRef().Bytes(),
			Variant:         int(item.Variant()),
			Name:            item.Name(),
			Quantity:        item.Quantity(),
			BasePrice:       item.BasePrice(),
			HalfPlatePrice:  item.HalfPlatePrice(),
			FullPlatePrice:  item.FullPlatePrice(),
			DiscountPercent: item.DiscountPercent(),
		})
	}

	dto := CartDTO{
		ID:           cartID,
		CustomerID:   aggregate.CustomerID().Bytes(),
		RestaurantID: restaurantID,
		Totals:       totalsFromDomain(aggregate.Totals()),
		Version:      aggregate.Version(),
		Items:        items,
	}

	if snapshot := aggregate.AppliedCoupon(); !snapshot.IsZero() {
		code := snapshot.Code()
		dto.CouponCode = &code
		dto.CouponDiscountPercentage = snapshot.DiscountPercentage()
		dto.CouponMaxDiscount = snapshot.MaxDiscountAmount()
		dto.CouponMinCart = snapshot.MinCartAmount()
	}

	return dto
}

// totalsFromDomain maps the derived totals value object to its embedded columns.
func totalsFromDomain(totals cart.Totals) TotalsDTO {
	return TotalsDTO{
		TotalItems:     totals.TotalItems,
		SubTotal:       totals.SubTotal,
		TotalDiscount:  totals.TotalDiscount,
		GSTAmount:      totals.GSTAmount,
		DeliveryCharge: totals.DeliveryCharge,
		PlatformCharge: totals.PlatformCharge,
		PackingCharge:  totals.PackingCharge,
		CouponDiscount: totals.CouponDiscount,
		FinalAmount:    totals.FinalAmount,
	}
}

// toDomain converts a database DTO to a cart domain aggregate.
// Reconstructs the complete aggregate including items and the coupon snapshot using RestoreCart.
func toDomain(dto CartDTO) (*cart.Cart, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var restaurantID *kernel.UUID
	if dto.RestaurantID != nil {
		rID, restaurantErr := kernel.UUIDFromBytes((*dto.RestaurantID)[:])
		if restaurantErr != nil {
			return nil, restaurantErr
		}
		restaurantID = &rID
	}

	items := make([]*cart.Item, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		item, itemErr := itemToDomain(itemDto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var snapshot coupon.Snapshot
	if dto.CouponCode != nil {
		snapshot, err = coupon.RestoreSnapshot(
			*dto.CouponCode,
			dto.CouponDiscountPercentage,
			dto.CouponMaxDiscount,
			dto.CouponMinCart,
		)
		if err != nil {
			return nil, err
		}
	}

	return cart.RestoreCart(id, customerID, restaurantID, items, snapshot, totalsToDomain(dto.Totals), dto.Version)
}

// itemToDomain converts a cart item DTO to a domain item.
// Uses NewItem so persisted rows pass the same validation as fresh ones.
func itemToDomain(dto CartItemDTO) (*cart.Item, error) {
	ref, err := kernel.UUIDFromBytes(dto.MenuItemRef[:])
	if err != nil {
		return nil, err
	}

	return cart.NewItem(
		ref,
		dto.Name,
		cart.PlateVariant(dto.Variant),
		dto.Quantity,
		dto.BasePrice,
		dto.HalfPlatePrice,
		dto.FullPlatePrice,
		dto.DiscountPercent,
	)
}

// totalsToDomain maps the embedded totals columns back to the value object.
func totalsToDomain(dto TotalsDTO) cart.Totals {
	return cart.Totals{
		TotalItems:     dto.TotalItems,
		SubTotal:       dto.SubTotal,
		TotalDiscount:  dto.TotalDiscount,
		GSTAmount:      dto.GSTAmount,
		DeliveryCharge: dto.DeliveryCharge,
		PlatformCharge: dto.PlatformCharge,
		PackingCharge:  dto.PackingCharge,
		CouponDiscount: dto.CouponDiscount,
		FinalAmount:    dto.FinalAmount,
	}
}
