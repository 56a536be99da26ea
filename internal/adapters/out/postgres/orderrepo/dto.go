// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Both state machine positions are stored as integer columns so guarded
// writes can compare-and-swap on them directly.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	RestaurantID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	AddressID       uuid.UUID  `gorm:"type:uuid;not null"`
	PaymentMethod   int        `gorm:"not null"`
	Status          int        `gorm:"not null;index"`
	DeliveryStatus  int        `gorm:"not null;index"`
	AssignedRiderID *uuid.UUID `gorm:"type:uuid;index"`

	RestaurantLat float64 `gorm:"column:restaurant_lat;not null"`
	RestaurantLon float64 `gorm:"column:restaurant_lon;not null"`
	CustomerLat   float64 `gorm:"column:customer_lat;not null"`
	CustomerLon   float64 `gorm:"column:customer_lon;not null"`

	Totals TotalsDTO `gorm:"embedded;embeddedPrefix:totals_"`

	Lines []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// TotalsDTO represents the embedded monetary summary frozen at checkout.
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

// OrderLineDTO represents the database structure for persisting order lines.
// Lines are immutable price snapshots; they are written once at checkout.
type OrderLineDTO struct {
	OrderID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	MenuItemRef    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Variant        int       `gorm:"primaryKey"`
	Name           string    `gorm:"type:varchar(255);not null"`
	Quantity       int       `gorm:"not null"`
	UnitPrice      float64   `gorm:"not null"`
	DiscountAmount float64   `gorm:"not null"`
	FinalUnitPrice float64   `gorm:"not null"`
}

// TableName specifies the database table name for order line entities.
// Overrides GORM's default naming convention to use "order_lines".
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including lines and optional rider assignment.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	var riderID *uuid.UUID
	if id := aggregate.AssignedRider(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	lines := make([]OrderLineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		lines = append(lines, OrderLineDTO{
			OrderID:        orderID,
			MenuItemRef:    line.MenuItemRef().Bytes(),
			Variant:        int(line.Variant()),
			Name:           line.Name(),
			Quantity:       line.Quantity(),
			UnitPrice:      line.UnitPrice(),
			DiscountAmount: line.DiscountAmount(),
			FinalUnitPrice: line.FinalUnitPrice(),
		})
	}

	totals := aggregate.Totals()

	return OrderDTO{
		ID:              orderID,
		CustomerID:      aggregate.CustomerID().Bytes(),
		RestaurantID:    aggregate.RestaurantID().Bytes(),
		AddressID:       aggregate.AddressID().Bytes(),
		PaymentMethod:   int(aggregate.PaymentMethod()),
		Status:          int(aggregate.Status()),
		DeliveryStatus:  int(aggregate.DeliveryStatus()),
		AssignedRiderID: riderID,
		RestaurantLat:   aggregate.RestaurantLocation().Latitude(),
		RestaurantLon:   aggregate.RestaurantLocation().Longitude(),
		CustomerLat:     aggregate.CustomerLocation().Latitude(),
		CustomerLon:     aggregate.CustomerLocation().Longitude(),
		Totals: TotalsDTO{
			TotalItems:     totals.TotalItems,
			SubTotal:       totals.SubTotal,
			TotalDiscount:  totals.TotalDiscount,
			GSTAmount:      totals.GSTAmount,
			DeliveryCharge: totals.DeliveryCharge,
			PlatformCharge: totals.PlatformCharge,
			PackingCharge:  totals.PackingCharge,
			CouponDiscount: totals.CouponDiscount,
			FinalAmount:    totals.FinalAmount,
		},
		Lines: lines,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including both state machine positions using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	addressID, err := kernel.UUIDFromBytes(dto.AddressID[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.AssignedRiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.AssignedRiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}
		riderID = &rID
	}

	restaurantLocation, err := kernel.NewGeoPoint(dto.RestaurantLat, dto.RestaurantLon)
	if err != nil {
		return nil, err
	}

	customerLocation, err := kernel.NewGeoPoint(dto.CustomerLat, dto.CustomerLon)
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, lineDto := range dto.Lines {
		line, lineErr := lineToDomain(lineDto)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(
		id, customerID, restaurantID, addressID,
		order.PaymentMethod(dto.PaymentMethod),
		lines,
		totalsToDomain(dto.Totals),
		restaurantLocation, customerLocation,
		order.Status(dto.Status),
		order.DeliveryStatus(dto.DeliveryStatus),
		riderID,
	)
}

// lineToDomain converts an order line DTO to its domain value object.
func lineToDomain(dto OrderLineDTO) (order.Line, error) {
	ref, err := kernel.UUIDFromBytes(dto.MenuItemRef[:])
	if err != nil {
		return order.Line{}, err
	}

	return order.RestoreLine(
		ref,
		dto.Name,
		cart.PlateVariant(dto.Variant),
		dto.Quantity,
		dto.UnitPrice,
		dto.DiscountAmount,
		dto.FinalUnitPrice,
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
