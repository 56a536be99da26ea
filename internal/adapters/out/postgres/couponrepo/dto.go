// Package couponrepo provides the read-only persistence adapter for coupons.
// Coupons are managed by back-office tooling; the core only resolves codes.
package couponrepo

import (
	"time"

	"marketplace/internal/core/domain/model/coupon"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CouponDTO represents the database structure for persisting coupons.
type CouponDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Code               string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	DiscountPercentage float64    `gorm:"not null"`
	MaxDiscountAmount  *float64   `gorm:""`
	MinCartAmount      *float64   `gorm:""`
	ExpiresAt          *time.Time `gorm:""`
	IsActive           bool       `gorm:"not null;default:true"`
}

// TableName specifies the database table name for coupon entities.
// Overrides GORM's default naming convention to use "coupons".
func (CouponDTO) TableName() string {
	return "coupons"
}

// toDomain converts a database DTO to a coupon domain aggregate using RestoreCoupon.
func toDomain(dto CouponDTO) (*coupon.Coupon, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return coupon.RestoreCoupon(
		id,
		dto.Code,
		dto.DiscountPercentage,
		dto.MaxDiscountAmount,
		dto.MinCartAmount,
		dto.ExpiresAt,
		dto.IsActive,
	)
}
