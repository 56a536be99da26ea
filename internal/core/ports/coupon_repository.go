package ports

import (
	"context"

	"marketplace/internal/core/domain/model/coupon"
)

// CouponRepository defines the read contract for coupons. Coupons are
// admin-managed elsewhere; the core only looks them up by code.
type CouponRepository interface {
	// GetByCode retrieves a coupon by its unique voucher code.
	// Returns an object-not-found error for unknown codes.
	GetByCode(ctx context.Context, code string) (*coupon.Coupon, error)
}
