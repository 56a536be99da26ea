package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// ApplyCouponResult reports whether the coupon took effect. A coupon that
// exists but cannot be used right now is not an error: Applied is false and
// Reason explains why, leaving the cart unchanged.
type ApplyCouponResult struct {
	Applied bool
	Reason  string
	Totals  cart.Totals
}

// ApplyCouponCommandHandler attaches a coupon snapshot to the cart and
// reprices. Unknown codes surface as not-found errors; inactive coupons and
// unmet minimums come back as a declined result instead.
type ApplyCouponCommandHandler struct {
	uowFactory CartUoWFactory
	locker     ports.CartLocker
	pricer     cartPricer
}

// NewApplyCouponCommandHandler creates a handler for coupon application.
func NewApplyCouponCommandHandler(
	uowFactory CartUoWFactory,
	locker ports.CartLocker,
	locations ports.LocationResolver,
	charges ports.ChargeConfigProvider,
) ApplyCouponCommandHandler {
	return ApplyCouponCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		pricer:     newCartPricer(locations, charges),
	}
}

// Handle processes the coupon application under the customer's cart lock.
// The cart is only persisted when the coupon actually applied; a declined
// coupon leaves the stored cart exactly as it was.
func (h *ApplyCouponCommandHandler) Handle(ctx context.Context, cmd ApplyCouponCommand) (ApplyCouponResult, error) {
	if err := cmd.Validate(); err != nil {
		return ApplyCouponResult{}, err
	}

	release, err := h.locker.Acquire(ctx, cmd.CustomerID())
	if err != nil {
		return ApplyCouponResult{}, err
	}
	defer release()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return ApplyCouponResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	aggregate, err := cartRepo.GetByCustomer(ctx, cmd.CustomerID())
	if err != nil {
		return ApplyCouponResult{}, err
	}

	voucher, err := uow.CouponRepository().GetByCode(ctx, cmd.Code())
	if err != nil {
		return ApplyCouponResult{}, err
	}

	if !voucher.IsUsableAt(time.Now()) {
		return ApplyCouponResult{
			Applied: false,
			Reason:  services.ReasonCouponInactive,
			Totals:  aggregate.Totals(),
		}, nil
	}

	aggregate.ApplyCoupon(voucher.Snapshot())

	outcome, err := h.pricer.reprice(ctx, aggregate)
	if err != nil {
		return ApplyCouponResult{}, err
	}

	if !outcome.Applied {
		return ApplyCouponResult{
			Applied: false,
			Reason:  outcome.Reason,
			Totals:  aggregate.Totals(),
		}, nil
	}

	if err = cartRepo.Update(ctx, aggregate); err != nil {
		return ApplyCouponResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ApplyCouponResult{}, err
	}

	return ApplyCouponResult{Applied: true, Totals: aggregate.Totals()}, nil
}
