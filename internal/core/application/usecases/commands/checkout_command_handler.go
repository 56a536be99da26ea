package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrCartIsEmpty rejects checkout of a cart with no lines.
	ErrCartIsEmpty = errors.New("cart is empty")

	// ErrCouponNoLongerValid rejects checkout when the attached coupon
	// expired or was deactivated since it was applied. The customer must
	// see the corrected price before paying.
	ErrCouponNoLongerValid = errors.New("applied coupon is no longer valid")
)

// CheckoutResult reports the created order and its frozen totals.
type CheckoutResult struct {
	OrderID kernel.UUID
	Totals  cart.Totals
}

// CheckoutCommandHandler converts a cart into an order. The cart is repriced
// against the chosen delivery address, the coupon is re-validated, online
// payments are captured, and the cart clear plus order insert commit in one
// transaction.
//
// Example:
//
//	handler := NewCheckoutCommandHandler(uowFactory, locker, locations, charges, gateway, publisher, logger)
//	cmd, _ := NewCheckoutCommand(kernel.NewUUID(), customerID, addressID, "Online")
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("checkout failed: %w", err)
//	}
type CheckoutCommandHandler struct {
	uowFactory CheckoutUoWFactory
	locker     ports.CartLocker
	pricer     cartPricer
	locations  ports.LocationResolver
	gateway    ports.PaymentGateway
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCheckoutCommandHandler creates a handler for checkout operations.
func NewCheckoutCommandHandler(
	uowFactory CheckoutUoWFactory,
	locker ports.CartLocker,
	locations ports.LocationResolver,
	charges ports.ChargeConfigProvider,
	gateway ports.PaymentGateway,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		pricer:     newCartPricer(locations, charges),
		locations:  locations,
		gateway:    gateway,
		publisher:  publisher,
		logger:     logger.With("component", "checkout"),
	}
}

// Handle processes the checkout under the customer's cart lock.
// A payment capture failure surfaces as a dependency failure and nothing is
// persisted. The order-created event is published after commit, best effort.
func (h *CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (CheckoutResult, error) {
	if err := cmd.Validate(); err != nil {
		return CheckoutResult{}, err
	}

	release, err := h.locker.Acquire(ctx, cmd.CustomerID())
	if err != nil {
		return CheckoutResult{}, err
	}
	defer release()

	drop, err := h.locations.AddressLocation(ctx, cmd.AddressID())
	if err != nil {
		return CheckoutResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CheckoutResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	aggregate, err := cartRepo.GetByCustomer(ctx, cmd.CustomerID())
	if err != nil {
		return CheckoutResult{}, err
	}
	if aggregate.IsEmpty() {
		return CheckoutResult{}, ErrCartIsEmpty
	}

	if err = h.revalidateCoupon(ctx, uow, aggregate); err != nil {
		return CheckoutResult{}, err
	}

	if _, err = h.pricer.repriceTo(ctx, aggregate, drop); err != nil {
		return CheckoutResult{}, err
	}

	restaurantLocation, err := h.locations.RestaurantLocation(ctx, *aggregate.RestaurantID())
	if err != nil {
		return CheckoutResult{}, err
	}

	items := aggregate.Items()
	lines := make([]order.Line, 0, len(items))
	for _, item := range items {
		line, lineErr := order.LineFromCartItem(item)
		if lineErr != nil {
			return CheckoutResult{}, lineErr
		}
		lines = append(lines, line)
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		*aggregate.RestaurantID(),
		cmd.AddressID(),
		cmd.PaymentMethod(),
		lines,
		aggregate.Totals(),
		restaurantLocation,
		drop,
	)
	if err != nil {
		return CheckoutResult{}, err
	}

	if cmd.PaymentMethod() == order.OnlinePayment {
		if err = h.gateway.Capture(ctx, newOrder.ID(), newOrder.Totals().FinalAmount); err != nil {
			return CheckoutResult{}, errs.NewDependencyFailureError("payment", err)
		}
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return CheckoutResult{}, err
	}

	aggregate.Clear()
	if err = cartRepo.Update(ctx, aggregate); err != nil {
		return CheckoutResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CheckoutResult{}, err
	}

	if err = h.publisher.OrderCreated(ctx, newOrder); err != nil {
		h.logger.Warn("order created event publish failed",
			"orderID", newOrder.ID().String(), "error", err)
	}

	return CheckoutResult{OrderID: newOrder.ID(), Totals: newOrder.Totals()}, nil
}

// revalidateCoupon checks the attached coupon still exists and is usable at
// checkout time. A coupon that was deleted or deactivated since application
// fails the checkout so the price cannot silently change on the customer.
func (h *CheckoutCommandHandler) revalidateCoupon(ctx context.Context, uow CheckoutUoW, aggregate *cart.Cart) error {
	snapshot := aggregate.AppliedCoupon()
	if snapshot.IsZero() {
		return nil
	}

	voucher, err := uow.CouponRepository().GetByCode(ctx, snapshot.Code())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ErrCouponNoLongerValid
		}
		return err
	}
	if !voucher.IsUsableAt(time.Now()) {
		return ErrCouponNoLongerValid
	}

	return nil
}
