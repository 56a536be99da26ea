package commands

import (
	"context"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/ports"
)

// RemoveCartItemResult reports the cart totals after the removal.
type RemoveCartItemResult struct {
	Totals cart.Totals
}

// RemoveCartItemCommandHandler drops one line from the customer's cart and
// reprices before persisting. Removing the last line resets the cart to the
// empty state, unbinding its restaurant.
type RemoveCartItemCommandHandler struct {
	uowFactory CartUoWFactory
	locker     ports.CartLocker
	pricer     cartPricer
}

// NewRemoveCartItemCommandHandler creates a handler for line removals.
func NewRemoveCartItemCommandHandler(
	uowFactory CartUoWFactory,
	locker ports.CartLocker,
	locations ports.LocationResolver,
	charges ports.ChargeConfigProvider,
) RemoveCartItemCommandHandler {
	return RemoveCartItemCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		pricer:     newCartPricer(locations, charges),
	}
}

// Handle processes the removal under the customer's cart lock.
func (h *RemoveCartItemCommandHandler) Handle(ctx context.Context, cmd RemoveCartItemCommand) (RemoveCartItemResult, error) {
	if err := cmd.Validate(); err != nil {
		return RemoveCartItemResult{}, err
	}

	release, err := h.locker.Acquire(ctx, cmd.CustomerID())
	if err != nil {
		return RemoveCartItemResult{}, err
	}
	defer release()

	key, err := cart.NewItemKey(cmd.MenuItemRef(), cmd.Variant())
	if err != nil {
		return RemoveCartItemResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return RemoveCartItemResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	aggregate, err := cartRepo.GetByCustomer(ctx, cmd.CustomerID())
	if err != nil {
		return RemoveCartItemResult{}, err
	}

	if err = aggregate.RemoveItem(key); err != nil {
		return RemoveCartItemResult{}, err
	}

	if _, err = h.pricer.reprice(ctx, aggregate); err != nil {
		return RemoveCartItemResult{}, err
	}

	if err = cartRepo.Update(ctx, aggregate); err != nil {
		return RemoveCartItemResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RemoveCartItemResult{}, err
	}

	return RemoveCartItemResult{Totals: aggregate.Totals()}, nil
}
