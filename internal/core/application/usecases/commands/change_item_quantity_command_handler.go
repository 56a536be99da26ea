package commands

import (
	"context"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/ports"
)

// ChangeItemQuantityResult reports the cart totals after the quantity step.
type ChangeItemQuantityResult struct {
	Totals cart.Totals
}

// ChangeItemQuantityCommandHandler steps a cart line's quantity up or down
// by one and reprices the cart before persisting.
type ChangeItemQuantityCommandHandler struct {
	uowFactory CartUoWFactory
	locker     ports.CartLocker
	pricer     cartPricer
}

// NewChangeItemQuantityCommandHandler creates a handler for quantity steps.
func NewChangeItemQuantityCommandHandler(
	uowFactory CartUoWFactory,
	locker ports.CartLocker,
	locations ports.LocationResolver,
	charges ports.ChargeConfigProvider,
) ChangeItemQuantityCommandHandler {
	return ChangeItemQuantityCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		pricer:     newCartPricer(locations, charges),
	}
}

// Handle processes the quantity step under the customer's cart lock.
// Returns an item-not-in-cart error when the targeted line does not exist.
func (h *ChangeItemQuantityCommandHandler) Handle(ctx context.Context, cmd ChangeItemQuantityCommand) (ChangeItemQuantityResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeItemQuantityResult{}, err
	}

	release, err := h.locker.Acquire(ctx, cmd.CustomerID())
	if err != nil {
		return ChangeItemQuantityResult{}, err
	}
	defer release()

	key, err := cart.NewItemKey(cmd.MenuItemRef(), cmd.Variant())
	if err != nil {
		return ChangeItemQuantityResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return ChangeItemQuantityResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	aggregate, err := cartRepo.GetByCustomer(ctx, cmd.CustomerID())
	if err != nil {
		return ChangeItemQuantityResult{}, err
	}

	if err = aggregate.ChangeQuantity(key, cmd.Action()); err != nil {
		return ChangeItemQuantityResult{}, err
	}

	if _, err = h.pricer.reprice(ctx, aggregate); err != nil {
		return ChangeItemQuantityResult{}, err
	}

	if err = cartRepo.Update(ctx, aggregate); err != nil {
		return ChangeItemQuantityResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ChangeItemQuantityResult{}, err
	}

	return ChangeItemQuantityResult{Totals: aggregate.Totals()}, nil
}
