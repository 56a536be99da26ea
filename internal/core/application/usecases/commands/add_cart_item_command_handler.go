package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// AddCartItemResult reports the outcome of an add-to-cart mutation.
// Switched is true when the item came from a different restaurant than the
// cart held, which cleared the previous contents.
type AddCartItemResult struct {
	Switched bool
	Totals   cart.Totals
}

// AddCartItemCommandHandler adds a menu item to the customer's cart,
// creating the cart on first use. Prices are captured from the catalog at
// add time and the cart is fully repriced before persisting.
//
// Example:
//
//	handler := NewAddCartItemCommandHandler(uowFactory, locker, catalog, locations, charges)
//	cmd, _ := NewAddCartItemCommand(customerID, menuItemRef, 2, false, true)
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("add to cart failed: %w", err)
//	}
type AddCartItemCommandHandler struct {
	uowFactory CartUoWFactory
	locker     ports.CartLocker
	catalog    ports.MenuCatalog
	pricer     cartPricer
}

// NewAddCartItemCommandHandler creates a handler for add-to-cart operations.
func NewAddCartItemCommandHandler(
	uowFactory CartUoWFactory,
	locker ports.CartLocker,
	catalog ports.MenuCatalog,
	locations ports.LocationResolver,
	charges ports.ChargeConfigProvider,
) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		catalog:    catalog,
		pricer:     newCartPricer(locations, charges),
	}
}

// Handle processes the add-to-cart command under the customer's cart lock.
// A first add creates the cart; an add from a different restaurant clears
// the cart, drops its coupon and binds the new restaurant.
func (h *AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) (AddCartItemResult, error) {
	if err := cmd.Validate(); err != nil {
		return AddCartItemResult{}, err
	}

	release, err := h.locker.Acquire(ctx, cmd.CustomerID())
	if err != nil {
		return AddCartItemResult{}, err
	}
	defer release()

	menuItem, err := h.catalog.GetItem(ctx, cmd.MenuItemRef())
	if err != nil {
		return AddCartItemResult{}, err
	}

	item, err := cart.NewItem(
		menuItem.MenuItemRef,
		menuItem.Name,
		cmd.Variant(),
		cmd.Quantity(),
		menuItem.BasePrice,
		menuItem.HalfPlatePrice,
		menuItem.FullPlatePrice,
		menuItem.DiscountPercent,
	)
	if err != nil {
		return AddCartItemResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return AddCartItemResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	aggregate, err := cartRepo.GetByCustomer(ctx, cmd.CustomerID())
	isNew := false
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return AddCartItemResult{}, err
		}
		aggregate, err = cart.NewCart(kernel.NewUUID(), cmd.CustomerID())
		if err != nil {
			return AddCartItemResult{}, err
		}
		isNew = true
	}

	switched, err := aggregate.UpsertItem(menuItem.RestaurantID, item)
	if err != nil {
		return AddCartItemResult{}, err
	}

	if _, err = h.pricer.reprice(ctx, aggregate); err != nil {
		return AddCartItemResult{}, err
	}

	if isNew {
		err = cartRepo.Add(ctx, aggregate)
	} else {
		err = cartRepo.Update(ctx, aggregate)
	}
	if err != nil {
		return AddCartItemResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AddCartItemResult{}, err
	}

	return AddCartItemResult{Switched: switched, Totals: aggregate.Totals()}, nil
}
