package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// MenuItem is the catalog read model the cart captures prices from at add
// time. Later catalog edits do not move lines already in a cart.
type MenuItem struct {
	MenuItemRef     kernel.UUID
	RestaurantID    kernel.UUID
	Name            string
	BasePrice       float64
	HalfPlatePrice  float64
	FullPlatePrice  float64
	DiscountPercent float64
}

// MenuCatalog looks up menu items in the restaurant catalog, which is
// managed outside this core.
type MenuCatalog interface {
	// GetItem retrieves a menu item by its reference.
	// Returns an object-not-found error for unknown references.
	GetItem(ctx context.Context, menuItemRef kernel.UUID) (MenuItem, error)
}
