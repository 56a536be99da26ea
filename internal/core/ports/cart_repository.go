// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, the event publisher and
// external collaborators. Adapters implement these interfaces, enabling
// dependency inversion and testability.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for cart aggregates.
// One active cart exists per customer.
type CartRepository interface {
	// Add persists a new cart aggregate to storage.
	// The cart must be valid and the customer must not already have one.
	Add(ctx context.Context, aggregate *cart.Cart) error

	// Update persists changes to an existing cart aggregate using an
	// optimistic version check: the write succeeds only when the stored
	// version still matches the aggregate's loaded version, and bumps it.
	// A lost race surfaces as a version conflict error.
	Update(ctx context.Context, aggregate *cart.Cart) error

	// Get retrieves a cart aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error)

	// GetByCustomer retrieves the customer's active cart.
	// Returns an object-not-found error when the customer has no cart yet.
	GetByCustomer(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error)
}
