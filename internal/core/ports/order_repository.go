package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate without a
	// status guard. Used for fields outside the state machines.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateGuarded persists the aggregate's current state conditioned on
	// the stored row still holding the given previous statuses
	// (compare-and-swap). When the guard does not match, no row changes
	// and an invalid-transition error is returned; the caller re-reads to
	// decide whether the action was already applied.
	UpdateGuarded(ctx context.Context, aggregate *order.Order, expectedStatus order.Status, expectedDeliveryStatus order.DeliveryStatus) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllUnassigned retrieves accepted orders whose delivery sub-state
	// is still pending, meaning no rider has the order yet. Feeds the
	// dispatch retry job and the admin read model.
	GetAllUnassigned(ctx context.Context) ([]*order.Order, error)
}
