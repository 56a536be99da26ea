package ports

import (
	"context"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/order"
)

// EventPublisher emits integration events on order and assignment lifecycle
// changes. Publication is best effort from the core's point of view: handlers
// log and swallow publisher failures rather than failing the triggering
// operation.
type EventPublisher interface {
	// OrderCreated announces a freshly checked-out order.
	OrderCreated(ctx context.Context, aggregate *order.Order) error

	// OrderStatusChanged announces a vendor- or rider-side transition.
	OrderStatusChanged(ctx context.Context, aggregate *order.Order) error

	// AssignmentAccepted announces the winner of an acceptance race.
	AssignmentAccepted(ctx context.Context, aggregate *assignment.Assignment) error
}
