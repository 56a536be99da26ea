package ports

import (
	"context"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for assignment offers.
type AssignmentRepository interface {
	// Add persists a new assignment offer to storage.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// UpdateGuarded persists the aggregate's current state conditioned on
	// the stored row still holding the given previous status
	// (compare-and-swap). When the guard does not match, no row changes
	// and an invalid-transition error is returned; acceptance races are
	// decided by exactly this guard.
	UpdateGuarded(ctx context.Context, aggregate *assignment.Assignment, expectedStatus assignment.Status) error

	// Get retrieves an assignment offer by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// GetByOrder retrieves every offer ever created for an order,
	// regardless of status.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*assignment.Assignment, error)

	// GetTakenByOrder retrieves the order's accepted, picked or delivered
	// assignment. Returns an object-not-found error when no offer has been
	// accepted yet.
	GetTakenByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error)

	// GetOpenByRider retrieves the rider's currently held assignment
	// (accepted or picked). Returns an object-not-found error when the
	// rider is free.
	GetOpenByRider(ctx context.Context, riderID kernel.UUID) (*assignment.Assignment, error)

	// GetPendingByRider retrieves the rider's still-open offers, used to
	// refresh pickup distances on an explicit location update.
	GetPendingByRider(ctx context.Context, riderID kernel.UUID) ([]*assignment.Assignment, error)

	// CancelPendingSiblings moves every Pending offer of the order except
	// the winner to Canceled. Executed in the same transaction as the
	// winning acceptance.
	CancelPendingSiblings(ctx context.Context, orderID, winnerID kernel.UUID) error

	// CancelPendingByOrder moves every Pending offer of the order to
	// Canceled. Executed when the order leaves the dispatchable states, so
	// riders stop seeing offers for an order nobody can deliver anymore.
	CancelPendingByOrder(ctx context.Context, orderID kernel.UUID) error
}
