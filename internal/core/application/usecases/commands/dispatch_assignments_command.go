package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrDispatchAssignmentsCommandIsNotConstructed = errors.New(
	"DispatchAssignmentsCommand must be created via NewDispatchAssignmentsCommand constructor",
)

// DispatchAssignmentsCommand represents a request to fan assignment offers
// out to nearby riders for an accepted, still unassigned order.
type DispatchAssignmentsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDispatchAssignmentsCommand creates a command to dispatch offers for an
// order.
func NewDispatchAssignmentsCommand(orderID kernel.UUID) (DispatchAssignmentsCommand, error) {
	cmd := DispatchAssignmentsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return DispatchAssignmentsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchAssignmentsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchAssignmentsCommandIsNotConstructed)
}

// OrderID returns the targeted order's identifier.
func (c DispatchAssignmentsCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *DispatchAssignmentsCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}
	c.orderID = id
	return nil
}
