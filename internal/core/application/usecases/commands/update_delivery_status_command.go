package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand represents rider-side progress on an accepted
// assignment: picked up, delivered, or failed.
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID
	riderID      kernel.UUID
	target       order.DeliveryStatus

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a command to advance a delivery.
// Only "Picked", "Delivered" and "Failed" are reachable this way.
func NewUpdateDeliveryStatusCommand(assignmentID, riderID kernel.UUID, target string) (UpdateDeliveryStatusCommand, error) {
	cmd := UpdateDeliveryStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAssignmentID(assignmentID),
		cmd.setRiderID(riderID),
		cmd.setTarget(target),
	); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

// AssignmentID returns the targeted assignment's identifier.
func (c UpdateDeliveryStatusCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

// RiderID returns the reporting rider's identifier.
func (c UpdateDeliveryStatusCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Target returns the requested delivery status.
func (c UpdateDeliveryStatusCommand) Target() order.DeliveryStatus {
	return c.target
}

func (c *UpdateDeliveryStatusCommand) setAssignmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("assignmentID", err)
	}
	c.assignmentID = id
	return nil
}

func (c *UpdateDeliveryStatusCommand) setRiderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("riderID", err)
	}
	c.riderID = id
	return nil
}

func (c *UpdateDeliveryStatusCommand) setTarget(target string) error {
	parsed, err := order.DeliveryStatusFromString(target)
	if err != nil {
		return err
	}

	switch parsed {
	case order.DeliveryPicked, order.DeliveryDelivered, order.DeliveryFailed:
		c.target = parsed
		return nil
	default:
		return errs.NewValueIsInvalidError("target")
	}
}
