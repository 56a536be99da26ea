package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateRiderLocationCommandIsNotConstructed = errors.New(
	"UpdateRiderLocationCommand must be created via NewUpdateRiderLocationCommand constructor",
)

// UpdateRiderLocationCommand represents a rider position report.
type UpdateRiderLocationCommand struct { //nolint:recvcheck //using for validation
	riderID  kernel.UUID
	location kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateRiderLocationCommand creates a command to move a rider to the
// given coordinates.
func NewUpdateRiderLocationCommand(riderID kernel.UUID, lat, lon float64) (UpdateRiderLocationCommand, error) {
	cmd := UpdateRiderLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRiderID(riderID),
		cmd.setLocation(lat, lon),
	); err != nil {
		return UpdateRiderLocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateRiderLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRiderLocationCommandIsNotConstructed)
}

// RiderID returns the reporting rider's identifier.
func (c UpdateRiderLocationCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Location returns the reported coordinates.
func (c UpdateRiderLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *UpdateRiderLocationCommand) setRiderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("riderID", err)
	}
	c.riderID = id
	return nil
}

func (c *UpdateRiderLocationCommand) setLocation(lat, lon float64) error {
	location, err := kernel.NewGeoPoint(lat, lon)
	if err != nil {
		return err
	}
	c.location = location
	return nil
}
