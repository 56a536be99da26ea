package assignment

import (
	"errors"
	"fmt"
	"math"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrAssignmentIsNotConstructed is returned when an Assignment instance was
// not created through the NewAssignment or RestoreAssignment factory functions.
var ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment or RestoreAssignment")

// Assignment is a proposed pairing of one order to one candidate rider.
// The dispatcher creates a batch of Pending assignments for an order; the
// first rider to accept wins, the rest are canceled in the same operation.
//
// Assignment follows these invariants:
//   - Distances are frozen at creation time and only change on an explicit
//     rider-location refresh while still Pending
//   - Status transitions follow the offer state machine (Status)
//   - Can only be created through NewAssignment or RestoreAssignment
type Assignment struct {
	id      kernel.UUID
	orderID kernel.UUID
	riderID kernel.UUID

	// kilometers from the rider to the restaurant and from the restaurant
	// to the customer, computed when the offer is created
	pickupDistanceKm float64
	dropDistanceKm   float64

	status Status

	isConstructed bool
}

// NewAssignment creates a Pending offer for a rider with validation.
//
// Parameters:
//   - id: unique identifier for the assignment
//   - orderID: the order being offered
//   - riderID: the candidate rider
//   - pickupDistanceKm: rider-to-restaurant distance at dispatch time
//   - dropDistanceKm: restaurant-to-customer distance at dispatch time
//
// Returns:
//   - *Assignment: the created offer if all validations pass
//   - error: validation error if any parameter is invalid
func NewAssignment(id, orderID, riderID kernel.UUID, pickupDistanceKm, dropDistanceKm float64) (*Assignment, error) {
	a := &Assignment{
		status:        StatusPending,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setOrderID(orderID),
		a.setRiderID(riderID),
		a.setDistances(pickupDistanceKm, dropDistanceKm),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAssignment reconstructs an assignment from persistence.
func RestoreAssignment(
	id, orderID, riderID kernel.UUID,
	pickupDistanceKm, dropDistanceKm float64,
	status Status,
) (*Assignment, error) {
	a, err := NewAssignment(id, orderID, riderID, pickupDistanceKm, dropDistanceKm)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	a.status = status
	return a, nil
}

// Validate ensures the Assignment instance was properly constructed through
// a factory function.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

// IsEqual compares two assignments by their unique identifiers.
func (a *Assignment) IsEqual(other *Assignment) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the assignment's unique identifier.
func (a *Assignment) ID() kernel.UUID {
	return a.id
}

// OrderID returns the offered order's identifier.
func (a *Assignment) OrderID() kernel.UUID {
	return a.orderID
}

// RiderID returns the candidate rider's identifier.
func (a *Assignment) RiderID() kernel.UUID {
	return a.riderID
}

// PickupDistanceKm returns the rider-to-restaurant distance frozen at dispatch.
func (a *Assignment) PickupDistanceKm() float64 {
	return a.pickupDistanceKm
}

// DropDistanceKm returns the restaurant-to-customer distance frozen at dispatch.
func (a *Assignment) DropDistanceKm() float64 {
	return a.dropDistanceKm
}

// Status returns the current status of the offer.
func (a *Assignment) Status() Status {
	return a.status
}

// Accept marks the offer as the winner of the acceptance race.
//
// The assignment must be Pending. The caller is responsible for canceling
// sibling offers and stamping the rider on the order in the same transaction.
func (a *Assignment) Accept() error {
	newStatus, err := a.status.Accept()
	if err != nil {
		return err
	}

	a.status = newStatus
	return nil
}

// Pick records that the accepting rider collected the order.
func (a *Assignment) Pick() error {
	newStatus, err := a.status.Pick()
	if err != nil {
		return err
	}

	a.status = newStatus
	return nil
}

// Deliver records that the accepting rider completed the delivery.
func (a *Assignment) Deliver() error {
	newStatus, err := a.status.Deliver()
	if err != nil {
		return err
	}

	a.status = newStatus
	return nil
}

// Cancel withdraws a Pending offer, typically because a sibling won the race.
func (a *Assignment) Cancel() error {
	newStatus, err := a.status.Cancel()
	if err != nil {
		return err
	}

	a.status = newStatus
	return nil
}

// RefreshPickupDistance updates the rider-to-restaurant distance after an
// explicit rider-location refresh. Only Pending offers may be refreshed;
// accepted distances stay frozen.
func (a *Assignment) RefreshPickupDistance(pickupDistanceKm float64) error {
	if a.status != StatusPending {
		return errs.NewInvalidTransitionError("assignment", a.status.String(), "refresh")
	}
	return a.setDistances(pickupDistanceKm, a.dropDistanceKm)
}

func (a *Assignment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Assignment) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.orderID = id
	return nil
}

func (a *Assignment) setRiderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.riderID = id
	return nil
}

func (a *Assignment) setDistances(pickupKm, dropKm float64) error {
	for name, v := range map[string]float64{"pickupDistanceKm": pickupKm, "dropDistanceKm": dropKm} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return errs.NewValueIsInvalidErrorWithCause(name,
				fmt.Errorf("%f is not a valid distance", v))
		}
	}

	a.pickupDistanceKm = pickupKm
	a.dropDistanceKm = dropKm
	return nil
}
