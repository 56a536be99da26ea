package services

import (
	"fmt"
	"math"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/rider"
	"marketplace/internal/pkg/errs"
)

// DefaultAssignmentRadiusKm is the pickup radius used when no radius is
// configured: riders farther than this from the restaurant are not offered
// the order.
const DefaultAssignmentRadiusKm = 8.0

// AssignmentDispatcher is a domain service that selects candidate riders for
// an accepted order and produces the batch of Pending assignment offers.
//
// Key responsibilities:
//   - Filtering riders by known location and pickup radius
//   - Computing pickup and drop distances for each offer
//   - Producing one Pending assignment per qualifying rider
//
// Business rules:
//   - Only riders with a reported location are considered
//   - A rider qualifies iff their distance to the restaurant is within
//     the radius
//   - Zero qualifying riders is a valid outcome, not an error; the caller
//     may retry later or widen the radius
//
// Idempotence (skipping dispatch when offers already exist) is enforced by
// the application layer, which consults the assignment store before calling
// this service.
type AssignmentDispatcher struct {
	radiusKm float64
}

// NewAssignmentDispatcher creates a dispatcher with the given pickup radius
// in kilometers. A zero radius selects DefaultAssignmentRadiusKm.
func NewAssignmentDispatcher(radiusKm float64) (AssignmentDispatcher, error) {
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) || radiusKm < 0 {
		return AssignmentDispatcher{}, errs.NewValueIsInvalidErrorWithCause("radiusKm",
			fmt.Errorf("%f is not a valid radius", radiusKm))
	}
	if radiusKm == 0 {
		radiusKm = DefaultAssignmentRadiusKm
	}

	return AssignmentDispatcher{radiusKm: radiusKm}, nil
}

// RadiusKm returns the configured pickup radius.
func (d AssignmentDispatcher) RadiusKm() float64 {
	return d.radiusKm
}

// Dispatch produces Pending assignment offers for every rider within the
// pickup radius of the order's restaurant.
//
// Parameters:
//   - o: the order to offer (must be valid and in Accepted status)
//   - riders: the riders to consider; riders without a known location
//     are skipped
//
// Returns:
//   - []*assignment.Assignment: one Pending offer per qualifying rider;
//     empty when no rider is within the radius
//   - error: validation error, or an invalid-transition error when the
//     order is not ready for dispatch
func (d AssignmentDispatcher) Dispatch(o *order.Order, riders []*rider.Rider) ([]*assignment.Assignment, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Status() != order.Accepted || o.AssignedRider() != nil {
		return nil, errs.NewInvalidTransitionError("order", o.Status().String(), "dispatch")
	}

	dropDistanceKm, err := o.RestaurantLocation().DistanceKm(o.CustomerLocation())
	if err != nil {
		return nil, err
	}

	var offers []*assignment.Assignment
	for _, r := range riders {
		if err = r.Validate(); err != nil {
			return nil, err
		}
		if !r.HasKnownLocation() {
			continue
		}

		pickupDistanceKm, err := r.Location().DistanceKm(o.RestaurantLocation())
		if err != nil {
			return nil, err
		}
		if pickupDistanceKm > d.radiusKm {
			continue
		}

		offer, err := assignment.NewAssignment(kernel.NewUUID(), o.ID(), r.ID(), pickupDistanceKm, dropDistanceKm)
		if err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}

	return offers, nil
}
