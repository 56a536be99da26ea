package rider

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// Domain errors for rider operations.
var (
	// ErrNameIsRequired is returned when attempting to create a rider without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrRiderIsNotConstructed is returned when using an improperly initialized Rider.
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider constructor")
)

// Rider represents a delivery rider in the marketplace.
// It is an aggregate root that manages rider identity and location.
//
// Key responsibilities:
//   - Managing rider identity (ID, name)
//   - Tracking the rider's last reported location
//
// Business rules:
//   - Rider must have a valid UUID and non-empty name
//   - Location is unknown until the rider's device reports one; riders
//     without a known location are invisible to assignment dispatch
//
// Example usage:
//
//	rider, err := NewRider(kernel.NewUUID(), "Asha")
//	if err != nil {
//	    // Handle construction error
//	}
//	point, _ := kernel.NewGeoPoint(12.97, 77.59)
//	_ = rider.UpdateLocation(point)
type Rider struct {
	// id uniquely identifies the rider
	id kernel.UUID
	// name is the human-readable name of the rider
	name string
	// location is the last reported position, nil while unknown
	location *kernel.GeoPoint
	// guard ensures the rider was properly constructed
	guard guard.ConstructorGuard
}

// NewRider creates a new Rider with the specified parameters.
// This is the only way to create a valid Rider instance.
//
// The rider starts without a known location and becomes eligible for
// assignment dispatch only after the first UpdateLocation call.
//
// Parameters:
//   - id: Unique identifier for the rider (must be valid UUID)
//   - name: Human-readable name (must be non-empty)
//
// Returns:
//   - *Rider: A fully initialized rider
//   - error: Validation error if any parameter is invalid
func NewRider(id kernel.UUID, name string) (*Rider, error) {
	r := &Rider{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRider reconstructs a Rider aggregate from persistent storage,
// including the last reported location when one exists.
func RestoreRider(id kernel.UUID, name string, location *kernel.GeoPoint) (*Rider, error) {
	r, err := NewRider(id, name)
	if err != nil {
		return nil, err
	}

	if location != nil {
		if err = location.Validate(); err != nil {
			return nil, err
		}
		r.location = location
	}

	return r, nil
}

// IsEqual compares two riders for equality based on their unique identifiers.
func (r *Rider) IsEqual(other *Rider) bool {
	if other == nil {
		return false
	}
	return r.id.IsEqual(other.id)
}

// Validate checks if the Rider was properly constructed using the NewRider
// constructor. The zero value of Rider is invalid and will fail this validation.
func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

// ID returns the unique identifier of the rider.
func (r *Rider) ID() kernel.UUID {
	return r.id
}

// Name returns the human-readable name of the rider.
func (r *Rider) Name() string {
	return r.name
}

// Location returns the rider's last reported position.
// Returns nil while the rider has never reported a location.
func (r *Rider) Location() *kernel.GeoPoint {
	return r.location
}

// HasKnownLocation reports whether the rider is visible to assignment
// dispatch.
func (r *Rider) HasKnownLocation() bool {
	return r.location != nil
}

// UpdateLocation records a fresh position reported by the rider's device.
func (r *Rider) UpdateLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	r.location = &location
	return nil
}

func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rider) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	r.name = name
	return nil
}
