package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the vendor-visible lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──┬──> Accepted ──> Picked ──> Delivered
//	          ├──> Rejected
//	          └──> Cancelled <── Accepted
//
// Delivered, Rejected and Cancelled are terminal: no transition leaves them.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	// Orders in this status are waiting for the vendor's decision.
	Pending

	// Accepted indicates the vendor has taken the order. Rider
	// assignment happens while the order is in this status.
	Accepted

	// Rejected indicates the vendor declined the order.
	// This is a final state with no further transitions allowed.
	Rejected

	// Picked indicates the assigned rider has collected the order
	// from the restaurant.
	Picked

	// Delivered indicates the order reached the customer.
	// This is a final state with no further transitions allowed.
	Delivered

	// Cancelled indicates the customer or an admin withdrew the order
	// before pickup. This is a final state.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Accepted:  "Accepted",
		Rejected:  "Rejected",
		Picked:    "Picked",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Accepted:  "Accepted",
		Rejected:  "Rejected",
		Picked:    "Picked",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// Validate checks if the Status value is valid.
//
// Unknown (0) and any undefined values are invalid. This method is used
// to ensure Status values from external sources (e.g., database, API)
// are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status name as used in requests and persistence.
// It accepts the String() forms of valid statuses only.
func StatusFromString(value string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == value {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", value))
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Rejected || s == Cancelled
}

// Accept transitions the status to Accepted.
//
// Valid transitions:
//   - Pending -> Accepted (vendor takes the order)
//
// Returns:
//   - (Accepted, nil) on valid transition
//   - (0, error) if the transition is not allowed from the current status
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidTransitionError("order", s.String(), "accept")
	}
	return Accepted, nil
}

// Reject transitions the status to Rejected.
//
// Valid transitions:
//   - Pending -> Rejected (vendor declines the order)
//
// Rejected is a final state with no further transitions possible.
func (s Status) Reject() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidTransitionError("order", s.String(), "reject")
	}
	return Rejected, nil
}

// Pick transitions the status to Picked.
//
// Valid transitions:
//   - Accepted -> Picked (rider collects the order from the restaurant)
func (s Status) Pick() (Status, error) {
	if s != Accepted {
		return 0, errs.NewInvalidTransitionError("order", s.String(), "pick")
	}
	return Picked, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - Picked -> Delivered (rider hands the order to the customer)
//
// Delivered is a final state with no further transitions possible.
func (s Status) Deliver() (Status, error) {
	if s != Picked {
		return 0, errs.NewInvalidTransitionError("order", s.String(), "deliver")
	}
	return Delivered, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled
//   - Accepted -> Cancelled
//
// Once the rider has picked the order up it can no longer be cancelled.
// Cancelled is a final state with no further transitions possible.
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Accepted {
		return 0, errs.NewInvalidTransitionError("order", s.String(), "cancel")
	}
	return Cancelled, nil
}
