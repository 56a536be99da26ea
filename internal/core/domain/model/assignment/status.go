package assignment

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an assignment offer.
//
// State transitions:
//
//	Pending ──┬──> Accepted ──> Picked ──> Delivered
//	          └──> Canceled
//
// Many assignments for the same order may sit in Pending at once; the first
// rider to accept wins and every sibling moves to Canceled in the same
// operation. Delivered and Canceled are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending is the initial status of a broadcast offer, waiting
	// for one of the candidate riders to accept.
	StatusPending

	// StatusAccepted indicates this offer won the acceptance race.
	// Exactly one assignment per order can ever reach this status.
	StatusAccepted

	// StatusPicked indicates the accepting rider collected the order.
	StatusPicked

	// StatusDelivered indicates the accepting rider completed the delivery.
	// This is a final state.
	StatusDelivered

	// StatusCanceled indicates the offer lost the acceptance race or was
	// withdrawn. This is a final state.
	StatusCanceled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "Unknown",
		StatusPending:   "Pending",
		StatusAccepted:  "Accepted",
		StatusPicked:    "Picked",
		StatusDelivered: "Delivered",
		StatusCanceled:  "Canceled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:   "Pending",
		StatusAccepted:  "Accepted",
		StatusPicked:    "Picked",
		StatusDelivered: "Delivered",
		StatusCanceled:  "Canceled",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status name as used in requests and persistence.
func StatusFromString(value string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == value {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", value))
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCanceled
}

// IsTaken reports whether the offer was accepted at some point, meaning a
// rider owns or owned the order through this assignment.
func (s Status) IsTaken() bool {
	return s == StatusAccepted || s == StatusPicked || s == StatusDelivered
}

// Accept transitions the status to StatusAccepted.
//
// Valid transitions:
//   - Pending -> Accepted (this offer won the race)
//
// An assignment that is no longer Pending was already handled by another
// rider or canceled; callers translate that into the already-handled reply.
func (s Status) Accept() (Status, error) {
	if s != StatusPending {
		return 0, errs.NewInvalidTransitionError("assignment", s.String(), "accept")
	}
	return StatusAccepted, nil
}

// Pick transitions the status to StatusPicked.
//
// Valid transitions:
//   - Accepted -> Picked
func (s Status) Pick() (Status, error) {
	if s != StatusAccepted {
		return 0, errs.NewInvalidTransitionError("assignment", s.String(), "pick")
	}
	return StatusPicked, nil
}

// Deliver transitions the status to StatusDelivered.
//
// Valid transitions:
//   - Picked -> Delivered
func (s Status) Deliver() (Status, error) {
	if s != StatusPicked {
		return 0, errs.NewInvalidTransitionError("assignment", s.String(), "deliver")
	}
	return StatusDelivered, nil
}

// Cancel transitions the status to StatusCanceled.
//
// Valid transitions:
//   - Pending -> Canceled (offer lost the race or was withdrawn)
func (s Status) Cancel() (Status, error) {
	if s != StatusPending {
		return 0, errs.NewInvalidTransitionError("assignment", s.String(), "cancel")
	}
	return StatusCanceled, nil
}
