package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// DeliveryStatus tracks the rider-side sub-state of an order, advanced
// independently of the vendor-visible Status.
//
// State transitions:
//
//	DeliveryPending ──> DeliveryAssigned ──> DeliveryPicked ──> DeliveryDelivered
//	                           │                    │
//	                           └──> DeliveryFailed <┘
//
// DeliveryDelivered and DeliveryFailed are terminal.
type DeliveryStatus int

const (
	// DeliveryUnknown represents an invalid or undefined delivery status.
	DeliveryUnknown DeliveryStatus = iota

	// DeliveryPending means no rider has accepted the order yet.
	DeliveryPending

	// DeliveryAssigned means a rider accepted the assignment and is
	// heading to the restaurant.
	DeliveryAssigned

	// DeliveryPicked means the rider collected the order.
	DeliveryPicked

	// DeliveryDelivered means the rider handed the order to the customer.
	DeliveryDelivered

	// DeliveryFailed means the rider could not complete the delivery.
	DeliveryFailed
)

func getDeliveryStatusStrings() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		DeliveryUnknown:   "Unknown",
		DeliveryPending:   "Pending",
		DeliveryAssigned:  "Assigned",
		DeliveryPicked:    "Picked",
		DeliveryDelivered: "Delivered",
		DeliveryFailed:    "Failed",
	}
}

func getValidDeliveryStatusStrings() map[DeliveryStatus]string {
	//nolint:exhaustive // DeliveryUnknown is intentionally excluded as it's invalid
	return map[DeliveryStatus]string{
		DeliveryPending:   "Pending",
		DeliveryAssigned:  "Assigned",
		DeliveryPicked:    "Picked",
		DeliveryDelivered: "Delivered",
		DeliveryFailed:    "Failed",
	}
}

// Validate checks if the DeliveryStatus value is valid.
func (s DeliveryStatus) Validate() error {
	if _, ok := getValidDeliveryStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("deliveryStatus is invalid",
			fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// String returns the human-readable name of the delivery status.
func (s DeliveryStatus) String() string {
	if str, ok := getDeliveryStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// DeliveryStatusFromString parses a delivery status name as used in
// requests and persistence.
func DeliveryStatusFromString(value string) (DeliveryStatus, error) {
	for status, str := range getValidDeliveryStatusStrings() {
		if str == value {
			return status, nil
		}
	}
	return DeliveryUnknown, errs.NewValueIsInvalidErrorWithCause("deliveryStatus is invalid",
		fmt.Errorf("%q is not a valid delivery status", value))
}

// Assign transitions the delivery status to DeliveryAssigned.
//
// Valid transitions:
//   - DeliveryPending -> DeliveryAssigned (a rider accepted the assignment)
func (s DeliveryStatus) Assign() (DeliveryStatus, error) {
	if s != DeliveryPending {
		return 0, errs.NewInvalidTransitionError("delivery", s.String(), "assign")
	}
	return DeliveryAssigned, nil
}

// Pick transitions the delivery status to DeliveryPicked.
//
// Valid transitions:
//   - DeliveryAssigned -> DeliveryPicked
func (s DeliveryStatus) Pick() (DeliveryStatus, error) {
	if s != DeliveryAssigned {
		return 0, errs.NewInvalidTransitionError("delivery", s.String(), "pick")
	}
	return DeliveryPicked, nil
}

// Deliver transitions the delivery status to DeliveryDelivered.
//
// Valid transitions:
//   - DeliveryPicked -> DeliveryDelivered
func (s DeliveryStatus) Deliver() (DeliveryStatus, error) {
	if s != DeliveryPicked {
		return 0, errs.NewInvalidTransitionError("delivery", s.String(), "deliver")
	}
	return DeliveryDelivered, nil
}

// Fail transitions the delivery status to DeliveryFailed.
//
// Valid transitions:
//   - DeliveryAssigned -> DeliveryFailed
//   - DeliveryPicked -> DeliveryFailed
func (s DeliveryStatus) Fail() (DeliveryStatus, error) {
	if s != DeliveryAssigned && s != DeliveryPicked {
		return 0, errs.NewInvalidTransitionError("delivery", s.String(), "fail")
	}
	return DeliveryFailed, nil
}
