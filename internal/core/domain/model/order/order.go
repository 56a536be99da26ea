package order

import (
	"errors"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory functions. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderHasNoLines is returned when creating an order without product lines.
	ErrOrderHasNoLines = errors.New("order must contain at least one product line")

	// ErrOrderHasNoRider is returned when a rider-side transition is attempted
	// on an order with no assigned rider.
	ErrOrderHasNoRider = errors.New("order has no assigned rider")
)

// Order represents a placed order in the marketplace. It is the aggregate root
// that manages the order lifecycle from checkout through vendor acceptance,
// rider assignment, pickup and delivery.
//
// Order follows these invariants:
//   - Product lines and totals are frozen at checkout and never mutate
//   - Status transitions follow the vendor-side state machine (Status)
//   - deliveryStatus follows the rider-side machine (DeliveryStatus) and
//     stays consistent with status: a picked delivery implies an order
//     that is at least Accepted
//   - assignedRiderID is nil until an assignment is accepted
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	id           kernel.UUID
	customerID   kernel.UUID
	restaurantID kernel.UUID
	addressID    kernel.UUID

	paymentMethod PaymentMethod
	lines         []Line
	totals        cart.Totals

	// coordinates captured at checkout; assignment dispatch reads these
	// instead of re-resolving the address
	restaurantLocation kernel.GeoPoint
	customerLocation   kernel.GeoPoint

	status          Status
	deliveryStatus  DeliveryStatus
	assignedRiderID *kernel.UUID

	isConstructed bool
}

// NewOrder creates a new Order from a priced cart snapshot. This is the only
// way to create a valid Order at checkout, ensuring all business invariants
// are maintained.
//
// The order starts in Pending status with DeliveryPending delivery status
// and no assigned rider.
//
// Parameters:
//   - id: Unique identifier for the order
//   - customerID, restaurantID, addressID: the parties and destination
//   - paymentMethod: COD or Online
//   - lines: frozen product lines (at least one)
//   - totals: the priced cart totals, frozen as the order's payable amounts
//   - restaurantLocation, customerLocation: coordinates for rider dispatch
//
// Returns:
//   - *Order: the created order if all validations pass
//   - error: validation error if any parameter is invalid
func NewOrder(
	id, customerID, restaurantID, addressID kernel.UUID,
	paymentMethod PaymentMethod,
	lines []Line,
	totals cart.Totals,
	restaurantLocation, customerLocation kernel.GeoPoint,
) (*Order, error) {
	o := &Order{
		status:         Pending,
		deliveryStatus: DeliveryPending,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setParties(customerID, restaurantID, addressID),
		o.setPaymentMethod(paymentMethod),
		o.setLines(lines),
		o.setLocations(restaurantLocation, customerLocation),
	); err != nil {
		return nil, err
	}

	o.totals = totals
	return o, nil
}

// RestoreOrder reconstructs an order from persistence, including its current
// position in both state machines.
func RestoreOrder(
	id, customerID, restaurantID, addressID kernel.UUID,
	paymentMethod PaymentMethod,
	lines []Line,
	totals cart.Totals,
	restaurantLocation, customerLocation kernel.GeoPoint,
	status Status,
	deliveryStatus DeliveryStatus,
	assignedRiderID *kernel.UUID,
) (*Order, error) {
	o, err := NewOrder(id, customerID, restaurantID, addressID,
		paymentMethod, lines, totals, restaurantLocation, customerLocation)
	if err != nil {
		return nil, err
	}

	if err = errors.Join(status.Validate(), deliveryStatus.Validate()); err != nil {
		return nil, err
	}
	if assignedRiderID != nil {
		if err = assignedRiderID.Validate(); err != nil {
			return nil, err
		}
	}

	o.status = status
	o.deliveryStatus = deliveryStatus
	o.assignedRiderID = assignedRiderID
	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory function. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// RestaurantID returns the fulfilling restaurant's identifier.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// AddressID returns the delivery address identifier.
func (o *Order) AddressID() kernel.UUID {
	return o.addressID
}

// PaymentMethod returns how the order is paid.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// Lines returns the frozen product lines. The returned slice is a copy;
// an order's lines never change after checkout.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// Totals returns the payable amounts frozen at checkout.
func (o *Order) Totals() cart.Totals {
	return o.totals
}

// RestaurantLocation returns the pickup coordinates captured at checkout.
func (o *Order) RestaurantLocation() kernel.GeoPoint {
	return o.restaurantLocation
}

// CustomerLocation returns the drop coordinates captured at checkout.
func (o *Order) CustomerLocation() kernel.GeoPoint {
	return o.customerLocation
}

// Status returns the current vendor-side status of the order.
func (o *Order) Status() Status {
	return o.status
}

// DeliveryStatus returns the current rider-side sub-state of the order.
func (o *Order) DeliveryStatus() DeliveryStatus {
	return o.deliveryStatus
}

// AssignedRider returns the accepted rider's ID.
// Returns nil if no assignment has been accepted yet.
func (o *Order) AssignedRider() *kernel.UUID {
	return o.assignedRiderID
}

// Accept marks the order as taken by the vendor.
//
// The order must be in Pending status. After acceptance the order becomes
// eligible for rider assignment.
func (o *Order) Accept() error {
	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Reject marks the order as declined by the vendor.
//
// The order must be in Pending status. Rejected is final.
func (o *Order) Reject() error {
	newStatus, err := o.status.Reject()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Cancel withdraws the order on behalf of the customer or an admin.
//
// Allowed while the order is Pending or Accepted; once the rider has
// picked it up cancellation is no longer possible.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// AssignRider records the rider whose assignment won the acceptance race
// and moves the delivery sub-state to DeliveryAssigned.
//
// This method enforces the following business rules:
//   - The rider ID must be valid
//   - The order must be in Accepted status (the vendor has taken it and
//     no rider has the order yet)
//   - The delivery sub-state must be DeliveryPending
func (o *Order) AssignRider(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	if o.status != Accepted {
		return errs.NewInvalidTransitionError("order", o.status.String(), "assign rider")
	}

	newDeliveryStatus, err := o.deliveryStatus.Assign()
	if err != nil {
		return err
	}

	o.deliveryStatus = newDeliveryStatus
	o.assignedRiderID = &riderID
	return nil
}

// Pick records that the assigned rider collected the order from the
// restaurant, advancing both state machines.
//
// This method enforces the following business rules:
//   - A rider must be assigned
//   - The order must be in Accepted status
//   - The delivery sub-state must be DeliveryAssigned
func (o *Order) Pick() error {
	if o.assignedRiderID == nil {
		return ErrOrderHasNoRider
	}

	newStatus, err := o.status.Pick()
	if err != nil {
		return err
	}
	newDeliveryStatus, err := o.deliveryStatus.Pick()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveryStatus = newDeliveryStatus
	return nil
}

// Deliver records that the rider handed the order to the customer,
// advancing both state machines to their final delivered states.
func (o *Order) Deliver() error {
	if o.assignedRiderID == nil {
		return ErrOrderHasNoRider
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}
	newDeliveryStatus, err := o.deliveryStatus.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveryStatus = newDeliveryStatus
	return nil
}

// FailDelivery marks the rider-side sub-state as failed without touching
// the vendor-side status. Operations staff resolve failed deliveries
// out of band.
func (o *Order) FailDelivery() error {
	newDeliveryStatus, err := o.deliveryStatus.Fail()
	if err != nil {
		return err
	}

	o.deliveryStatus = newDeliveryStatus
	return nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setParties(customerID, restaurantID, addressID kernel.UUID) error {
	if err := errors.Join(
		customerID.Validate(),
		restaurantID.Validate(),
		addressID.Validate(),
	); err != nil {
		return err
	}

	o.customerID = customerID
	o.restaurantID = restaurantID
	o.addressID = addressID
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return ErrOrderHasNoLines
	}

	o.lines = make([]Line, len(lines))
	copy(o.lines, lines)
	return nil
}

func (o *Order) setLocations(restaurant, customer kernel.GeoPoint) error {
	if err := errors.Join(restaurant.Validate(), customer.Validate()); err != nil {
		return err
	}

	o.restaurantLocation = restaurant
	o.customerLocation = customer
	return nil
}
