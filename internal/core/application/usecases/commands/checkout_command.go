package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutCommand represents a request to convert the customer's cart into
// an order. The caller supplies the order identifier, which makes retried
// checkouts idempotent at the persistence layer.
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	customerID    kernel.UUID
	addressID     kernel.UUID
	paymentMethod order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a command to check out the customer's cart.
// The payment method string is "COD" or "Online".
func NewCheckoutCommand(orderID, customerID, addressID kernel.UUID, paymentMethod string) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setAddressID(addressID),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will be created under.
func (c CheckoutCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the owning customer's identifier.
func (c CheckoutCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// AddressID returns the chosen delivery address identifier.
func (c CheckoutCommand) AddressID() kernel.UUID {
	return c.addressID
}

// PaymentMethod returns the chosen payment method.
func (c CheckoutCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

func (c *CheckoutCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}
	c.orderID = id
	return nil
}

func (c *CheckoutCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *CheckoutCommand) setAddressID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("addressID", err)
	}
	c.addressID = id
	return nil
}

func (c *CheckoutCommand) setPaymentMethod(method string) error {
	parsed, err := order.PaymentMethodFromString(method)
	if err != nil {
		return err
	}
	c.paymentMethod = parsed
	return nil
}
