package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrApplyCouponCommandIsNotConstructed = errors.New(
	"ApplyCouponCommand must be created via NewApplyCouponCommand constructor",
)

// ApplyCouponCommand represents a request to attach a coupon to the
// customer's cart. Only one coupon can be attached at a time; applying a new
// one replaces the previous.
type ApplyCouponCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	code       string

	guard guard.ConstructorGuard
}

// NewApplyCouponCommand creates a command to apply a coupon by code.
func NewApplyCouponCommand(customerID kernel.UUID, code string) (ApplyCouponCommand, error) {
	cmd := ApplyCouponCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setCode(code),
	); err != nil {
		return ApplyCouponCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyCouponCommand) Validate() error {
	return c.guard.Validate(ErrApplyCouponCommandIsNotConstructed)
}

// CustomerID returns the owning customer's identifier.
func (c ApplyCouponCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Code returns the coupon code being applied.
func (c ApplyCouponCommand) Code() string {
	return c.code
}

func (c *ApplyCouponCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *ApplyCouponCommand) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	c.code = code
	return nil
}
