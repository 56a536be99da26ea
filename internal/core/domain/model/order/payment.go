package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// PaymentMethod selects how the customer pays for an order.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined payment method.
	PaymentMethodUnknown PaymentMethod = iota

	// CashOnDelivery settles payment when the rider hands the order over.
	CashOnDelivery

	// OnlinePayment captures payment through the payment gateway at checkout.
	OnlinePayment
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodUnknown: "Unknown",
		CashOnDelivery:       "COD",
		OnlinePayment:        "Online",
	}
}

// Validate checks the payment method is one of the defined values.
func (m PaymentMethod) Validate() error {
	if m != CashOnDelivery && m != OnlinePayment {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// String returns the wire form of the payment method.
func (m PaymentMethod) String() string {
	if s, ok := getPaymentMethodStrings()[m]; ok {
		return s
	}
	return "Unknown"
}

// PaymentMethodFromString parses the wire form "COD" or "Online".
func PaymentMethodFromString(value string) (PaymentMethod, error) {
	switch value {
	case "COD":
		return CashOnDelivery, nil
	case "Online":
		return OnlinePayment, nil
	default:
		return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause("paymentMethod",
			fmt.Errorf("%q is not a valid payment method", value))
	}
}
