// Package payment adapts the external payment provider behind the
// PaymentGateway port. The real provider integration is out of scope; this
// stub approves every well-formed capture so online checkout is exercisable
// end to end.
package payment

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// StubPaymentGateway approves every capture after validating the request.
type StubPaymentGateway struct {
	logger *slog.Logger
}

func NewStubPaymentGateway(logger *slog.Logger) (*StubPaymentGateway, error) {
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	return &StubPaymentGateway{logger: logger.With("component", "payment-gateway")}, nil
}

// Capture charges the order's final amount. A zero or negative amount means
// the caller priced the order wrong, so the capture is refused.
func (g *StubPaymentGateway) Capture(_ context.Context, orderID kernel.UUID, amount float64) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	if amount <= 0 {
		return errs.NewValueIsInvalidError("amount")
	}

	g.logger.Info("payment captured", "orderID", orderID.String(), "amount", amount)
	return nil
}
