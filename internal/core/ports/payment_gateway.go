package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// PaymentGateway captures online payments at checkout. It is an essential
// dependency of checkout for online orders: a capture failure aborts the
// checkout rather than creating an unpaid order.
type PaymentGateway interface {
	// Capture charges the customer the order's final amount.
	Capture(ctx context.Context, orderID kernel.UUID, amount float64) error
}
