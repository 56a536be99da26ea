package ports

import (
	"context"

	"marketplace/internal/core/domain/model/pricing"
)

// ChargeConfigProvider supplies the admin-managed fee schedule to the
// pricing engine. The core treats the schedule as read-only input.
type ChargeConfigProvider interface {
	// Current returns the fee schedule in force right now.
	Current(ctx context.Context) (pricing.ChargeConfig, error)
}
