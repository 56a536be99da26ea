// Package chargeconfig supplies the fee schedule to the pricing engine.
// The schedule is administered outside the core and changes rarely, so it is
// assembled once at boot from configuration and served as-is.
package chargeconfig

import (
	"context"

	"marketplace/internal/core/domain/model/pricing"
	"marketplace/internal/pkg/errs"
)

// StaticChargeConfigProvider serves a fee schedule fixed at construction.
type StaticChargeConfigProvider struct {
	config pricing.ChargeConfig
}

func NewStaticChargeConfigProvider(config pricing.ChargeConfig) (*StaticChargeConfigProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("config", err)
	}
	return &StaticChargeConfigProvider{config: config}, nil
}

// Current returns the fee schedule in force.
func (p *StaticChargeConfigProvider) Current(_ context.Context) (pricing.ChargeConfig, error) {
	return p.config, nil
}
