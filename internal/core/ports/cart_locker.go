package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// CartLocker provides per-customer mutual exclusion around the
// read-recompute-write cycle of cart mutations. Combined with the cart's
// optimistic version check it makes concurrent mutations to one cart safe.
type CartLocker interface {
	// Acquire takes the customer's cart lock, blocking or failing per the
	// implementation's policy. The returned release function must be
	// called exactly once.
	Acquire(ctx context.Context, customerID kernel.UUID) (release func(), err error)
}
