// Package services contains domain services implementing business logic that
// spans multiple aggregates.
//
// The package provides:
//   - PricingEngine: derives a cart's complete monetary summary from its
//     items, coupon snapshot and the fee schedule, as a pure full
//     recomputation
//   - AssignmentDispatcher: selects candidate riders within the pickup
//     radius of an accepted order and produces the batch of Pending
//     assignment offers
//
// Both services are stateless and operate purely on domain objects passed
// in by the application layer, which owns loading, persistence and
// transaction boundaries.
package services
