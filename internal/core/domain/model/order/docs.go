// Package order provides domain entities and business logic for order
// management in the marketplace. It implements the Order aggregate root
// with two coordinated state machines.
//
// The package includes:
//   - Order: the aggregate root holding the frozen checkout snapshot
//     (product lines, totals, coordinates) and both lifecycle states
//   - Status: the vendor-side state machine
//     (Pending -> Accepted -> Picked -> Delivered, with Rejected and
//     Cancelled as early exits)
//   - DeliveryStatus: the rider-side sub-state machine
//     (Pending -> Assigned -> Picked -> Delivered, or Failed)
//   - Line: a frozen copy of a cart line taken at checkout
//   - PaymentMethod: COD or Online
//
// Key business rules:
//   - Product lines and totals never mutate after checkout
//   - Delivered, Rejected and Cancelled are terminal vendor-side states
//   - Rider-side transitions require an assigned rider and keep the two
//     machines consistent (a picked delivery implies an accepted order)
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
