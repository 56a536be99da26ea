// Package assignment provides the Assignment aggregate: a broadcast offer
// pairing one order with one candidate rider.
//
// The dispatcher creates a batch of Pending assignments per order. The first
// rider to accept wins; every sibling offer is canceled in the same
// operation, so at most one assignment per order ever reaches Accepted.
// Pickup and drop distances are frozen when the offer is created and change
// only on an explicit rider-location refresh while the offer is still
// Pending.
package assignment
