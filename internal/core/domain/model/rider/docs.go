// Package rider provides the Rider aggregate: the delivery person's
// identity and last reported location.
//
// Riders without a known location are invisible to assignment dispatch.
// Availability rules (one active assignment per rider) live in the
// application layer, which checks the rider's open assignments before
// accepting a new one.
package rider
