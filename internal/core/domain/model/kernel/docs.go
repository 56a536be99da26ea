// Package kernel provides core domain primitives used throughout the
// marketplace domain model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - GeoPoint: a value object for geographic coordinates with great-circle
//     distance computation
//
// These primitives enforce domain invariants at construction time, so domain
// objects built on top of them are always in a valid state. They are immutable
// and safe for concurrent use.
package kernel
