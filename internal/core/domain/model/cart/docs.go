// Package cart provides the Cart aggregate and its entities: the per-customer
// staging area for a prospective order.
//
// The package includes:
//   - Cart: the aggregate root, bound to at most one restaurant at a time
//   - Item: a cart line identified by (menu item, plate variant)
//   - PlateVariant: the pricing tier of a menu item (base, half plate, full plate)
//   - Totals: the derived monetary summary recomputed on every mutation
//
// Key business rules:
//   - One active cart per customer
//   - A cart holds items from a single restaurant; adding an item from a
//     different restaurant clears the cart first
//   - Adding an already-present (menu item, variant) line merges quantities
//   - Totals are derived state only: they are recomputed from the full item
//     list by the pricing engine after every mutation and are never set
//     piecemeal
//   - Emptying the cart resets totals, unbinds the restaurant, and drops any
//     applied coupon
package cart
