package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

// GetCartQuery retrieves the customer's active cart with its priced lines
// and totals.
//
// Example:
//
//	query, _ := NewGetCartQuery(customerID)
//	handler := NewGetCartQueryHandler(db)
//
//	snapshot, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load cart: %w", err)
//	}
//	fmt.Printf("%d items, payable %.2f\n", snapshot.Totals.TotalItems, snapshot.Totals.FinalAmount)
type GetCartQuery struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCartQuery creates a query for the customer's cart.
func NewGetCartQuery(customerID kernel.UUID) (GetCartQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetCartQuery{}, err
	}

	return GetCartQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

// CustomerID returns the owning customer's identifier.
func (q GetCartQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// GetCartQueryResponse is the cart read model served to storefront clients.
type GetCartQueryResponse struct {
	CartID       kernel.UUID
	CustomerID   kernel.UUID
	RestaurantID *kernel.UUID
	CouponCode   string
	Lines        []CartLineResponse
	Totals       cart.Totals
	Version      int64
}

// CartLineResponse is one priced cart line.
type CartLineResponse struct {
	MenuItemRef    kernel.UUID
	Name           string
	Variant        string
	Quantity       int
	UnitPrice      float64
	FinalUnitPrice float64
	LineTotal      float64
}
