package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetUnassignedOrdersQueryIsNotConstructed = errors.New(
	"GetUnassignedOrdersQuery must be created via NewGetUnassignedOrdersQuery constructor",
)

// GetUnassignedOrdersQuery retrieves accepted orders that no rider has taken
// yet. Feeds the operations dashboard and the dispatch retry flow.
//
// Example:
//
//	query := NewGetUnassignedOrdersQuery()
//	handler := NewGetUnassignedOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get unassigned orders: %w", err)
//	}
//	fmt.Printf("%d orders waiting for a rider\n", len(orders))
type GetUnassignedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUnassignedOrdersQuery creates a query for orders waiting on a rider.
// This is a parameterless query.
func NewGetUnassignedOrdersQuery() GetUnassignedOrdersQuery {
	return GetUnassignedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetUnassignedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUnassignedOrdersQueryIsNotConstructed)
}

// GetUnassignedOrdersQueryResponse is one order waiting for a rider.
type GetUnassignedOrdersQueryResponse struct {
	ID                 kernel.UUID
	RestaurantID       kernel.UUID
	RestaurantLocation kernel.GeoPoint
	CustomerLocation   kernel.GeoPoint
	PaymentMethod      string
	FinalAmount        float64
}
