package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUnassignedOrdersQueryHandler lists accepted orders whose delivery
// sub-state is still pending, oldest first.
type GetUnassignedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUnassignedOrdersQueryHandler creates a handler for unassigned order
// queries.
func NewGetUnassignedOrdersQueryHandler(db *gorm.DB) GetUnassignedOrdersQueryHandler {
	return GetUnassignedOrdersQueryHandler{db: db}
}

// Handle executes the query. An order counts as unassigned while it is
// vendor-accepted and no rider has accepted an assignment for it.
func (h GetUnassignedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUnassignedOrdersQuery,
) ([]GetUnassignedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetUnassignedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			restaurant_id,
			restaurant_lat,
			restaurant_lon,
			customer_lat,
			customer_lon,
			payment_method,
			totals_final_amount
		FROM orders
		WHERE status = ? AND delivery_status = ?
		ORDER BY id
	`, int(order.Accepted), int(order.DeliveryPending)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp          GetUnassignedOrdersQueryResponse
			id            uuid.UUID
			restaurantID  uuid.UUID
			restaurantLat float64
			restaurantLon float64
			customerLat   float64
			customerLon   float64
			paymentMethod int
		)

		err = rows.Scan(
			&id,
			&restaurantID,
			&restaurantLat,
			&restaurantLon,
			&customerLat,
			&customerLon,
			&paymentMethod,
			&resp.FinalAmount,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:]); err != nil {
			return nil, err
		}
		if resp.RestaurantLocation, err = kernel.NewGeoPoint(restaurantLat, restaurantLon); err != nil {
			return nil, err
		}
		if resp.CustomerLocation, err = kernel.NewGeoPoint(customerLat, customerLon); err != nil {
			return nil, err
		}
		resp.PaymentMethod = order.PaymentMethod(paymentMethod).String()

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
