// Package queries contains read-side operations of the CQRS split. Query
// handlers bypass the domain repositories and read the storage schema
// directly with raw SQL, shaping rows into response models.
package queries

import (
	"context"
	"database/sql"
	"errors"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCartQueryHandler serves the cart read model straight from the carts and
// cart_items tables. Totals are read as persisted; the write side keeps them
// current on every mutation.
type GetCartQueryHandler struct {
	db *gorm.DB
}

// NewGetCartQueryHandler creates a handler for cart reads.
func NewGetCartQueryHandler(db *gorm.DB) GetCartQueryHandler {
	return GetCartQueryHandler{db: db}
}

// Handle loads the customer's cart. Returns an object-not-found error when
// the customer has no cart yet.
func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartQueryResponse{}, err
	}

	var resp GetCartQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			restaurant_id,
			coupon_code,
			totals_total_items,
			totals_sub_total,
			totals_total_discount,
			totals_gst_amount,
			totals_delivery_charge,
			totals_platform_charge,
			totals_packing_charge,
			totals_coupon_discount,
			totals_final_amount,
			version
		FROM carts
		WHERE customer_id = ?
	`, query.CustomerID().Bytes()).Row()

	var (
		id           uuid.UUID
		customerID   uuid.UUID
		restaurantID sql.Null[uuid.UUID]
		couponCode   sql.NullString
	)

	err := row.Scan(
		&id,
		&customerID,
		&restaurantID,
		&couponCode,
		&resp.Totals.TotalItems,
		&resp.Totals.SubTotal,
		&resp.Totals.TotalDiscount,
		&resp.Totals.GSTAmount,
		&resp.Totals.DeliveryCharge,
		&resp.Totals.PlatformCharge,
		&resp.Totals.PackingCharge,
		&resp.Totals.CouponDiscount,
		&resp.Totals.FinalAmount,
		&resp.Version,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetCartQueryResponse{}, errs.NewObjectNotFoundError("cart", query.CustomerID().String())
		}
		return GetCartQueryResponse{}, err
	}

	if resp.CartID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetCartQueryResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetCartQueryResponse{}, err
	}
	if restaurantID.Valid {
		rID, idErr := kernel.UUIDFromBytes(restaurantID.V[:])
		if idErr != nil {
			return GetCartQueryResponse{}, idErr
		}
		resp.RestaurantID = &rID
	}
	if couponCode.Valid {
		resp.CouponCode = couponCode.String
	}

	lines, err := h.loadLines(ctx, id)
	if err != nil {
		return GetCartQueryResponse{}, err
	}
	resp.Lines = lines

	return resp, nil
}

// loadLines reads the cart's item rows and re-derives the per-line prices
// through the domain item, so the read model can never disagree with the
// pricing rules.
func (h GetCartQueryHandler) loadLines(ctx context.Context, cartID uuid.UUID) ([]CartLineResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			menu_item_ref,
			name,
			variant,
			quantity,
			base_price,
			half_plate_price,
			full_plate_price,
			discount_percent
		FROM cart_items
		WHERE cart_id = ?
		ORDER BY name, variant
	`, cartID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]CartLineResponse, 0)
	for rows.Next() {
		var (
			menuItemRef uuid.UUID
			name        string
			variant     int
			quantity    int
			base        float64
			half        float64
			full        float64
			discount    float64
		)

		if err = rows.Scan(&menuItemRef, &name, &variant, &quantity, &base, &half, &full, &discount); err != nil {
			return nil, err
		}

		ref, idErr := kernel.UUIDFromBytes(menuItemRef[:])
		if idErr != nil {
			return nil, idErr
		}

		item, itemErr := cart.NewItem(ref, name, cart.PlateVariant(variant), quantity, base, half, full, discount)
		if itemErr != nil {
			return nil, itemErr
		}

		lines = append(lines, CartLineResponse{
			MenuItemRef:    ref,
			Name:           name,
			Variant:        item.Variant().String(),
			Quantity:       quantity,
			UnitPrice:      item.UnitPrice(),
			FinalUnitPrice: item.FinalUnitPrice(),
			LineTotal:      item.FinalUnitPrice() * float64(quantity),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
