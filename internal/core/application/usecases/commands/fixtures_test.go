package commands_test

import (
	"log/slog"
	"testing"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/pricing"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testGeoPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return p
}

// defaultLocations puts the restaurant and both drop points on the same
// coordinates, so the delivery distance is zero and the flat base charge
// applies.
func defaultLocations(t *testing.T) *stubLocations {
	t.Helper()
	point := testGeoPoint(t, 12.97, 77.59)
	return &stubLocations{restaurant: point, customer: point, address: point}
}

func defaultCharges() *stubCharges {
	return &stubCharges{cfg: pricing.DefaultChargeConfig()}
}

func testMenuItem(restaurantID, menuItemRef kernel.UUID) ports.MenuItem {
	return ports.MenuItem{
		MenuItemRef:     menuItemRef,
		RestaurantID:    restaurantID,
		Name:            "Paneer Tikka",
		BasePrice:       100,
		HalfPlatePrice:  60,
		FullPlatePrice:  110,
		DiscountPercent: 0,
	}
}

func cartWithItem(t *testing.T, customerID, restaurantID kernel.UUID, menuItem ports.MenuItem, quantity int) *cart.Cart {
	t.Helper()
	c, err := cart.NewCart(kernel.NewUUID(), customerID)
	require.NoError(t, err)

	item, err := cart.NewItem(
		menuItem.MenuItemRef,
		menuItem.Name,
		cart.BasePlate,
		quantity,
		menuItem.BasePrice,
		menuItem.HalfPlatePrice,
		menuItem.FullPlatePrice,
		menuItem.DiscountPercent,
	)
	require.NoError(t, err)

	_, err = c.UpsertItem(restaurantID, item)
	require.NoError(t, err)
	return c
}

func acceptedOrder(t *testing.T, orderID, customerID kernel.UUID) *order.Order {
	t.Helper()

	menuItem := testMenuItem(kernel.NewUUID(), kernel.NewUUID())
	c := cartWithItem(t, customerID, menuItem.RestaurantID, menuItem, 2)

	lines := make([]order.Line, 0, 1)
	for _, item := range c.Items() {
		line, err := order.LineFromCartItem(item)
		require.NoError(t, err)
		lines = append(lines, line)
	}

	o, err := order.NewOrder(
		orderID, customerID, menuItem.RestaurantID, kernel.NewUUID(),
		order.CashOnDelivery, lines, cart.Totals{TotalItems: 2, SubTotal: 200, FinalAmount: 240},
		testGeoPoint(t, 12.97, 77.59), testGeoPoint(t, 12.93, 77.62),
	)
	require.NoError(t, err)
	require.NoError(t, o.Accept())
	return o
}
