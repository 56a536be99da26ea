package services_test

import (
	"testing"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/rider"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pointKmNorthOf returns a point the given number of kilometers due north of
// the origin, which on a meridian matches the haversine distance exactly.
func pointKmNorthOf(t *testing.T, origin kernel.GeoPoint, km float64) kernel.GeoPoint {
	t.Helper()
	const kmPerDegree = 6371 * 3.14159265358979323846 / 180
	point, err := kernel.NewGeoPoint(origin.Latitude()+km/kmPerDegree, origin.Longitude())
	require.NoError(t, err)
	return point
}

func riderAt(t *testing.T, location kernel.GeoPoint) *rider.Rider {
	t.Helper()
	r, err := rider.NewRider(kernel.NewUUID(), "Rider")
	require.NoError(t, err)
	require.NoError(t, r.UpdateLocation(location))
	return r
}

func acceptedOrderAt(t *testing.T, restaurant, customer kernel.GeoPoint) *order.Order {
	t.Helper()
	item, err := cart.NewItem(kernel.NewUUID(), "Paneer Tikka", cart.BasePlate, 1, 100, 0, 0, 0)
	require.NoError(t, err)
	line, err := order.LineFromCartItem(item)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		order.CashOnDelivery, []order.Line{line}, cart.Totals{SubTotal: 100, FinalAmount: 135},
		restaurant, customer)
	require.NoError(t, err)
	require.NoError(t, o.Accept())
	return o
}

func TestNewAssignmentDispatcher(t *testing.T) {
	t.Run("should default the radius", func(t *testing.T) {
		d, err := services.NewAssignmentDispatcher(0)

		require.NoError(t, err)
		assert.InDelta(t, services.DefaultAssignmentRadiusKm, d.RadiusKm(), 1e-9)
	})

	t.Run("should reject negative radius", func(t *testing.T) {
		_, err := services.NewAssignmentDispatcher(-1)
		require.Error(t, err)
	})
}

func TestAssignmentDispatcher_Dispatch(t *testing.T) {
	restaurant, err := kernel.NewGeoPoint(12.9716, 77.5946)
	require.NoError(t, err)

	t.Run("should offer only riders within radius", func(t *testing.T) {
		// riders at 3, 9 and 7.5 km from the restaurant with an 8 km
		// radius: two qualify
		customer := pointKmNorthOf(t, restaurant, 4)
		o := acceptedOrderAt(t, restaurant, customer)
		near := riderAt(t, pointKmNorthOf(t, restaurant, 3))
		far := riderAt(t, pointKmNorthOf(t, restaurant, 9))
		edge := riderAt(t, pointKmNorthOf(t, restaurant, 7.5))

		d, err := services.NewAssignmentDispatcher(8)
		require.NoError(t, err)

		offers, err := d.Dispatch(o, []*rider.Rider{near, far, edge})

		require.NoError(t, err)
		require.Len(t, offers, 2)
		offered := map[string]bool{}
		for _, offer := range offers {
			require.NoError(t, offer.Validate())
			assert.Equal(t, assignment.StatusPending, offer.Status())
			assert.True(t, offer.OrderID().IsEqual(o.ID()))
			assert.InDelta(t, 4, offer.DropDistanceKm(), 1e-6)
			offered[offer.RiderID().String()] = true
		}
		assert.True(t, offered[near.ID().String()])
		assert.True(t, offered[edge.ID().String()])
		assert.False(t, offered[far.ID().String()])
	})

	t.Run("should compute pickup distances per rider", func(t *testing.T) {
		customer := pointKmNorthOf(t, restaurant, 4)
		o := acceptedOrderAt(t, restaurant, customer)
		near := riderAt(t, pointKmNorthOf(t, restaurant, 3))

		d, err := services.NewAssignmentDispatcher(8)
		require.NoError(t, err)

		offers, err := d.Dispatch(o, []*rider.Rider{near})

		require.NoError(t, err)
		require.Len(t, offers, 1)
		assert.InDelta(t, 3, offers[0].PickupDistanceKm(), 1e-6)
	})

	t.Run("should return empty when no rider qualifies", func(t *testing.T) {
		customer := pointKmNorthOf(t, restaurant, 4)
		o := acceptedOrderAt(t, restaurant, customer)
		far := riderAt(t, pointKmNorthOf(t, restaurant, 20))

		d, err := services.NewAssignmentDispatcher(8)
		require.NoError(t, err)

		offers, err := d.Dispatch(o, []*rider.Rider{far})

		require.NoError(t, err)
		assert.Empty(t, offers)
	})

	t.Run("should skip riders without a known location", func(t *testing.T) {
		customer := pointKmNorthOf(t, restaurant, 4)
		o := acceptedOrderAt(t, restaurant, customer)
		unlocated, err := rider.NewRider(kernel.NewUUID(), "Ghost")
		require.NoError(t, err)

		d, err := services.NewAssignmentDispatcher(8)
		require.NoError(t, err)

		offers, err := d.Dispatch(o, []*rider.Rider{unlocated})

		require.NoError(t, err)
		assert.Empty(t, offers)
	})

	t.Run("should reject orders not ready for dispatch", func(t *testing.T) {
		customer := pointKmNorthOf(t, restaurant, 4)
		o := acceptedOrderAt(t, restaurant, customer)
		require.NoError(t, o.AssignRider(kernel.NewUUID()))

		d, err := services.NewAssignmentDispatcher(8)
		require.NoError(t, err)

		_, err = d.Dispatch(o, nil)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}
