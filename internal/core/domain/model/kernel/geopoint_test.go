package kernel_test

import (
	"math"
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("valid_coordinates", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(28.6139, 77.2090)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.InDelta(t, 28.6139, p.Latitude(), 1e-9)
		assert.InDelta(t, 77.2090, p.Longitude(), 1e-9)
	})

	t.Run("boundary_coordinates", func(t *testing.T) {
		for _, c := range [][2]float64{{-90, -180}, {90, 180}, {0, 0}} {
			p, err := kernel.NewGeoPoint(c[0], c[1])
			require.NoError(t, err)
			require.NoError(t, p.Validate())
		}
	})

	t.Run("rejects_out_of_range", func(t *testing.T) {
		testCases := []struct {
			name     string
			lat, lon float64
		}{
			{"latitude_too_high", 90.1, 0},
			{"latitude_too_low", -90.1, 0},
			{"longitude_too_high", 0, 180.1},
			{"longitude_too_low", 0, -180.1},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := kernel.NewGeoPoint(tc.lat, tc.lon)
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			})
		}
	})

	t.Run("rejects_non_finite", func(t *testing.T) {
		testCases := []struct {
			name     string
			lat, lon float64
		}{
			{"nan_latitude", math.NaN(), 0},
			{"nan_longitude", 0, math.NaN()},
			{"inf_latitude", math.Inf(1), 0},
			{"negative_inf_longitude", 0, math.Inf(-1)},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := kernel.NewGeoPoint(tc.lat, tc.lon)
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			})
		}
	})
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var p kernel.GeoPoint

		err := p.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrGeoPointIsNotConstructed, err)
	})
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	t.Run("zero_distance_to_self", func(t *testing.T) {
		p, _ := kernel.NewGeoPoint(28.6139, 77.2090)

		km, err := p.DistanceKm(p)

		require.NoError(t, err)
		assert.InDelta(t, 0, km, 1e-9)
	})

	t.Run("known_distance_delhi_to_noida", func(t *testing.T) {
		connaught, _ := kernel.NewGeoPoint(28.6315, 77.2167)
		noida, _ := kernel.NewGeoPoint(28.5355, 77.3910)

		km, err := connaught.DistanceKm(noida)

		require.NoError(t, err)
		// Straight-line distance is roughly 20 km.
		assert.InDelta(t, 20.1, km, 0.5)
	})

	t.Run("one_degree_of_latitude", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(0, 0)
		b, _ := kernel.NewGeoPoint(1, 0)

		km, err := a.DistanceKm(b)

		require.NoError(t, err)
		// One degree of latitude on a 6371 km sphere.
		assert.InDelta(t, 111.19, km, 0.05)
	})

	t.Run("symmetric", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(28.6139, 77.2090)
		b, _ := kernel.NewGeoPoint(19.0760, 72.8777)

		ab, err := a.DistanceKm(b)
		require.NoError(t, err)
		ba, err := b.DistanceKm(a)
		require.NoError(t, err)

		assert.InDelta(t, ab, ba, 1e-9)
	})

	t.Run("unconstructed_point_fails", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(0, 0)
		var b kernel.GeoPoint

		_, err := a.DistanceKm(b)

		require.Error(t, err)
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	t.Run("equal_points", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(10.5, 20.5)
		b, _ := kernel.NewGeoPoint(10.5, 20.5)

		equal, err := a.IsEqual(b)

		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different_points", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(10.5, 20.5)
		b, _ := kernel.NewGeoPoint(10.5, 20.6)

		equal, err := a.IsEqual(b)

		require.NoError(t, err)
		assert.False(t, equal)
	})
}

func TestGeoPoint_String(t *testing.T) {
	p, _ := kernel.NewGeoPoint(1.5, -2.25)
	assert.Equal(t, "GeoPoint(1.500000,-2.250000)", p.String())
}
