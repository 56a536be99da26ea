package coupon_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/coupon"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestNewCoupon(t *testing.T) {
	t.Run("valid_coupon", func(t *testing.T) {
		c, err := coupon.NewCoupon(kernel.NewUUID(), "welcome50", 50, ptr(100), ptr(500), nil, true)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, "WELCOME50", c.Code())
		assert.InDelta(t, 50.0, c.DiscountPercentage(), 1e-9)
		assert.InDelta(t, 100.0, *c.MaxDiscountAmount(), 1e-9)
		assert.InDelta(t, 500.0, *c.MinCartAmount(), 1e-9)
		assert.Nil(t, c.ExpiresAt())
		assert.True(t, c.IsActive())
	})

	t.Run("rejects_invalid_inputs", func(t *testing.T) {
		testCases := []struct {
			name  string
			build func() error
		}{
			{"empty_code", func() error {
				_, err := coupon.NewCoupon(kernel.NewUUID(), "  ", 10, nil, nil, nil, true)
				return err
			}},
			{"zero_percentage", func() error {
				_, err := coupon.NewCoupon(kernel.NewUUID(), "X", 0, nil, nil, nil, true)
				return err
			}},
			{"percentage_above_100", func() error {
				_, err := coupon.NewCoupon(kernel.NewUUID(), "X", 101, nil, nil, nil, true)
				return err
			}},
			{"negative_max_discount", func() error {
				_, err := coupon.NewCoupon(kernel.NewUUID(), "X", 10, ptr(-5), nil, nil, true)
				return err
			}},
			{"negative_min_cart", func() error {
				_, err := coupon.NewCoupon(kernel.NewUUID(), "X", 10, nil, ptr(-1), nil, true)
				return err
			}},
			{"zero_value_id", func() error {
				_, err := coupon.NewCoupon(kernel.UUID{}, "X", 10, nil, nil, nil, true)
				return err
			}},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				require.Error(t, tc.build())
			})
		}
	})
}

func TestCoupon_Validate(t *testing.T) {
	t.Run("nil_and_zero_value_are_invalid", func(t *testing.T) {
		var c *coupon.Coupon
		require.ErrorIs(t, c.Validate(), coupon.ErrCouponIsNotConstructed)

		require.ErrorIs(t, (&coupon.Coupon{}).Validate(), coupon.ErrCouponIsNotConstructed)
	})
}

func TestCoupon_IsUsableAt(t *testing.T) {
	now := time.Now()

	t.Run("active_without_expiry", func(t *testing.T) {
		c, _ := coupon.NewCoupon(kernel.NewUUID(), "X", 10, nil, nil, nil, true)
		assert.True(t, c.IsUsableAt(now))
	})

	t.Run("inactive", func(t *testing.T) {
		c, _ := coupon.NewCoupon(kernel.NewUUID(), "X", 10, nil, nil, nil, false)
		assert.False(t, c.IsUsableAt(now))
	})

	t.Run("expired", func(t *testing.T) {
		past := now.Add(-time.Hour)
		c, _ := coupon.NewCoupon(kernel.NewUUID(), "X", 10, nil, nil, &past, true)
		assert.False(t, c.IsUsableAt(now))
	})

	t.Run("not_yet_expired", func(t *testing.T) {
		future := now.Add(time.Hour)
		c, _ := coupon.NewCoupon(kernel.NewUUID(), "X", 10, nil, nil, &future, true)
		assert.True(t, c.IsUsableAt(now))
	})
}

func TestSnapshot_DiscountFor(t *testing.T) {
	t.Run("percentage_floored", func(t *testing.T) {
		c, _ := coupon.NewCoupon(kernel.NewUUID(), "X", 15, nil, nil, nil, true)
		snap := c.Snapshot()

		// 15% of 333 = 49.95, floored to 49.
		assert.InDelta(t, 49.0, snap.DiscountFor(333), 1e-9)
	})

	t.Run("capped_at_max_discount", func(t *testing.T) {
		c, _ := coupon.NewCoupon(kernel.NewUUID(), "X", 50, ptr(100), nil, nil, true)
		snap := c.Snapshot()

		assert.InDelta(t, 100.0, snap.DiscountFor(1000), 1e-9)
	})

	t.Run("minimum_not_met_yields_zero", func(t *testing.T) {
		c, _ := coupon.NewCoupon(kernel.NewUUID(), "X", 50, nil, ptr(500), nil, true)
		snap := c.Snapshot()

		assert.False(t, snap.MeetsMinimum(300))
		assert.InDelta(t, 0.0, snap.DiscountFor(300), 1e-9)
	})

	t.Run("zero_snapshot_yields_zero", func(t *testing.T) {
		var snap coupon.Snapshot

		assert.True(t, snap.IsZero())
		assert.InDelta(t, 0.0, snap.DiscountFor(1000), 1e-9)
	})
}

func TestRestoreSnapshot(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		snap, err := coupon.RestoreSnapshot("SAVE20", 20, ptr(50), ptr(200))

		require.NoError(t, err)
		assert.False(t, snap.IsZero())
		assert.Equal(t, "SAVE20", snap.Code())
		assert.InDelta(t, 20.0, snap.DiscountPercentage(), 1e-9)
	})

	t.Run("rejects_empty_code", func(t *testing.T) {
		_, err := coupon.RestoreSnapshot("", 20, nil, nil)
		require.Error(t, err)
	})

	t.Run("rejects_invalid_percentage", func(t *testing.T) {
		_, err := coupon.RestoreSnapshot("X", 0, nil, nil)
		require.Error(t, err)
	})
}
