package order_test

import (
	"fmt"
	"testing"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.Pending,
			order.Accepted,
			order.Rejected,
			order.Picked,
			order.Delivered,
			order.Cancelled,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "status is invalid")
	})

	t.Run("should reject invalid status values", func(t *testing.T) {
		for _, status := range []order.Status{order.Status(-1), order.Status(7), order.Status(100)} {
			t.Run(fmt.Sprintf("should reject status value %d", int(status)), func(t *testing.T) {
				require.Error(t, status.Validate())
			})
		}
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("should round trip valid statuses", func(t *testing.T) {
		for _, status := range []order.Status{
			order.Pending, order.Accepted, order.Rejected,
			order.Picked, order.Delivered, order.Cancelled,
		} {
			parsed, err := order.StatusFromString(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := order.StatusFromString("Unknown")
		require.Error(t, err)

		_, err = order.StatusFromString("Shipped")
		require.Error(t, err)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Rejected.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.Accepted.IsTerminal())
	assert.False(t, order.Picked.IsTerminal())
}

// TestStatus_TransitionTable exercises every (state, action) pair and
// verifies only the allowed transitions succeed.
func TestStatus_TransitionTable(t *testing.T) {
	type transition struct {
		name  string
		apply func(order.Status) (order.Status, error)
		want  order.Status
	}

	transitions := []transition{
		{"accept", order.Status.Accept, order.Accepted},
		{"reject", order.Status.Reject, order.Rejected},
		{"pick", order.Status.Pick, order.Picked},
		{"deliver", order.Status.Deliver, order.Delivered},
		{"cancel", order.Status.Cancel, order.Cancelled},
	}

	allowed := map[order.Status]map[string]bool{
		order.Pending:   {"accept": true, "reject": true, "cancel": true},
		order.Accepted:  {"pick": true, "cancel": true},
		order.Picked:    {"deliver": true},
		order.Rejected:  {},
		order.Delivered: {},
		order.Cancelled: {},
	}

	for from, actions := range allowed {
		for _, tr := range transitions {
			name := fmt.Sprintf("%s from %s", tr.name, from.String())
			t.Run(name, func(t *testing.T) {
				got, err := tr.apply(from)

				if actions[tr.name] {
					require.NoError(t, err)
					assert.Equal(t, tr.want, got)
					return
				}

				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrInvalidTransition)
				assert.Equal(t, order.Status(0), got)
			})
		}
	}
}
