package assignment_test

import (
	"fmt"
	"math"
	"testing"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssignment(t *testing.T) *assignment.Assignment {
	t.Helper()
	a, err := assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 3.2, 5.8)
	require.NoError(t, err)
	return a
}

func TestNewAssignment(t *testing.T) {
	t.Run("should create pending offer", func(t *testing.T) {
		a := newTestAssignment(t)

		require.NoError(t, a.Validate())
		assert.Equal(t, assignment.StatusPending, a.Status())
		assert.InDelta(t, 3.2, a.PickupDistanceKm(), 1e-9)
		assert.InDelta(t, 5.8, a.DropDistanceKm(), 1e-9)
	})

	t.Run("should reject zero value ids", func(t *testing.T) {
		_, err := assignment.NewAssignment(kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(), 1, 1)
		require.Error(t, err)

		_, err = assignment.NewAssignment(kernel.NewUUID(), kernel.UUID{}, kernel.NewUUID(), 1, 1)
		require.Error(t, err)

		_, err = assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.UUID{}, 1, 1)
		require.Error(t, err)
	})

	t.Run("should reject invalid distances", func(t *testing.T) {
		for _, d := range []float64{-1, math.NaN(), math.Inf(1)} {
			_, err := assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), d, 1)
			require.Error(t, err)

			_, err = assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 1, d)
			require.Error(t, err)
		}
	})
}

func TestAssignment_Validate(t *testing.T) {
	var a *assignment.Assignment
	require.ErrorIs(t, a.Validate(), assignment.ErrAssignmentIsNotConstructed)
	require.ErrorIs(t, (&assignment.Assignment{}).Validate(), assignment.ErrAssignmentIsNotConstructed)
}

func TestAssignment_Lifecycle(t *testing.T) {
	t.Run("should walk the winning path", func(t *testing.T) {
		a := newTestAssignment(t)

		require.NoError(t, a.Accept())
		assert.Equal(t, assignment.StatusAccepted, a.Status())

		require.NoError(t, a.Pick())
		assert.Equal(t, assignment.StatusPicked, a.Status())

		require.NoError(t, a.Deliver())
		assert.Equal(t, assignment.StatusDelivered, a.Status())
	})

	t.Run("should cancel pending offer", func(t *testing.T) {
		a := newTestAssignment(t)

		require.NoError(t, a.Cancel())

		assert.Equal(t, assignment.StatusCanceled, a.Status())
	})

	t.Run("should not accept canceled offer", func(t *testing.T) {
		a := newTestAssignment(t)
		require.NoError(t, a.Cancel())

		require.ErrorIs(t, a.Accept(), errs.ErrInvalidTransition)
	})

	t.Run("should not cancel accepted offer", func(t *testing.T) {
		a := newTestAssignment(t)
		require.NoError(t, a.Accept())

		require.ErrorIs(t, a.Cancel(), errs.ErrInvalidTransition)
	})

	t.Run("should not pick before accept", func(t *testing.T) {
		a := newTestAssignment(t)

		require.ErrorIs(t, a.Pick(), errs.ErrInvalidTransition)
	})
}

func TestAssignment_RefreshPickupDistance(t *testing.T) {
	t.Run("should refresh pending offer", func(t *testing.T) {
		a := newTestAssignment(t)

		require.NoError(t, a.RefreshPickupDistance(1.5))

		assert.InDelta(t, 1.5, a.PickupDistanceKm(), 1e-9)
		assert.InDelta(t, 5.8, a.DropDistanceKm(), 1e-9)
	})

	t.Run("should not refresh accepted offer", func(t *testing.T) {
		a := newTestAssignment(t)
		require.NoError(t, a.Accept())

		err := a.RefreshPickupDistance(1.5)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.InDelta(t, 3.2, a.PickupDistanceKm(), 1e-9)
	})
}

func TestStatus_TransitionTable(t *testing.T) {
	type transition struct {
		name  string
		apply func(assignment.Status) (assignment.Status, error)
		want  assignment.Status
	}

	transitions := []transition{
		{"accept", assignment.Status.Accept, assignment.StatusAccepted},
		{"pick", assignment.Status.Pick, assignment.StatusPicked},
		{"deliver", assignment.Status.Deliver, assignment.StatusDelivered},
		{"cancel", assignment.Status.Cancel, assignment.StatusCanceled},
	}

	allowed := map[assignment.Status]map[string]bool{
		assignment.StatusPending:   {"accept": true, "cancel": true},
		assignment.StatusAccepted:  {"pick": true},
		assignment.StatusPicked:    {"deliver": true},
		assignment.StatusDelivered: {},
		assignment.StatusCanceled:  {},
	}

	for from, actions := range allowed {
		for _, tr := range transitions {
			t.Run(fmt.Sprintf("%s from %s", tr.name, from.String()), func(t *testing.T) {
				got, err := tr.apply(from)

				if actions[tr.name] {
					require.NoError(t, err)
					assert.Equal(t, tr.want, got)
					return
				}

				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrInvalidTransition)
			})
		}
	}
}

func TestStatus_Helpers(t *testing.T) {
	assert.True(t, assignment.StatusDelivered.IsTerminal())
	assert.True(t, assignment.StatusCanceled.IsTerminal())
	assert.False(t, assignment.StatusPending.IsTerminal())

	assert.True(t, assignment.StatusAccepted.IsTaken())
	assert.True(t, assignment.StatusPicked.IsTaken())
	assert.True(t, assignment.StatusDelivered.IsTaken())
	assert.False(t, assignment.StatusPending.IsTaken())
	assert.False(t, assignment.StatusCanceled.IsTaken())
}
