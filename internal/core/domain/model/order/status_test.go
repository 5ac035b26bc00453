package order_test

import (
	"testing"

	"workshop/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	t.Run("valid statuses pass validation", func(t *testing.T) {
		for _, s := range []order.Status{
			order.StatusPending, order.StatusInProgress, order.StatusCompleted, order.StatusCancelled,
		} {
			require.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("unknown status fails validation", func(t *testing.T) {
		require.Error(t, order.StatusUnknown.Validate())
		require.Error(t, order.Status(42).Validate())
	})

	t.Run("string round-trip", func(t *testing.T) {
		for _, name := range []string{"PENDING", "IN_PROGRESS", "COMPLETED", "CANCELLED"} {
			s, err := order.StatusFromString(name)
			require.NoError(t, err)
			assert.Equal(t, name, s.String())
		}

		_, err := order.StatusFromString("DONE")
		require.Error(t, err)
	})

	t.Run("terminal statuses", func(t *testing.T) {
		assert.True(t, order.StatusCompleted.IsTerminal())
		assert.True(t, order.StatusCancelled.IsTerminal())
		assert.False(t, order.StatusPending.IsTerminal())
		assert.False(t, order.StatusInProgress.IsTerminal())
	})
}

func TestStepStatusTransitions(t *testing.T) {
	t.Run("start only from waiting", func(t *testing.T) {
		next, err := order.StepWaiting.Start()
		require.NoError(t, err)
		assert.Equal(t, order.StepInProgress, next)

		for _, s := range []order.StepStatus{order.StepInProgress, order.StepCompleted, order.StepBlocked} {
			_, err = s.Start()
			require.ErrorIs(t, err, order.ErrInvalidTransition, s.String())
		}
	})

	t.Run("complete only from in progress", func(t *testing.T) {
		next, err := order.StepInProgress.Complete()
		require.NoError(t, err)
		assert.Equal(t, order.StepCompleted, next)

		for _, s := range []order.StepStatus{order.StepWaiting, order.StepCompleted, order.StepBlocked} {
			_, err = s.Complete()
			require.ErrorIs(t, err, order.ErrInvalidTransition, s.String())
		}
	})

	t.Run("block and unblock round-trip", func(t *testing.T) {
		blocked, err := order.StepWaiting.Block()
		require.NoError(t, err)
		assert.Equal(t, order.StepBlocked, blocked)

		waiting, err := blocked.Unblock()
		require.NoError(t, err)
		assert.Equal(t, order.StepWaiting, waiting)
	})

	t.Run("completed is terminal", func(t *testing.T) {
		_, err := order.StepCompleted.Start()
		require.Error(t, err)
		_, err = order.StepCompleted.Complete()
		require.Error(t, err)
		_, err = order.StepCompleted.Block()
		require.Error(t, err)
	})
}

func TestPriority(t *testing.T) {
	t.Run("string round-trip", func(t *testing.T) {
		for _, name := range []string{"LOW", "NORMAL", "HIGH", "URGENT"} {
			p, err := order.PriorityFromString(name)
			require.NoError(t, err)
			assert.Equal(t, name, p.String())
		}
	})

	t.Run("unknown priority rejected", func(t *testing.T) {
		require.Error(t, order.PriorityUnknown.Validate())
		_, err := order.PriorityFromString("ASAP")
		require.Error(t, err)
	})
}
