package services_test

import (
	"testing"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)

func orderWithManualSteps(t *testing.T, defs []services.StepDefinition) *order.Order {
	t.Helper()

	customerID := kernel.NewUUID()
	item, err := order.NewItem(kernel.NewUUID(), 1)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-9", &customerID, order.PriorityNormal,
		nil, "", false, []order.Item{item}, now)
	require.NoError(t, err)

	steps, err := services.NewStepPlanner().PlanManual(defs)
	require.NoError(t, err)
	require.NoError(t, o.AttachSteps(steps))
	return o
}

func TestTurnResolver_IsTurn(t *testing.T) {
	resolver := services.NewTurnResolver()
	worker := kernel.NewUUID()

	t.Run("first waiting step has the turn", func(t *testing.T) {
		o := orderWithManualSteps(t, []services.StepDefinition{{Name: "a"}, {Name: "b"}})

		turn, err := resolver.IsTurn(o, o.Steps()[0].ID(), worker)

		require.NoError(t, err)
		assert.True(t, turn)
	})

	t.Run("non-waiting step never has the turn", func(t *testing.T) {
		o := orderWithManualSteps(t, []services.StepDefinition{{Name: "a"}, {Name: "b"}})
		require.NoError(t, o.StartStep(o.Steps()[0].ID(), worker, now))

		turn, err := resolver.IsTurn(o, o.Steps()[0].ID(), worker)

		require.NoError(t, err)
		assert.False(t, turn)
	})

	t.Run("step assigned to another worker has no turn", func(t *testing.T) {
		other := kernel.NewUUID()
		o := orderWithManualSteps(t, []services.StepDefinition{{Name: "a", Assignee: &other}})

		turn, err := resolver.IsTurn(o, o.Steps()[0].ID(), worker)

		require.NoError(t, err)
		assert.False(t, turn)
	})
}

func TestTurnResolver_Partition(t *testing.T) {
	resolver := services.NewTurnResolver()
	worker := kernel.NewUUID()
	other := kernel.NewUUID()

	t.Run("fresh order puts first step in current and rest in upcoming", func(t *testing.T) {
		o := orderWithManualSteps(t, []services.StepDefinition{
			{Name: "a"}, {Name: "b"}, {Name: "c"},
		})

		buckets := resolver.Partition([]*order.Order{o}, worker)

		assert.Len(t, buckets.Current, 1)
		assert.Len(t, buckets.Upcoming, 2)
		assert.Empty(t, buckets.InProgress)
		assert.Empty(t, buckets.Completed)
		assert.Equal(t, 3, buckets.Total())
		assert.Equal(t, "a", buckets.Current[0].Step.Name())
		assert.True(t, buckets.Current[0].Order.IsEqual(o))
	})

	t.Run("worked steps land in their buckets", func(t *testing.T) {
		o := orderWithManualSteps(t, []services.StepDefinition{
			{Name: "a"}, {Name: "b"}, {Name: "c"},
		})
		require.NoError(t, o.StartStep(o.Steps()[0].ID(), worker, now))
		_, err := o.CompleteStep(o.Steps()[0].ID(), worker, "", false, now)
		require.NoError(t, err)
		require.NoError(t, o.StartStep(o.Steps()[1].ID(), worker, now))

		buckets := resolver.Partition([]*order.Order{o}, worker)

		assert.Len(t, buckets.Completed, 1)
		assert.Len(t, buckets.InProgress, 1)
		assert.Empty(t, buckets.Current, "step c waits for b")
		assert.Len(t, buckets.Upcoming, 1)
	})

	t.Run("other workers' steps are hidden", func(t *testing.T) {
		o := orderWithManualSteps(t, []services.StepDefinition{
			{Name: "mine"}, {Name: "theirs", Assignee: &other},
		})
		require.NoError(t, o.StartStep(o.Steps()[0].ID(), worker, now))

		buckets := resolver.Partition([]*order.Order{o}, worker)

		assert.Len(t, buckets.InProgress, 1)
		assert.Empty(t, buckets.Upcoming, "step assigned to someone else is not visible")

		theirBuckets := resolver.Partition([]*order.Order{o}, other)
		assert.Empty(t, theirBuckets.InProgress)
		assert.Len(t, theirBuckets.Upcoming, 1)
	})

	t.Run("blocked steps are upcoming, never current", func(t *testing.T) {
		o := orderWithManualSteps(t, []services.StepDefinition{{Name: "a"}, {Name: "b"}})
		require.NoError(t, o.BlockStep(o.Steps()[0].ID(), now))

		buckets := resolver.Partition([]*order.Order{o}, worker)

		assert.Empty(t, buckets.Current)
		assert.Len(t, buckets.Upcoming, 2)
	})

	t.Run("cancelled orders are skipped", func(t *testing.T) {
		o := orderWithManualSteps(t, []services.StepDefinition{{Name: "a"}})
		require.NoError(t, o.Cancel(now))

		buckets := resolver.Partition([]*order.Order{o}, worker)

		assert.Zero(t, buckets.Total())
	})
}
