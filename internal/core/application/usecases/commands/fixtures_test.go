package commands_test

import (
	"testing"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/model/worker"
	"workshop/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)

func workerWith(t *testing.T, id kernel.UUID, grants ...worker.Permission) *worker.Worker {
	t.Helper()

	w, err := worker.NewWorker(id, kernel.NewUUID(), "test worker", false, grants)
	require.NoError(t, err)
	return w
}

func orderWithManualSteps(t *testing.T, names ...string) *order.Order {
	t.Helper()

	defs := make([]services.StepDefinition, 0, len(names))
	for _, name := range names {
		defs = append(defs, services.StepDefinition{Name: name})
	}

	customerID := kernel.NewUUID()
	item, err := order.NewItem(kernel.NewUUID(), 1)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-TEST", &customerID, order.PriorityNormal,
		nil, "", false, []order.Item{item}, testNow)
	require.NoError(t, err)

	steps, err := services.NewStepPlanner().PlanManual(defs)
	require.NoError(t, err)
	require.NoError(t, o.AttachSteps(steps))
	return o
}
