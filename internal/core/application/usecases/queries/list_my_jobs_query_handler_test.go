package queries_test

import (
	"context"
	"testing"
	"time"

	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) GetByStepID(ctx context.Context, stepID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, stepID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderReader) GetAllActiveWithStepsFor(ctx context.Context, workerID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
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
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-TEST", &customerID, order.PriorityHigh,
		nil, "", false, []order.Item{item}, now)
	require.NoError(t, err)

	steps, err := services.NewStepPlanner().PlanManual(defs)
	require.NoError(t, err)
	require.NoError(t, o.AttachSteps(steps))
	return o
}

func TestListMyJobsQueryHandler_Handle_BucketsAndSummary(t *testing.T) {
	ctx := t.Context()
	workerID := kernel.NewUUID()

	o := orderWithManualSteps(t, "cut", "sand", "paint")
	require.NoError(t, o.StartStep(o.Steps()[0].ID(), workerID, now))
	_, err := o.CompleteStep(o.Steps()[0].ID(), workerID, "", false, now)
	require.NoError(t, err)

	reader := new(MockOrderReader)
	reader.On("GetAllActiveWithStepsFor", mock.Anything, workerID).
		Return([]*order.Order{o}, nil).Once()

	query, err := queries.NewListMyJobsQuery(workerID)
	require.NoError(t, err)

	h := queries.NewListMyJobsQueryHandler(reader)
	resp, err := h.Handle(ctx, query)

	require.NoError(t, err)
	assert.Len(t, resp.Completed, 1)
	assert.Len(t, resp.Current, 1, "step sand is next")
	assert.Len(t, resp.Upcoming, 1)
	assert.Empty(t, resp.InProgress)

	assert.Equal(t, "sand", resp.Current[0].Name)
	assert.Equal(t, o.ID(), resp.Current[0].OrderID)
	assert.Equal(t, "ORD-TEST", resp.Current[0].OrderNumber)
	assert.Equal(t, "HIGH", resp.Current[0].OrderPriority)
	assert.Equal(t, "WAITING", resp.Current[0].Status)

	assert.Equal(t, queries.JobSummary{
		Current: 1, InProgress: 0, Upcoming: 1, Completed: 1, Total: 3,
	}, resp.Summary)

	reader.AssertExpectations(t)
}

func TestListMyJobsQueryHandler_Handle_EmptyWorkload(t *testing.T) {
	ctx := t.Context()
	workerID := kernel.NewUUID()

	reader := new(MockOrderReader)
	reader.On("GetAllActiveWithStepsFor", mock.Anything, workerID).
		Return([]*order.Order{}, nil).Once()

	query, err := queries.NewListMyJobsQuery(workerID)
	require.NoError(t, err)

	h := queries.NewListMyJobsQueryHandler(reader)
	resp, err := h.Handle(ctx, query)

	require.NoError(t, err)
	assert.Zero(t, resp.Summary.Total)
	assert.Empty(t, resp.Current)
}

func TestListMyJobsQueryHandler_Handle_ValidationError(t *testing.T) {
	h := queries.NewListMyJobsQueryHandler(new(MockOrderReader))

	_, err := h.Handle(t.Context(), queries.ListMyJobsQuery{})

	require.ErrorIs(t, err, queries.ErrListMyJobsQueryIsNotConstructed)
}
