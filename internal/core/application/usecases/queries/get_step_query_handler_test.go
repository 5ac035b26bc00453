package queries_test

import (
	"testing"

	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetStepQueryHandler_Handle_UnassignedStepIsVisible(t *testing.T) {
	ctx := t.Context()
	workerID := kernel.NewUUID()
	o := orderWithManualSteps(t, "cut", "sand")
	stepID := o.Steps()[0].ID()

	reader := new(MockOrderReader)
	reader.On("GetByStepID", mock.Anything, stepID).Return(o, nil).Once()

	query, err := queries.NewGetStepQuery(stepID, workerID)
	require.NoError(t, err)

	h := queries.NewGetStepQueryHandler(reader)
	resp, err := h.Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, stepID, resp.ID)
	assert.Equal(t, o.ID(), resp.OrderID)
	assert.Equal(t, "cut", resp.Name)
	assert.Equal(t, "WAITING", resp.Status)
	assert.True(t, resp.IsMyTurn)
	assert.Nil(t, resp.Assignee)
}

func TestGetStepQueryHandler_Handle_SecondStepIsNotMyTurn(t *testing.T) {
	ctx := t.Context()
	workerID := kernel.NewUUID()
	o := orderWithManualSteps(t, "cut", "sand")
	stepID := o.Steps()[1].ID()

	reader := new(MockOrderReader)
	reader.On("GetByStepID", mock.Anything, stepID).Return(o, nil).Once()

	query, err := queries.NewGetStepQuery(stepID, workerID)
	require.NoError(t, err)

	h := queries.NewGetStepQueryHandler(reader)
	resp, err := h.Handle(ctx, query)

	require.NoError(t, err)
	assert.False(t, resp.IsMyTurn)
}

func TestGetStepQueryHandler_Handle_ForeignStepIsHidden(t *testing.T) {
	ctx := t.Context()
	workerID := kernel.NewUUID()
	other := kernel.NewUUID()
	o := orderWithManualSteps(t, "cut")
	stepID := o.Steps()[0].ID()
	require.NoError(t, o.StartStep(stepID, other, now))

	reader := new(MockOrderReader)
	reader.On("GetByStepID", mock.Anything, stepID).Return(o, nil).Once()

	query, err := queries.NewGetStepQuery(stepID, workerID)
	require.NoError(t, err)

	h := queries.NewGetStepQueryHandler(reader)
	_, err = h.Handle(ctx, query)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
