package commands_test

import (
	"errors"
	"testing"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/model/worker"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStartStepCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	o := orderWithManualSteps(t, "cut", "sand")
	stepID := o.Steps()[0].ID()

	cmd, err := commands.NewStartStepCommand(stepID, actorID)
	require.NoError(t, err)

	actor := workerWith(t, actorID, worker.PermissionStepExecute)

	workerRepo := new(MockWorkerRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockStepUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WorkerRepository").Return(workerRepo).Once(),
		workerRepo.On("Get", mock.Anything, actorID).Return(actor, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByStepIDForUpdate", mock.Anything, stepID).Return(o, nil).Once(),
		orderRepo.On("UpdateStepIfStatus", mock.Anything, mock.AnythingOfType("*order.Step"), order.StepWaiting).
			Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStepUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewStartStepCommandHandler(factory, nil)
	require.NoError(t, h.Handle(ctx, cmd))

	step, err := o.Step(stepID)
	require.NoError(t, err)
	require.Equal(t, order.StepInProgress, step.Status())
	require.True(t, step.IsAssignedTo(actorID))
	require.Equal(t, order.StatusInProgress, o.Status())

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestStartStepCommandHandler_Handle_NotYourTurn(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	o := orderWithManualSteps(t, "cut", "sand")
	secondStepID := o.Steps()[1].ID()

	cmd, err := commands.NewStartStepCommand(secondStepID, actorID)
	require.NoError(t, err)

	actor := workerWith(t, actorID, worker.PermissionStepExecute)

	workerRepo := new(MockWorkerRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockStepUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WorkerRepository").Return(workerRepo).Once(),
		workerRepo.On("Get", mock.Anything, actorID).Return(actor, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByStepIDForUpdate", mock.Anything, secondStepID).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStepUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewStartStepCommandHandler(factory, nil)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrNotYourTurn)
	require.Equal(t, order.StepWaiting, o.Steps()[1].Status())
	uow.AssertExpectations(t)
}

func TestStartStepCommandHandler_Handle_PermissionDenied(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()

	cmd, err := commands.NewStartStepCommand(kernel.NewUUID(), actorID)
	require.NoError(t, err)

	actor := workerWith(t, actorID, worker.PermissionOrderRead)

	workerRepo := new(MockWorkerRepository)
	uow := new(MockStepUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WorkerRepository").Return(workerRepo).Once(),
		workerRepo.On("Get", mock.Anything, actorID).Return(actor, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStepUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewStartStepCommandHandler(factory, nil)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, worker.ErrPermissionDenied)
	uow.AssertExpectations(t)
}

// A lost claim surfaces as an invalid transition and is never retried, even
// with a classifier that would retry anything.
func TestStartStepCommandHandler_Handle_LostClaimIsNotRetried(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	o := orderWithManualSteps(t, "cut")
	stepID := o.Steps()[0].ID()
	require.NoError(t, o.StartStep(stepID, kernel.NewUUID(), testNow))

	cmd, err := commands.NewStartStepCommand(stepID, actorID)
	require.NoError(t, err)

	actor := workerWith(t, actorID, worker.PermissionStepExecute)

	workerRepo := new(MockWorkerRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockStepUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WorkerRepository").Return(workerRepo).Once(),
		workerRepo.On("Get", mock.Anything, actorID).Return(actor, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByStepIDForUpdate", mock.Anything, stepID).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStepUoWFactory)
	factory.On("Create").Return(uow).Once()

	retryEverything := func(error) bool { return true }
	h := commands.NewStartStepCommandHandler(factory, retryEverything)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestStartStepCommandHandler_Handle_TransientErrorIsRetried(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	o := orderWithManualSteps(t, "cut")
	stepID := o.Steps()[0].ID()

	cmd, err := commands.NewStartStepCommand(stepID, actorID)
	require.NoError(t, err)

	actor := workerWith(t, actorID, worker.PermissionStepExecute)
	transientErr := errors.New("deadlock detected")

	workerRepo := new(MockWorkerRepository)
	workerRepo.On("Get", mock.Anything, actorID).Return(actor, nil)

	failing := new(MockStepUoW)
	failing.On("Begin", ctx).Return(transientErr).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByStepIDForUpdate", mock.Anything, stepID).Return(o, nil).Once()
	orderRepo.On("UpdateStepIfStatus", mock.Anything, mock.Anything, order.StepWaiting).Return(nil).Once()
	orderRepo.On("Update", mock.Anything, o).Return(nil).Once()

	succeeding := new(MockStepUoW)
	succeeding.On("Begin", ctx).Return(nil).Once()
	succeeding.On("WorkerRepository").Return(workerRepo).Once()
	succeeding.On("OrderRepository").Return(orderRepo).Once()
	succeeding.On("Commit", ctx).Return(nil).Once()
	succeeding.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockStepUoWFactory)
	factory.On("Create").Return(failing).Once()
	factory.On("Create").Return(succeeding).Once()

	isTransient := func(err error) bool { return errors.Is(err, transientErr) }
	h := commands.NewStartStepCommandHandler(factory, isTransient)

	require.NoError(t, h.Handle(ctx, cmd))
	factory.AssertExpectations(t)
	failing.AssertExpectations(t)
	succeeding.AssertExpectations(t)
}
