package commands_test

import (
	"testing"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/model/worker"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBlockStepCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	o := orderWithManualSteps(t, "cut", "sand")
	stepID := o.Steps()[0].ID()

	cmd, err := commands.NewBlockStepCommand(stepID, actorID)
	require.NoError(t, err)

	actor := workerWith(t, actorID, worker.PermissionStepOverride)

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

	h := commands.NewBlockStepCommandHandler(factory, nil)
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, order.StepBlocked, o.Steps()[0].Status())

	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestBlockStepCommandHandler_Handle_ExecutePermissionIsNotEnough(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()

	cmd, err := commands.NewBlockStepCommand(kernel.NewUUID(), actorID)
	require.NoError(t, err)

	actor := workerWith(t, actorID, worker.PermissionStepExecute)

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

	h := commands.NewBlockStepCommandHandler(factory, nil)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, worker.ErrPermissionDenied)
	uow.AssertExpectations(t)
}

func TestUnblockStepCommandHandler_Handle_RoundTrip(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	o := orderWithManualSteps(t, "cut")
	stepID := o.Steps()[0].ID()
	require.NoError(t, o.BlockStep(stepID, testNow))

	cmd, err := commands.NewUnblockStepCommand(stepID, actorID)
	require.NoError(t, err)

	actor := workerWith(t, actorID, worker.PermissionStepOverride)

	workerRepo := new(MockWorkerRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockStepUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WorkerRepository").Return(workerRepo).Once(),
		workerRepo.On("Get", mock.Anything, actorID).Return(actor, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByStepIDForUpdate", mock.Anything, stepID).Return(o, nil).Once(),
		orderRepo.On("UpdateStepIfStatus", mock.Anything, mock.AnythingOfType("*order.Step"), order.StepBlocked).
			Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStepUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUnblockStepCommandHandler(factory, nil)
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, order.StepWaiting, o.Steps()[0].Status())

	uow.AssertExpectations(t)
}
