package commands_test

import (
	"testing"
	"time"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/model/product"
	"workshop/internal/core/domain/model/worker"
	"workshop/internal/core/domain/services"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func productWithTemplate(t *testing.T, id kernel.UUID, stepNames ...string) *product.Product {
	t.Helper()

	template := make([]product.TemplateStep, 0, len(stepNames))
	for i, name := range stepNames {
		step, err := product.NewTemplateStep(kernel.NewUUID(), i+1, name, "", time.Hour)
		require.NoError(t, err)
		template = append(template, step)
	}

	p, err := product.NewProduct(id, kernel.NewUUID(), "chair", template)
	require.NoError(t, err)
	return p
}

func TestCreateOrderCommandHandler_Handle_FromTemplates(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	productID := kernel.NewUUID()
	customerID := kernel.NewUUID()

	item, err := order.NewItem(productID, 1)
	require.NoError(t, err)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), actorID, &customerID,
		order.PriorityNormal, nil, "", false, []order.Item{item}, nil)
	require.NoError(t, err)

	actor := workerWith(t, actorID, worker.PermissionOrderCreate)
	p := productWithTemplate(t, productID, "cut", "sand", "paint")

	workerRepo := new(MockWorkerRepository)
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WorkerRepository").Return(workerRepo).Once(),
		workerRepo.On("Get", mock.Anything, actorID).Return(actor, nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("GetAll", mock.Anything, []kernel.UUID{productID}).
			Return(map[kernel.UUID]*product.Product{productID: p}, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	added := orderRepo.Calls[0].Arguments.Get(1).(*order.Order)
	require.Equal(t, order.StatusPending, added.Status())
	require.Len(t, added.Steps(), 3)
	require.Equal(t, "cut", added.Steps()[0].Name())
	require.Equal(t, "ORD-", added.Number()[:4])

	orderRepo.AssertExpectations(t)
	workerRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_WithOverrides(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	customerID := kernel.NewUUID()

	overrides := []services.StepDefinition{{Name: "custom weld"}, {Name: "custom finish"}}
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), actorID, &customerID,
		order.PriorityUrgent, nil, "", false, validItems(t), overrides)
	require.NoError(t, err)

	actor := workerWith(t, actorID, worker.PermissionOrderCreate, worker.PermissionStepOverride)

	workerRepo := new(MockWorkerRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WorkerRepository").Return(workerRepo).Once(),
		workerRepo.On("Get", mock.Anything, actorID).Return(actor, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	added := orderRepo.Calls[0].Arguments.Get(1).(*order.Order)
	require.Len(t, added.Steps(), 2)
	require.True(t, added.Steps()[0].Source().IsManual())

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_PermissionDenied(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	customerID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), actorID, &customerID,
		order.PriorityNormal, nil, "", false, validItems(t), nil)
	require.NoError(t, err)

	actor := workerWith(t, actorID, worker.PermissionOrderRead)

	workerRepo := new(MockWorkerRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WorkerRepository").Return(workerRepo).Once(),
		workerRepo.On("Get", mock.Anything, actorID).Return(actor, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, worker.ErrPermissionDenied)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_OverridesNeedOverridePermission(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	customerID := kernel.NewUUID()

	overrides := []services.StepDefinition{{Name: "custom"}}
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), actorID, &customerID,
		order.PriorityNormal, nil, "", false, validItems(t), overrides)
	require.NoError(t, err)

	actor := workerWith(t, actorID, worker.PermissionOrderCreate)

	workerRepo := new(MockWorkerRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WorkerRepository").Return(workerRepo).Once(),
		workerRepo.On("Get", mock.Anything, actorID).Return(actor, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, worker.ErrPermissionDenied)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory)

	err := h.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}
