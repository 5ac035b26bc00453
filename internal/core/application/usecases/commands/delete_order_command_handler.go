package commands

import (
	"context"
	"fmt"

	"workshop/internal/core/domain/model/worker"
)

// DeleteOrderCommandHandler removes an order with its items and steps.
// The acting worker must hold ORDER_DELETE; the aggregate's deletion policy
// rejects orders with any started work.
type DeleteOrderCommandHandler struct {
	uowFactory  StepUoWFactory
	isTransient TransientClassifier
}

// NewDeleteOrderCommandHandler creates a handler for order deletion.
func NewDeleteOrderCommandHandler(uowFactory StepUoWFactory, isTransient TransientClassifier) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory:  uowFactory,
		isTransient: isTransient,
	}
}

// Handle processes the delete-order command.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retryTransient(ctx, h.isTransient, func() error {
		return h.execute(ctx, cmd)
	})
}

func (h *DeleteOrderCommandHandler) execute(ctx context.Context, cmd DeleteOrderCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor, err := uow.WorkerRepository().Get(ctx, cmd.ActorID())
	if err != nil {
		return err
	}
	if !actor.Can(worker.PermissionOrderDelete) {
		return fmt.Errorf("%w: %s", worker.ErrPermissionDenied, worker.PermissionOrderDelete)
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.CanDelete(); err != nil {
		return err
	}

	if err = orderRepo.Delete(ctx, aggregate.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
