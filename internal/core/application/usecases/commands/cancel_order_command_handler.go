package commands

import (
	"context"
	"fmt"
	"time"

	"workshop/internal/core/domain/model/worker"
)

// CancelOrderCommandHandler moves an order to CANCELLED. The acting worker
// must hold ORDER_UPDATE. The cancelled record stays queryable.
type CancelOrderCommandHandler struct {
	uowFactory  StepUoWFactory
	isTransient TransientClassifier
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory StepUoWFactory, isTransient TransientClassifier) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory:  uowFactory,
		isTransient: isTransient,
	}
}

// Handle processes the cancel-order command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retryTransient(ctx, h.isTransient, func() error {
		return h.execute(ctx, cmd)
	})
}

func (h *CancelOrderCommandHandler) execute(ctx context.Context, cmd CancelOrderCommand) error {
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
	if !actor.Can(worker.PermissionOrderUpdate) {
		return fmt.Errorf("%w: %s", worker.ErrPermissionDenied, worker.PermissionOrderUpdate)
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.Cancel(time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
