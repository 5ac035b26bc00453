package commands

import (
	"context"
	"fmt"
	"time"

	"workshop/internal/core/domain/model/worker"
)

// UpdateOrderCommandHandler changes an order's priority, deadline and notes.
// The acting worker must hold ORDER_UPDATE; terminal orders reject updates
// with ErrConflictingState.
type UpdateOrderCommandHandler struct {
	uowFactory  StepUoWFactory
	isTransient TransientClassifier
}

// NewUpdateOrderCommandHandler creates a handler for order detail updates.
func NewUpdateOrderCommandHandler(uowFactory StepUoWFactory, isTransient TransientClassifier) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory:  uowFactory,
		isTransient: isTransient,
	}
}

// Handle processes the update-order command.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retryTransient(ctx, h.isTransient, func() error {
		return h.execute(ctx, cmd)
	})
}

func (h *UpdateOrderCommandHandler) execute(ctx context.Context, cmd UpdateOrderCommand) error {
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

	if err = aggregate.UpdateDetails(cmd.Priority(), cmd.Deadline(), cmd.Notes(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
