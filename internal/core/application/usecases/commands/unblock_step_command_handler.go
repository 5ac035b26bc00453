package commands

import (
	"context"
	"fmt"
	"time"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/model/worker"
)

// UnblockStepCommandHandler returns a BLOCKED step to WAITING. Requires
// STEP_OVERRIDE, mirroring BlockStepCommandHandler.
type UnblockStepCommandHandler struct {
	uowFactory  StepUoWFactory
	isTransient TransientClassifier
}

// NewUnblockStepCommandHandler creates a handler for unblocking production steps.
func NewUnblockStepCommandHandler(uowFactory StepUoWFactory, isTransient TransientClassifier) UnblockStepCommandHandler {
	return UnblockStepCommandHandler{
		uowFactory:  uowFactory,
		isTransient: isTransient,
	}
}

// Handle processes the unblock-step command.
func (h *UnblockStepCommandHandler) Handle(ctx context.Context, cmd UnblockStepCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retryTransient(ctx, h.isTransient, func() error {
		return h.execute(ctx, cmd)
	})
}

func (h *UnblockStepCommandHandler) execute(ctx context.Context, cmd UnblockStepCommand) error {
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
	if !actor.Can(worker.PermissionStepOverride) {
		return fmt.Errorf("%w: %s", worker.ErrPermissionDenied, worker.PermissionStepOverride)
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetByStepIDForUpdate(ctx, cmd.StepID())
	if err != nil {
		return err
	}

	if err = aggregate.UnblockStep(cmd.StepID(), time.Now().UTC()); err != nil {
		return err
	}

	step, err := aggregate.Step(cmd.StepID())
	if err != nil {
		return err
	}
	if err = orderRepo.UpdateStepIfStatus(ctx, step, order.StepBlocked); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
