package commands

import (
	"context"
	"fmt"
	"time"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/model/worker"
)

// BlockStepCommandHandler parks a WAITING step in BLOCKED. Blocking overrides
// the normal flow of the production line, so it requires STEP_OVERRIDE.
type BlockStepCommandHandler struct {
	uowFactory  StepUoWFactory
	isTransient TransientClassifier
}

// NewBlockStepCommandHandler creates a handler for blocking production steps.
func NewBlockStepCommandHandler(uowFactory StepUoWFactory, isTransient TransientClassifier) BlockStepCommandHandler {
	return BlockStepCommandHandler{
		uowFactory:  uowFactory,
		isTransient: isTransient,
	}
}

// Handle processes the block-step command.
func (h *BlockStepCommandHandler) Handle(ctx context.Context, cmd BlockStepCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retryTransient(ctx, h.isTransient, func() error {
		return h.execute(ctx, cmd)
	})
}

func (h *BlockStepCommandHandler) execute(ctx context.Context, cmd BlockStepCommand) error {
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

	if err = aggregate.BlockStep(cmd.StepID(), time.Now().UTC()); err != nil {
		return err
	}

	step, err := aggregate.Step(cmd.StepID())
	if err != nil {
		return err
	}
	if err = orderRepo.UpdateStepIfStatus(ctx, step, order.StepWaiting); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
