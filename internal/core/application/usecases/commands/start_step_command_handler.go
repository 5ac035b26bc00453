package commands

import (
	"context"
	"fmt"
	"time"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/model/worker"
)

// StartStepCommandHandler moves a step from WAITING to IN_PROGRESS on behalf
// of the acting worker, who must hold STEP_EXECUTE. The owning order's rows
// are locked for the transaction and the step write carries a check-and-set
// on WAITING, so the loser of a concurrent claim surfaces ErrInvalidTransition
// instead of overwriting the winner.
//
// Workflow failures (permission, turn, transition) are never retried; only
// failures the transient classifier recognizes re-run the whole transaction.
type StartStepCommandHandler struct {
	uowFactory  StepUoWFactory
	isTransient TransientClassifier
}

// NewStartStepCommandHandler creates a handler for starting production steps.
func NewStartStepCommandHandler(uowFactory StepUoWFactory, isTransient TransientClassifier) StartStepCommandHandler {
	return StartStepCommandHandler{
		uowFactory:  uowFactory,
		isTransient: isTransient,
	}
}

// Handle processes the start-step command.
func (h *StartStepCommandHandler) Handle(ctx context.Context, cmd StartStepCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retryTransient(ctx, h.isTransient, func() error {
		return h.execute(ctx, cmd)
	})
}

func (h *StartStepCommandHandler) execute(ctx context.Context, cmd StartStepCommand) error {
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
	if !actor.Can(worker.PermissionStepExecute) {
		return fmt.Errorf("%w: %s", worker.ErrPermissionDenied, worker.PermissionStepExecute)
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetByStepIDForUpdate(ctx, cmd.StepID())
	if err != nil {
		return err
	}

	if err = aggregate.StartStep(cmd.StepID(), cmd.ActorID(), time.Now().UTC()); err != nil {
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
