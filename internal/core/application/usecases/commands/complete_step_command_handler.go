package commands

import (
	"context"
	"fmt"
	"time"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/model/worker"
)

// CompleteStepResult reports the outcome of a step completion.
type CompleteStepResult struct {
	// OrderCompleted is true exactly when this completion was the order's
	// last open step, moving the whole order to COMPLETED.
	OrderCompleted bool
}

// CompleteStepCommandHandler moves a step from IN_PROGRESS to COMPLETED and
// cascades the derived order status inside the same transaction, so the
// cascade always evaluates the sibling steps' current committed state.
//
// The acting worker must hold STEP_EXECUTE and be the step's assignee;
// holders of STEP_OVERRIDE may complete steps assigned to others.
type CompleteStepCommandHandler struct {
	uowFactory  StepUoWFactory
	isTransient TransientClassifier
}

// NewCompleteStepCommandHandler creates a handler for completing production steps.
func NewCompleteStepCommandHandler(uowFactory StepUoWFactory, isTransient TransientClassifier) CompleteStepCommandHandler {
	return CompleteStepCommandHandler{
		uowFactory:  uowFactory,
		isTransient: isTransient,
	}
}

// Handle processes the complete-step command and reports whether the order
// itself completed as a result.
func (h *CompleteStepCommandHandler) Handle(ctx context.Context, cmd CompleteStepCommand) (CompleteStepResult, error) {
	if err := cmd.Validate(); err != nil {
		return CompleteStepResult{}, err
	}

	var result CompleteStepResult
	err := retryTransient(ctx, h.isTransient, func() error {
		var execErr error
		result, execErr = h.execute(ctx, cmd)
		return execErr
	})

	return result, err
}

func (h *CompleteStepCommandHandler) execute(ctx context.Context, cmd CompleteStepCommand) (CompleteStepResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CompleteStepResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor, err := uow.WorkerRepository().Get(ctx, cmd.ActorID())
	if err != nil {
		return CompleteStepResult{}, err
	}
	if !actor.Can(worker.PermissionStepExecute) {
		return CompleteStepResult{}, fmt.Errorf("%w: %s", worker.ErrPermissionDenied, worker.PermissionStepExecute)
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetByStepIDForUpdate(ctx, cmd.StepID())
	if err != nil {
		return CompleteStepResult{}, err
	}

	override := actor.Can(worker.PermissionStepOverride)
	orderCompleted, err := aggregate.CompleteStep(cmd.StepID(), cmd.ActorID(), cmd.Notes(), override, time.Now().UTC())
	if err != nil {
		return CompleteStepResult{}, err
	}

	step, err := aggregate.Step(cmd.StepID())
	if err != nil {
		return CompleteStepResult{}, err
	}
	if err = orderRepo.UpdateStepIfStatus(ctx, step, order.StepInProgress); err != nil {
		return CompleteStepResult{}, err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return CompleteStepResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CompleteStepResult{}, err
	}

	return CompleteStepResult{OrderCompleted: orderCompleted}, nil
}
