package commands

import (
	"context"
	"fmt"
	"time"

	"workshop/internal/core/domain/model/worker"
)

// UpdateStepNotesCommandHandler replaces a step's notes. The acting worker
// must hold STEP_EXECUTE; when the step is assigned to somebody else the
// update additionally requires STEP_OVERRIDE. Completed steps are immutable.
type UpdateStepNotesCommandHandler struct {
	uowFactory  StepUoWFactory
	isTransient TransientClassifier
}

// NewUpdateStepNotesCommandHandler creates a handler for step note updates.
func NewUpdateStepNotesCommandHandler(uowFactory StepUoWFactory, isTransient TransientClassifier) UpdateStepNotesCommandHandler {
	return UpdateStepNotesCommandHandler{
		uowFactory:  uowFactory,
		isTransient: isTransient,
	}
}

// Handle processes the update-step-notes command.
func (h *UpdateStepNotesCommandHandler) Handle(ctx context.Context, cmd UpdateStepNotesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retryTransient(ctx, h.isTransient, func() error {
		return h.execute(ctx, cmd)
	})
}

func (h *UpdateStepNotesCommandHandler) execute(ctx context.Context, cmd UpdateStepNotesCommand) error {
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

	override := actor.Can(worker.PermissionStepOverride)
	if err = aggregate.UpdateStepNotes(cmd.StepID(), cmd.ActorID(), cmd.Notes(), override, time.Now().UTC()); err != nil {
		return err
	}

	step, err := aggregate.Step(cmd.StepID())
	if err != nil {
		return err
	}
	if err = orderRepo.UpdateStepIfStatus(ctx, step, step.Status()); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
