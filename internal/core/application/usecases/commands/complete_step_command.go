package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrCompleteStepCommandIsNotConstructed = errors.New(
	"CompleteStepCommand must be created via NewCompleteStepCommand constructor",
)

// CompleteStepCommand represents a worker's request to finish a production
// step. Completion notes, when present, are appended to the step's notes.
type CompleteStepCommand struct { //nolint:recvcheck //using for validation
	stepID  kernel.UUID
	actorID kernel.UUID
	notes   string

	guard guard.ConstructorGuard
}

// NewCompleteStepCommand creates a command to complete the given step on
// behalf of the acting worker.
func NewCompleteStepCommand(stepID, actorID kernel.UUID, notes string) (CompleteStepCommand, error) {
	cmd := CompleteStepCommand{
		notes: notes,

		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setStepID(stepID),
		cmd.setActorID(actorID),
	); err != nil {
		return CompleteStepCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteStepCommand) Validate() error {
	return c.guard.Validate(ErrCompleteStepCommandIsNotConstructed)
}

// StepID returns the identifier of the step to complete.
func (c CompleteStepCommand) StepID() kernel.UUID {
	return c.stepID
}

// ActorID returns the identifier of the worker completing the step.
func (c CompleteStepCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Notes returns the completion notes to append, possibly empty.
func (c CompleteStepCommand) Notes() string {
	return c.notes
}

func (c *CompleteStepCommand) setStepID(stepID kernel.UUID) error {
	if err := stepID.Validate(); err != nil {
		return err
	}

	c.stepID = stepID
	return nil
}

func (c *CompleteStepCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
