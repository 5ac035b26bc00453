package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrUpdateStepNotesCommandIsNotConstructed = errors.New(
	"UpdateStepNotesCommand must be created via NewUpdateStepNotesCommand constructor",
)

// UpdateStepNotesCommand represents a request to replace a step's notes
// without changing its status.
type UpdateStepNotesCommand struct { //nolint:recvcheck //using for validation
	stepID  kernel.UUID
	actorID kernel.UUID
	notes   string

	guard guard.ConstructorGuard
}

// NewUpdateStepNotesCommand creates a command to set the given step's notes
// on behalf of the acting worker.
func NewUpdateStepNotesCommand(stepID, actorID kernel.UUID, notes string) (UpdateStepNotesCommand, error) {
	cmd := UpdateStepNotesCommand{
		notes: notes,

		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setStepID(stepID),
		cmd.setActorID(actorID),
	); err != nil {
		return UpdateStepNotesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateStepNotesCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStepNotesCommandIsNotConstructed)
}

// StepID returns the identifier of the step whose notes change.
func (c UpdateStepNotesCommand) StepID() kernel.UUID {
	return c.stepID
}

// ActorID returns the identifier of the worker updating the notes.
func (c UpdateStepNotesCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Notes returns the replacement notes text.
func (c UpdateStepNotesCommand) Notes() string {
	return c.notes
}

func (c *UpdateStepNotesCommand) setStepID(stepID kernel.UUID) error {
	if err := stepID.Validate(); err != nil {
		return err
	}

	c.stepID = stepID
	return nil
}

func (c *UpdateStepNotesCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
