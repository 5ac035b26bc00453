package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrStartStepCommandIsNotConstructed = errors.New(
	"StartStepCommand must be created via NewStartStepCommand constructor",
)

// StartStepCommand represents a worker's request to begin a production step.
// Starting claims the step for the worker when it was unassigned.
type StartStepCommand struct { //nolint:recvcheck //using for validation
	stepID  kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartStepCommand creates a command to start the given step on behalf of
// the acting worker.
func NewStartStepCommand(stepID, actorID kernel.UUID) (StartStepCommand, error) {
	cmd := StartStepCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setStepID(stepID),
		cmd.setActorID(actorID),
	); err != nil {
		return StartStepCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartStepCommand) Validate() error {
	return c.guard.Validate(ErrStartStepCommandIsNotConstructed)
}

// StepID returns the identifier of the step to start.
func (c StartStepCommand) StepID() kernel.UUID {
	return c.stepID
}

// ActorID returns the identifier of the worker starting the step.
func (c StartStepCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *StartStepCommand) setStepID(stepID kernel.UUID) error {
	if err := stepID.Validate(); err != nil {
		return err
	}

	c.stepID = stepID
	return nil
}

func (c *StartStepCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
