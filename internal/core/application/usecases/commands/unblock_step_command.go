package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrUnblockStepCommandIsNotConstructed = errors.New(
	"UnblockStepCommand must be created via NewUnblockStepCommand constructor",
)

// UnblockStepCommand represents a request to return a BLOCKED step to WAITING.
type UnblockStepCommand struct { //nolint:recvcheck //using for validation
	stepID  kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewUnblockStepCommand creates a command to unblock the given step on behalf
// of the acting worker.
func NewUnblockStepCommand(stepID, actorID kernel.UUID) (UnblockStepCommand, error) {
	cmd := UnblockStepCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setStepID(stepID),
		cmd.setActorID(actorID),
	); err != nil {
		return UnblockStepCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UnblockStepCommand) Validate() error {
	return c.guard.Validate(ErrUnblockStepCommandIsNotConstructed)
}

// StepID returns the identifier of the step to unblock.
func (c UnblockStepCommand) StepID() kernel.UUID {
	return c.stepID
}

// ActorID returns the identifier of the worker unblocking the step.
func (c UnblockStepCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *UnblockStepCommand) setStepID(stepID kernel.UUID) error {
	if err := stepID.Validate(); err != nil {
		return err
	}

	c.stepID = stepID
	return nil
}

func (c *UnblockStepCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
