package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrBlockStepCommandIsNotConstructed = errors.New(
	"BlockStepCommand must be created via NewBlockStepCommand constructor",
)

// BlockStepCommand represents a request to park a WAITING step so it cannot
// be started until unblocked, e.g. while waiting on materials.
type BlockStepCommand struct { //nolint:recvcheck //using for validation
	stepID  kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewBlockStepCommand creates a command to block the given step on behalf of
// the acting worker.
func NewBlockStepCommand(stepID, actorID kernel.UUID) (BlockStepCommand, error) {
	cmd := BlockStepCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setStepID(stepID),
		cmd.setActorID(actorID),
	); err != nil {
		return BlockStepCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BlockStepCommand) Validate() error {
	return c.guard.Validate(ErrBlockStepCommandIsNotConstructed)
}

// StepID returns the identifier of the step to block.
func (c BlockStepCommand) StepID() kernel.UUID {
	return c.stepID
}

// ActorID returns the identifier of the worker blocking the step.
func (c BlockStepCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *BlockStepCommand) setStepID(stepID kernel.UUID) error {
	if err := stepID.Validate(); err != nil {
		return err
	}

	c.stepID = stepID
	return nil
}

func (c *BlockStepCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
