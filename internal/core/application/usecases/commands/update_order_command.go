package commands

import (
	"errors"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand represents a request to change an order's mutable
// attributes: priority, deadline and notes. Items and steps are immutable
// after creation.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	actorID  kernel.UUID
	priority order.Priority
	deadline *time.Time
	notes    string

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command to update the given order's details
// on behalf of the acting worker.
func NewUpdateOrderCommand(orderID, actorID kernel.UUID, priority order.Priority,
	deadline *time.Time, notes string,
) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		deadline: deadline,
		notes:    notes,

		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
		cmd.setPriority(priority),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to update.
func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the identifier of the worker updating the order.
func (c UpdateOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Priority returns the new order priority.
func (c UpdateOrderCommand) Priority() order.Priority {
	return c.priority
}

// Deadline returns the new optional promised date.
func (c UpdateOrderCommand) Deadline() *time.Time {
	return c.deadline
}

// Notes returns the new free-text order notes.
func (c UpdateOrderCommand) Notes() string {
	return c.notes
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *UpdateOrderCommand) setPriority(priority order.Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}

	c.priority = priority
	return nil
}
