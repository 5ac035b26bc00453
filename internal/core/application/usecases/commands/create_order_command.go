package commands

import (
	"errors"
	"fmt"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/services"
	"workshop/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	// ErrItemsAreRequired wraps order.ErrEmptyOrder so that callers
	// classifying by the domain sentinel treat it as the same validation
	// failure.
	ErrItemsAreRequired = fmt.Errorf("%w: at least one item is required", order.ErrEmptyOrder)
)

// CreateOrderCommand represents a request to create a new manufacturing order.
// The order's production steps are expanded from the ordered products' step
// templates, unless an explicit step override list is supplied, in which case
// the overrides replace template expansion for the whole order.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	item, _ := order.NewItem(productID, 2)
//	cmd, err := NewCreateOrderCommand(orderID, actorID, &customerID,
//	    order.PriorityNormal, nil, "rush job", false, []order.Item{item}, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	actorID    kernel.UUID
	customerID *kernel.UUID
	priority   order.Priority
	deadline   *time.Time
	notes      string
	isStock    bool
	items      []order.Item
	overrides  []services.StepDefinition

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new manufacturing
// order on behalf of the acting worker. Validates identifiers, priority and
// the presence of at least one item; the customer/stock rule and the step
// override contents are validated by the domain when the handler runs.
func NewCreateOrderCommand(orderID, actorID kernel.UUID, customerID *kernel.UUID,
	priority order.Priority, deadline *time.Time, notes string, isStock bool,
	items []order.Item, overrides []services.StepDefinition,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		customerID: customerID,
		deadline:   deadline,
		notes:      notes,
		isStock:    isStock,
		overrides:  overrides,

		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
		cmd.setPriority(priority),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the identifier of the worker performing the creation.
func (c CreateOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// CustomerID returns the owning customer's identifier, or nil for stock orders.
func (c CreateOrderCommand) CustomerID() *kernel.UUID {
	return c.customerID
}

// Priority returns the requested order priority.
func (c CreateOrderCommand) Priority() order.Priority {
	return c.priority
}

// Deadline returns the optional promised date.
func (c CreateOrderCommand) Deadline() *time.Time {
	return c.deadline
}

// Notes returns the free-text order notes.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

// IsStock reports whether the order is stock production.
func (c CreateOrderCommand) IsStock() bool {
	return c.isStock
}

// Items returns the ordered (product, quantity) tuples.
func (c CreateOrderCommand) Items() []order.Item {
	return c.items
}

// Overrides returns the explicit step definitions that replace template
// expansion, or an empty slice when templates apply.
func (c CreateOrderCommand) Overrides() []services.StepDefinition {
	return c.overrides
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *CreateOrderCommand) setPriority(priority order.Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}

	c.priority = priority
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = items
	return nil
}
