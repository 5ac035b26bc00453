package ports

import (
	"context"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// including their items and step instances.
type OrderRepository interface {
	// Add persists a new order aggregate with its items and steps as one unit.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to the order's own row and items. Step rows are
	// written individually through UpdateStepIfStatus so that every step write
	// carries its check-and-set.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its rows for the duration of
	// the surrounding transaction. Used by step transitions so concurrent
	// claims on the same step serialize at the storage layer.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByStepID retrieves the order owning the given step instance.
	GetByStepID(ctx context.Context, stepID kernel.UUID) (*order.Order, error)

	// GetByStepIDForUpdate is GetByStepID with the locking semantics of
	// GetForUpdate.
	GetByStepIDForUpdate(ctx context.Context, stepID kernel.UUID) (*order.Order, error)

	// UpdateStepIfStatus conditionally persists a step's state with a
	// check-and-set on its previous status. Returns ErrInvalidTransition
	// (wrapped) when the row no longer carries the expected status, which is
	// how the loser of a concurrent claim learns it lost.
	UpdateStepIfStatus(ctx context.Context, step *order.Step, expected order.StepStatus) error

	// GetAllActiveWithStepsFor retrieves all non-terminal orders that contain
	// at least one step visible to the worker (unassigned or assigned to
	// them), with their complete step sets for turn evaluation.
	GetAllActiveWithStepsFor(ctx context.Context, workerID kernel.UUID) ([]*order.Order, error)

	// Delete removes an order with its items and steps.
	// Callers enforce the deletion policy before invoking it.
	Delete(ctx context.Context, id kernel.UUID) error
}
