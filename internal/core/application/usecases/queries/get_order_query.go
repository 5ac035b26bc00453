package queries

import (
	"errors"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its items and step instances.
// The acting worker must hold ORDER_READ.
type GetOrderQuery struct {
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to read the given order on behalf of the
// acting worker.
func NewGetOrderQuery(orderID, actorID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), actorID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to read.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// ActorID returns the identifier of the reading worker.
func (q GetOrderQuery) ActorID() kernel.UUID {
	return q.actorID
}

// GetOrderQueryResponse is the full read model of one order.
type GetOrderQueryResponse struct {
	ID         kernel.UUID
	Number     string
	CustomerID *kernel.UUID
	Priority   string
	Status     string
	Deadline   *time.Time
	Notes      string
	IsStock    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Items      []OrderItemResponse
	Steps      []OrderStepResponse
}

// OrderItemResponse is one (product, quantity) line of an order.
type OrderItemResponse struct {
	ProductID kernel.UUID
	Quantity  int
}

// OrderStepResponse is the read model of one step instance.
type OrderStepResponse struct {
	ID                kernel.UUID
	ProductID         *kernel.UUID
	Number            int
	Name              string
	Description       string
	EstimatedDuration time.Duration
	Status            string
	Assignee          *kernel.UUID
	Notes             string
	StartedAt         *time.Time
	CompletedAt       *time.Time
}
