package queries

import (
	"errors"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery lists all orders as header rows, most urgent first.
// The acting worker must hold ORDER_READ.
type GetOrdersQuery struct {
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query to list orders on behalf of the acting
// worker.
func NewGetOrdersQuery(actorID kernel.UUID) (GetOrdersQuery, error) {
	if err := actorID.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}

	return GetOrdersQuery{
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// ActorID returns the identifier of the reading worker.
func (q GetOrdersQuery) ActorID() kernel.UUID {
	return q.actorID
}

// GetOrdersQueryResponse is one order header row in the listing.
type GetOrdersQueryResponse struct {
	ID         kernel.UUID
	Number     string
	CustomerID *kernel.UUID
	Priority   string
	Status     string
	Deadline   *time.Time
	IsStock    bool
	CreatedAt  time.Time
}
