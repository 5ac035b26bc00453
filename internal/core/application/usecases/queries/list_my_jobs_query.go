package queries

import (
	"errors"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrListMyJobsQueryIsNotConstructed = errors.New(
	"ListMyJobsQuery must be created via NewListMyJobsQuery constructor",
)

// ListMyJobsQuery retrieves the acting worker's step instances across all
// active orders, partitioned into the four actionability buckets.
type ListMyJobsQuery struct {
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewListMyJobsQuery creates a query for the given worker's job list.
func NewListMyJobsQuery(actorID kernel.UUID) (ListMyJobsQuery, error) {
	if err := actorID.Validate(); err != nil {
		return ListMyJobsQuery{}, err
	}

	return ListMyJobsQuery{
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListMyJobsQuery) Validate() error {
	return q.guard.Validate(ErrListMyJobsQueryIsNotConstructed)
}

// ActorID returns the identifier of the worker whose jobs are listed.
func (q ListMyJobsQuery) ActorID() kernel.UUID {
	return q.actorID
}

// JobResponse is one step instance in a worker's job list, with enough order
// context to act on it.
type JobResponse struct {
	StepID        kernel.UUID
	OrderID       kernel.UUID
	OrderNumber   string
	OrderPriority string
	OrderDeadline *time.Time
	StepNumber    int
	Name          string
	Description   string
	Status        string
}

// ListMyJobsQueryResponse is the bucketed job list plus per-bucket counts.
type ListMyJobsQueryResponse struct {
	Current    []JobResponse
	InProgress []JobResponse
	Upcoming   []JobResponse
	Completed  []JobResponse
	Summary    JobSummary
}

// JobSummary carries the per-bucket counts and their total.
type JobSummary struct {
	Current    int
	InProgress int
	Upcoming   int
	Completed  int
	Total      int
}
