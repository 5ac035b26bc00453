package queries

import (
	"errors"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrGetStepQueryIsNotConstructed = errors.New(
	"GetStepQuery must be created via NewGetStepQuery constructor",
)

// GetStepQuery retrieves one step instance with its order context. Visible
// only when the acting worker is the step's assignee or the step is still
// unassigned.
type GetStepQuery struct {
	stepID  kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetStepQuery creates a query to read the given step on behalf of the
// acting worker.
func NewGetStepQuery(stepID, actorID kernel.UUID) (GetStepQuery, error) {
	if err := errors.Join(stepID.Validate(), actorID.Validate()); err != nil {
		return GetStepQuery{}, err
	}

	return GetStepQuery{
		stepID:  stepID,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStepQuery) Validate() error {
	return q.guard.Validate(ErrGetStepQueryIsNotConstructed)
}

// StepID returns the identifier of the step to read.
func (q GetStepQuery) StepID() kernel.UUID {
	return q.stepID
}

// ActorID returns the identifier of the reading worker.
func (q GetStepQuery) ActorID() kernel.UUID {
	return q.actorID
}

// GetStepQueryResponse is the detail view of one step instance.
type GetStepQueryResponse struct {
	ID                kernel.UUID
	OrderID           kernel.UUID
	OrderNumber       string
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

	// IsMyTurn reports whether the step is actionable by the actor right now.
	IsMyTurn bool
}
