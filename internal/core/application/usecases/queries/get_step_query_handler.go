package queries

import (
	"context"

	"workshop/internal/pkg/errs"
)

// GetStepQueryHandler reads one step instance through the order aggregate.
// A step assigned to somebody else is reported as not found rather than
// leaking another worker's assignment.
type GetStepQueryHandler struct {
	orders OrderReader
}

// NewGetStepQueryHandler creates a handler for step detail reads.
func NewGetStepQueryHandler(orders OrderReader) GetStepQueryHandler {
	return GetStepQueryHandler{orders: orders}
}

// Handle executes the step detail query.
func (h GetStepQueryHandler) Handle(ctx context.Context, query GetStepQuery) (GetStepQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStepQueryResponse{}, err
	}

	aggregate, err := h.orders.GetByStepID(ctx, query.StepID())
	if err != nil {
		return GetStepQueryResponse{}, err
	}

	step, err := aggregate.Step(query.StepID())
	if err != nil {
		return GetStepQueryResponse{}, err
	}

	if !step.IsClaimableBy(query.ActorID()) {
		return GetStepQueryResponse{}, errs.NewObjectNotFoundError("step", query.StepID().String())
	}

	isMyTurn, err := aggregate.IsStepTurnFor(query.StepID(), query.ActorID())
	if err != nil {
		return GetStepQueryResponse{}, err
	}

	return GetStepQueryResponse{
		ID:                step.ID(),
		OrderID:           aggregate.ID(),
		OrderNumber:       aggregate.Number(),
		ProductID:         step.ProductID(),
		Number:            step.Number(),
		Name:              step.Name(),
		Description:       step.Description(),
		EstimatedDuration: step.EstimatedDuration(),
		Status:            step.Status().String(),
		Assignee:          step.Assignee(),
		Notes:             step.Notes(),
		StartedAt:         step.StartedAt(),
		CompletedAt:       step.CompletedAt(),
		IsMyTurn:          isMyTurn,
	}, nil
}
