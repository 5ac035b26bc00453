package queries

import (
	"context"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/services"
)

// OrderReader is the slice of the order repository the worker-facing views
// need. Implemented by the postgres order repository.
type OrderReader interface {
	GetByStepID(ctx context.Context, stepID kernel.UUID) (*order.Order, error)
	GetAllActiveWithStepsFor(ctx context.Context, workerID kernel.UUID) ([]*order.Order, error)
}

// ListMyJobsQueryHandler builds a worker's job list by loading the aggregates
// and partitioning their steps with the TurnResolver, so the buckets always
// reflect the same turn rules the commands enforce. Never cached.
type ListMyJobsQueryHandler struct {
	orders   OrderReader
	resolver services.TurnResolver
}

// NewListMyJobsQueryHandler creates a handler for worker job lists.
func NewListMyJobsQueryHandler(orders OrderReader) ListMyJobsQueryHandler {
	return ListMyJobsQueryHandler{
		orders:   orders,
		resolver: services.NewTurnResolver(),
	}
}

// Handle executes the job list query.
func (h ListMyJobsQueryHandler) Handle(ctx context.Context, query ListMyJobsQuery) (ListMyJobsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListMyJobsQueryResponse{}, err
	}

	orders, err := h.orders.GetAllActiveWithStepsFor(ctx, query.ActorID())
	if err != nil {
		return ListMyJobsQueryResponse{}, err
	}

	buckets := h.resolver.Partition(orders, query.ActorID())

	resp := ListMyJobsQueryResponse{
		Current:    jobResponses(buckets.Current),
		InProgress: jobResponses(buckets.InProgress),
		Upcoming:   jobResponses(buckets.Upcoming),
		Completed:  jobResponses(buckets.Completed),
		Summary: JobSummary{
			Current:    len(buckets.Current),
			InProgress: len(buckets.InProgress),
			Upcoming:   len(buckets.Upcoming),
			Completed:  len(buckets.Completed),
			Total:      buckets.Total(),
		},
	}

	return resp, nil
}

func jobResponses(jobs []services.Job) []JobResponse {
	responses := make([]JobResponse, 0, len(jobs))
	for _, job := range jobs {
		responses = append(responses, JobResponse{
			StepID:        job.Step.ID(),
			OrderID:       job.Order.ID(),
			OrderNumber:   job.Order.Number(),
			OrderPriority: job.Order.Priority().String(),
			OrderDeadline: job.Order.Deadline(),
			StepNumber:    job.Step.Number(),
			Name:          job.Step.Name(),
			Description:   job.Step.Description(),
			Status:        job.Step.Status().String(),
		})
	}
	return responses
}
