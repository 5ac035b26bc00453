package http

import (
	"time"

	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/kernel"
)

// OrderResponse is the full representation of one order.
type OrderResponse struct {
	ID         string              `json:"id"`
	Number     string              `json:"number"`
	CustomerID *string             `json:"customerId"`
	Priority   string              `json:"priority"`
	Status     string              `json:"status"`
	Deadline   *time.Time          `json:"deadline"`
	Notes      string              `json:"notes"`
	IsStock    bool                `json:"isStock"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
	Items      []OrderItemResponse `json:"items"`
	Steps      []StepResponse      `json:"steps"`
}

// OrderItemResponse is one (product, quantity) line.
type OrderItemResponse struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// StepResponse is one step instance of an order.
type StepResponse struct {
	ID                       string     `json:"id"`
	ProductID                *string    `json:"productId"`
	Number                   int        `json:"number"`
	Name                     string     `json:"name"`
	Description              string     `json:"description"`
	EstimatedDurationMinutes int        `json:"estimatedDurationMinutes"`
	Status                   string     `json:"status"`
	AssigneeID               *string    `json:"assigneeId"`
	Notes                    string     `json:"notes"`
	StartedAt                *time.Time `json:"startedAt"`
	CompletedAt              *time.Time `json:"completedAt"`
}

// OrderListItemResponse is one order header row of the listing.
type OrderListItemResponse struct {
	ID         string     `json:"id"`
	Number     string     `json:"number"`
	CustomerID *string    `json:"customerId"`
	Priority   string     `json:"priority"`
	Status     string     `json:"status"`
	Deadline   *time.Time `json:"deadline"`
	IsStock    bool       `json:"isStock"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// JobResponse is one step in a worker's job list.
type JobResponse struct {
	StepID        string     `json:"stepId"`
	OrderID       string     `json:"orderId"`
	OrderNumber   string     `json:"orderNumber"`
	OrderPriority string     `json:"orderPriority"`
	OrderDeadline *time.Time `json:"orderDeadline"`
	StepNumber    int        `json:"stepNumber"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
}

// MyJobsResponse is the bucketed job list with per-bucket counts.
type MyJobsResponse struct {
	Jobs    JobBucketsResponse `json:"jobs"`
	Summary JobSummaryResponse `json:"summary"`
}

// JobBucketsResponse partitions a worker's steps by actionability.
type JobBucketsResponse struct {
	Current    []JobResponse `json:"current"`
	InProgress []JobResponse `json:"inProgress"`
	Upcoming   []JobResponse `json:"upcoming"`
	Completed  []JobResponse `json:"completed"`
}

// JobSummaryResponse carries the per-bucket counts and their total.
type JobSummaryResponse struct {
	Current    int `json:"current"`
	InProgress int `json:"inProgress"`
	Upcoming   int `json:"upcoming"`
	Completed  int `json:"completed"`
	Total      int `json:"total"`
}

// StepDetailResponse is the detail view of one step with order context.
type StepDetailResponse struct {
	StepResponse
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	IsMyTurn    bool   `json:"isMyTurn"`
}

// CompleteStepResponse reports whether completing the step finished the order.
type CompleteStepResponse struct {
	OrderCompleted bool `json:"orderCompleted"`
}

// TemplateStepResponse is one template step of a product preview.
type TemplateStepResponse struct {
	ID                       string `json:"id"`
	Number                   int    `json:"number"`
	Name                     string `json:"name"`
	Description              string `json:"description"`
	EstimatedDurationMinutes int    `json:"estimatedDurationMinutes"`
}

func orderResponseFrom(r queries.GetOrderQueryResponse) OrderResponse {
	items := make([]OrderItemResponse, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, OrderItemResponse{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
		})
	}

	steps := make([]StepResponse, 0, len(r.Steps))
	for _, step := range r.Steps {
		steps = append(steps, StepResponse{
			ID:                       step.ID.String(),
			ProductID:                optionalID(step.ProductID),
			Number:                   step.Number,
			Name:                     step.Name,
			Description:              step.Description,
			EstimatedDurationMinutes: int(step.EstimatedDuration / time.Minute),
			Status:                   step.Status,
			AssigneeID:               optionalID(step.Assignee),
			Notes:                    step.Notes,
			StartedAt:                step.StartedAt,
			CompletedAt:              step.CompletedAt,
		})
	}

	return OrderResponse{
		ID:         r.ID.String(),
		Number:     r.Number,
		CustomerID: optionalID(r.CustomerID),
		Priority:   r.Priority,
		Status:     r.Status,
		Deadline:   r.Deadline,
		Notes:      r.Notes,
		IsStock:    r.IsStock,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		Items:      items,
		Steps:      steps,
	}
}

func orderListItemFrom(r queries.GetOrdersQueryResponse) OrderListItemResponse {
	return OrderListItemResponse{
		ID:         r.ID.String(),
		Number:     r.Number,
		CustomerID: optionalID(r.CustomerID),
		Priority:   r.Priority,
		Status:     r.Status,
		Deadline:   r.Deadline,
		IsStock:    r.IsStock,
		CreatedAt:  r.CreatedAt,
	}
}

func jobsFrom(jobs []queries.JobResponse) []JobResponse {
	response := make([]JobResponse, 0, len(jobs))
	for _, job := range jobs {
		response = append(response, JobResponse{
			StepID:        job.StepID.String(),
			OrderID:       job.OrderID.String(),
			OrderNumber:   job.OrderNumber,
			OrderPriority: job.OrderPriority,
			OrderDeadline: job.OrderDeadline,
			StepNumber:    job.StepNumber,
			Name:          job.Name,
			Description:   job.Description,
			Status:        job.Status,
		})
	}
	return response
}

func stepDetailFrom(r queries.GetStepQueryResponse) StepDetailResponse {
	return StepDetailResponse{
		StepResponse: StepResponse{
			ID:                       r.ID.String(),
			ProductID:                optionalID(r.ProductID),
			Number:                   r.Number,
			Name:                     r.Name,
			Description:              r.Description,
			EstimatedDurationMinutes: int(r.EstimatedDuration / time.Minute),
			Status:                   r.Status,
			AssigneeID:               optionalID(r.Assignee),
			Notes:                    r.Notes,
			StartedAt:                r.StartedAt,
			CompletedAt:              r.CompletedAt,
		},
		OrderID:     r.OrderID.String(),
		OrderNumber: r.OrderNumber,
		IsMyTurn:    r.IsMyTurn,
	}
}

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
