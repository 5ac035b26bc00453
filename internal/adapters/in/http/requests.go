package http

import (
	"fmt"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/services"
	"workshop/internal/pkg/errs"
)

// CreateOrderRequest is the body of POST /orders. Steps, when present,
// replace template expansion for the whole order.
type CreateOrderRequest struct {
	CustomerID *string              `json:"customerId"`
	Priority   string               `json:"priority"`
	Deadline   *time.Time           `json:"deadline"`
	Notes      string               `json:"notes"`
	IsStock    bool                 `json:"isStock"`
	Items      []OrderItemRequest   `json:"items"`
	Steps      []StepOverrideRequest `json:"steps"`
}

// OrderItemRequest is one (product, quantity) line.
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// StepOverrideRequest is one ad hoc step definition.
type StepOverrideRequest struct {
	Name                     string  `json:"name"`
	Description              string  `json:"description"`
	EstimatedDurationMinutes int     `json:"estimatedDurationMinutes"`
	AssigneeID               *string `json:"assigneeId"`
}

// UpdateOrderRequest is the body of PUT /orders/:id. Items and steps are
// immutable after creation and have no place here.
type UpdateOrderRequest struct {
	Priority string     `json:"priority"`
	Deadline *time.Time `json:"deadline"`
	Notes    string     `json:"notes"`
}

// NotesRequest is the body of the complete and notes endpoints.
type NotesRequest struct {
	Notes string `json:"notes"`
}

func (r CreateOrderRequest) items() ([]order.Item, error) {
	items := make([]order.Item, 0, len(r.Items))
	for i, itemReq := range r.Items {
		productID, err := kernel.UUIDFromString(itemReq.ProductID)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d].productId", i), err)
		}
		item, err := order.NewItem(productID, itemReq.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r CreateOrderRequest) overrides() ([]services.StepDefinition, error) {
	if len(r.Steps) == 0 {
		return nil, nil
	}

	definitions := make([]services.StepDefinition, 0, len(r.Steps))
	for i, stepReq := range r.Steps {
		var assignee *kernel.UUID
		if stepReq.AssigneeID != nil {
			id, err := kernel.UUIDFromString(*stepReq.AssigneeID)
			if err != nil {
				return nil, fmt.Errorf("steps[%d].assigneeId: %w", i, err)
			}
			assignee = &id
		}

		definitions = append(definitions, services.StepDefinition{
			Name:              stepReq.Name,
			Description:       stepReq.Description,
			EstimatedDuration: time.Duration(stepReq.EstimatedDurationMinutes) * time.Minute,
			Assignee:          assignee,
		})
	}
	return definitions, nil
}

func (r CreateOrderRequest) customerID() (*kernel.UUID, error) {
	if r.CustomerID == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*r.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("customerId: %w", err)
	}
	return &id, nil
}
