// Package orderrepo persists the order aggregate with its items and step
// instances, handling the conversion between domain entities and their
// relational representation.
package orderrepo

import (
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database row of one order. Items and steps live in their
// own tables and are loaded alongside the order.
type OrderDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number     string     `gorm:"uniqueIndex"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index"`
	Priority   string
	Status     string `gorm:"index"`
	Deadline   *time.Time
	Notes      string
	IsStock    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Items []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Steps []StepDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one (product, quantity) line of an order.
type ItemDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int
}

// TableName overrides GORM's default naming to use "order_items".
func (ItemDTO) TableName() string {
	return "order_items"
}

// StepDTO is the database row of one step instance. EstimatedDuration is
// stored in nanoseconds.
type StepDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID  `gorm:"type:uuid;index"`
	ProductID         *uuid.UUID `gorm:"type:uuid"`
	TemplateStepID    *uuid.UUID `gorm:"type:uuid"`
	Number            int
	Name              string
	Description       string
	EstimatedDuration int64
	Status            string     `gorm:"index"`
	AssigneeID        *uuid.UUID `gorm:"type:uuid;index"`
	Notes             string
	StartedAt         *time.Time
	CompletedAt       *time.Time
}

// TableName overrides GORM's default naming to use "order_steps".
func (StepDTO) TableName() string {
	return "order_steps"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:         aggregate.ID().Bytes(),
		Number:     aggregate.Number(),
		CustomerID: optionalBytes(aggregate.CustomerID()),
		Priority:   aggregate.Priority().String(),
		Status:     aggregate.Status().String(),
		Deadline:   aggregate.Deadline(),
		Notes:      aggregate.Notes(),
		IsStock:    aggregate.IsStock(),
		CreatedAt:  aggregate.CreatedAt(),
		UpdatedAt:  aggregate.UpdatedAt(),
	}

	for _, item := range aggregate.Items() {
		dto.Items = append(dto.Items, ItemDTO{
			OrderID:   dto.ID,
			ProductID: item.ProductID().Bytes(),
			Quantity:  item.Quantity(),
		})
	}
	for _, step := range aggregate.Steps() {
		dto.Steps = append(dto.Steps, stepFromDomain(dto.ID, step))
	}

	return dto
}

func stepFromDomain(orderID uuid.UUID, step *order.Step) StepDTO {
	var templateStepID *uuid.UUID
	if id, ok := step.Source().TemplateStepID(); ok {
		raw := id.Bytes()
		templateStepID = &raw
	}

	return StepDTO{
		ID:                step.ID().Bytes(),
		OrderID:           orderID,
		ProductID:         optionalBytes(step.ProductID()),
		TemplateStepID:    templateStepID,
		Number:            step.Number(),
		Name:              step.Name(),
		Description:       step.Description(),
		EstimatedDuration: int64(step.EstimatedDuration()),
		Status:            step.Status().String(),
		AssigneeID:        optionalBytes(step.Assignee()),
		Notes:             step.Notes(),
		StartedAt:         step.StartedAt(),
		CompletedAt:       step.CompletedAt(),
	}
}

// toDomain reconstructs the complete aggregate, steps included, using the
// domain restore factories.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := optionalUUID(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	priority, err := order.PriorityFromString(dto.Priority)
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.NewItem(productID, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	steps := make([]*order.Step, 0, len(dto.Steps))
	for _, stepDTO := range dto.Steps {
		step, stepErr := stepToDomain(stepDTO)
		if stepErr != nil {
			return nil, stepErr
		}
		steps = append(steps, step)
	}

	return order.RestoreOrder(id, dto.Number, customerID, priority, status,
		dto.Deadline, dto.Notes, dto.IsStock, items, steps, dto.CreatedAt, dto.UpdatedAt)
}

func stepToDomain(dto StepDTO) (*order.Step, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productID, err := optionalUUID(dto.ProductID)
	if err != nil {
		return nil, err
	}
	assignee, err := optionalUUID(dto.AssigneeID)
	if err != nil {
		return nil, err
	}
	status, err := order.StepStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	source := order.ManualSource()
	if dto.TemplateStepID != nil {
		templateStepID, srcErr := kernel.UUIDFromBytes((*dto.TemplateStepID)[:])
		if srcErr != nil {
			return nil, srcErr
		}
		if source, srcErr = order.TemplateSource(templateStepID); srcErr != nil {
			return nil, srcErr
		}
	}

	return order.RestoreStep(id, productID, source, dto.Number, dto.Name, dto.Description,
		time.Duration(dto.EstimatedDuration), status, assignee, dto.Notes,
		dto.StartedAt, dto.CompletedAt)
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
