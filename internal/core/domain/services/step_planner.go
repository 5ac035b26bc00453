package services

import (
	"fmt"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/model/product"
)

// StepDefinition is a caller-supplied ad hoc step used when an order bypasses
// the product templates. Manual steps carry no template back-reference.
type StepDefinition struct {
	Name              string
	Description       string
	EstimatedDuration time.Duration
	Assignee          *kernel.UUID
}

// StepPlanner expands product step templates (or a manual override list) into
// the concrete step instances of a new order.
//
// Numbering: step numbers form a single dense 1-based sequence across the
// whole order, in item order. Precedence is still evaluated per product group,
// so the first step of every product is immediately eligible; the global
// sequence only stabilizes display order.
type StepPlanner struct{}

// NewStepPlanner creates a StepPlanner.
func NewStepPlanner() StepPlanner {
	return StepPlanner{}
}

// PlanFromTemplates produces one WAITING step instance per template step of
// every ordered product, in item order. Products with an empty template
// contribute no steps; if no product contributes any step the resulting order
// would be unstartable, which AttachSteps reports as ErrEmptyOrder.
//
// The products map must contain every product referenced by the items.
func (StepPlanner) PlanFromTemplates(items []order.Item, products map[kernel.UUID]*product.Product) ([]*order.Step, error) {
	steps := make([]*order.Step, 0, len(items))
	number := 0

	for _, item := range items {
		p, ok := products[item.ProductID()]
		if !ok {
			return nil, fmt.Errorf("%w: no template for product %s",
				order.ErrInvalidStepDefinition, item.ProductID())
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}

		productID := item.ProductID()
		for _, templateStep := range p.Template() {
			source, err := order.TemplateSource(templateStep.ID())
			if err != nil {
				return nil, err
			}

			number++
			step, err := order.NewStep(kernel.NewUUID(), &productID, source, number,
				templateStep.Name(), templateStep.Description(), templateStep.EstimatedDuration(), nil)
			if err != nil {
				return nil, err
			}
			steps = append(steps, step)
		}
	}

	return steps, nil
}

// PlanManual produces step instances from an explicit override list, replacing
// template expansion for the whole order. The overrides form one sequential
// group of their own. Every definition must carry a non-empty name; violations
// surface as ErrInvalidStepDefinition.
func (StepPlanner) PlanManual(definitions []StepDefinition) ([]*order.Step, error) {
	if len(definitions) == 0 {
		return nil, order.ErrEmptyOrder
	}

	steps := make([]*order.Step, 0, len(definitions))
	for i, def := range definitions {
		if def.Name == "" {
			return nil, fmt.Errorf("%w: step at position %d has no name",
				order.ErrInvalidStepDefinition, i+1)
		}

		step, err := order.NewStep(kernel.NewUUID(), nil, order.ManualSource(), i+1,
			def.Name, def.Description, def.EstimatedDuration, def.Assignee)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}

	return steps, nil
}
