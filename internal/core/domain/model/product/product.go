package product

import (
	"errors"
	"fmt"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
)

// ErrProductIsNotConstructed is returned when a Product instance was not
// created through the NewProduct or RestoreProduct factory functions.
var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct")

// Product represents a manufacturable item offered by the company.
// Its template holds the ordered production steps instantiated for each order.
type Product struct {
	// id is the unique identifier for the product
	id kernel.UUID

	// companyID identifies the owning tenant
	companyID kernel.UUID

	// name is the product's display name
	name string

	// template is the ordered list of production steps for the product.
	// May be empty for products without a defined process.
	template []TemplateStep

	// isConstructed ensures the product was created via a factory function
	isConstructed bool
}

// TemplateStep is one reusable, ordered step definition within a product
// template. It is a value object: instantiating an order copies its fields
// into a concrete step instance.
type TemplateStep struct {
	// id identifies the template step so instantiated steps can reference
	// their source
	id kernel.UUID

	// number is the 1-based position of the step within the template
	number int

	// name is the short step title shown to workers
	name string

	// description is the default work instruction for the step
	description string

	// estimatedDuration is the planned effort for the step
	estimatedDuration time.Duration
}

// NewTemplateStep creates a validated template step.
// The number must be positive and the name non-empty.
func NewTemplateStep(id kernel.UUID, number int, name, description string, estimatedDuration time.Duration) (TemplateStep, error) {
	if err := id.Validate(); err != nil {
		return TemplateStep{}, err
	}
	if number < 1 {
		return TemplateStep{}, errs.NewValueIsOutOfRangeError("step number", number, 1, "unbounded")
	}
	if name == "" {
		return TemplateStep{}, errs.NewValueIsRequiredError("step name")
	}
	if estimatedDuration < 0 {
		return TemplateStep{}, errs.NewValueIsInvalidErrorWithCause("estimated duration",
			fmt.Errorf("%s is negative", estimatedDuration))
	}

	return TemplateStep{
		id:                id,
		number:            number,
		name:              name,
		description:       description,
		estimatedDuration: estimatedDuration,
	}, nil
}

// ID returns the template step's unique identifier.
func (t TemplateStep) ID() kernel.UUID {
	return t.id
}

// Number returns the 1-based position of the step within the template.
func (t TemplateStep) Number() int {
	return t.number
}

// Name returns the step title.
func (t TemplateStep) Name() string {
	return t.name
}

// Description returns the default work instruction.
func (t TemplateStep) Description() string {
	return t.description
}

// EstimatedDuration returns the planned effort for the step.
func (t TemplateStep) EstimatedDuration() time.Duration {
	return t.estimatedDuration
}

// NewProduct creates a Product with a validated, sequentially numbered template.
// Template steps must arrive ordered with numbers forming the dense sequence
// 1..n; this keeps instantiation free of re-sorting and gap handling.
func NewProduct(id, companyID kernel.UUID, name string, template []TemplateStep) (*Product, error) {
	p := &Product{
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setCompanyID(companyID),
		p.setName(name),
		p.setTemplate(template),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct reconstructs a Product from persistence.
// It applies the same validation as NewProduct.
func RestoreProduct(id, companyID kernel.UUID, name string, template []TemplateStep) (*Product, error) {
	return NewProduct(id, companyID, name, template)
}

// Validate ensures the Product instance was properly constructed.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// CompanyID returns the identifier of the owning company.
func (p *Product) CompanyID() kernel.UUID {
	return p.companyID
}

// Name returns the product's display name.
func (p *Product) Name() string {
	return p.name
}

// Template returns the ordered template steps. The returned slice is a copy;
// mutating it does not affect the product.
func (p *Product) Template() []TemplateStep {
	template := make([]TemplateStep, len(p.template))
	copy(template, p.template)
	return template
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setCompanyID(companyID kernel.UUID) error {
	if err := companyID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("companyID", err)
	}
	p.companyID = companyID
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setTemplate(template []TemplateStep) error {
	for i, step := range template {
		if step.number != i+1 {
			return errs.NewValueIsInvalidErrorWithCause("template",
				fmt.Errorf("step at position %d carries number %d", i+1, step.number))
		}
	}

	p.template = make([]TemplateStep, len(template))
	copy(p.template, template)
	return nil
}
