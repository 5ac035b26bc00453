// Package productrepo persists products and their step templates.
package productrepo

import (
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO is the database row of one product.
type ProductDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;index"`
	Name      string

	Template []TemplateStepDTO `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "products".
func (ProductDTO) TableName() string {
	return "products"
}

// TemplateStepDTO is one template step of a product. EstimatedDuration is
// stored in nanoseconds.
type TemplateStepDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID         uuid.UUID `gorm:"type:uuid;index"`
	Number            int
	Name              string
	Description       string
	EstimatedDuration int64
}

// TableName overrides GORM's default naming to use "product_template_steps".
func (TemplateStepDTO) TableName() string {
	return "product_template_steps"
}

// fromDomain converts a product aggregate to its database representation.
func fromDomain(aggregate *product.Product) ProductDTO {
	dto := ProductDTO{
		ID:        aggregate.ID().Bytes(),
		CompanyID: aggregate.CompanyID().Bytes(),
		Name:      aggregate.Name(),
	}

	for _, step := range aggregate.Template() {
		dto.Template = append(dto.Template, TemplateStepDTO{
			ID:                step.ID().Bytes(),
			ProductID:         dto.ID,
			Number:            step.Number(),
			Name:              step.Name(),
			Description:       step.Description(),
			EstimatedDuration: int64(step.EstimatedDuration()),
		})
	}

	return dto
}

// toDomain reconstructs the product aggregate with its ordered template.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}

	template := make([]product.TemplateStep, 0, len(dto.Template))
	for _, stepDTO := range dto.Template {
		stepID, stepErr := kernel.UUIDFromBytes(stepDTO.ID[:])
		if stepErr != nil {
			return nil, stepErr
		}
		step, stepErr := product.NewTemplateStep(stepID, stepDTO.Number, stepDTO.Name,
			stepDTO.Description, time.Duration(stepDTO.EstimatedDuration))
		if stepErr != nil {
			return nil, stepErr
		}
		template = append(template, step)
	}

	return product.RestoreProduct(id, companyID, dto.Name, template)
}
