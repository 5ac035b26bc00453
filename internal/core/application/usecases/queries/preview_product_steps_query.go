package queries

import (
	"errors"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrPreviewProductStepsQueryIsNotConstructed = errors.New(
	"PreviewProductStepsQuery must be created via NewPreviewProductStepsQuery constructor",
)

// PreviewProductStepsQuery shows a product's step template as it would be
// instantiated for an order, without creating anything.
type PreviewProductStepsQuery struct {
	productID kernel.UUID
	actorID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewPreviewProductStepsQuery creates a template preview query for the given
// product on behalf of the acting worker.
func NewPreviewProductStepsQuery(productID, actorID kernel.UUID) (PreviewProductStepsQuery, error) {
	if err := errors.Join(productID.Validate(), actorID.Validate()); err != nil {
		return PreviewProductStepsQuery{}, err
	}

	return PreviewProductStepsQuery{
		productID: productID,
		actorID:   actorID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q PreviewProductStepsQuery) Validate() error {
	return q.guard.Validate(ErrPreviewProductStepsQueryIsNotConstructed)
}

// ProductID returns the identifier of the product whose template is previewed.
func (q PreviewProductStepsQuery) ProductID() kernel.UUID {
	return q.productID
}

// ActorID returns the identifier of the reading worker.
func (q PreviewProductStepsQuery) ActorID() kernel.UUID {
	return q.actorID
}

// PreviewProductStepsQueryResponse is one template step of the preview,
// in template order.
type PreviewProductStepsQueryResponse struct {
	ID                kernel.UUID
	Number            int
	Name              string
	Description       string
	EstimatedDuration time.Duration
}
