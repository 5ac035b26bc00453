package queries

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/worker"
	"workshop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PreviewProductStepsQueryHandler reads a product's step template straight
// from the database, gated by ORDER_READ. Read-only: nothing is instantiated.
type PreviewProductStepsQueryHandler struct {
	db *gorm.DB
}

// NewPreviewProductStepsQueryHandler creates a handler for template previews.
func NewPreviewProductStepsQueryHandler(db *gorm.DB) PreviewProductStepsQueryHandler {
	return PreviewProductStepsQueryHandler{db: db}
}

// Handle executes the preview query. Unknown products surface as an
// object-not-found error; a known product with an empty template returns an
// empty slice.
func (h PreviewProductStepsQueryHandler) Handle(
	ctx context.Context,
	query PreviewProductStepsQuery,
) ([]PreviewProductStepsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := requirePermission(ctx, h.db, query.ActorID(), worker.PermissionOrderRead); err != nil {
		return nil, err
	}

	var known int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT count(1) FROM products WHERE id = ?
	`, query.ProductID().Bytes()).Scan(&known).Error
	if err != nil {
		return nil, err
	}
	if known == 0 {
		return nil, errs.NewObjectNotFoundError("product", query.ProductID().String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			name,
			description,
			estimated_duration
		FROM product_template_steps
		WHERE product_id = ?
		ORDER BY number
	`, query.ProductID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	steps := make([]PreviewProductStepsQueryResponse, 0)
	for rows.Next() {
		var step PreviewProductStepsQueryResponse
		var id uuid.UUID
		var estimatedDuration int64

		if err = rows.Scan(&id, &step.Number, &step.Name, &step.Description, &estimatedDuration); err != nil {
			return nil, err
		}
		if step.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		step.EstimatedDuration = time.Duration(estimatedDuration)

		steps = append(steps, step)
	}

	return steps, rows.Err()
}
