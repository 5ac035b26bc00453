package queries

import (
	"context"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOverdueOrdersQueryHandler finds orders past their deadline that are
// neither completed nor cancelled.
type GetOverdueOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOverdueOrdersQueryHandler creates a handler for overdue-order scans.
func NewGetOverdueOrdersQueryHandler(db *gorm.DB) GetOverdueOrdersQueryHandler {
	return GetOverdueOrdersQueryHandler{db: db}
}

// Handle executes the overdue scan. Orders without a deadline never match.
func (h GetOverdueOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOverdueOrdersQuery,
) ([]GetOverdueOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			priority,
			status,
			deadline
		FROM orders
		WHERE deadline IS NOT NULL
		  AND deadline < ?
		  AND status NOT IN (?, ?)
		ORDER BY deadline
	`, query.AsOf(), order.StatusCompleted.String(), order.StatusCancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOverdueOrdersQueryResponse, 0)
	for rows.Next() {
		var resp GetOverdueOrdersQueryResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &resp.Number, &resp.Priority, &resp.Status, &resp.Deadline); err != nil {
			return nil, err
		}
		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}

		orders = append(orders, resp)
	}

	return orders, rows.Err()
}
