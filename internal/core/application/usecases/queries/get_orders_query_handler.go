package queries

import (
	"context"
	"database/sql"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists order headers straight from the database,
// gated by ORDER_READ. Urgent work sorts first, then by creation time.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listings.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the listing query.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := requirePermission(ctx, h.db, query.ActorID(), worker.PermissionOrderRead); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			customer_id,
			priority,
			status,
			deadline,
			is_stock,
			created_at
		FROM orders
		ORDER BY
			CASE priority
				WHEN 'URGENT' THEN 0
				WHEN 'HIGH' THEN 1
				WHEN 'NORMAL' THEN 2
				ELSE 3
			END,
			created_at
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0)
	for rows.Next() {
		var resp GetOrdersQueryResponse
		var id uuid.UUID
		var customerID uuid.NullUUID
		var deadline sql.NullTime

		if err = rows.Scan(&id, &resp.Number, &customerID, &resp.Priority, &resp.Status,
			&deadline, &resp.IsStock, &resp.CreatedAt); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.CustomerID, err = optionalUUID(customerID); err != nil {
			return nil, err
		}
		resp.Deadline = optionalTime(deadline)

		orders = append(orders, resp)
	}

	return orders, rows.Err()
}
