package queries

import (
	"context"
	"database/sql"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/worker"
	"workshop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order with its items and steps straight from
// the database, gated by ORDER_READ.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns an object-not-found error for unknown
// orders and ErrPermissionDenied when the actor lacks ORDER_READ.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if err := requirePermission(ctx, h.db, query.ActorID(), worker.PermissionOrderRead); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp, err := h.fetchOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.Items, err = h.fetchItems(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Steps, err = h.fetchSteps(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) fetchOrder(ctx context.Context, orderID kernel.UUID) (GetOrderQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			customer_id,
			priority,
			status,
			deadline,
			notes,
			is_stock,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderQueryResponse{}, err
		}
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", orderID.String())
	}

	var resp GetOrderQueryResponse
	var id uuid.UUID
	var customerID uuid.NullUUID
	var deadline sql.NullTime

	if err = rows.Scan(&id, &resp.Number, &customerID, &resp.Priority, &resp.Status,
		&deadline, &resp.Notes, &resp.IsStock, &resp.CreatedAt, &resp.UpdatedAt); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.CustomerID, err = optionalUUID(customerID); err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Deadline = optionalTime(deadline)

	return resp, rows.Err()
}

func (h GetOrderQueryHandler) fetchItems(ctx context.Context, orderID kernel.UUID) ([]OrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT product_id, quantity
		FROM order_items
		WHERE order_id = ?
		ORDER BY product_id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var item OrderItemResponse
		var productID uuid.UUID

		if err = rows.Scan(&productID, &item.Quantity); err != nil {
			return nil, err
		}
		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (h GetOrderQueryHandler) fetchSteps(ctx context.Context, orderID kernel.UUID) ([]OrderStepResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_id,
			number,
			name,
			description,
			estimated_duration,
			status,
			assignee_id,
			notes,
			started_at,
			completed_at
		FROM order_steps
		WHERE order_id = ?
		ORDER BY number
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	steps := make([]OrderStepResponse, 0)
	for rows.Next() {
		var step OrderStepResponse
		var id uuid.UUID
		var productID, assignee uuid.NullUUID
		var estimatedDuration int64
		var startedAt, completedAt sql.NullTime

		if err = rows.Scan(&id, &productID, &step.Number, &step.Name, &step.Description,
			&estimatedDuration, &step.Status, &assignee, &step.Notes, &startedAt, &completedAt); err != nil {
			return nil, err
		}

		if step.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if step.ProductID, err = optionalUUID(productID); err != nil {
			return nil, err
		}
		if step.Assignee, err = optionalUUID(assignee); err != nil {
			return nil, err
		}
		step.EstimatedDuration = time.Duration(estimatedDuration)
		step.StartedAt = optionalTime(startedAt)
		step.CompletedAt = optionalTime(completedAt)

		steps = append(steps, step)
	}

	return steps, rows.Err()
}

func optionalUUID(v uuid.NullUUID) (*kernel.UUID, error) {
	if !v.Valid {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(v.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func optionalTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
