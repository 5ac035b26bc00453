package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its items and steps.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the order's own row and items. Step rows are written through
// UpdateStepIfStatus so every step write carries its check-and-set.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"customer_id": dto.CustomerID,
			"priority":    dto.Priority,
			"status":      dto.Status,
			"deadline":    dto.Deadline,
			"notes":       dto.Notes,
			"is_stock":    dto.IsStock,
			"updated_at":  dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its items and steps.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves an order and locks its row and step rows for the
// duration of the surrounding transaction.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, true)
}

func (r *GormOrderRepository) get(ctx context.Context, id kernel.UUID, locking bool) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			if locking {
				db = db.Clauses(clause.Locking{Strength: "UPDATE"})
			}
			return db.Order("number")
		})
	if locking {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto OrderDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByStepID retrieves the order owning the given step instance.
func (r *GormOrderRepository) GetByStepID(ctx context.Context, stepID kernel.UUID) (*order.Order, error) {
	return r.getByStepID(ctx, stepID, false)
}

// GetByStepIDForUpdate is GetByStepID with row locking.
func (r *GormOrderRepository) GetByStepIDForUpdate(ctx context.Context, stepID kernel.UUID) (*order.Order, error) {
	return r.getByStepID(ctx, stepID, true)
}

func (r *GormOrderRepository) getByStepID(ctx context.Context, stepID kernel.UUID, locking bool) (*order.Order, error) {
	if err := stepID.Validate(); err != nil {
		return nil, err
	}

	var orderID uuid.UUID
	result := r.db.WithContext(ctx).Model(&StepDTO{}).
		Select("order_id").
		Where("id = ?", stepID.Bytes()).
		Scan(&orderID)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("step", stepID.String())
	}

	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return nil, err
	}
	return r.get(ctx, id, locking)
}

// UpdateStepIfStatus persists a step's state with a check-and-set on its
// previous status. The loser of a concurrent claim finds zero rows matching
// and receives a wrapped ErrInvalidTransition.
func (r *GormOrderRepository) UpdateStepIfStatus(ctx context.Context, step *order.Step, expected order.StepStatus) error {
	dto := stepFromDomain(uuid.UUID{}, step)

	result := r.db.WithContext(ctx).Model(&StepDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Updates(map[string]any{
			"status":       dto.Status,
			"assignee_id":  dto.AssigneeID,
			"notes":        dto.Notes,
			"started_at":   dto.StartedAt,
			"completed_at": dto.CompletedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: step %s is no longer %s",
			order.ErrInvalidTransition, step.ID(), expected)
	}

	return nil
}

// GetAllActiveWithStepsFor retrieves all non-terminal orders containing at
// least one step visible to the worker, with their complete step sets.
func (r *GormOrderRepository) GetAllActiveWithStepsFor(ctx context.Context, workerID kernel.UUID) ([]*order.Order, error) {
	if err := workerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("number") }).
		Where("status IN ?", []string{order.StatusPending.String(), order.StatusInProgress.String()}).
		Where(`EXISTS (
			SELECT 1 FROM order_steps
			WHERE order_steps.order_id = orders.id
			  AND (order_steps.assignee_id IS NULL OR order_steps.assignee_id = ?)
		)`, workerID.Bytes()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// Delete removes an order with its items and steps. Callers enforce the
// deletion policy before invoking it.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("order_id = ?", id.Bytes()).Delete(&StepDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("order_id = ?", id.Bytes()).Delete(&ItemDTO{}).Error; err != nil {
		return err
	}

	result := db.Where("id = ?", id.Bytes()).Delete(&OrderDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	return nil
}
