package queries

import (
	"context"
	"fmt"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/worker"
	"workshop/internal/pkg/errs"

	"gorm.io/gorm"
)

// requirePermission checks the read-side permission gate with a direct lookup
// on the workers and worker_grants tables. Company owners pass every gate.
// Returns ErrPermissionDenied (wrapped) when the worker exists but lacks the
// grant, and an object-not-found error for unknown workers.
func requirePermission(ctx context.Context, db *gorm.DB, workerID kernel.UUID, p worker.Permission) error {
	var isOwner bool
	result := db.WithContext(ctx).Raw(`
		SELECT is_company_owner
		FROM workers
		WHERE id = ?
	`, workerID.Bytes()).Scan(&isOwner)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("worker", workerID.String())
	}
	if isOwner {
		return nil
	}

	var granted int64
	err := db.WithContext(ctx).Raw(`
		SELECT count(1)
		FROM worker_grants
		WHERE worker_id = ? AND permission = ?
	`, workerID.Bytes(), string(p)).Scan(&granted).Error
	if err != nil {
		return err
	}
	if granted == 0 {
		return fmt.Errorf("%w: %s", worker.ErrPermissionDenied, p)
	}

	return nil
}
