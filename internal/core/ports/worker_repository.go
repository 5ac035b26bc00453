package ports

import (
	"context"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/worker"
)

// WorkerRepository defines the persistence contract for workers and their
// permission grants.
type WorkerRepository interface {
	// Add persists a new worker with its grants.
	Add(ctx context.Context, aggregate *worker.Worker) error

	// Get retrieves a worker by its unique identifier, grants included.
	Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error)
}
