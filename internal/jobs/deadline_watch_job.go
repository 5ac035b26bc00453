package jobs

import (
	"context"
	"log/slog"
	"time"

	"workshop/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DeadlineWatchJob periodically reports open orders whose deadline has
// passed. Terminal orders (COMPLETED, CANCELLED) are never reported.
type DeadlineWatchJob struct {
	handler queries.GetOverdueOrdersQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDeadlineWatchJob creates a job that checks deadlines every minute.
func NewDeadlineWatchJob(handler queries.GetOverdueOrdersQueryHandler, logger *slog.Logger) *DeadlineWatchJob {
	return &DeadlineWatchJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "deadline_watch_job"),
	}
}

// Start begins the deadline watch job to run every minute.
func (j *DeadlineWatchJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		query, err := queries.NewGetOverdueOrdersQuery(time.Now().UTC())
		if err != nil {
			j.logger.ErrorContext(ctx, "Deadline watch job failed to build query", "error", err)
			return
		}

		overdue, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Deadline watch job failed", "error", err)
			return
		}

		for _, o := range overdue {
			j.logger.WarnContext(ctx, "Order is past its deadline",
				"order_id", o.ID.String(),
				"order_number", o.Number,
				"priority", o.Priority,
				"status", o.Status,
				"deadline", o.Deadline,
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Deadline watch job started (running every minute)")
	return nil
}

// Stop stops the deadline watch job.
func (j *DeadlineWatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Deadline watch job stopped")
}
