package services

import (
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
)

// Job pairs a step instance with its owning order for read-side views.
type Job struct {
	Order *order.Order
	Step  *order.Step
}

// JobBuckets is the read-side projection of a worker's visible steps,
// partitioned by actionability. It is computed fresh on every query and never
// stored, so a sibling step completing can never leave a stale bucket behind.
type JobBuckets struct {
	// Current holds WAITING steps whose turn has come for the worker.
	Current []Job

	// InProgress holds steps the worker is actively working.
	InProgress []Job

	// Upcoming holds WAITING or BLOCKED steps the worker can see whose turn
	// has not come yet.
	Upcoming []Job

	// Completed holds completed steps the worker performed.
	Completed []Job
}

// Total returns the number of jobs across all buckets.
func (b JobBuckets) Total() int {
	return len(b.Current) + len(b.InProgress) + len(b.Upcoming) + len(b.Completed)
}

// TurnResolver determines which step instances are currently actionable and
// by whom. All methods are pure reads over the orders passed in.
type TurnResolver struct{}

// NewTurnResolver creates a TurnResolver.
func NewTurnResolver() TurnResolver {
	return TurnResolver{}
}

// IsTurn reports whether the step is actionable by the worker right now:
// WAITING, all preceding same-group steps COMPLETED, and the step unassigned
// or assigned to the worker. Delegates the precedence evaluation to the
// owning aggregate so there is a single source of truth.
func (TurnResolver) IsTurn(o *order.Order, stepID, workerID kernel.UUID) (bool, error) {
	return o.IsStepTurnFor(stepID, workerID)
}

// Partition buckets the steps of the given orders from the worker's point of
// view. A step is visible to the worker when it is unassigned or assigned to
// them; completed steps are visible when the worker was their assignee.
func (r TurnResolver) Partition(orders []*order.Order, workerID kernel.UUID) JobBuckets {
	var buckets JobBuckets

	for _, o := range orders {
		if o.Status() == order.StatusCancelled {
			continue
		}

		for _, step := range o.Steps() {
			job := Job{Order: o, Step: step}

			switch step.Status() {
			case order.StepCompleted:
				if step.IsAssignedTo(workerID) {
					buckets.Completed = append(buckets.Completed, job)
				}
			case order.StepInProgress:
				if step.IsAssignedTo(workerID) {
					buckets.InProgress = append(buckets.InProgress, job)
				}
			case order.StepWaiting:
				if !step.IsClaimableBy(workerID) {
					continue
				}
				turn, err := o.IsStepTurnFor(step.ID(), workerID)
				if err != nil {
					continue
				}
				if turn {
					buckets.Current = append(buckets.Current, job)
				} else {
					buckets.Upcoming = append(buckets.Upcoming, job)
				}
			case order.StepBlocked:
				if step.IsClaimableBy(workerID) {
					buckets.Upcoming = append(buckets.Upcoming, job)
				}
			}
		}
	}

	return buckets
}
