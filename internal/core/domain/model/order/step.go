package order

import (
	"fmt"
	"strings"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
)

// StepSource records where a step instance came from: a product step template
// or an ad hoc manual definition. It is a tagged value rather than a bare
// nullable foreign key, so "manual" is an explicit case instead of an implicit
// meaning of nil.
type StepSource struct {
	templateStepID *kernel.UUID
}

// TemplateSource creates a StepSource referencing the template step the
// instance was expanded from.
func TemplateSource(templateStepID kernel.UUID) (StepSource, error) {
	if err := templateStepID.Validate(); err != nil {
		return StepSource{}, errs.NewValueIsRequiredErrorWithCause("templateStepID", err)
	}
	return StepSource{templateStepID: &templateStepID}, nil
}

// ManualSource creates a StepSource for an ad hoc, caller-defined step.
func ManualSource() StepSource {
	return StepSource{}
}

// IsManual reports whether the step was defined manually.
func (s StepSource) IsManual() bool {
	return s.templateStepID == nil
}

// TemplateStepID returns the source template step identifier.
// The second return value is false for manual steps.
func (s StepSource) TemplateStepID() (kernel.UUID, bool) {
	if s.templateStepID == nil {
		return kernel.UUID{}, false
	}
	return *s.templateStepID, true
}

// Step is one concrete, ordered unit of work within an order. Steps belonging
// to the same product group (same ProductID, or the manual group) form a
// strict precedence chain by Number. A step is mutated only through the Order
// aggregate, which enforces the state machine and the precedence invariant.
type Step struct {
	// id is the unique identifier for the step instance
	id kernel.UUID

	// productID groups the step with its product's chain.
	// Nil for manual steps, which form a chain of their own.
	productID *kernel.UUID

	// source records template or manual origin
	source StepSource

	// number is the 1-based position in the order's global step sequence.
	// Precedence is evaluated against same-group siblings only.
	number int

	// name is the short step title
	name string

	// description is the work instruction
	description string

	// estimatedDuration is the planned effort
	estimatedDuration time.Duration

	// status is the current state machine position
	status StepStatus

	// assignee is the worker responsible for the step. Nil means the step is
	// open to anyone holding the execute capability; starting claims it.
	assignee *kernel.UUID

	// notes is free text accumulated while working the step
	notes string

	// startedAt is set when the step enters IN_PROGRESS
	startedAt *time.Time

	// completedAt is set when the step enters COMPLETED
	completedAt *time.Time
}

// NewStep creates a step instance in WAITING status.
// productID is nil for manual steps. The name must be non-empty and the
// number positive; violations surface as ErrInvalidStepDefinition.
func NewStep(id kernel.UUID, productID *kernel.UUID, source StepSource, number int,
	name, description string, estimatedDuration time.Duration, assignee *kernel.UUID,
) (*Step, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: step name is required", ErrInvalidStepDefinition)
	}
	if number < 1 {
		return nil, fmt.Errorf("%w: step number %d is not positive", ErrInvalidStepDefinition, number)
	}
	if productID != nil {
		if err := productID.Validate(); err != nil {
			return nil, errs.NewValueIsRequiredErrorWithCause("productID", err)
		}
	}
	if !source.IsManual() && productID == nil {
		return nil, fmt.Errorf("%w: template-sourced step requires a product", ErrInvalidStepDefinition)
	}
	if assignee != nil {
		if err := assignee.Validate(); err != nil {
			return nil, errs.NewValueIsRequiredErrorWithCause("assignee", err)
		}
	}

	return &Step{
		id:                id,
		productID:         productID,
		source:            source,
		number:            number,
		name:              name,
		description:       description,
		estimatedDuration: estimatedDuration,
		status:            StepWaiting,
		assignee:          assignee,
	}, nil
}

// RestoreStep reconstructs a step instance from persistence.
func RestoreStep(id kernel.UUID, productID *kernel.UUID, source StepSource, number int,
	name, description string, estimatedDuration time.Duration, status StepStatus,
	assignee *kernel.UUID, notes string, startedAt, completedAt *time.Time,
) (*Step, error) {
	step, err := NewStep(id, productID, source, number, name, description, estimatedDuration, assignee)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	step.status = status
	step.notes = notes
	step.startedAt = startedAt
	step.completedAt = completedAt
	return step, nil
}

// ID returns the step's unique identifier.
func (s *Step) ID() kernel.UUID {
	return s.id
}

// ProductID returns the product the step belongs to, or nil for manual steps.
func (s *Step) ProductID() *kernel.UUID {
	return s.productID
}

// Source returns the step's origin (template or manual).
func (s *Step) Source() StepSource {
	return s.source
}

// Number returns the step's 1-based position in the order's step sequence.
func (s *Step) Number() int {
	return s.number
}

// Name returns the step title.
func (s *Step) Name() string {
	return s.name
}

// Description returns the work instruction.
func (s *Step) Description() string {
	return s.description
}

// EstimatedDuration returns the planned effort for the step.
func (s *Step) EstimatedDuration() time.Duration {
	return s.estimatedDuration
}

// Status returns the step's current status.
func (s *Step) Status() StepStatus {
	return s.status
}

// Assignee returns the assigned worker's ID, or nil if the step is open.
func (s *Step) Assignee() *kernel.UUID {
	return s.assignee
}

// Notes returns the accumulated step notes.
func (s *Step) Notes() string {
	return s.notes
}

// StartedAt returns the moment the step entered IN_PROGRESS, if it has.
func (s *Step) StartedAt() *time.Time {
	return s.startedAt
}

// CompletedAt returns the moment the step entered COMPLETED, if it has.
func (s *Step) CompletedAt() *time.Time {
	return s.completedAt
}

// InSameGroup reports whether two steps belong to the same precedence chain:
// the same product, or both manual.
func (s *Step) InSameGroup(other *Step) bool {
	if s.productID == nil || other.productID == nil {
		return s.productID == nil && other.productID == nil
	}
	return s.productID.IsEqual(*other.productID)
}

// IsAssignedTo reports whether the step is assigned to the given worker.
func (s *Step) IsAssignedTo(workerID kernel.UUID) bool {
	return s.assignee != nil && s.assignee.IsEqual(workerID)
}

// IsClaimableBy reports whether the worker may act on the step: the step is
// either unassigned or assigned to that worker.
func (s *Step) IsClaimableBy(workerID kernel.UUID) bool {
	return s.assignee == nil || s.assignee.IsEqual(workerID)
}

// start moves the step to IN_PROGRESS, stamps startedAt, and claims the step
// for the actor if it was unassigned. Only the aggregate calls this.
func (s *Step) start(actorID kernel.UUID, now time.Time) error {
	newStatus, err := s.status.Start()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.startedAt = &now
	if s.assignee == nil {
		s.assignee = &actorID
	}
	return nil
}

// complete moves the step to COMPLETED, stamps completedAt, and appends the
// closing notes. Only the aggregate calls this.
func (s *Step) complete(now time.Time, notes string) error {
	newStatus, err := s.status.Complete()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.completedAt = &now
	s.appendNotes(notes)
	return nil
}

// block parks a WAITING step. Only the aggregate calls this.
func (s *Step) block() error {
	newStatus, err := s.status.Block()
	if err != nil {
		return err
	}
	s.status = newStatus
	return nil
}

// unblock returns a BLOCKED step to WAITING. Only the aggregate calls this.
func (s *Step) unblock() error {
	newStatus, err := s.status.Unblock()
	if err != nil {
		return err
	}
	s.status = newStatus
	return nil
}

// setNotes replaces the step notes.
func (s *Step) setNotes(notes string) {
	s.notes = notes
}

// appendNotes merges additional notes onto the existing ones.
func (s *Step) appendNotes(notes string) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return
	}
	if s.notes == "" {
		s.notes = notes
		return
	}
	s.notes = s.notes + "\n" + notes
}
