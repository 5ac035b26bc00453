package order

import (
	"errors"
	"fmt"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrInvalidTransition indicates an attempted state change that is
	// illegal from the current status. Racing callers that lose a claim
	// receive this error and should refresh and re-evaluate.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotYourTurn indicates the step exists but is not currently
	// actionable by the requesting worker: a preceding step of the same
	// product group is unfinished, or the step belongs to somebody else.
	ErrNotYourTurn = errors.New("step is not your turn")

	// ErrNotAssignee indicates the acting worker is not the step's assignee
	// and holds no override capability.
	ErrNotAssignee = errors.New("step is assigned to another worker")

	// ErrEmptyOrder indicates an order that would end up with no items or no
	// production steps.
	ErrEmptyOrder = errors.New("order must contain at least one item and one step")

	// ErrInvalidStepDefinition indicates a malformed manual step definition.
	ErrInvalidStepDefinition = errors.New("invalid step definition")

	// ErrConflictingState indicates a delete/cancel or update blocked by
	// downstream progress on the order.
	ErrConflictingState = errors.New("operation conflicts with order progress")
)

// Order is the aggregate root for a manufacturing order: the customer (or
// stock) request, its product items, and the ordered production steps.
//
// Invariants maintained by the aggregate:
//
//   - At least one item; steps attached before the order is usable.
//   - Step numbers form a dense 1-based global sequence; within a product
//     group they define strict precedence.
//   - Status is derived from the steps on every mutation: COMPLETED iff all
//     steps are COMPLETED, never independently.
//   - Steps transition only through StartStep/CompleteStep/UpdateStepNotes/
//     BlockStep/UnblockStep, which enforce the step state machine, turn
//     order, and assignment.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// number is the human-readable order number
	number string

	// customerID references the owning customer. Nil for stock orders.
	customerID *kernel.UUID

	// priority orders work in listings
	priority Priority

	// status is the derived lifecycle state
	status Status

	// deadline is the optional promised date
	deadline *time.Time

	// notes is free text on the order
	notes string

	// isStock marks stock production rather than a customer order
	isStock bool

	// items are the ordered (product, quantity) tuples
	items []Item

	// steps are the concrete production steps, ordered by number
	steps []*Step

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a factory function
	isConstructed bool
}

// NewOrder creates an order in PENDING status with validated items.
// A customer reference is required unless the order is for stock.
// Steps are attached separately with AttachSteps; the order is not usable
// until that succeeds.
func NewOrder(id kernel.UUID, number string, customerID *kernel.UUID, priority Priority,
	deadline *time.Time, notes string, isStock bool, items []Item, now time.Time,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		notes:         notes,
		isStock:       isStock,
		deadline:      deadline,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setCustomerID(customerID, isStock),
		o.setPriority(priority),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence, including its derived
// status and step instances.
func RestoreOrder(id kernel.UUID, number string, customerID *kernel.UUID, priority Priority,
	status Status, deadline *time.Time, notes string, isStock bool,
	items []Item, steps []*Step, createdAt, updatedAt time.Time,
) (*Order, error) {
	o, err := NewOrder(id, number, customerID, priority, deadline, notes, isStock, items, createdAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	if err = o.AttachSteps(steps); err != nil {
		return nil, err
	}

	o.status = status
	o.updatedAt = updatedAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// AttachSteps binds the instantiated step instances to the order.
// Fails with ErrEmptyOrder when no steps result, and with
// ErrInvalidStepDefinition when numbering is not the dense sequence 1..n.
func (o *Order) AttachSteps(steps []*Step) error {
	if len(steps) == 0 {
		return ErrEmptyOrder
	}
	for i, step := range steps {
		if step.Number() != i+1 {
			return fmt.Errorf("%w: step at position %d carries number %d",
				ErrInvalidStepDefinition, i+1, step.Number())
		}
	}

	o.steps = make([]*Step, len(steps))
	copy(o.steps, steps)
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// CustomerID returns the owning customer's ID, or nil for stock orders.
func (o *Order) CustomerID() *kernel.UUID {
	return o.customerID
}

// Priority returns the order priority.
func (o *Order) Priority() Priority {
	return o.priority
}

// Status returns the derived order status.
func (o *Order) Status() Status {
	return o.status
}

// Deadline returns the optional promised date.
func (o *Order) Deadline() *time.Time {
	return o.deadline
}

// Notes returns the free-text order notes.
func (o *Order) Notes() string {
	return o.notes
}

// IsStock reports whether the order is stock production.
func (o *Order) IsStock() bool {
	return o.isStock
}

// Items returns the order items. The returned slice is a copy.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Steps returns the order's step instances ordered by number.
// The slice is a copy; steps themselves are mutated only via the aggregate.
func (o *Order) Steps() []*Step {
	steps := make([]*Step, len(o.steps))
	copy(steps, o.steps)
	return steps
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Step returns the step instance with the given ID.
func (o *Order) Step(stepID kernel.UUID) (*Step, error) {
	for _, step := range o.steps {
		if step.ID().IsEqual(stepID) {
			return step, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("step", stepID.String())
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// IsStepTurn reports whether the step is currently actionable at all:
// it is WAITING and every same-group step with a smaller number is COMPLETED.
// Assignment is evaluated separately by IsStepTurnFor.
//
// The result is computed fresh from the current step states on every call
// and is never cached.
func (o *Order) IsStepTurn(stepID kernel.UUID) (bool, error) {
	step, err := o.Step(stepID)
	if err != nil {
		return false, err
	}
	return o.stepHasTurn(step), nil
}

// IsStepTurnFor reports whether the step is actionable by the given worker:
// IsStepTurn holds and the step is unassigned or assigned to that worker.
func (o *Order) IsStepTurnFor(stepID, workerID kernel.UUID) (bool, error) {
	step, err := o.Step(stepID)
	if err != nil {
		return false, err
	}
	return o.stepHasTurn(step) && step.IsClaimableBy(workerID), nil
}

func (o *Order) stepHasTurn(step *Step) bool {
	if step.Status() != StepWaiting {
		return false
	}
	if o.status == StatusCancelled {
		return false
	}
	for _, sibling := range o.steps {
		if sibling == step || !sibling.InSameGroup(step) {
			continue
		}
		if sibling.Number() < step.Number() && sibling.Status() != StepCompleted {
			return false
		}
	}
	return true
}

// StartStep moves a step to IN_PROGRESS on behalf of the actor.
//
// Fails with ErrInvalidTransition unless the step is WAITING, and with
// ErrNotYourTurn unless the step's turn has come for this actor. On success
// the step is claimed by the actor if it was unassigned, and the order status
// is recomputed.
func (o *Order) StartStep(stepID, actorID kernel.UUID, now time.Time) error {
	step, err := o.Step(stepID)
	if err != nil {
		return err
	}
	if step.Status() != StepWaiting {
		return fmt.Errorf("%w: cannot start a step in status %s", ErrInvalidTransition, step.Status())
	}
	if !step.IsClaimableBy(actorID) {
		return fmt.Errorf("%w: assigned to another worker", ErrNotYourTurn)
	}
	if !o.stepHasTurn(step) {
		return fmt.Errorf("%w: a preceding step is unfinished", ErrNotYourTurn)
	}

	if err = step.start(actorID, now); err != nil {
		return err
	}

	o.refreshStatus(now)
	return nil
}

// CompleteStep moves a step to COMPLETED and cascades the order status.
//
// Fails with ErrInvalidTransition unless the step is IN_PROGRESS, and with
// ErrNotAssignee unless the actor is the assignee or override is set (the
// caller grants override from the step-override capability).
//
// The returned orderCompleted flag is true exactly when this call moved the
// order itself to COMPLETED, i.e. the completed step was the last one. The
// cascade fires at most once per order.
func (o *Order) CompleteStep(stepID, actorID kernel.UUID, notes string, override bool, now time.Time) (bool, error) {
	step, err := o.Step(stepID)
	if err != nil {
		return false, err
	}
	if step.Status() != StepInProgress {
		return false, fmt.Errorf("%w: cannot complete a step in status %s", ErrInvalidTransition, step.Status())
	}
	if !step.IsAssignedTo(actorID) && !override {
		return false, ErrNotAssignee
	}

	if err = step.complete(now, notes); err != nil {
		return false, err
	}

	wasCompleted := o.status == StatusCompleted
	o.refreshStatus(now)
	return o.status == StatusCompleted && !wasCompleted, nil
}

// UpdateStepNotes replaces a step's notes without changing its status.
// Allowed in any non-terminal step status; authorization mirrors CompleteStep.
func (o *Order) UpdateStepNotes(stepID, actorID kernel.UUID, notes string, override bool, now time.Time) error {
	step, err := o.Step(stepID)
	if err != nil {
		return err
	}
	if step.Status() == StepCompleted {
		return fmt.Errorf("%w: cannot update notes of a completed step", ErrInvalidTransition)
	}
	if step.Assignee() != nil && !step.IsAssignedTo(actorID) && !override {
		return ErrNotAssignee
	}

	step.setNotes(notes)
	o.updatedAt = now
	return nil
}

// BlockStep parks a WAITING step so it cannot be started until unblocked.
func (o *Order) BlockStep(stepID kernel.UUID, now time.Time) error {
	step, err := o.Step(stepID)
	if err != nil {
		return err
	}
	if err = step.block(); err != nil {
		return err
	}
	o.refreshStatus(now)
	return nil
}

// UnblockStep returns a BLOCKED step to WAITING.
func (o *Order) UnblockStep(stepID kernel.UUID, now time.Time) error {
	step, err := o.Step(stepID)
	if err != nil {
		return err
	}
	if err = step.unblock(); err != nil {
		return err
	}
	o.refreshStatus(now)
	return nil
}

// UpdateDetails changes the order's mutable attributes.
// Fails with ErrConflictingState once the order is in a terminal status.
func (o *Order) UpdateDetails(priority Priority, deadline *time.Time, notes string, now time.Time) error {
	if o.status.IsTerminal() {
		return fmt.Errorf("%w: order is %s", ErrConflictingState, o.status)
	}
	if err := priority.Validate(); err != nil {
		return err
	}

	o.priority = priority
	o.deadline = deadline
	o.notes = notes
	o.updatedAt = now
	return nil
}

// CanDelete reports whether the order may be deleted. Conservative policy:
// deletion is allowed only while every step is still WAITING, so no recorded
// work is ever orphaned. Returns ErrConflictingState otherwise.
func (o *Order) CanDelete() error {
	if o.status.IsTerminal() {
		return fmt.Errorf("%w: order is %s", ErrConflictingState, o.status)
	}
	for _, step := range o.steps {
		if step.Status() != StepWaiting {
			return fmt.Errorf("%w: step %d has left WAITING", ErrConflictingState, step.Number())
		}
	}
	return nil
}

// Cancel withdraws the order. Same policy as CanDelete.
func (o *Order) Cancel(now time.Time) error {
	if err := o.CanDelete(); err != nil {
		return err
	}
	o.status = StatusCancelled
	o.updatedAt = now
	return nil
}

// refreshStatus recomputes the derived order status from the current step
// states. Called after every step mutation; CANCELLED is sticky.
func (o *Order) refreshStatus(now time.Time) {
	o.updatedAt = now
	if o.status == StatusCancelled {
		return
	}

	allCompleted := true
	anyBegun := false
	for _, step := range o.steps {
		switch step.Status() {
		case StepCompleted:
			anyBegun = true
		case StepInProgress:
			anyBegun = true
			allCompleted = false
		default:
			allCompleted = false
		}
	}

	switch {
	case allCompleted && len(o.steps) > 0:
		o.status = StatusCompleted
	case anyBegun:
		o.status = StatusInProgress
	default:
		o.status = StatusPending
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

func (o *Order) setCustomerID(customerID *kernel.UUID, isStock bool) error {
	if customerID == nil {
		if !isStock {
			return errs.NewValueIsRequiredError("customerID")
		}
		return nil
	}
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	o.priority = priority
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrEmptyOrder
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}
