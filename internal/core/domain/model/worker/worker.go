package worker

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
)

var (
	// ErrWorkerIsNotConstructed is returned when a Worker instance was not
	// created through the NewWorker or RestoreWorker factory functions.
	ErrWorkerIsNotConstructed = errors.New("Worker must be created via NewWorker or RestoreWorker")

	// ErrPermissionDenied is returned by command handlers when the acting
	// worker lacks the capability required for an operation. The permission
	// gate itself never fails: absence of authorization is reported by the
	// caller, not by the lookup.
	ErrPermissionDenied = errors.New("permission denied")
)

// Worker represents a company member who performs production steps and
// manages orders. Worker is an aggregate with private fields; all instances
// are created through NewWorker or RestoreWorker so the invariants below hold:
//
//   - Must have a valid unique identifier
//   - Must belong to exactly one company
//   - Must have a non-empty name
//   - The grant set only contains known permissions
type Worker struct {
	// id is the unique identifier for the worker
	id kernel.UUID

	// companyID identifies the tenant the worker belongs to
	companyID kernel.UUID

	// name is the worker's display name
	name string

	// isCompanyOwner marks the company super-admin; owners implicitly hold
	// every permission within their company
	isCompanyOwner bool

	// grants is the flat set of permissions granted to the worker
	grants map[Permission]struct{}

	// isConstructed ensures the worker was created via a factory function
	isConstructed bool
}

// NewWorker creates a Worker with validation of all fields.
// Each permission in grants must be a known permission.
func NewWorker(id, companyID kernel.UUID, name string, isCompanyOwner bool, grants []Permission) (*Worker, error) {
	w := &Worker{
		isConstructed: true,
	}

	if err := errors.Join(
		w.setID(id),
		w.setCompanyID(companyID),
		w.setName(name),
		w.setGrants(grants),
	); err != nil {
		return nil, err
	}

	w.isCompanyOwner = isCompanyOwner
	return w, nil
}

// RestoreWorker reconstructs a Worker from persistence.
// It applies the same validation as NewWorker.
func RestoreWorker(id, companyID kernel.UUID, name string, isCompanyOwner bool, grants []Permission) (*Worker, error) {
	return NewWorker(id, companyID, name, isCompanyOwner, grants)
}

// Validate ensures the Worker instance was properly constructed.
func (w *Worker) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWorkerIsNotConstructed
	}
	return nil
}

// ID returns the worker's unique identifier.
func (w *Worker) ID() kernel.UUID {
	return w.id
}

// CompanyID returns the identifier of the company the worker belongs to.
func (w *Worker) CompanyID() kernel.UUID {
	return w.companyID
}

// Name returns the worker's display name.
func (w *Worker) Name() string {
	return w.name
}

// IsCompanyOwner reports whether the worker is the company owner.
func (w *Worker) IsCompanyOwner() bool {
	return w.isCompanyOwner
}

// Grants returns the worker's granted permissions in no particular order.
// Owner bypass is not reflected here; use Can for authorization decisions.
func (w *Worker) Grants() []Permission {
	grants := make([]Permission, 0, len(w.grants))
	for p := range w.grants {
		grants = append(grants, p)
	}
	return grants
}

// Can reports whether the worker is authorized for the given permission.
//
// A company owner is authorized for every permission unconditionally.
// Otherwise the worker must hold the permission in its grant set. Can is a
// pure lookup with no side effects and never returns an error; callers that
// require the permission must deny explicitly with ErrPermissionDenied.
func (w *Worker) Can(p Permission) bool {
	if w.isCompanyOwner {
		return true
	}
	_, ok := w.grants[p]
	return ok
}

func (w *Worker) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Worker) setCompanyID(companyID kernel.UUID) error {
	if err := companyID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("companyID", err)
	}
	w.companyID = companyID
	return nil
}

func (w *Worker) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	w.name = name
	return nil
}

func (w *Worker) setGrants(grants []Permission) error {
	set := make(map[Permission]struct{}, len(grants))
	for _, p := range grants {
		if err := p.Validate(); err != nil {
			return err
		}
		set[p] = struct{}{}
	}
	w.grants = set
	return nil
}
