// Package guard implements a defensive pattern that ensures value objects,
// entities, and commands are only created through their designated constructor
// functions. A zero-value struct embedding a ConstructorGuard fails validation,
// which prevents bypassing the invariant checks performed by constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no object-specific
// error is supplied and the guarded object was not properly constructed.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard detects whether the embedding struct was created through its
// constructor. The internal flag is only set by NewConstructorGuard, so a
// zero-value instance fails Validate.
//
// Example usage:
//
//	type StartStepCommand struct {
//	    stepID kernel.UUID
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewStartStepCommand(stepID kernel.UUID) (StartStepCommand, error) {
//	    if err := stepID.Validate(); err != nil {
//	        return StartStepCommand{}, err
//	    }
//	    return StartStepCommand{stepID: stepID, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c StartStepCommand) Validate() error {
//	    return c.guard.Validate(ErrStartStepCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the embedding object as properly
// constructed. Call it in every constructor of a guarded type.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the guarded object was created through its
// constructor. Otherwise it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
