package order

import (
	"fmt"

	"workshop/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// Unlike a free-standing state machine, the non-terminal states are derived:
// the aggregate recomputes PENDING/IN_PROGRESS/COMPLETED from its steps after
// every step mutation. CANCELLED is the only state entered independently of
// the steps, and only while cancellation policy allows it.
//
//	PENDING ──> IN_PROGRESS ──> COMPLETED
//	   │             │
//	   └──> CANCELLED <┘   (only while no step has begun)
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status: steps exist but none has begun.
	StatusPending

	// StatusInProgress indicates at least one step has been started or
	// completed while others remain.
	StatusInProgress

	// StatusCompleted indicates every step of the order is completed.
	// Terminal.
	StatusCompleted

	// StatusCancelled indicates the order was withdrawn before work began.
	// Terminal.
	StatusCancelled
)

func statusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "UNKNOWN",
		StatusPending:    "PENDING",
		StatusInProgress: "IN_PROGRESS",
		StatusCompleted:  "COMPLETED",
		StatusCancelled:  "CANCELLED",
	}
}

func validStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:    "PENDING",
		StatusInProgress: "IN_PROGRESS",
		StatusCompleted:  "COMPLETED",
		StatusCancelled:  "CANCELLED",
	}
}

// Validate checks if the Status value is one of the defined order statuses.
func (s Status) Validate() error {
	if _, ok := validStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String returns the wire name of the status. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// StatusFromString parses a wire name into a Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range validStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}
