package order

import "fmt"

// StepStatus represents the state of a single production step.
//
// State transitions:
//
//	WAITING ──start──> IN_PROGRESS ──complete──> COMPLETED
//	   │ ▲
//	block unblock
//	   ▼ │
//	 BLOCKED
//
// COMPLETED is terminal. A BLOCKED step is parked by a manual action and
// returns to WAITING on unblock; it is never eligible to start while blocked.
type StepStatus int

const (
	// StepStatusUnknown represents an invalid or undefined step status.
	StepStatusUnknown StepStatus = iota

	// StepWaiting is the initial state of every instantiated step.
	StepWaiting

	// StepInProgress indicates a worker has started the step.
	StepInProgress

	// StepCompleted indicates the step is done. Terminal.
	StepCompleted

	// StepBlocked indicates the step was manually parked and cannot be
	// started until unblocked.
	StepBlocked
)

func stepStatusStrings() map[StepStatus]string {
	return map[StepStatus]string{
		StepStatusUnknown: "UNKNOWN",
		StepWaiting:       "WAITING",
		StepInProgress:    "IN_PROGRESS",
		StepCompleted:     "COMPLETED",
		StepBlocked:       "BLOCKED",
	}
}

// Validate checks if the StepStatus value is one of the defined step statuses.
func (s StepStatus) Validate() error {
	switch s {
	case StepWaiting, StepInProgress, StepCompleted, StepBlocked:
		return nil
	default:
		return fmt.Errorf("%w: %d is not a valid step status", ErrInvalidTransition, s)
	}
}

// String returns the wire name of the step status. Implements fmt.Stringer.
func (s StepStatus) String() string {
	if str, ok := stepStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// StepStatusFromString parses a wire name into a StepStatus.
func StepStatusFromString(s string) (StepStatus, error) {
	for status, str := range stepStatusStrings() {
		if str == s && status != StepStatusUnknown {
			return status, nil
		}
	}
	return StepStatusUnknown, fmt.Errorf("%w: %q is not a valid step status", ErrInvalidTransition, s)
}

// Start transitions the status to IN_PROGRESS.
// Only legal from WAITING.
func (s StepStatus) Start() (StepStatus, error) {
	if s != StepWaiting {
		return StepStatusUnknown, fmt.Errorf("%w: cannot start a step in status %s", ErrInvalidTransition, s)
	}
	return StepInProgress, nil
}

// Complete transitions the status to COMPLETED.
// Only legal from IN_PROGRESS.
func (s StepStatus) Complete() (StepStatus, error) {
	if s != StepInProgress {
		return StepStatusUnknown, fmt.Errorf("%w: cannot complete a step in status %s", ErrInvalidTransition, s)
	}
	return StepCompleted, nil
}

// Block transitions the status to BLOCKED.
// Only legal from WAITING.
func (s StepStatus) Block() (StepStatus, error) {
	if s != StepWaiting {
		return StepStatusUnknown, fmt.Errorf("%w: cannot block a step in status %s", ErrInvalidTransition, s)
	}
	return StepBlocked, nil
}

// Unblock transitions the status back to WAITING.
// Only legal from BLOCKED.
func (s StepStatus) Unblock() (StepStatus, error) {
	if s != StepBlocked {
		return StepStatusUnknown, fmt.Errorf("%w: cannot unblock a step in status %s", ErrInvalidTransition, s)
	}
	return StepWaiting, nil
}
