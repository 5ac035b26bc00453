package order

import (
	"fmt"

	"workshop/internal/pkg/errs"
)

// Priority expresses how urgently an order should be produced.
// It has no transition rules; it only orders work in listings.
type Priority int

const (
	// PriorityUnknown represents an invalid or undefined priority.
	PriorityUnknown Priority = iota

	PriorityLow
	PriorityNormal
	PriorityHigh
	PriorityUrgent
)

func priorityStrings() map[Priority]string {
	return map[Priority]string{
		PriorityLow:    "LOW",
		PriorityNormal: "NORMAL",
		PriorityHigh:   "HIGH",
		PriorityUrgent: "URGENT",
	}
}

// Validate checks if the Priority value is one of the defined priorities.
func (p Priority) Validate() error {
	if _, ok := priorityStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

// String returns the wire name of the priority. Implements fmt.Stringer.
func (p Priority) String() string {
	if str, ok := priorityStrings()[p]; ok {
		return str
	}
	return "UNKNOWN"
}

// PriorityFromString parses a wire name into a Priority.
func PriorityFromString(s string) (Priority, error) {
	for p, str := range priorityStrings() {
		if str == s {
			return p, nil
		}
	}
	return PriorityUnknown, errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not a valid priority", s))
}
