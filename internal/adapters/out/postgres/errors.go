package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres error classes that resolve themselves on retry. Serialization
// failures and deadlocks are the expected cost of FOR UPDATE claims under
// contention.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

// IsTransientError reports whether err is a storage-level failure worth
// retrying. Workflow errors never match: a lost claim or an invalid
// transition is a final answer, not a glitch.
func IsTransientError(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	switch string(pqErr.Code) {
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return true
	}
	return false
}
