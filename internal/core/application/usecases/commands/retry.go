package commands

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// maxTransientRetries bounds how often a handler re-runs its transaction
// after a transient storage failure (lock contention, serialization abort).
const maxTransientRetries = 2

// TransientClassifier reports whether an error is a transient storage failure
// worth retrying. The postgres adapter provides the production implementation;
// a nil classifier disables retries entirely.
type TransientClassifier func(error) bool

// retryTransient runs op, retrying with exponential backoff while the
// classifier reports the failure as transient. Workflow errors (permission,
// turn, transition) are never transient and pass through on the first
// attempt. Each retry must re-read state: op owns its whole transaction.
func retryTransient(ctx context.Context, isTransient TransientClassifier, op func() error) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(newTransientBackOff(), maxTransientRetries), ctx)

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if isTransient == nil || !isTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
}

func newTransientBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = 500 * time.Millisecond
	return b
}
