package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

// errCritical is a marker for repeater, any criticalError matches it and stops retrying
var errCritical = &criticalError{}

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	if e.err == nil {
		return "critical error"
	}
	return e.err.Error()
}

func (e *criticalError) Unwrap() error { return e.err }

// Is makes every criticalError match errCritical
func (e *criticalError) Is(target error) bool {
	_, ok := target.(*criticalError)
	return ok
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}

// withRetry runs fn with backoff while it fails on SQLite lock errors.
// Other errors are returned right away, wrapped with op.
func withRetry(ctx context.Context, op string, fn func() error) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		err := fn()
		if err == nil || isLockError(err) {
			return err // nil or retry
		}
		return &criticalError{err: err}
	}, errCritical)
	if err != nil {
		return wrapErr(op, err)
	}
	return nil
}

func wrapErr(op string, err error) error {
	var ce *criticalError
	if errors.As(err, &ce) && ce.err != nil {
		err = ce.err
	}
	return fmt.Errorf("%s: %w", op, err)
}
