package render

import (
	"errors"
	"fmt"
	"time"
)

// ErrNodeNotFound reports that no node with the requested id exists in the
// current tree.
var ErrNodeNotFound = errors.New("node not found")

// TimeoutError reports that a settle-and-check assertion never succeeded
// within its timeout. It wraps the last failing check so callers can tell
// genuine staleness apart from a crash.
type TimeoutError struct {
	After time.Duration
	Err   error
}

// Error implements error.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("condition not met within %s: %v", e.After, e.Err)
}

// Unwrap exposes the last failing check.
func (e *TimeoutError) Unwrap() error { return e.Err }

// IsTimeout reports whether err is (or wraps) a settle timeout.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}
