package search

import (
	"errors"
	"fmt"
)

// ErrStaleResponse marks a response that belongs to a superseded query. It is
// never surfaced to users.
var ErrStaleResponse = errors.New("stale response")

// ValidationError is raised locally, before any network call.
type ValidationError struct {
	Kind   Kind
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// QueryError wraps a failed backend call.
type QueryError struct {
	Request Request
	Err     error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s query failed: %v", e.Request.Kind(), e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

const (
	msgQueryFailed      = "Cannot load products. Please try again."
	msgCategoriesFailed = "Cannot load all categories"
)
