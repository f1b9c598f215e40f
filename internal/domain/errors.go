package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuery signals malformed or out-of-range query parameters.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidRecord signals a record that fails validation on save.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrUpstreamFailure signals a failed or timed-out upstream call (geocoding).
	ErrUpstreamFailure = errors.New("upstream failure")
	// ErrDataAnomaly signals an inconsistency in stored relationships.
	// Recovered locally, surfaced only in logs.
	ErrDataAnomaly = errors.New("data anomaly")
)

// InvalidQueryError wraps ErrInvalidQuery with the offending parameter name.
type InvalidQueryError struct {
	Param  string
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("%s: parameter %q %s", ErrInvalidQuery.Error(), e.Param, e.Reason)
}

func (e *InvalidQueryError) Unwrap() error { return ErrInvalidQuery }

// NewInvalidQuery creates an invalid query error for a named parameter.
func NewInvalidQuery(param, reason string) error {
	return &InvalidQueryError{Param: param, Reason: reason}
}
