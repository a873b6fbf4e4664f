package db

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by lookups that expect zero or one row and find none
var ErrNotFound = errors.New("not found")

// QueryError wraps any failure retrieving rows from a store
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError wraps err as a QueryError for op. ErrNotFound and nil pass through unchanged.
func NewQueryError(op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	return &QueryError{Op: op, Err: err}
}

// IsNotFound reports whether err is, or wraps, ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsQueryError reports whether err is, or wraps, a QueryError
func IsQueryError(err error) bool {
	var qe *QueryError
	return errors.As(err, &qe)
}
