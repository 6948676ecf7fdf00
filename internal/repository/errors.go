// Package repository executes statements against the relational store and
// maps rows to records.
package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by single-row lookups that match nothing.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidReservation is returned when a stay does not end after it starts.
	ErrInvalidReservation = errors.New("reservation must end after it starts")
)

// StoreError wraps a failure reported by the store (connectivity, constraint
// violations, rejected parameters).
type StoreError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

// Unwrap returns the driver error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// IsStoreError reports whether err came from the store.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
