package db

import "fmt"

// PersistenceError represents a failed store operation. Writes are
// transactional, so an append that fails never leaves partial rows.
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("persistence error: %s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("persistence error: %s", e.Op)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}
