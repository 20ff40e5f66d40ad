package store

import "fmt"

// FetchError wraps a failed collection refresh.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetching notes: %v", e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// MutationError wraps a failed create, update, or delete.
type MutationError struct {
	Op  string
	Err error
}

func (e *MutationError) Error() string { return fmt.Sprintf("%s note: %v", e.Op, e.Err) }
func (e *MutationError) Unwrap() error { return e.Err }
