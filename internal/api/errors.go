package api

import "fmt"

// StatusError is a non-2xx response from the remote store, with the message
// extracted from its JSON body when one was present.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote store: %s (HTTP %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("remote store: HTTP %d", e.StatusCode)
}

// NotFoundError reports a mutation against a note id the remote store no
// longer knows about.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("note %s not found", e.ID)
}
