package note

// ValidationError reports input rejected locally, before any network call.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// PreconditionError reports an edit-session transition that was refused,
// leaving the session state unchanged.
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string { return e.Msg }
