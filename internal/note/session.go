package note

import "strings"

// SessionState is the edit session's position in its lifecycle.
type SessionState int

const (
	SessionClosed SessionState = iota // no session
	SessionOpen                       // editing
	SessionSaving                     // save in flight
)

// String returns the state name for logs.
func (s SessionState) String() string {
	switch s {
	case SessionOpen:
		return "open"
	case SessionSaving:
		return "saving"
	default:
		return "closed"
	}
}

// Session is the single in-progress modification of one note. At most one
// exists per client: opening a session for another note discards the current
// draft without warning. The zero value is a closed session.
type Session struct {
	state       SessionState
	targetID    string // empty for a new-note draft
	title       string
	description string
	attachment  AttachmentDraft
}

// Open starts editing an existing note, seeding the working fields from it.
// Any prior session, open or saving, is discarded.
func (s *Session) Open(n Note) {
	s.state = SessionOpen
	s.targetID = n.ID
	s.title = n.Title
	s.description = n.Description
	s.attachment = ExistingAttachment(n.Image)
}

// OpenNew starts a blank session for creating a note.
func (s *Session) OpenNew() {
	s.state = SessionOpen
	s.targetID = ""
	s.title = ""
	s.description = ""
	s.attachment = AttachmentDraft{}
}

// Cancel discards the draft unconditionally.
func (s *Session) Cancel() {
	*s = Session{}
}

// SetTitle updates the working title. No-op unless the session is open.
func (s *Session) SetTitle(v string) {
	if s.state == SessionOpen {
		s.title = v
	}
}

// SetDescription updates the working description. No-op unless open.
func (s *Session) SetDescription(v string) {
	if s.state == SessionOpen {
		s.description = v
	}
}

// StageFile stages a local image file on the working attachment draft.
func (s *Session) StageFile(name string, data []byte, mimeType string) error {
	if s.state != SessionOpen {
		return &PreconditionError{Msg: "no open edit session"}
	}
	return s.attachment.SetFile(name, data, mimeType)
}

// ClearAttachment removes the working attachment, marking an inherited one
// for explicit removal on save.
func (s *Session) ClearAttachment() {
	if s.state == SessionOpen {
		s.attachment.Clear()
	}
}

// BeginSave transitions Open -> Saving. It is refused with a
// PreconditionError, leaving the session untouched, when the session is not
// open or when the trimmed title or description is empty; nothing may reach
// the network on a refused save.
func (s *Session) BeginSave() error {
	switch s.state {
	case SessionSaving:
		return &PreconditionError{Msg: "save already in progress"}
	case SessionClosed:
		return &PreconditionError{Msg: "no open edit session"}
	}
	if strings.TrimSpace(s.title) == "" {
		return &PreconditionError{Msg: "title must not be empty"}
	}
	if strings.TrimSpace(s.description) == "" {
		return &PreconditionError{Msg: "description must not be empty"}
	}
	s.state = SessionSaving
	return nil
}

// ResolveSave completes an in-flight save: success closes the session,
// failure returns it to Open with the draft intact so the user can correct
// and retry. No-op unless a save is in flight.
func (s *Session) ResolveSave(success bool) {
	if s.state != SessionSaving {
		return
	}
	if success {
		*s = Session{}
		return
	}
	s.state = SessionOpen
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState { return s.state }

// Active reports whether a session is open or saving.
func (s *Session) Active() bool { return s.state != SessionClosed }

// IsNew reports whether the session drafts a not-yet-created note.
func (s *Session) IsNew() bool { return s.targetID == "" }

// TargetID returns the id of the note being edited, empty for a new draft.
func (s *Session) TargetID() string { return s.targetID }

// Title returns the working title.
func (s *Session) Title() string { return s.title }

// Description returns the working description.
func (s *Session) Description() string { return s.description }

// Attachment returns the working attachment draft.
func (s *Session) Attachment() *AttachmentDraft { return &s.attachment }
