// Package store holds the client-side note collection and keeps it in
// sync with the remote service. Every mutation round-trips through the
// server: after a successful create, update, or delete the store
// re-fetches the full collection so local state always reflects what
// the server accepted, not what we optimistically hoped it did.
//
// Store methods that touch the network return a *Snapshot instead of
// mutating the store directly. Callers run them off the event loop and
// apply the result with Commit on the loop, so the visible collection
// only ever changes from one goroutine.
package store

import (
	"context"
	"strings"

	"github.com/ritwikchawla/Golden-Notes/internal/note"
)

// Remote is the slice of the API client the store needs.
type Remote interface {
	Profile(ctx context.Context) (*note.User, []note.Note, error)
	AddNote(ctx context.Context, email, title, description string, att note.UploadPayload) error
	UpdateNote(ctx context.Context, id, email, title, description string, att note.UploadPayload) error
	DeleteNote(ctx context.Context, id string) error
}

// Snapshot is an immutable view of the collection as fetched from the
// server, newest note first.
type Snapshot struct {
	User     *note.User
	Notes    []note.Note
	Revision uint64
}

// Store is the authoritative local copy of the note collection.
type Store struct {
	remote Remote
	user   *note.User
	notes  []note.Note
	rev    uint64
	loaded bool
}

func New(remote Remote) *Store {
	return &Store{remote: remote}
}

// Refresh fetches the full collection from the server. The store itself
// is untouched; apply the returned snapshot with Commit.
func (s *Store) Refresh(ctx context.Context) (*Snapshot, error) {
	user, notes, err := s.remote.Profile(ctx)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	note.SortByCreatedDesc(notes)
	return &Snapshot{User: user, Notes: notes, Revision: note.Revision(notes)}, nil
}

// Create sends a new note to the server and returns the refreshed
// collection. Validation failures are reported before any network call.
func (s *Store) Create(ctx context.Context, email, title, description string, att note.UploadPayload) (*Snapshot, error) {
	if err := validateFields(title, description); err != nil {
		return nil, err
	}
	if err := s.remote.AddNote(ctx, email, title, description, att); err != nil {
		return nil, &MutationError{Op: "creating", Err: err}
	}
	return s.Refresh(ctx)
}

// Update sends changed fields for an existing note and returns the
// refreshed collection.
func (s *Store) Update(ctx context.Context, id, email, title, description string, att note.UploadPayload) (*Snapshot, error) {
	if id == "" {
		return nil, &note.ValidationError{Msg: "note id is required"}
	}
	if err := validateFields(title, description); err != nil {
		return nil, err
	}
	if err := s.remote.UpdateNote(ctx, id, email, title, description, att); err != nil {
		return nil, &MutationError{Op: "updating", Err: err}
	}
	return s.Refresh(ctx)
}

// Remove deletes a note on the server and returns the refreshed
// collection.
func (s *Store) Remove(ctx context.Context, id string) (*Snapshot, error) {
	if id == "" {
		return nil, &note.ValidationError{Msg: "note id is required"}
	}
	if err := s.remote.DeleteNote(ctx, id); err != nil {
		return nil, &MutationError{Op: "deleting", Err: err}
	}
	return s.Refresh(ctx)
}

// Commit replaces the store's collection with the snapshot. Reports
// whether the visible collection actually changed.
func (s *Store) Commit(snap *Snapshot) bool {
	if snap == nil {
		return false
	}
	changed := !s.loaded || snap.Revision != s.rev
	s.user = snap.User
	s.notes = snap.Notes
	s.rev = snap.Revision
	s.loaded = true
	return changed
}

// Loaded reports whether at least one snapshot has been committed.
func (s *Store) Loaded() bool { return s.loaded }

// Notes returns the current collection, newest first. The slice is
// shared; callers must not mutate it.
func (s *Store) Notes() []note.Note { return s.notes }

func (s *Store) User() *note.User { return s.user }

func (s *Store) Revision() uint64 { return s.rev }

func (s *Store) Len() int { return len(s.notes) }

// Get returns the note with the given id, if present.
func (s *Store) Get(id string) (note.Note, bool) {
	for _, n := range s.notes {
		if n.ID == id {
			return n, true
		}
	}
	return note.Note{}, false
}

func validateFields(title, description string) error {
	if strings.TrimSpace(title) == "" {
		return &note.ValidationError{Msg: "title is required"}
	}
	if strings.TrimSpace(description) == "" {
		return &note.ValidationError{Msg: "description is required"}
	}
	return nil
}
