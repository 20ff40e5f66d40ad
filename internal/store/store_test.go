package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ritwikchawla/Golden-Notes/internal/api"
	"github.com/ritwikchawla/Golden-Notes/internal/note"
)

// fakeRemote scripts server behavior per call and records what was sent.
type fakeRemote struct {
	user  *note.User
	notes []note.Note

	profileErr error
	addErr     error
	updateErr  error
	deleteErr  error

	profileCalls int
	addCalls     int
	updateCalls  int
	deleteCalls  int

	lastAtt note.UploadPayload
}

func (f *fakeRemote) Profile(ctx context.Context) (*note.User, []note.Note, error) {
	f.profileCalls++
	if f.profileErr != nil {
		return nil, nil, f.profileErr
	}
	notes := make([]note.Note, len(f.notes))
	copy(notes, f.notes)
	return f.user, notes, nil
}

func (f *fakeRemote) AddNote(ctx context.Context, email, title, description string, att note.UploadPayload) error {
	f.addCalls++
	f.lastAtt = att
	if f.addErr != nil {
		return f.addErr
	}
	f.notes = append(f.notes, note.Note{
		ID:          "new",
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
	})
	return nil
}

func (f *fakeRemote) UpdateNote(ctx context.Context, id, email, title, description string, att note.UploadPayload) error {
	f.updateCalls++
	f.lastAtt = att
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.notes {
		if f.notes[i].ID == id {
			f.notes[i].Title = title
			f.notes[i].Description = description
			return nil
		}
	}
	return &api.NotFoundError{ID: id}
}

func (f *fakeRemote) DeleteNote(ctx context.Context, id string) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.notes {
		if f.notes[i].ID == id {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			return nil
		}
	}
	return &api.NotFoundError{ID: id}
}

func seedNote(id, title string, age time.Duration) note.Note {
	return note.Note{ID: id, Title: title, Description: "d", CreatedAt: time.Now().Add(-age)}
}

func TestRefreshSortsNewestFirst(t *testing.T) {
	remote := &fakeRemote{
		user: &note.User{Name: "Ada"},
		notes: []note.Note{
			seedNote("old", "Old", 2*time.Hour),
			seedNote("new", "New", time.Minute),
		},
	}
	s := New(remote)

	snap, err := s.Refresh(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !s.Commit(snap) {
		t.Error("first commit reported no change")
	}
	if got := s.Notes(); len(got) != 2 || got[0].ID != "new" || got[1].ID != "old" {
		t.Errorf("notes after refresh = %+v", got)
	}
	if s.User() == nil || s.User().Name != "Ada" {
		t.Errorf("user = %+v", s.User())
	}
	if !s.Loaded() {
		t.Error("Loaded() = false after commit")
	}
}

func TestCreatePrependsNewNote(t *testing.T) {
	remote := &fakeRemote{notes: []note.Note{seedNote("a", "A", time.Hour)}}
	s := New(remote)
	snap, _ := s.Refresh(context.Background())
	s.Commit(snap)

	snap, err := s.Create(context.Background(), "e@x.c", "B", "body", note.UploadPayload{})
	if err != nil {
		t.Fatal(err)
	}
	s.Commit(snap)

	got := s.Notes()
	if len(got) != 2 || got[0].Title != "B" || got[1].ID != "a" {
		t.Errorf("notes after create = %+v", got)
	}
	if remote.profileCalls != 2 {
		t.Errorf("profile calls = %d, want a re-fetch after the mutation", remote.profileCalls)
	}
}

func TestCreateValidationSkipsNetwork(t *testing.T) {
	tests := []struct {
		name        string
		title, desc string
	}{
		{"empty title", "", "body"},
		{"blank title", "   ", "body"},
		{"empty description", "T", ""},
		{"blank description", "T", "\t\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := &fakeRemote{}
			s := New(remote)

			_, err := s.Create(context.Background(), "e@x.c", tt.title, tt.desc, note.UploadPayload{})
			var verr *note.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error type = %T, want *note.ValidationError", err)
			}
			if remote.addCalls != 0 || remote.profileCalls != 0 {
				t.Errorf("network touched: add=%d profile=%d", remote.addCalls, remote.profileCalls)
			}
		})
	}
}

func TestMutationFailureLeavesCollectionUnchanged(t *testing.T) {
	remote := &fakeRemote{notes: []note.Note{seedNote("a", "A", time.Hour)}}
	s := New(remote)
	snap, _ := s.Refresh(context.Background())
	s.Commit(snap)
	before := s.Revision()

	remote.addErr = errors.New("boom")
	_, err := s.Create(context.Background(), "e@x.c", "B", "body", note.UploadPayload{})
	var merr *MutationError
	if !errors.As(err, &merr) {
		t.Fatalf("error type = %T, want *MutationError", err)
	}

	if s.Revision() != before || s.Len() != 1 {
		t.Errorf("collection changed after failed mutation: len=%d", s.Len())
	}
	if remote.profileCalls != 1 {
		t.Errorf("profile calls = %d, refresh should not follow a failed mutation", remote.profileCalls)
	}
}

func TestUpdateNotFoundSurfaces(t *testing.T) {
	remote := &fakeRemote{notes: []note.Note{seedNote("a", "A", time.Hour)}}
	s := New(remote)

	_, err := s.Update(context.Background(), "ghost", "e@x.c", "T", "D", note.UploadPayload{})
	var nferr *api.NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("error chain %v does not contain *api.NotFoundError", err)
	}
	var merr *MutationError
	if !errors.As(err, &merr) || merr.Op != "updating" {
		t.Errorf("wrapper = %+v, want MutationError op=updating", err)
	}
}

func TestUpdatePassesAttachmentThrough(t *testing.T) {
	remote := &fakeRemote{notes: []note.Note{seedNote("a", "A", time.Hour)}}
	s := New(remote)

	d := note.ExistingAttachment("/media/x.png")
	d.Clear()
	_, err := s.Update(context.Background(), "a", "e@x.c", "T", "D", d.UploadPayload())
	if err != nil {
		t.Fatal(err)
	}
	if !remote.lastAtt.RemoveExisting {
		t.Error("cleared attachment not forwarded as a removal")
	}
}

func TestRemove(t *testing.T) {
	remote := &fakeRemote{notes: []note.Note{
		seedNote("a", "A", time.Hour),
		seedNote("b", "B", 2*time.Hour),
	}}
	s := New(remote)
	snap, _ := s.Refresh(context.Background())
	s.Commit(snap)

	snap, err := s.Remove(context.Background(), "a")
	if err != nil {
		t.Fatal(err)
	}
	if !s.Commit(snap) {
		t.Error("commit after delete reported no change")
	}
	if s.Len() != 1 || s.Notes()[0].ID != "b" {
		t.Errorf("notes after delete = %+v", s.Notes())
	}
	if _, ok := s.Get("a"); ok {
		t.Error("deleted note still retrievable")
	}
}

func TestRefreshErrorWraps(t *testing.T) {
	cause := errors.New("connection refused")
	remote := &fakeRemote{profileErr: cause}
	s := New(remote)

	_, err := s.Refresh(context.Background())
	var ferr *FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("error type = %T, want *FetchError", err)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped cause lost")
	}
}

func TestCommitIdenticalSnapshotReportsNoChange(t *testing.T) {
	remote := &fakeRemote{notes: []note.Note{seedNote("a", "A", time.Hour)}}
	s := New(remote)

	first, _ := s.Refresh(context.Background())
	s.Commit(first)
	second, _ := s.Refresh(context.Background())
	if s.Commit(second) {
		t.Error("identical snapshot reported as a change")
	}
}

func TestCommitNilIsNoop(t *testing.T) {
	s := New(&fakeRemote{})
	if s.Commit(nil) {
		t.Error("nil snapshot committed")
	}
	if s.Loaded() {
		t.Error("store marked loaded by nil commit")
	}
}
