package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ritwikchawla/Golden-Notes/internal/note"
)

func newTestClient(url string) *Client {
	return NewClient(url, url, "test-token", 5*time.Second)
}

func TestProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/profile/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`{"message":{"User":{"Name":"Ada","Email":"ada@example.com"},"Notes":[
			{"id":"1","title":"A","description":"d","image":"/media/a.png","createdAt":"2026-01-01T10:00:00Z"}
		]}}`))
	}))
	defer srv.Close()

	user, notes, err := newTestClient(srv.URL).Profile(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if user == nil || user.Name != "Ada" || user.Email != "ada@example.com" {
		t.Errorf("user = %+v", user)
	}
	if len(notes) != 1 || notes[0].ID != "1" || notes[0].Image != "/media/a.png" {
		t.Errorf("notes = %+v", notes)
	}
	if notes[0].CreatedAt.IsZero() {
		t.Error("createdAt not parsed")
	}
}

func TestProfile_NumericIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":{"User":{"Name":"Ada","Email":"ada@example.com"},"Notes":[
			{"id":3,"title":"A","description":"d","image":null},
			{"id":"12","title":"B","description":"e","image":"/media/b.png","createdAt":"2026-01-01T10:00:00Z"}
		]}}`))
	}))
	defer srv.Close()

	_, notes, err := newTestClient(srv.URL).Profile(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 2 {
		t.Fatalf("got %d notes, want 2", len(notes))
	}
	if notes[0].ID != "3" {
		t.Errorf("numeric id decoded as %q, want \"3\"", notes[0].ID)
	}
	if notes[0].Image != "" {
		t.Errorf("null image decoded as %q", notes[0].Image)
	}
	if notes[1].ID != "12" {
		t.Errorf("string id decoded as %q, want \"12\"", notes[1].ID)
	}
}

func TestProfile_MissingFieldsDegradeGracefully(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty message", `{"message":{}}`},
		{"null notes", `{"message":{"User":null,"Notes":null}}`},
		{"empty object", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			user, notes, err := newTestClient(srv.URL).Profile(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if user != nil {
				t.Errorf("user = %+v, want nil", user)
			}
			if notes == nil || len(notes) != 0 {
				t.Errorf("notes = %#v, want empty slice", notes)
			}
		})
	}
}

func TestProfile_ErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid or expired token."}`))
	}))
	defer srv.Close()

	_, _, err := newTestClient(srv.URL).Profile(context.Background())
	var serr *StatusError
	if !errors.As(err, &serr) {
		t.Fatalf("error type = %T, want *StatusError", err)
	}
	if serr.StatusCode != http.StatusUnauthorized || serr.Message != "Invalid or expired token." {
		t.Errorf("StatusError = %+v", serr)
	}
}

func TestAddNote_MultipartFields(t *testing.T) {
	var gotTitle, gotEmail, gotRemove string
	var gotFile []byte
	var gotFileName, gotFileType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/profile/addnote" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatal(err)
		}
		gotTitle = r.FormValue("title")
		gotEmail = r.FormValue("email")
		gotRemove = r.FormValue("removeImage")
		if f, hdr, err := r.FormFile("image"); err == nil {
			defer f.Close()
			gotFileName = hdr.Filename
			gotFileType = hdr.Header.Get("Content-Type")
			buf := make([]byte, hdr.Size)
			f.Read(buf)
			gotFile = buf
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	var d note.AttachmentDraft
	if err := d.SetFile("cat.png", []byte("pngbytes"), "image/png"); err != nil {
		t.Fatal(err)
	}
	err := newTestClient(srv.URL).AddNote(context.Background(), "ada@example.com", "T", "D", d.UploadPayload())
	if err != nil {
		t.Fatal(err)
	}
	if gotTitle != "T" || gotEmail != "ada@example.com" {
		t.Errorf("fields title=%q email=%q", gotTitle, gotEmail)
	}
	if gotRemove != "" {
		t.Errorf("removeImage sent for a pending attachment: %q", gotRemove)
	}
	if gotFileName != "cat.png" || gotFileType != "image/png" || string(gotFile) != "pngbytes" {
		t.Errorf("file part name=%q type=%q data=%q", gotFileName, gotFileType, gotFile)
	}
}

func TestUpdateNote_RemoveImageOnlyWhenCleared(t *testing.T) {
	tests := []struct {
		name       string
		draft      func() note.AttachmentDraft
		wantRemove string
	}{
		{
			"cleared existing",
			func() note.AttachmentDraft {
				d := note.ExistingAttachment("/media/old.png")
				d.Clear()
				return d
			},
			"true",
		},
		{
			"existing untouched",
			func() note.AttachmentDraft { return note.ExistingAttachment("/media/old.png") },
			"",
		},
		{
			"unset",
			func() note.AttachmentDraft { return note.AttachmentDraft{} },
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotRemove string
			var hasRemove bool
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPut || r.URL.Path != "/api/profile/42" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				if err := r.ParseMultipartForm(32 << 20); err != nil {
					t.Fatal(err)
				}
				values, ok := r.MultipartForm.Value["removeImage"]
				hasRemove = ok
				if ok && len(values) > 0 {
					gotRemove = values[0]
				}
				w.WriteHeader(http.StatusResetContent)
			}))
			defer srv.Close()

			d := tt.draft()
			err := newTestClient(srv.URL).UpdateNote(context.Background(), "42", "e", "T", "D", d.UploadPayload())
			if err != nil {
				t.Fatal(err)
			}
			if tt.wantRemove == "" && hasRemove {
				t.Errorf("removeImage field present: %q", gotRemove)
			}
			if tt.wantRemove != "" && gotRemove != tt.wantRemove {
				t.Errorf("removeImage = %q, want %q", gotRemove, tt.wantRemove)
			}
		})
	}
}

func TestUpdateNote_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"User not found."}`))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).UpdateNote(context.Background(), "gone", "e", "T", "D", note.UploadPayload{})
	var nferr *NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("error type = %T, want *NotFoundError", err)
	}
	if nferr.ID != "gone" {
		t.Errorf("NotFoundError.ID = %q", nferr.ID)
	}
}

func TestDeleteNote(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := newTestClient(srv.URL).DeleteNote(context.Background(), "7"); err != nil {
		t.Fatal(err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/profile/7" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/login/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"access":"acc","refresh":"ref"}`))
	}))
	defer srv.Close()

	tok, err := newTestClient(srv.URL).Login(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if tok.Access != "acc" || tok.Refresh != "ref" {
		t.Errorf("token = %+v", tok)
	}
}

func TestLogin_BadPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Incorrect password"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Login(context.Background(), "a@b.c", "wrong")
	var serr *StatusError
	if !errors.As(err, &serr) {
		t.Fatalf("error type = %T, want *StatusError", err)
	}
	if serr.Message != "Incorrect password" {
		t.Errorf("message = %q", serr.Message)
	}
}

func TestResolveImageURL(t *testing.T) {
	c := NewClient("http://api.example.com", "http://media.example.com", "", 0)

	tests := []struct {
		path string
		want string
	}{
		{"", ""},
		{"/media/cat.png", "http://media.example.com/media/cat.png"},
		{"media/cat.png", "http://media.example.com/media/cat.png"},
		{"https://cdn.example.com/cat.png", "https://cdn.example.com/cat.png"},
	}
	for _, tt := range tests {
		if got := c.ResolveImageURL(tt.path); got != tt.want {
			t.Errorf("ResolveImageURL(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
