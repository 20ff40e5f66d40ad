package note

import (
	"bytes"
	"errors"
	"testing"
)

func TestSetFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		mime    string
		wantErr bool
	}{
		{"small png", 100, "image/png", false},
		{"exactly max", MaxAttachmentSize, "image/jpeg", false},
		{"one over max", MaxAttachmentSize + 1, "image/jpeg", true},
		{"pdf", 100, "application/pdf", true},
		{"video", 100, "video/mp4", true},
		{"empty mime", 100, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d AttachmentDraft
			err := d.SetFile("f", bytes.Repeat([]byte{0xFF}, tt.size), tt.mime)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("SetFile() error type = %T, want *ValidationError", err)
				}
				if d.Kind() != AttachmentUnset {
					t.Errorf("rejected SetFile mutated draft to %v", d.Kind())
				}
			} else if d.Kind() != AttachmentPending {
				t.Errorf("Kind() = %v, want pending", d.Kind())
			}
		})
	}
}

func TestSetFile_RejectionPreservesPriorState(t *testing.T) {
	d := ExistingAttachment("/media/old.png")

	if err := d.SetFile("huge.png", make([]byte, MaxAttachmentSize+1), "image/png"); err == nil {
		t.Fatal("oversized file should be rejected")
	}
	if d.Kind() != AttachmentExisting || d.ExistingRef() != "/media/old.png" {
		t.Errorf("rejection changed state: kind=%v ref=%q", d.Kind(), d.ExistingRef())
	}

	// Rejection is idempotent: a second attempt leaves the same state.
	if err := d.SetFile("doc.pdf", []byte("x"), "application/pdf"); err == nil {
		t.Fatal("non-image file should be rejected")
	}
	if d.Kind() != AttachmentExisting {
		t.Errorf("second rejection changed state to %v", d.Kind())
	}
}

func TestClear(t *testing.T) {
	t.Run("existing becomes cleared", func(t *testing.T) {
		d := ExistingAttachment("/media/old.png")
		d.Clear()
		if d.Kind() != AttachmentCleared {
			t.Errorf("Kind() = %v, want cleared", d.Kind())
		}
	})

	t.Run("pending becomes unset", func(t *testing.T) {
		var d AttachmentDraft
		if err := d.SetFile("a.png", []byte("x"), "image/png"); err != nil {
			t.Fatal(err)
		}
		d.Clear()
		if d.Kind() != AttachmentUnset {
			t.Errorf("Kind() = %v, want unset", d.Kind())
		}
	})

	t.Run("unset stays unset", func(t *testing.T) {
		var d AttachmentDraft
		d.Clear()
		if d.Kind() != AttachmentUnset {
			t.Errorf("Kind() = %v, want unset", d.Kind())
		}
	})
}

func TestUploadPayload(t *testing.T) {
	t.Run("cleared existing signals removal", func(t *testing.T) {
		d := ExistingAttachment("/media/old.png")
		d.Clear()
		p := d.UploadPayload()
		if !p.RemoveExisting {
			t.Error("cleared draft must project RemoveExisting, not none")
		}
	})

	t.Run("unset projects none", func(t *testing.T) {
		var d AttachmentDraft
		p := d.UploadPayload()
		if p.Kind != AttachmentUnset || p.RemoveExisting || p.File != nil {
			t.Errorf("unexpected payload %+v", p)
		}
	})

	t.Run("pending carries the file", func(t *testing.T) {
		var d AttachmentDraft
		if err := d.SetFile("a.png", []byte("data"), "image/png"); err != nil {
			t.Fatal(err)
		}
		p := d.UploadPayload()
		if p.File == nil || p.File.Name != "a.png" || p.File.MIME != "image/png" {
			t.Errorf("unexpected payload %+v", p)
		}
	})

	t.Run("existing keeps the reference", func(t *testing.T) {
		d := ExistingAttachment("/media/old.png")
		p := d.UploadPayload()
		if p.ExistingRef != "/media/old.png" || p.RemoveExisting {
			t.Errorf("unexpected payload %+v", p)
		}
	})
}
