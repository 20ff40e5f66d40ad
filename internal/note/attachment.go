package note

import (
	"fmt"
	"strings"
)

// MaxAttachmentSize is the largest image file that can be staged for upload.
const MaxAttachmentSize = 5 << 20 // 5 MiB

// AttachmentKind identifies the active variant of an AttachmentDraft.
type AttachmentKind int

const (
	AttachmentUnset    AttachmentKind = iota // no attachment and none existed
	AttachmentExisting                       // note's current attachment, unchanged
	AttachmentPending                        // new local file staged for upload
	AttachmentCleared                        // existing attachment marked for removal
)

// String returns the variant name for logs and errors.
func (k AttachmentKind) String() string {
	switch k {
	case AttachmentExisting:
		return "existing"
	case AttachmentPending:
		return "pending"
	case AttachmentCleared:
		return "cleared"
	default:
		return "unset"
	}
}

// PendingFile is a local image file staged for upload.
type PendingFile struct {
	Name string
	Data []byte
	MIME string
}

// AttachmentDraft tracks the image-attachment state of a note being created
// or edited. Exactly one variant is active at a time. The zero value is
// AttachmentUnset.
type AttachmentDraft struct {
	kind AttachmentKind
	ref  string       // remote reference, Existing/Cleared only
	file *PendingFile // Pending only
}

// ExistingAttachment returns a draft seeded from a note's current attachment
// reference. An empty ref yields the Unset variant.
func ExistingAttachment(ref string) AttachmentDraft {
	if ref == "" {
		return AttachmentDraft{}
	}
	return AttachmentDraft{kind: AttachmentExisting, ref: ref}
}

// Kind returns the active variant.
func (d *AttachmentDraft) Kind() AttachmentKind { return d.kind }

// ExistingRef returns the inherited remote reference, if any.
func (d *AttachmentDraft) ExistingRef() string { return d.ref }

// File returns the staged local file, or nil unless Pending.
func (d *AttachmentDraft) File() *PendingFile { return d.file }

// SetFile stages a new local file, superseding any prior variant. Files over
// MaxAttachmentSize or with a non-image MIME type are rejected with a
// ValidationError and the draft is left exactly as it was.
func (d *AttachmentDraft) SetFile(name string, data []byte, mimeType string) error {
	if len(data) > MaxAttachmentSize {
		return &ValidationError{Msg: fmt.Sprintf("image %q is too large (%d bytes, max %d)", name, len(data), MaxAttachmentSize)}
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return &ValidationError{Msg: fmt.Sprintf("file %q is not an image (%s)", name, mimeType)}
	}
	d.kind = AttachmentPending
	d.file = &PendingFile{Name: name, Data: data, MIME: mimeType}
	return nil
}

// Clear removes the staged attachment. An Existing attachment becomes
// Cleared so the save request carries an explicit removal signal; every
// other variant falls back to Unset.
func (d *AttachmentDraft) Clear() {
	if d.kind == AttachmentExisting {
		d.kind = AttachmentCleared
		d.file = nil
		return
	}
	d.kind = AttachmentUnset
	d.ref = ""
	d.file = nil
}

// UploadPayload is the projection of an AttachmentDraft used when building
// the outgoing create/update request.
type UploadPayload struct {
	Kind           AttachmentKind
	File           *PendingFile // set when Kind is AttachmentPending
	ExistingRef    string       // set when Kind is AttachmentExisting
	RemoveExisting bool         // set when Kind is AttachmentCleared
}

// UploadPayload projects the draft into its wire form without mutating it.
func (d *AttachmentDraft) UploadPayload() UploadPayload {
	switch d.kind {
	case AttachmentPending:
		return UploadPayload{Kind: AttachmentPending, File: d.file}
	case AttachmentExisting:
		return UploadPayload{Kind: AttachmentExisting, ExistingRef: d.ref}
	case AttachmentCleared:
		return UploadPayload{Kind: AttachmentCleared, RemoveExisting: true}
	default:
		return UploadPayload{Kind: AttachmentUnset}
	}
}
