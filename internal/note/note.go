// Package note holds the domain model for the Golden Notes client: the note
// and user types, the attachment draft, and the edit session state machine.
package note

import (
	"encoding/binary"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Note represents a single note as held by the remote store. The ID and
// CreatedAt are assigned by the server and never change; the local client
// never mutates a Note in place — edits land by replacing the whole
// collection after a successful update.
type Note struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HasImage reports whether the note carries an image attachment reference.
func (n Note) HasImage() bool { return n.Image != "" }

// User is the profile loaded alongside the note collection.
type User struct {
	Name  string `json:"Name"`
	Email string `json:"Email"`
}

// SortByCreatedDesc orders notes newest-first. The sort is stable so notes
// with equal timestamps keep the order the server returned them in.
func SortByCreatedDesc(notes []Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
}

// Revision computes a content hash over the collection. The view layer uses
// it to invalidate cached renders when a refresh actually changed something.
func Revision(notes []Note) uint64 {
	h := xxhash.New()
	var ts [8]byte
	for _, n := range notes {
		_, _ = h.WriteString(n.ID)
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(n.Title)
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(n.Description)
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(n.Image)
		binary.LittleEndian.PutUint64(ts[:], uint64(n.CreatedAt.UnixNano()))
		_, _ = h.Write(ts[:])
	}
	return h.Sum64()
}
