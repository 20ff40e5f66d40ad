package api

import (
	"encoding/json"
	"time"

	"github.com/ritwikchawla/Golden-Notes/internal/note"
)

// profileResponse is the wire shape of GET /api/profile/.
type profileResponse struct {
	Message struct {
		User  *wireUser  `json:"User"`
		Notes []wireNote `json:"Notes"`
	} `json:"message"`
}

type wireUser struct {
	Name  string `json:"Name"`
	Email string `json:"Email"`
}

// wireID tolerates the id arriving as either a JSON number (the store's
// database row id) or a string. The rest of the client treats ids as opaque
// strings.
type wireID string

func (w *wireID) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*w = wireID(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*w = wireID(s)
	return nil
}

type wireNote struct {
	ID          wireID `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	CreatedAt   string `json:"createdAt"`
}

// toNote converts a wire note, tolerating a missing or malformed timestamp
// (the note still lists, just with a zero creation time).
func (w wireNote) toNote() note.Note {
	n := note.Note{
		ID:          string(w.ID),
		Title:       w.Title,
		Description: w.Description,
		Image:       w.Image,
	}
	if w.CreatedAt != "" {
		if ts, err := time.Parse(time.RFC3339, w.CreatedAt); err == nil {
			n.CreatedAt = ts
		}
	}
	return n
}

// errorBody is the error envelope the remote store uses; some endpoints
// respond with "message", others with "error".
type errorBody struct {
	Message string `json:"message"`
	Err     string `json:"error"`
}

func (b errorBody) text() string {
	if b.Message != "" {
		return b.Message
	}
	return b.Err
}

// Token is the credential pair returned by POST /api/login/.
type Token struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
