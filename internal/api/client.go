// Package api implements the HTTP client for the Golden Notes remote store.
// Every request carries the bearer credential verbatim; the client never
// inspects or refreshes it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/ritwikchawla/Golden-Notes/internal/note"
)

// Client talks to the remote note store.
type Client struct {
	baseURL      string
	mediaBaseURL string
	token        string
	hc           *http.Client
}

// NewClient builds a client for the store at baseURL. The token is injected
// here rather than read from any ambient storage; pass the credential the
// auth layer produced.
func NewClient(baseURL, mediaBaseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		mediaBaseURL: strings.TrimRight(mediaBaseURL, "/"),
		token:        token,
		hc:           &http.Client{Timeout: timeout},
	}
}

// WithToken returns a copy of the client carrying a different credential.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Rebase returns a copy of the client pointed at a different server,
// keeping the credential. Used when the config file changes at runtime.
func (c *Client) Rebase(baseURL, mediaBaseURL string, timeout time.Duration) *Client {
	return NewClient(baseURL, mediaBaseURL, c.token, timeout)
}

// ResolveImageURL resolves a note's image path against the media base URL.
// Absolute URLs pass through unchanged.
func (c *Client) ResolveImageURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base := c.mediaBaseURL
	if base == "" {
		base = c.baseURL
	}
	return base + "/" + strings.TrimLeft(path, "/")
}

// Profile fetches the user profile and full note collection.
// A response with no Notes yields an empty slice; no User yields nil.
func (c *Client) Profile(ctx context.Context) (*note.User, []note.Note, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/profile/", nil)
	if err != nil {
		return nil, nil, err
	}
	c.authorize(req)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, decodeError(resp, "")
	}

	var body profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, nil, fmt.Errorf("decode profile: %w", err)
	}

	notes := make([]note.Note, 0, len(body.Message.Notes))
	for _, w := range body.Message.Notes {
		notes = append(notes, w.toNote())
	}

	var user *note.User
	if body.Message.User != nil {
		user = &note.User{Name: body.Message.User.Name, Email: body.Message.User.Email}
	}
	return user, notes, nil
}

// AddNote creates a note via POST /api/profile/addnote.
func (c *Client) AddNote(ctx context.Context, email, title, description string, att note.UploadPayload) error {
	body, contentType, err := buildNoteForm(email, title, description, att)
	if err != nil {
		return err
	}
	return c.doMutation(ctx, http.MethodPost, c.baseURL+"/api/profile/addnote", body, contentType, "")
}

// UpdateNote updates a note via PUT /api/profile/{id}. A 404 from the remote
// surfaces as *NotFoundError.
func (c *Client) UpdateNote(ctx context.Context, id, email, title, description string, att note.UploadPayload) error {
	body, contentType, err := buildNoteForm(email, title, description, att)
	if err != nil {
		return err
	}
	return c.doMutation(ctx, http.MethodPut, c.baseURL+"/api/profile/"+id, body, contentType, id)
}

// DeleteNote removes a note via DELETE /api/profile/{id}.
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.doMutation(ctx, http.MethodDelete, c.baseURL+"/api/profile/"+id, nil, "", id)
}

// Login exchanges credentials for a token pair via POST /api/login/.
func (c *Client) Login(ctx context.Context, email, password string) (Token, error) {
	payload, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/login/", bytes.NewReader(payload))
	if err != nil {
		return Token{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return Token{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Token{}, decodeError(resp, "")
	}

	var tok Token
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return Token{}, fmt.Errorf("decode token: %w", err)
	}
	return tok, nil
}

// Register creates an account via POST /api/register/.
func (c *Client) Register(ctx context.Context, fullName, email, phone, password string) error {
	payload, _ := json.Marshal(map[string]string{
		"fullname":         fullName,
		"email":            email,
		"phone":            phone,
		"password":         password,
		"confirm_password": password,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/register/", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return decodeError(resp, "")
	}
	return nil
}

// Logout blacklists the client's refresh token via POST /api/logout/.
// The token travels in the Authorization header, same as every other call.
func (c *Client) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/logout/", nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp, "")
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
}

// doMutation runs a create/update/delete request, treating any 2xx as
// success. noteID is used to build NotFoundError for 404 responses.
func (c *Client) doMutation(ctx context.Context, method, url string, body io.Reader, contentType, noteID string) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	c.authorize(req)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp, noteID)
	}
	return nil
}

// buildNoteForm assembles the multipart body shared by create and update.
// The image part is present only for a Pending attachment; removeImage is
// sent only for a Cleared one.
func buildNoteForm(email, title, description string, att note.UploadPayload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"email":       email,
		"title":       title,
		"description": description,
	}
	if att.RemoveExisting {
		fields["removeImage"] = "true"
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	if att.File != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="image"; filename="%s"`, att.File.Name))
		h.Set("Content-Type", att.File.MIME)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(att.File.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// decodeError turns a non-2xx response into a typed error, pulling the
// message out of the JSON body when the store sent one.
func decodeError(resp *http.Response, noteID string) error {
	if resp.StatusCode == http.StatusNotFound && noteID != "" {
		return &NotFoundError{ID: noteID}
	}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body errorBody
	_ = json.Unmarshal(data, &body)
	return &StatusError{StatusCode: resp.StatusCode, Message: body.text()}
}
