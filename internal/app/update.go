package app

import (
	"errors"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/ritwikchawla/Golden-Notes/internal/api"
	"github.com/ritwikchawla/Golden-Notes/internal/config"
	"github.com/ritwikchawla/Golden-Notes/internal/note"
	"github.com/ritwikchawla/Golden-Notes/internal/notify"
	"github.com/ritwikchawla/Golden-Notes/internal/store"
)

// Update handles all messages and routes them to the appropriate handler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.updateFormDimensions()
		return m, nil

	case TickMsg:
		m.clock = time.Time(msg)
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case ConfigReloadedMsg:
		return m.applyConfig(msg.Config)

	case NotificationExpiredMsg:
		m.center.Expire(msg.Kind, msg.Seq)
		return m, nil

	case ProfileLoadedMsg:
		return m.handleProfileLoaded(msg)

	case NoteCreatedMsg:
		return m.handleCreated(msg)

	case NoteUpdatedMsg:
		return m.handleUpdated(msg)

	case NoteDeletedMsg:
		return m.handleDeleted(msg)

	case tea.KeyMsg:
		if m.showDeleteConfirm {
			return m.handleConfirmKey(msg)
		}
		if m.session.Active() {
			return m.handleFormKey(msg)
		}
		return m.handleListKey(msg)
	}

	// Pass through other messages to the focused input (cursor blink).
	if m.session.Active() {
		var cmd tea.Cmd
		switch m.formFocus {
		case FieldTitle:
			m.titleInput, cmd = m.titleInput.Update(msg)
		case FieldDescription:
			m.descArea, cmd = m.descArea.Update(msg)
		case FieldImage:
			m.imageInput, cmd = m.imageInput.Update(msg)
		}
		return m, cmd
	}

	return m, nil
}

// applyConfig swaps in a hot-reloaded config and keeps listening.
func (m Model) applyConfig(cfg *config.Config) (tea.Model, tea.Cmd) {
	rearm := waitForConfig(m.configUpdates)
	if cfg == nil {
		return m, rearm
	}
	serverChanged := cfg.Server != m.cfg.Server
	m.cfg = cfg
	if serverChanged {
		m.client = m.client.Rebase(cfg.Server.BaseURL, cfg.Server.MediaBaseURL, cfg.Server.RequestTimeout)
		m.notes = store.New(m.client)
		m.renderCache = make(map[string]string)
		m.logger.Info("config reloaded", "server", cfg.Server.BaseURL)
		m.loading = true
		return m, tea.Batch(m.refreshCmd(), rearm)
	}
	m.logger.Info("config reloaded")
	return m, rearm
}

// handleProfileLoaded applies a refresh result.
func (m Model) handleProfileLoaded(msg ProfileLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.Err != nil {
		m.loadErr = msg.Err
		m.logger.Error("refresh failed", "error", msg.Err)
		m.center.Error(userMessage(msg.Err))
		return m, nil
	}
	m.loadErr = nil
	if m.notes.Commit(msg.Snap) {
		m.renderCache = make(map[string]string)
	}
	m.clampCursor()
	n := m.center.Success("Notes loaded")
	return m, expireCmd(n, notify.SuccessTTL)
}

// handleCreated applies the outcome of a create save.
func (m Model) handleCreated(msg NoteCreatedMsg) (tea.Model, tea.Cmd) {
	m.pending--
	if msg.Err != nil {
		m.session.ResolveSave(false)
		m.logger.Error("create failed", "error", msg.Err)
		m.center.Error(userMessage(msg.Err))
		return m, nil
	}
	m.session.ResolveSave(true)
	if m.notes.Commit(msg.Snap) {
		m.renderCache = make(map[string]string)
	}
	// Newest-first sort puts the new note at the top.
	m.cursor = 0
	m.scrollOff = 0
	n := m.center.Success("Note created")
	return m, expireCmd(n, notify.SuccessTTL)
}

// handleUpdated applies the outcome of an update save.
func (m Model) handleUpdated(msg NoteUpdatedMsg) (tea.Model, tea.Cmd) {
	m.pending--
	if msg.Err != nil {
		m.session.ResolveSave(false)
		m.logger.Error("update failed", "id", msg.ID, "error", msg.Err)
		m.center.Error(userMessage(msg.Err))
		return m, nil
	}
	m.session.ResolveSave(true)
	if m.notes.Commit(msg.Snap) {
		m.renderCache = make(map[string]string)
	}
	// Follow the edited note if it moved position.
	for i, n := range m.notes.Notes() {
		if n.ID == msg.ID {
			m.cursor = i
			break
		}
	}
	m.clampCursor()
	n := m.center.Success("Note updated")
	return m, expireCmd(n, notify.SuccessTTL)
}

// handleDeleted applies the outcome of a delete.
func (m Model) handleDeleted(msg NoteDeletedMsg) (tea.Model, tea.Cmd) {
	m.pending--
	if msg.Err != nil {
		m.logger.Error("delete failed", "id", msg.ID, "error", msg.Err)
		m.center.Error(userMessage(msg.Err))
		return m, nil
	}
	if m.notes.Commit(msg.Snap) {
		m.renderCache = make(map[string]string)
	}
	m.clampCursor()
	n := m.center.Success("Note deleted")
	return m, expireCmd(n, notify.SuccessTTL)
}

// handleListKey processes keyboard input in the note list.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Handle g g sequence for jump to top
	if m.pendingG {
		m.pendingG = false
		if key == "g" {
			m.cursor = 0
			m.scrollOff = 0
			return m, nil
		}
	}

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		// Dismiss the error first; a second esc clears the success toast.
		if m.center.ErrorNotification() != nil {
			m.center.Dismiss(notify.KindError)
		} else {
			m.center.Dismiss(notify.KindSuccess)
		}
		return m, nil

	case "r":
		m.loading = !m.notes.Loaded()
		return m, m.refreshCmd()

	case "n":
		m.session.OpenNew()
		m.seedForm()
		m.updateFormDimensions()
		return m, nil
	}

	if m.notes.Len() == 0 {
		return m, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < m.notes.Len()-1 {
			m.cursor++
		}
		m.ensureCursorVisible(m.listHeight())
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureCursorVisible(m.listHeight())
	case "g":
		m.pendingG = true
	case "G":
		m.cursor = m.notes.Len() - 1
		m.ensureCursorVisible(m.listHeight())

	case "enter", "e":
		if sel, ok := m.selectedNote(); ok {
			m.session.Open(sel)
			m.seedForm()
			m.updateFormDimensions()
		}

	case "X":
		if sel, ok := m.selectedNote(); ok {
			m.showDeleteConfirm = true
			m.deleteTarget = sel
		}

	case "y":
		if sel, ok := m.selectedNote(); ok {
			return m, m.yank(sel.Description, "Copied note content")
		}

	case "Y":
		if sel, ok := m.selectedNote(); ok {
			return m, m.yank(sel.Title, "Copied: "+truncateTitle(sel.Title, 30))
		}
	}

	return m, nil
}

// handleConfirmKey processes keyboard input in the delete confirmation.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.showDeleteConfirm = false
		m.pending++
		return m, m.deleteCmd(m.deleteTarget.ID)
	case "n", "esc", "q":
		m.showDeleteConfirm = false
		m.deleteTarget = note.Note{}
	}
	return m, nil
}

// handleFormKey processes keyboard input in the edit form.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.session.Cancel()
		return m, nil

	case "tab":
		m.syncFormToSession()
		return m, m.focusField((m.formFocus + 1) % fieldCount)

	case "shift+tab":
		m.syncFormToSession()
		return m, m.focusField((m.formFocus + fieldCount - 1) % fieldCount)

	case "ctrl+s":
		return m.saveSession()

	case "ctrl+x":
		m.session.ClearAttachment()
		m.imageInput.SetValue("")
		n := m.center.Success("Attachment removed")
		return m, expireCmd(n, notify.SuccessTTL)

	case "enter":
		if m.formFocus == FieldImage {
			return m.stageImageFile()
		}
		if m.formFocus == FieldTitle {
			m.syncFormToSession()
			return m, m.focusField(FieldDescription)
		}
	}

	// Delegate to the focused input.
	var cmd tea.Cmd
	switch m.formFocus {
	case FieldTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case FieldDescription:
		m.descArea, cmd = m.descArea.Update(msg)
	case FieldImage:
		m.imageInput, cmd = m.imageInput.Update(msg)
	}
	m.syncFormToSession()
	return m, cmd
}

// saveSession validates the draft and dispatches the save round-trip.
func (m Model) saveSession() (tea.Model, tea.Cmd) {
	m.syncFormToSession()
	if err := m.session.BeginSave(); err != nil {
		m.center.Error(userMessage(err))
		return m, nil
	}

	email := m.email()
	title := m.session.Title()
	description := m.session.Description()
	att := m.session.Attachment().UploadPayload()

	m.pending++
	if m.session.IsNew() {
		return m, m.createCmd(email, title, description, att)
	}
	return m, m.updateCmd(m.session.TargetID(), email, title, description, att)
}

// stageImageFile reads the file named in the image input and stages it
// on the session draft.
func (m Model) stageImageFile() (tea.Model, tea.Cmd) {
	path := strings.TrimSpace(m.imageInput.Value())
	if path == "" {
		return m, nil
	}
	path = expandHome(path)

	data, err := os.ReadFile(path)
	if err != nil {
		m.center.Error("Cannot read file: " + err.Error())
		return m, nil
	}

	name := filepath.Base(path)
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if err := m.session.StageFile(name, data, mimeType); err != nil {
		m.center.Error(userMessage(err))
		return m, nil
	}

	n := m.center.Success("Attached " + name)
	return m, expireCmd(n, notify.SuccessTTL)
}

// yank copies text to the system clipboard and reports the outcome.
func (m Model) yank(text, okMessage string) tea.Cmd {
	if text == "" {
		m.center.Error("Nothing to copy")
		return nil
	}
	if err := clipboard.WriteAll(text); err != nil {
		m.center.Error("Copy failed: " + err.Error())
		return nil
	}
	n := m.center.Success(okMessage)
	return expireCmd(n, notify.SuccessTTL)
}

// userMessage converts an error into a short message for the toast bar.
func userMessage(err error) string {
	var verr *note.ValidationError
	if errors.As(err, &verr) {
		return verr.Msg
	}
	var perr *note.PreconditionError
	if errors.As(err, &perr) {
		return perr.Msg
	}
	var nferr *api.NotFoundError
	if errors.As(err, &nferr) {
		return "Note no longer exists on the server"
	}
	var serr *api.StatusError
	if errors.As(err, &serr) {
		if serr.Message != "" {
			return serr.Message
		}
		return serr.Error()
	}
	var ferr *store.FetchError
	if errors.As(err, &ferr) {
		return "Could not load notes: " + ferr.Err.Error()
	}
	return err.Error()
}

// truncateTitle truncates a title to maxLen display cells with ellipsis,
// never splitting a rune.
func truncateTitle(title string, maxLen int) string {
	return runewidth.Truncate(title, maxLen, "...")
}

// expandHome expands a leading ~ in user-typed paths.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
