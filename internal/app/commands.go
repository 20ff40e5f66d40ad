package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ritwikchawla/Golden-Notes/internal/config"
	"github.com/ritwikchawla/Golden-Notes/internal/note"
	"github.com/ritwikchawla/Golden-Notes/internal/notify"
	"github.com/ritwikchawla/Golden-Notes/internal/store"
)

// Message types for tea.Cmd
type (
	// TickMsg is sent on each clock tick.
	TickMsg time.Time

	// ProfileLoadedMsg carries the result of a collection refresh.
	ProfileLoadedMsg struct {
		Snap *store.Snapshot
		Err  error
	}

	// NoteCreatedMsg carries the result of a create round-trip.
	NoteCreatedMsg struct {
		Snap *store.Snapshot
		Err  error
	}

	// NoteUpdatedMsg carries the result of an update round-trip.
	NoteUpdatedMsg struct {
		ID   string
		Snap *store.Snapshot
		Err  error
	}

	// NoteDeletedMsg carries the result of a delete round-trip.
	NoteDeletedMsg struct {
		ID   string
		Snap *store.Snapshot
		Err  error
	}

	// NotificationExpiredMsg fires when a notification's display time is up.
	// Seq guards against expiring a replacement notification.
	NotificationExpiredMsg struct {
		Kind notify.Kind
		Seq  uint64
	}

	// ConfigReloadedMsg delivers a hot-reloaded config.
	ConfigReloadedMsg struct {
		Config *config.Config
	}
)

// tickCmd returns a command that ticks every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// expireCmd schedules the auto-expiry of a notification.
func expireCmd(n notify.Notification, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return NotificationExpiredMsg{Kind: n.Kind, Seq: n.Seq}
	})
}

// waitForConfig blocks on the config watcher channel.
func waitForConfig(ch <-chan *config.Config) tea.Cmd {
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return ConfigReloadedMsg{Config: cfg}
	}
}

// refreshCmd fetches the full collection in the background.
func (m Model) refreshCmd() tea.Cmd {
	notes := m.notes
	timeout := m.cfg.Server.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		snap, err := notes.Refresh(ctx)
		return ProfileLoadedMsg{Snap: snap, Err: err}
	}
}

// createCmd sends a new note and fetches the resulting collection.
func (m Model) createCmd(email, title, description string, att note.UploadPayload) tea.Cmd {
	notes := m.notes
	timeout := m.cfg.Server.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		snap, err := notes.Create(ctx, email, title, description, att)
		return NoteCreatedMsg{Snap: snap, Err: err}
	}
}

// updateCmd sends changed fields for an existing note.
func (m Model) updateCmd(id, email, title, description string, att note.UploadPayload) tea.Cmd {
	notes := m.notes
	timeout := m.cfg.Server.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		snap, err := notes.Update(ctx, id, email, title, description, att)
		return NoteUpdatedMsg{ID: id, Snap: snap, Err: err}
	}
}

// deleteCmd removes a note on the server.
func (m Model) deleteCmd(id string) tea.Cmd {
	notes := m.notes
	timeout := m.cfg.Server.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		snap, err := notes.Remove(ctx, id)
		return NoteDeletedMsg{ID: id, Snap: snap, Err: err}
	}
}
