// Package app is the Bubble Tea model for the notes client. All state
// lives on the Model and changes only inside Update; network work runs
// in commands that report back with typed messages.
package app

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/ritwikchawla/Golden-Notes/internal/api"
	"github.com/ritwikchawla/Golden-Notes/internal/config"
	"github.com/ritwikchawla/Golden-Notes/internal/note"
	"github.com/ritwikchawla/Golden-Notes/internal/notify"
	"github.com/ritwikchawla/Golden-Notes/internal/store"
	"github.com/ritwikchawla/Golden-Notes/internal/styles"
)

const (
	headerHeight = 2 // header line + spacing
	footerHeight = 1
	dividerWidth = 1
)

// FocusPane represents which pane is active in list mode.
type FocusPane int

const (
	PaneList FocusPane = iota
	PanePreview
)

// FormField identifies the focused input in the edit form.
type FormField int

const (
	FieldTitle FormField = iota
	FieldDescription
	FieldImage
	fieldCount
)

// Model is the root application model.
type Model struct {
	cfg    *config.Config
	client *api.Client
	notes  *store.Store
	center *notify.Center

	session note.Session

	logger *slog.Logger

	// View dimensions
	width  int
	height int
	ready  bool

	// List state
	activePane FocusPane
	cursor     int
	scrollOff  int
	spin       spinner.Model
	loading    bool
	loadErr    error
	pendingG   bool

	// In-flight mutation count; drives the saving indicator
	pending int

	// Edit form state
	titleInput textinput.Model
	descArea   textarea.Model
	imageInput textinput.Model
	formFocus  FormField

	// Delete confirmation state
	showDeleteConfirm bool
	deleteTarget      note.Note

	// Clock for the header
	clock time.Time

	// Config hot-reload
	configUpdates <-chan *config.Config

	// Markdown preview cache, keyed by note ID + collection revision + width
	mdRenderer  *glamour.TermRenderer
	renderCache map[string]string
}

// Option configures the model.
type Option func(*Model)

// WithConfigUpdates wires a channel of reloaded configs into the model.
func WithConfigUpdates(ch <-chan *config.Config) Option {
	return func(m *Model) { m.configUpdates = ch }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// New creates the root model.
func New(cfg *config.Config, client *api.Client, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.CharLimit = 0
	ti.Prompt = ""

	ta := textarea.New()
	ta.Placeholder = "Write your note..."
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.FocusedStyle = textarea.Style{
		Base:             lipgloss.NewStyle(),
		CursorLine:       lipgloss.NewStyle(),
		CursorLineNumber: styles.Muted,
		EndOfBuffer:      styles.Muted,
		LineNumber:       styles.Muted,
		Placeholder:      styles.Muted,
		Prompt:           lipgloss.NewStyle(),
		Text:             lipgloss.NewStyle(),
	}
	ta.BlurredStyle = ta.FocusedStyle

	ii := textinput.New()
	ii.Placeholder = "Path to image (optional)"
	ii.CharLimit = 0
	ii.Prompt = ""

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.CurrentMarkdownTheme),
		glamour.WithWordWrap(0),
	)

	m := Model{
		cfg:         cfg,
		client:      client,
		notes:       store.New(client),
		center:      &notify.Center{},
		logger:      slog.Default(),
		spin:        sp,
		loading:     true,
		titleInput:  ti,
		descArea:    ta,
		imageInput:  ii,
		clock:       time.Now(),
		mdRenderer:  renderer,
		renderCache: make(map[string]string),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the initial load and background tickers.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.refreshCmd(), tickCmd(), m.spin.Tick, textinput.Blink}
	if m.configUpdates != nil {
		cmds = append(cmds, waitForConfig(m.configUpdates))
	}
	return tea.Batch(cmds...)
}

// selectedNote returns the note under the cursor, if any.
func (m Model) selectedNote() (note.Note, bool) {
	list := m.notes.Notes()
	if len(list) == 0 || m.cursor < 0 || m.cursor >= len(list) {
		return note.Note{}, false
	}
	return list[m.cursor], true
}

// clampCursor keeps the cursor inside the collection after a commit.
func (m *Model) clampCursor() {
	n := m.notes.Len()
	if n == 0 {
		m.cursor = 0
		m.scrollOff = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// ensureCursorVisible adjusts scroll offset so the cursor stays on screen.
func (m *Model) ensureCursorVisible(visible int) {
	if visible < 1 {
		visible = 1
	}
	if m.cursor < m.scrollOff {
		m.scrollOff = m.cursor
	}
	if m.cursor >= m.scrollOff+visible {
		m.scrollOff = m.cursor - visible + 1
	}
}

// seedForm fills the edit form inputs from the current session draft.
func (m *Model) seedForm() {
	m.titleInput.SetValue(m.session.Title())
	m.descArea.SetValue(m.session.Description())
	m.imageInput.SetValue("")
	m.formFocus = FieldTitle
	m.titleInput.Focus()
	m.descArea.Blur()
	m.imageInput.Blur()
}

// syncFormToSession pushes the input values into the session draft.
func (m *Model) syncFormToSession() {
	m.session.SetTitle(m.titleInput.Value())
	m.session.SetDescription(m.descArea.Value())
}

// focusField moves form focus to the given field.
func (m *Model) focusField(f FormField) tea.Cmd {
	m.formFocus = f
	m.titleInput.Blur()
	m.descArea.Blur()
	m.imageInput.Blur()
	switch f {
	case FieldTitle:
		return m.titleInput.Focus()
	case FieldDescription:
		return m.descArea.Focus()
	case FieldImage:
		return m.imageInput.Focus()
	}
	return nil
}

// email returns the account email used for note mutations.
func (m Model) email() string {
	if u := m.notes.User(); u != nil && u.Email != "" {
		return u.Email
	}
	return m.cfg.Auth.Email
}
