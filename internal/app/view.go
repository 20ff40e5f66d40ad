package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/ritwikchawla/Golden-Notes/internal/note"
	"github.com/ritwikchawla/Golden-Notes/internal/styles"
)

const (
	minWidth  = 60
	minHeight = 16
)

// View renders the entire application UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.width < minWidth || m.height < minHeight {
		msg := fmt.Sprintf("Terminal too small (%dx%d)\nMinimum: %dx%d",
			m.width, m.height, minWidth, minHeight)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			styles.Muted.Render(msg))
	}

	contentHeight := m.height - headerHeight
	if m.cfg.UI.ShowFooter {
		contentHeight -= footerHeight
	}
	if contentHeight < 0 {
		contentHeight = 0
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString("\n")

	var content string
	switch {
	case m.showDeleteConfirm:
		content = m.renderDeleteConfirm(contentHeight)
	case m.session.Active():
		content = m.renderForm(contentHeight)
	default:
		content = m.renderList(contentHeight)
	}
	b.WriteString(lipgloss.NewStyle().Width(m.width).Height(contentHeight).MaxHeight(contentHeight).Render(content))

	if m.cfg.UI.ShowFooter {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
	}

	return b.String()
}

// renderHeader renders the top bar with title, greeting and clock.
func (m Model) renderHeader() string {
	title := styles.Logo.Render(" Golden Notes ")

	var greeting string
	if u := m.notes.User(); u != nil && u.Name != "" {
		greeting = styles.BarText.Render("Hi, " + u.Name)
	}

	var clock string
	if m.cfg.UI.ShowClock {
		clock = styles.BarText.Render(m.clock.Format("15:04"))
	}

	titleWidth := lipgloss.Width(title)
	greetingWidth := lipgloss.Width(greeting)
	clockWidth := lipgloss.Width(clock)
	spacing := m.width - titleWidth - greetingWidth - clockWidth
	if spacing < 0 {
		spacing = 0
	}

	header := title + strings.Repeat(" ", spacing/2) + greeting + strings.Repeat(" ", spacing-(spacing/2)) + clock
	return styles.Header.Width(m.width).Render(header)
}

// renderFooter renders the bottom bar with key hints and the toast slot.
func (m Model) renderFooter() string {
	var status string
	if n := m.center.ErrorNotification(); n != nil {
		status = styles.ToastError.Render(n.Message)
	} else if n := m.center.SuccessNotification(); n != nil {
		status = styles.ToastSuccess.Render(n.Message)
	} else if m.pending > 0 {
		status = m.spin.View() + styles.Muted.Render("Saving...")
	}

	hintsStr := renderHintLineTruncated(m.footerHints(), m.width-lipgloss.Width(status)-4)

	spacing := m.width - lipgloss.Width(hintsStr) - lipgloss.Width(status)
	if spacing < 0 {
		spacing = 0
	}

	footer := hintsStr + strings.Repeat(" ", spacing) + status
	return styles.Footer.Width(m.width).MaxWidth(m.width).Render(footer)
}

type footerHint struct {
	keys  string
	label string
}

func (m Model) footerHints() []footerHint {
	if m.showDeleteConfirm {
		return []footerHint{
			{keys: "y", label: "delete"},
			{keys: "n", label: "cancel"},
		}
	}
	if m.session.Active() {
		hints := []footerHint{
			{keys: "tab", label: "next field"},
			{keys: "ctrl+s", label: "save"},
		}
		if m.session.Attachment().Kind() != note.AttachmentUnset {
			hints = append(hints, footerHint{keys: "ctrl+x", label: "remove image"})
		}
		hints = append(hints, footerHint{keys: "esc", label: "cancel"})
		return hints
	}
	return []footerHint{
		{keys: "j/k", label: "move"},
		{keys: "n", label: "new"},
		{keys: "enter", label: "edit"},
		{keys: "X", label: "delete"},
		{keys: "y", label: "yank"},
		{keys: "r", label: "refresh"},
		{keys: "q", label: "quit"},
	}
}

// renderHintLineTruncated renders hints but stops adding when maxWidth is exceeded.
func renderHintLineTruncated(hints []footerHint, maxWidth int) string {
	if len(hints) == 0 || maxWidth <= 0 {
		return ""
	}
	var result string
	separator := "  "
	for i, hint := range hints {
		part := fmt.Sprintf("%s %s", styles.KeyHint.Render(hint.keys), hint.label)
		var candidate string
		if i == 0 {
			candidate = part
		} else {
			candidate = result + separator + part
		}
		if lipgloss.Width(candidate) > maxWidth {
			break
		}
		result = candidate
	}
	return result
}

// listHeight is the number of note rows visible in the list pane.
func (m Model) listHeight() int {
	h := m.height - headerHeight - 2 // borders
	if m.cfg.UI.ShowFooter {
		h -= footerHeight
	}
	if h < 1 {
		h = 1
	}
	return h
}

// listPaneWidth is the width of the left pane.
func (m Model) listPaneWidth() int {
	w := m.width * 2 / 5
	if w < 30 {
		w = 30
	}
	if w > m.width-20 {
		w = m.width / 2
	}
	return w
}

// renderList renders the two-pane list + preview layout.
func (m Model) renderList(height int) string {
	listWidth := m.listPaneWidth()
	previewWidth := m.width - listWidth - dividerWidth

	list := m.renderNoteList(listWidth, height)
	preview := m.renderPreview(previewWidth, height)

	return lipgloss.JoinHorizontal(lipgloss.Top, list, " ", preview)
}

// renderNoteList renders the left pane.
func (m Model) renderNoteList(width, height int) string {
	innerWidth := width - 4 // border + padding
	rows := height - 2      // border

	var b strings.Builder
	b.WriteString(styles.PanelHeader.Render(fmt.Sprintf("Notes (%d)", m.notes.Len())))
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(m.spin.View() + styles.Muted.Render("Loading notes..."))
	case m.loadErr != nil && !m.notes.Loaded():
		b.WriteString(styles.Muted.Render("Could not load notes."))
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render("Press r to retry."))
	case m.notes.Len() == 0:
		b.WriteString(styles.Muted.Render("No notes yet."))
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render("Press n to create one."))
	default:
		visible := rows - 2 // header + spacing
		if visible < 1 {
			visible = 1
		}
		list := m.notes.Notes()
		end := m.scrollOff + visible
		if end > len(list) {
			end = len(list)
		}
		for i := m.scrollOff; i < end; i++ {
			b.WriteString(m.renderNoteRow(list[i], i == m.cursor, innerWidth))
			if i < end-1 {
				b.WriteString("\n")
			}
		}
	}

	style := styles.PanelActive
	if m.activePane != PaneList {
		style = styles.PanelInactive
	}
	return style.Width(width - 2).Height(height - 2).MaxHeight(height).Render(b.String())
}

// renderNoteRow renders a single list row.
func (m Model) renderNoteRow(n note.Note, selected bool, width int) string {
	cursor := "  "
	if selected {
		cursor = styles.ListCursor.Render("> ")
	}

	badge := ""
	if n.HasImage() {
		badge = styles.AttachmentBadge.Render(" ◈")
	}

	meta := styles.ListItemMeta.Render(" " + n.CreatedAt.Format("Jan 02"))

	avail := width - 2 - lipgloss.Width(badge) - lipgloss.Width(meta)
	if avail < 4 {
		avail = 4
	}
	title := n.Title
	if title == "" {
		title = "(untitled)"
	}
	title = runewidth.Truncate(title, avail, "...")

	rowStyle := styles.ListItemNormal
	if selected {
		rowStyle = styles.ListItemSelected
	}
	return cursor + rowStyle.Render(title) + badge + meta
}

// renderPreview renders the right pane with the selected note.
func (m Model) renderPreview(width, height int) string {
	innerWidth := width - 4

	var b strings.Builder
	sel, ok := m.selectedNote()
	if !ok {
		b.WriteString(styles.Muted.Render("Nothing selected"))
	} else {
		b.WriteString(styles.Title.Render(sel.Title))
		b.WriteString("\n")
		b.WriteString(styles.Subtle.Render(sel.CreatedAt.Format("Jan 2, 2006 15:04")))
		if sel.HasImage() {
			b.WriteString("\n")
			b.WriteString(styles.AttachmentBadge.Render("◈ " + m.client.ResolveImageURL(sel.Image)))
		}
		b.WriteString("\n\n")
		b.WriteString(m.renderMarkdown(sel, innerWidth))
	}

	content := b.String()

	// Clip to pane height
	lines := strings.Split(content, "\n")
	maxLines := height - 2
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, innerWidth, "")
	}
	content = strings.Join(lines, "\n")

	return styles.PanelInactive.Width(width - 2).Height(height - 2).MaxHeight(height).Render(content)
}

// renderMarkdown renders a note body through glamour, cached per note,
// collection revision and pane width.
func (m Model) renderMarkdown(n note.Note, width int) string {
	key := fmt.Sprintf("%s:%d:%d", n.ID, m.notes.Revision(), width)
	if cached, ok := m.renderCache[key]; ok {
		return cached
	}

	rendered := n.Description
	if m.mdRenderer != nil {
		if out, err := m.mdRenderer.Render(n.Description); err == nil {
			rendered = strings.TrimSpace(out)
		}
	}
	m.renderCache[key] = rendered
	return rendered
}

// renderForm renders the create/edit form.
func (m Model) renderForm(height int) string {
	var b strings.Builder

	heading := "New Note"
	if !m.session.IsNew() {
		heading = "Edit Note"
	}
	if m.session.State() == note.SessionSaving {
		heading += " (saving...)"
	}
	b.WriteString(styles.PanelHeader.Render(heading))
	b.WriteString("\n")

	b.WriteString(m.fieldLabel("Title", FieldTitle))
	b.WriteString("\n")
	b.WriteString(m.titleInput.View())
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel("Description", FieldDescription))
	b.WriteString("\n")
	b.WriteString(m.descArea.View())
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel("Image", FieldImage))
	b.WriteString("  ")
	b.WriteString(m.renderAttachmentState())
	b.WriteString("\n")
	b.WriteString(m.imageInput.View())

	return styles.PanelActive.Width(m.width - 2).MaxHeight(height).Render(b.String())
}

func (m Model) fieldLabel(label string, f FormField) string {
	if m.formFocus == f {
		return styles.FieldLabelActive.Render(label)
	}
	return styles.FieldLabel.Render(label)
}

// renderAttachmentState describes the draft attachment next to the label.
func (m Model) renderAttachmentState() string {
	att := m.session.Attachment()
	switch att.Kind() {
	case note.AttachmentExisting:
		return styles.Muted.Render("current: " + att.ExistingRef())
	case note.AttachmentPending:
		f := att.File()
		return styles.AttachmentBadge.Render(fmt.Sprintf("staged: %s (%d KiB)", f.Name, len(f.Data)/1024))
	case note.AttachmentCleared:
		return styles.Muted.Render("will be removed on save")
	default:
		return styles.Subtle.Render("none")
	}
}

// renderDeleteConfirm renders the delete confirmation dialog.
func (m Model) renderDeleteConfirm(height int) string {
	var b strings.Builder
	b.WriteString(styles.DialogTitle.Render("Delete note?"))
	b.WriteString("\n\n")
	b.WriteString(styles.Body.Render(truncateTitle(m.deleteTarget.Title, 40)))
	b.WriteString("\n\n")
	b.WriteString(styles.Muted.Render("y delete • n cancel"))

	dialog := styles.DialogBox.Render(b.String())
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, dialog)
}

// updateFormDimensions sizes the form inputs to the current window.
func (m *Model) updateFormDimensions() {
	if m.width == 0 || m.height == 0 {
		return
	}
	innerWidth := m.width - 6
	if innerWidth < 10 {
		innerWidth = 10
	}
	m.titleInput.Width = innerWidth
	m.imageInput.Width = innerWidth
	m.descArea.SetWidth(innerWidth)

	areaHeight := m.height - headerHeight - footerHeight - 12
	if areaHeight < 3 {
		areaHeight = 3
	}
	m.descArea.SetHeight(areaHeight)
}
