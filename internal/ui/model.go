package ui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/faizmokh/hadbit/internal/logbook"
)

// Model is the day-by-day log book browser.
type Model struct {
	ctx    context.Context
	reader *logbook.Reader
	writer *logbook.Writer
	keys   browserKeyMap

	currentDate time.Time
	section     logbook.DateSection
	selected    int

	mode               mode
	input              textinput.Model
	inputLabel         string
	editingIndex       int
	pendingSelectIndex int

	showDetails bool
	loading     bool
	statusLine  string
	errorLine   string
}

type mode uint8

const (
	modeNormal mode = iota
	modeEdit
	modeEditTime
	modeConfirmDelete
)

type sectionLoadedMsg struct {
	date    time.Time
	section logbook.DateSection
	err     error
}

type editResultMsg struct {
	index int
	entry logbook.Entry
	err   error
}

type deleteResultMsg struct {
	index int
	err   error
}

// NewModel seeds a browser showing the given day.
func NewModel(ctx context.Context, reader *logbook.Reader, writer *logbook.Writer, day time.Time) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 500

	day = startOfDay(day)
	return Model{
		ctx:                ctx,
		reader:             reader,
		writer:             writer,
		keys:               newBrowserKeyMap(),
		currentDate:        day,
		section:            logbook.DateSection{Date: day},
		mode:               modeNormal,
		input:              input,
		editingIndex:       -1,
		pendingSelectIndex: -1,
		loading:            true,
		statusLine:         "Loading entries...",
	}
}

// Init loads the initial date section.
func (m Model) Init() tea.Cmd {
	return m.loadSectionCmd(m.currentDate)
}

// Update wires TUI state transitions from user input and async commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case sectionLoadedMsg:
		return m.handleSectionLoaded(msg)
	case editResultMsg:
		return m.handleEditResult(msg)
	case deleteResultMsg:
		return m.handleDeleteResult(msg)
	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeNormal {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.section.Entries)-1 {
			m.selected++
			m.statusLine = fmt.Sprintf("Selected entry %d of %d", m.selected+1, len(m.section.Entries))
			m.errorLine = ""
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 && len(m.section.Entries) > 0 {
			m.selected--
			m.statusLine = fmt.Sprintf("Selected entry %d of %d", m.selected+1, len(m.section.Entries))
			m.errorLine = ""
		}
	case key.Matches(msg, m.keys.Prev):
		return m.gotoDate(m.currentDate.AddDate(0, 0, -1))
	case key.Matches(msg, m.keys.Next):
		return m.gotoDate(m.currentDate.AddDate(0, 0, 1))
	case key.Matches(msg, m.keys.Today):
		return m.gotoDate(startOfDay(time.Now()))
	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	case key.Matches(msg, m.keys.Edit):
		return m.beginInput(modeEdit)
	case key.Matches(msg, m.keys.Time):
		return m.beginInput(modeEditTime)
	case key.Matches(msg, m.keys.Delete):
		return m.beginDelete()
	case key.Matches(msg, m.keys.Details):
		m.showDetails = !m.showDetails
	}

	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeConfirmDelete {
		switch msg.String() {
		case "y", "Y":
			return m.confirmDelete()
		case "n", "N", "esc":
			return m.cancelInput("Delete cancelled.")
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		return m.submitInput()
	case tea.KeyEsc:
		return m.cancelInput("Cancelled.")
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// beginInput opens the inline editor for the comment or the time of the
// selected entry.
func (m Model) beginInput(md mode) (tea.Model, tea.Cmd) {
	if len(m.section.Entries) == 0 || m.loading {
		return m, nil
	}
	entry := m.section.Entries[m.selected]
	n := m.selected + 1

	m.mode = md
	m.editingIndex = m.selected
	if md == modeEditTime {
		m.input.SetValue(entry.Time.Format("15:04"))
		m.inputLabel = fmt.Sprintf("Time of %s #%d (HH:MM, Enter to save, Esc to cancel):", entry.Item, n)
	} else {
		m.input.SetValue(entry.Text)
		m.inputLabel = fmt.Sprintf("Comment of %s #%d (Enter to save, Esc to cancel):", entry.Item, n)
	}
	m.input.CursorEnd()
	m.statusLine = ""
	m.errorLine = ""
	return m, m.input.Focus()
}

func (m Model) beginDelete() (tea.Model, tea.Cmd) {
	if len(m.section.Entries) == 0 || m.loading {
		return m, nil
	}
	m.mode = modeConfirmDelete
	m.editingIndex = m.selected
	m.statusLine = ""
	m.errorLine = ""
	return m, nil
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	if m.editingIndex < 0 || m.editingIndex >= len(m.section.Entries) {
		return m.cancelInput("No entry selected.")
	}
	entry := m.section.Entries[m.editingIndex]
	value := strings.TrimSpace(m.input.Value())

	switch m.mode {
	case modeEdit:
		entry.Text = value
		m.statusLine = "Updating entry..."
	case modeEditTime:
		when, err := parseClock(value, entry.Time)
		if err != nil {
			m.errorLine = err.Error()
			return m, nil
		}
		entry.Time = when
		m.statusLine = "Updating time..."
	default:
		return m, nil
	}

	cmd := m.editEntryCmd(m.currentDate, m.editingIndex, entry)
	m.mode = modeNormal
	m.input.Blur()
	m.input.Reset()
	m.inputLabel = ""
	m.errorLine = ""
	m.pendingSelectIndex = m.editingIndex
	m.editingIndex = -1
	return m, cmd
}

func (m Model) cancelInput(message string) (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	m.input.Blur()
	m.input.Reset()
	m.inputLabel = ""
	m.editingIndex = -1
	m.pendingSelectIndex = -1
	if message != "" {
		m.statusLine = message
	}
	m.errorLine = ""
	return m, nil
}

func (m Model) confirmDelete() (tea.Model, tea.Cmd) {
	if m.editingIndex < 0 || m.editingIndex >= len(m.section.Entries) {
		return m.cancelInput("No entry selected.")
	}
	cmd := m.deleteEntryCmd(m.currentDate, m.editingIndex)
	m.mode = modeNormal
	m.statusLine = "Deleting entry..."
	m.errorLine = ""
	m.editingIndex = -1
	return m, cmd
}

func (m Model) handleSectionLoaded(msg sectionLoadedMsg) (tea.Model, tea.Cmd) {
	// Stale result for a day no longer shown.
	if !sameDay(m.currentDate, msg.date) {
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Failed to load %s: %v", msg.date.Format("2006-01-02"), msg.err)
		m.statusLine = ""
		return m, nil
	}

	m.errorLine = ""
	m.section = msg.section
	if m.section.Date.IsZero() {
		m.section.Date = msg.date
	}
	count := len(m.section.Entries)
	switch {
	case count == 0:
		m.selected = 0
		m.statusLine = fmt.Sprintf("%s has no entries.", msg.date.Format("2006-01-02"))
	case m.pendingSelectIndex >= count:
		m.selected = count - 1
	case m.pendingSelectIndex >= 0:
		m.selected = m.pendingSelectIndex
	case m.selected >= count:
		m.selected = count - 1
	}
	if count > 0 {
		m.statusLine = fmt.Sprintf("Loaded %d entr%s.", count, plural(count))
	}
	m.pendingSelectIndex = -1
	return m, nil
}

func (m Model) handleEditResult(msg editResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Edit failed: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}

	m.errorLine = ""
	m.statusLine = fmt.Sprintf("Updated entry %d.", msg.index+1)
	m.loading = true
	m.pendingSelectIndex = msg.index
	return m, m.loadSectionCmd(m.currentDate)
}

func (m Model) handleDeleteResult(msg deleteResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Delete failed: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}

	m.errorLine = ""
	m.statusLine = fmt.Sprintf("Deleted entry %d.", msg.index+1)
	m.loading = true
	m.pendingSelectIndex = msg.index
	return m, m.loadSectionCmd(m.currentDate)
}

func (m Model) gotoDate(date time.Time) (tea.Model, tea.Cmd) {
	if sameDay(m.currentDate, date) {
		return m.reload()
	}

	m.currentDate = date
	m.section = logbook.DateSection{Date: date}
	m.selected = 0
	m.loading = true
	m.statusLine = fmt.Sprintf("Loading %s...", date.Format("2006-01-02"))
	m.errorLine = ""
	m.pendingSelectIndex = -1
	return m, m.loadSectionCmd(date)
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	m.loading = true
	m.statusLine = fmt.Sprintf("Refreshing %s...", m.currentDate.Format("2006-01-02"))
	m.errorLine = ""
	return m, m.loadSectionCmd(m.currentDate)
}

func (m Model) loadSectionCmd(date time.Time) tea.Cmd {
	reader := m.reader
	ctx := m.ctx
	return func() tea.Msg {
		section, err := reader.Section(ctx, date)
		if err != nil {
			if errors.Is(err, logbook.ErrSectionNotFound) {
				return sectionLoadedMsg{date: date, section: logbook.DateSection{Date: date}}
			}
			return sectionLoadedMsg{date: date, err: err}
		}
		return sectionLoadedMsg{date: date, section: section}
	}
}

func (m Model) editEntryCmd(date time.Time, index int, entry logbook.Entry) tea.Cmd {
	writer := m.writer
	ctx := m.ctx
	return func() tea.Msg {
		updated, err := writer.Edit(ctx, date, index+1, entry.Time, entry.Text)
		if err != nil {
			return editResultMsg{index: index, entry: entry, err: err}
		}
		return editResultMsg{index: index, entry: updated}
	}
}

func (m Model) deleteEntryCmd(date time.Time, index int) tea.Cmd {
	writer := m.writer
	ctx := m.ctx
	return func() tea.Msg {
		if _, err := writer.Delete(ctx, date, index+1); err != nil {
			return deleteResultMsg{index: index, err: err}
		}
		return deleteResultMsg{index: index}
	}
}

// View renders the frame.
func (m Model) View() string {
	var b strings.Builder

	header := m.currentDate.Format("Monday, 02 January 2006")
	b.WriteString(headerStyle.Render(header))
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", len(header)))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("Loading...\n")
	} else if len(m.section.Entries) == 0 {
		b.WriteString("(no entries)\n")
	} else {
		for i, entry := range m.section.Entries {
			cursor := " "
			if i == m.selected {
				cursor = cursorStyle.Render(">")
			}
			b.WriteString(cursor)
			b.WriteByte(' ')
			b.WriteString(FormatEntry(entry))
			b.WriteByte('\n')
		}
		if m.showDetails {
			b.WriteString(m.detailsView(m.section.Entries[m.selected]))
		}
	}

	if m.errorLine != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("! " + m.errorLine))
		b.WriteByte('\n')
	} else if m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(m.statusLine)
		b.WriteByte('\n')
	}

	switch m.mode {
	case modeEdit, modeEditTime:
		b.WriteString("\n")
		b.WriteString(m.inputLabel)
		b.WriteByte('\n')
		b.WriteString(m.input.View())
		b.WriteByte('\n')
	case modeConfirmDelete:
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Delete entry %d? (y/n, Esc to cancel)", m.editingIndex+1))
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpLine(m.keys.Prev, m.keys.Next, m.keys.Down, m.keys.Up, m.keys.Today, m.keys.Reload)))
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render(helpLine(m.keys.Edit, m.keys.Time, m.keys.Delete, m.keys.Details, m.keys.Quit)))
	b.WriteByte('\n')

	return b.String()
}

// detailsView lists the values recorded with entry, sorted by field name.
func (m Model) detailsView(entry logbook.Entry) string {
	if len(entry.Details) == 0 {
		return "\n" + helpStyle.Render("(no recorded values)") + "\n"
	}
	names := make([]string, 0, len(entry.Details))
	width := 0
	for name := range entry.Details {
		names = append(names, name)
		if len(name) > width {
			width = len(name)
		}
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-*s", width, name)), entry.Details[name])
	}
	return "\n" + previewStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n"
}

// FormatEntry renders one log line as "[HH:MM] Item: comment".
func FormatEntry(entry logbook.Entry) string {
	var b strings.Builder
	b.Grow(16 + len(entry.Item) + len(entry.Text))
	fmt.Fprintf(&b, "[%s] %s", entry.Time.Format("15:04"), entry.Item)
	if entry.Text != "" {
		b.WriteString(": ")
		b.WriteString(strings.ReplaceAll(entry.Text, "\n", " / "))
	}
	return b.String()
}

func parseClock(value string, base time.Time) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("time cannot be empty")
	}
	parsed, err := time.ParseInLocation("15:04", value, base.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (expected HH:MM)", value)
	}
	return time.Date(base.Year(), base.Month(), base.Day(), parsed.Hour(), parsed.Minute(), 0, 0, base.Location()), nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func plural(count int) string {
	if count == 1 {
		return "y"
	}
	return "ies"
}
