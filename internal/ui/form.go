package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/faizmokh/hadbit/internal/form"
	"github.com/faizmokh/hadbit/internal/icons"
	"github.com/faizmokh/hadbit/internal/logbook"
	"github.com/faizmokh/hadbit/internal/store"
	"github.com/faizmokh/hadbit/internal/template"
)

// FormModel records one log of an item through the form generated from its
// template. The last input is a free comment that overrides the rendered
// text when filled.
type FormModel struct {
	ctx    context.Context
	writer *logbook.Writer
	item   store.Item
	tmpl   template.Template
	now    func() time.Time

	controls    []form.Control
	inputs      []textinput.Model
	focused     int
	values      form.Values
	showPreview bool

	calc       *form.Calculator
	keys       formKeyMap
	keypadKeys keypadKeyMap

	saving     bool
	recorded   *logbook.Entry
	cancelled  bool
	statusLine string
	errorLine  string
}

type recordResultMsg struct {
	entry logbook.Entry
	err   error
}

// FormOption customises a FormModel.
type FormOption func(*FormModel)

// WithClock overrides the time source used for the recorded timestamp.
func WithClock(now func() time.Time) FormOption {
	return func(m *FormModel) { m.now = now }
}

// WithPreview toggles the live preview pane.
func WithPreview(show bool) FormOption {
	return func(m *FormModel) { m.showPreview = show }
}

// NewFormModel builds the value form for item.
func NewFormModel(ctx context.Context, writer *logbook.Writer, item store.Item, opts ...FormOption) FormModel {
	tmpl := template.DecodeOrNew(item.Style)
	controls := form.Layout(tmpl)

	inputs := make([]textinput.Model, 0, len(controls)+1)
	for _, c := range controls {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = c.Placeholder
		in.Width = c.Width * cellsPerEm
		inputs = append(inputs, in)
	}
	comment := textinput.New()
	comment.Prompt = ""
	comment.Placeholder = "comment (overrides the result)"
	comment.Width = template.WidthBig.Em() * cellsPerEm
	inputs = append(inputs, comment)

	m := FormModel{
		ctx:         ctx,
		writer:      writer,
		item:        item,
		tmpl:        tmpl,
		now:         time.Now,
		controls:    controls,
		inputs:      inputs,
		values:      form.Values{},
		showPreview: true,
		keys:        newFormKeyMap(),
		keypadKeys:  newKeypadKeyMap(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.inputs[0].Focus()
	return m
}

// Init starts the cursor blink of the focused input.
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Recorded returns the saved entry once the form has been submitted.
func (m FormModel) Recorded() (logbook.Entry, bool) {
	if m.recorded == nil {
		return logbook.Entry{}, false
	}
	return *m.recorded, true
}

// Cancelled reports whether the user left without recording.
func (m FormModel) Cancelled() bool {
	return m.cancelled
}

// Values returns a copy of the values typed so far.
func (m FormModel) Values() form.Values {
	out := make(form.Values, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// Update handles key input and the record result.
func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.calc.IsOpen() {
			return m.handleKeypadKey(msg)
		}
		return m.handleKey(msg)
	case recordResultMsg:
		return m.handleRecordResult(msg)
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m FormModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		return m, m.focus(m.focused + 1)
	case key.Matches(msg, m.keys.Prev):
		return m, m.focus(m.focused - 1)
	case key.Matches(msg, m.keys.Save):
		return m.submit()
	case key.Matches(msg, m.keys.Keypad):
		if c, ok := m.focusedControl(); ok && c.Numeric {
			m.calc = form.OpenCalculator(c.Name, m.values.Get(c.Name))
			m.statusLine = ""
			m.errorLine = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	m.syncValue(m.focused)
	return m, cmd
}

func (m FormModel) handleKeypadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keypadKeys.Close):
		m.calc.Close()
		m.calc = nil
		return m, nil
	case key.Matches(msg, m.keypadKeys.Clear):
		m.writeKeypad(m.calc.Clear())
		return m, nil
	}

	if msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			if value, ok := m.calc.Press(r); ok {
				m.writeKeypad(value)
			}
		}
	}
	return m, nil
}

func (m *FormModel) writeKeypad(value string) {
	m.inputs[m.focused].SetValue(value)
	m.inputs[m.focused].CursorEnd()
	m.values = m.values.Set(m.calc.Name(), value)
}

func (m *FormModel) focus(index int) tea.Cmd {
	if index < 0 {
		index = len(m.inputs) - 1
	}
	if index >= len(m.inputs) {
		index = 0
	}
	m.inputs[m.focused].Blur()
	m.focused = index
	return m.inputs[m.focused].Focus()
}

func (m FormModel) focusedControl() (form.Control, bool) {
	if m.focused < len(m.controls) {
		return m.controls[m.focused], true
	}
	return form.Control{}, false
}

func (m *FormModel) syncValue(index int) {
	if index < len(m.controls) {
		m.values = m.values.Set(m.controls[index].Name, m.inputs[index].Value())
	}
}

func (m FormModel) comment() string {
	return strings.TrimSpace(m.inputs[len(m.inputs)-1].Value())
}

func (m FormModel) submit() (tea.Model, tea.Cmd) {
	m.saving = true
	m.statusLine = "Recording..."
	m.errorLine = ""

	writer := m.writer
	ctx := m.ctx
	item := m.item
	values := m.Values()
	at := m.now()
	override := m.comment()
	return m, func() tea.Msg {
		entry, err := writer.Record(ctx, item, values, at, override)
		return recordResultMsg{entry: entry, err: err}
	}
}

func (m FormModel) handleRecordResult(msg recordResultMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Record failed: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}
	entry := msg.entry
	m.recorded = &entry
	m.statusLine = "Recorded."
	return m, tea.Quit
}

// Preview is the text the form would record right now.
func (m FormModel) Preview() string {
	if c := m.comment(); c != "" {
		return c
	}
	return form.Preview(m.tmpl, m.values)
}

// View renders the form.
func (m FormModel) View() string {
	var b strings.Builder

	b.WriteString(icons.Badge(m.tmpl.Style.Icon, m.tmpl.Style.Color))
	b.WriteByte(' ')
	b.WriteString(headerStyle.Render(m.item.Name))
	b.WriteString("\n\n")

	for i, c := range m.controls {
		b.WriteString(m.cursor(i))
		b.WriteString(labelStyle.Render(c.Label))
		b.WriteByte('\n')
		b.WriteString("  ")
		if c.Prefix != "" {
			b.WriteString(affixStyle.Render(c.Prefix))
		}
		b.WriteString(m.inputs[i].View())
		if c.Suffix != "" {
			b.WriteString(affixStyle.Render(c.Suffix))
		}
		if c.Numeric {
			b.WriteString(helpStyle.Render("  ctrl+k"))
		}
		b.WriteByte('\n')
	}

	last := len(m.inputs) - 1
	b.WriteString(m.cursor(last))
	b.WriteString(labelStyle.Render("Comment"))
	b.WriteByte('\n')
	b.WriteString("  ")
	b.WriteString(m.inputs[last].View())
	b.WriteByte('\n')

	if m.calc.IsOpen() {
		b.WriteByte('\n')
		b.WriteString(keypadStyle.Render(m.keypadView()))
		b.WriteByte('\n')
	}

	if m.showPreview {
		b.WriteByte('\n')
		preview := m.Preview()
		if preview == "" {
			preview = helpStyle.Render("(empty)")
		}
		b.WriteString(previewStyle.Render(preview))
		b.WriteByte('\n')
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

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpLine(m.keys.Next, m.keys.Prev, m.keys.Keypad, m.keys.Save, m.keys.Cancel)))
	b.WriteByte('\n')
	return b.String()
}

func (m FormModel) cursor(index int) string {
	if index == m.focused {
		return cursorStyle.Render("> ")
	}
	return "  "
}

func (m FormModel) keypadView() string {
	var b strings.Builder
	display := m.calc.Display()
	if display == "" {
		display = "0"
	}
	b.WriteString(display)
	b.WriteString("\n\n")
	b.WriteString("7 8 9\n4 5 6\n1 2 3\n0 .\n\n")
	b.WriteString(helpLine(m.keypadKeys.Clear, m.keypadKeys.Close))
	return b.String()
}
