package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type browserKeyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Up     key.Binding
	Down   key.Binding
	Today  key.Binding
	Reload key.Binding
	Edit   key.Binding
	Time   key.Binding
	Delete  key.Binding
	Details key.Binding
	Quit    key.Binding
}

func newBrowserKeyMap() browserKeyMap {
	return browserKeyMap{
		Prev:   key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←/h", "prev day")),
		Next:   key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→/l", "next day")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j", "down")),
		Today:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit comment")),
		Time:   key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "set time")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Details: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "values")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Keypad key.Binding
	Save   key.Binding
	Cancel key.Binding
}

func newFormKeyMap() formKeyMap {
	return formKeyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Keypad: key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "keypad")),
		Save:   key.NewBinding(key.WithKeys("enter", "ctrl+s"), key.WithHelp("enter", "record")),
		Cancel: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
	}
}

type keypadKeyMap struct {
	Clear key.Binding
	Close key.Binding
}

func newKeypadKeyMap() keypadKeyMap {
	return keypadKeyMap{
		Clear: key.NewBinding(key.WithKeys("c", "backspace"), key.WithHelp("c", "clear")),
		Close: key.NewBinding(key.WithKeys("enter", "esc", "ctrl+k"), key.WithHelp("enter", "done")),
	}
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}
