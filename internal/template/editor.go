package template

import (
	"fmt"
	"strconv"
)

// DefaultFieldLabel is the caption given to fields created with AddField.
const DefaultFieldLabel = "新規項目"

// AddField appends a new field with a fresh ID and default attributes.
func AddField(fields []Field) []Field {
	out := make([]Field, 0, len(fields)+1)
	out = append(out, fields...)
	return append(out, Field{
		ID:          newFieldID(),
		Name:        fmt.Sprintf("input%d", len(fields)+1),
		Label:       DefaultFieldLabel,
		Type:        TypeString,
		Width:       WidthNormal,
		HideIfEmpty: true,
	})
}

// RemoveField drops the field at index. Remaining fields keep their names and IDs.
func RemoveField(fields []Field, index int) ([]Field, error) {
	if index < 0 || index >= len(fields) {
		return nil, ErrInvalidIndex
	}
	out := make([]Field, 0, len(fields)-1)
	out = append(out, fields[:index]...)
	return append(out, fields[index+1:]...), nil
}

// UpdateField replaces one attribute of the field at index.
func UpdateField(fields []Field, index int, key FieldKey, value string) ([]Field, error) {
	if index < 0 || index >= len(fields) {
		return nil, ErrInvalidIndex
	}

	f := fields[index]
	switch key {
	case KeyName:
		f.Name = value
	case KeyLabel:
		f.Label = value
	case KeyType:
		f.Type = FieldType(value)
	case KeyWidth:
		f.Width = FieldWidth(value)
	case KeyPlaceholder:
		f.Placeholder = value
	case KeyPrefix:
		f.Prefix = value
	case KeySuffix:
		f.Suffix = value
	case KeyHideIfEmpty:
		hide, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%w: hide_if_empty %q", ErrInvalidValue, value)
		}
		f.HideIfEmpty = hide
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	out := cloneFields(fields)
	out[index] = f
	return out, nil
}

// ReorderField moves the field at from to position to, shifting the fields in between.
func ReorderField(fields []Field, from, to int) ([]Field, error) {
	if from < 0 || from >= len(fields) || to < 0 || to >= len(fields) {
		return nil, ErrInvalidIndex
	}
	out := cloneFields(fields)
	if from == to {
		return out, nil
	}
	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out, nil
}

// Editor applies field operations to a template and keeps its result format
// in step with structural changes.
type Editor struct {
	tmpl *Template
}

// NewEditor wraps tmpl. The editor mutates the template in place.
func NewEditor(tmpl *Template) *Editor {
	if tmpl.Fields == nil {
		tmpl.Fields = []Field{}
	}
	return &Editor{tmpl: tmpl}
}

// Template returns the template being edited.
func (e *Editor) Template() *Template {
	return e.tmpl
}

// Add appends a default field and returns its index.
func (e *Editor) Add() int {
	e.setFields(AddField(e.tmpl.Fields))
	return len(e.tmpl.Fields) - 1
}

// Remove deletes the field at index.
func (e *Editor) Remove(index int) error {
	fields, err := RemoveField(e.tmpl.Fields, index)
	if err != nil {
		return err
	}
	e.setFields(fields)
	return nil
}

// Move relocates the field at from to position to.
func (e *Editor) Move(from, to int) error {
	fields, err := ReorderField(e.tmpl.Fields, from, to)
	if err != nil {
		return err
	}
	e.setFields(fields)
	return nil
}

// Update sets one attribute of a field. The result format is left alone.
func (e *Editor) Update(index int, key FieldKey, value string) error {
	fields, err := UpdateField(e.tmpl.Fields, index, key, value)
	if err != nil {
		return err
	}
	e.tmpl.Fields = fields
	return nil
}

// LoadPreset fills an empty template with the fields of the named preset.
func (e *Editor) LoadPreset(name string) error {
	if len(e.tmpl.Fields) > 0 {
		return ErrTemplateNotEmpty
	}
	fields, err := LoadPreset(name)
	if err != nil {
		return err
	}
	e.setFields(fields)
	return nil
}

// SetFormat stores a hand-authored result format. The next structural edit
// regenerates it.
func (e *Editor) SetFormat(format string) {
	e.tmpl.Config.ResultFormat = format
}

// SetStyle replaces the cosmetic style.
func (e *Editor) SetStyle(style Style) {
	e.tmpl.Style = style
}

func (e *Editor) setFields(fields []Field) {
	e.tmpl.Fields = fields
	e.tmpl.Config.ResultFormat = RegenerateFormat(fields)
}
