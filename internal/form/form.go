// Package form lays out the value-entry form generated from a template and
// holds the values a log entry captures through it.
package form

import (
	"github.com/faizmokh/hadbit/internal/template"
)

// Control describes one text-entry control of the generated form.
type Control struct {
	Field       template.Field
	Name        string
	Label       string
	Placeholder string
	Prefix      string
	Suffix      string
	// Width is the display width in em units.
	Width int
	// Numeric controls offer the calculator overlay.
	Numeric bool
}

// Layout returns one control per template field, in field order. Types the
// form does not know about become plain text controls.
func Layout(t template.Template) []Control {
	controls := make([]Control, 0, len(t.Fields))
	for _, f := range t.Fields {
		controls = append(controls, Control{
			Field:       f,
			Name:        f.Name,
			Label:       f.Label,
			Placeholder: f.Placeholder,
			Prefix:      f.Prefix,
			Suffix:      f.Suffix,
			Width:       f.DisplayWidth(),
			Numeric:     f.Type.IsNumeric(),
		})
	}
	return controls
}

// Values maps field names to the free-form text typed for them.
type Values map[string]string

// Set returns a copy of v with name set to value. Other entries are untouched.
func (v Values) Set(name, value string) Values {
	out := make(Values, len(v)+1)
	for k, val := range v {
		out[k] = val
	}
	out[name] = value
	return out
}

// Get returns the value for name, or "" when absent.
func (v Values) Get(name string) string {
	return v[name]
}

// Preview renders the text the values produce under t.
func Preview(t template.Template, v Values) string {
	return template.Render(t, v)
}
