package template

// Style is the cosmetic part of a template document.
type Style struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Config holds the result format, a string of literal text and {name} tokens.
type Config struct {
	ResultFormat string `json:"result_format"`
}

// Template is the unit of storage and of an editing session.
type Template struct {
	Style  Style   `json:"style"`
	Config Config  `json:"config"`
	Fields []Field `json:"fields"`
}

const (
	// DefaultIcon is the style icon given to freshly created templates.
	DefaultIcon = "Activity"
	// DefaultColor is the style color given to freshly created templates.
	DefaultColor = "#000000"
)

// New returns the template a user starts from when none is stored.
func New() Template {
	return Template{
		Style:  Style{Icon: DefaultIcon, Color: DefaultColor},
		Config: Config{ResultFormat: ""},
		Fields: []Field{},
	}
}

// Enabled reports whether the template has any fields. Callers treat a
// field-less template as "no template configured".
func (t Template) Enabled() bool {
	return len(t.Fields) > 0
}

// Clone returns a copy that shares no slice storage with t.
func (t Template) Clone() Template {
	out := t
	out.Fields = cloneFields(t.Fields)
	return out
}

// FieldByName returns the last field carrying name, matching Render's
// duplicate policy.
func (t Template) FieldByName(name string) (Field, bool) {
	for i := len(t.Fields) - 1; i >= 0; i-- {
		if t.Fields[i].Name == name {
			return t.Fields[i], true
		}
	}
	return Field{}, false
}

// DuplicateNames lists names used by more than one field, in first-seen order.
func DuplicateNames(fields []Field) []string {
	seen := make(map[string]int, len(fields))
	var dups []string
	for _, f := range fields {
		seen[f.Name]++
		if seen[f.Name] == 2 {
			dups = append(dups, f.Name)
		}
	}
	return dups
}

func cloneFields(fields []Field) []Field {
	if fields == nil {
		return []Field{}
	}
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}
