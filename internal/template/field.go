package template

import "github.com/google/uuid"

// FieldType selects how a field is presented. Values are always stored as text.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeInteger FieldType = "integer"
	TypeText    FieldType = "text"
	TypeReal    FieldType = "real"
	// TypeNumber is accepted from older documents as a numeric alias.
	TypeNumber FieldType = "number"
)

// IsNumeric reports whether the type gets the calculator affordance.
func (t FieldType) IsNumeric() bool {
	switch t {
	case TypeInteger, TypeNumber, TypeReal:
		return true
	default:
		return false
	}
}

// FieldWidth is the coarse display width of a field's input control.
type FieldWidth string

const (
	WidthSmall  FieldWidth = "small"
	WidthNormal FieldWidth = "normal"
	WidthBig    FieldWidth = "big"
)

// Em returns the base width in em units. Unknown widths are treated as normal.
func (w FieldWidth) Em() int {
	switch w {
	case WidthSmall:
		return 4
	case WidthBig:
		return 12
	default:
		return 8
	}
}

// Field is one configurable input slot of a Template.
type Field struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Label       string     `json:"label"`
	Type        FieldType  `json:"type"`
	Width       FieldWidth `json:"width"`
	Placeholder string     `json:"placeholder"`
	Prefix      string     `json:"prefix"`
	Suffix      string     `json:"suffix"`
	HideIfEmpty bool       `json:"hide_if_empty"`
}

// Token is the placeholder text that stands for the field in a result format.
func (f Field) Token() string {
	return "{" + f.Name + "}"
}

// DisplayWidth is the control width in em, including the numeric bonus.
func (f Field) DisplayWidth() int {
	width := f.Width.Em()
	if f.Type.IsNumeric() {
		width += 2
	}
	return width
}

// FieldKey names an editable attribute of a Field.
type FieldKey string

const (
	KeyName        FieldKey = "name"
	KeyLabel       FieldKey = "label"
	KeyType        FieldKey = "type"
	KeyWidth       FieldKey = "width"
	KeyPlaceholder FieldKey = "placeholder"
	KeyPrefix      FieldKey = "prefix"
	KeySuffix      FieldKey = "suffix"
	KeyHideIfEmpty FieldKey = "hide_if_empty"
)

func newFieldID() string {
	return uuid.NewString()
}
