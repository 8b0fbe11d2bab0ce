package template

import "errors"

// ErrInvalidIndex indicates the caller referenced a field position outside the collection.
var ErrInvalidIndex = errors.New("field index out of range")

// ErrUnknownKey is returned when an update targets an attribute a Field does not have.
var ErrUnknownKey = errors.New("unknown field attribute")

// ErrInvalidValue is returned when an attribute value cannot be converted to its type.
var ErrInvalidValue = errors.New("invalid field attribute value")

// ErrUnknownPreset is returned when LoadPreset is asked for a preset that does not exist.
var ErrUnknownPreset = errors.New("unknown template preset")

// ErrTemplateNotEmpty is returned when a preset is loaded into a template that already has fields.
var ErrTemplateNotEmpty = errors.New("template already has fields")
