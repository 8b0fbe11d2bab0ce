// Package template implements custom log-entry templates: a typed field
// schema, the editing operations over it, the result format regenerator and
// the compositor that turns captured values into a log comment.
package template
