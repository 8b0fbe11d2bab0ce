// Package session drives one template editing session: load an item's
// template, edit it in memory, then save or discard it.
package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/faizmokh/hadbit/internal/template"
)

// TemplateStore is the persistence collaborator holding template documents.
type TemplateStore interface {
	LoadStyle(ctx context.Context, itemID int64) (string, error)
	SaveStyle(ctx context.Context, itemID int64, doc string) error
}

// State is the position of a session in its lifecycle.
type State uint8

const (
	StateIdle State = iota
	StateLoading
	StatePopulated
	StateEmpty
	StateEditing
	StateSaving
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StatePopulated:
		return "populated"
	case StateEmpty:
		return "empty"
	case StateEditing:
		return "editing"
	case StateSaving:
		return "saving"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// ErrNotOpen is returned when an operation needs a loaded template.
var ErrNotOpen = errors.New("no template session open")

// ErrAlreadyOpen is returned by Open while another template is loaded.
var ErrAlreadyOpen = errors.New("template session already open")

// Session owns the in-memory template of one editing session.
type Session struct {
	store    TemplateStore
	logger   *zap.Logger
	fallback func() template.Template

	state  State
	itemID int64
	tmpl   template.Template
	editor *template.Editor
}

// New returns an idle session. fallback supplies the template used when the
// stored document is absent or unusable; nil means template.New.
func New(store TemplateStore, logger *zap.Logger, fallback func() template.Template) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fallback == nil {
		fallback = template.New
	}
	return &Session{store: store, logger: logger, fallback: fallback}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// ItemID is the item whose template is loaded.
func (s *Session) ItemID() int64 {
	return s.itemID
}

// Template returns a copy of the in-memory template.
func (s *Session) Template() template.Template {
	return s.tmpl.Clone()
}

// Open loads the template of itemID. An unreadable document opens as the
// fallback template instead of failing.
func (s *Session) Open(ctx context.Context, itemID int64) error {
	if s.state != StateIdle {
		return ErrAlreadyOpen
	}
	s.state = StateLoading

	doc, err := s.store.LoadStyle(ctx, itemID)
	if err != nil {
		s.state = StateIdle
		return fmt.Errorf("load template: %w", err)
	}

	tmpl, ok := template.Decode(doc)
	if !ok {
		s.logger.Debug("stored template unusable, using default",
			zap.Int64("item", itemID), zap.Int("bytes", len(doc)))
		tmpl = s.fallback()
	}

	s.itemID = itemID
	s.tmpl = tmpl
	s.editor = template.NewEditor(&s.tmpl)
	if s.tmpl.Enabled() {
		s.state = StatePopulated
	} else {
		s.state = StateEmpty
	}
	return nil
}

// Edit applies fn to the template editor and moves the session to editing.
// A failing fn leaves the session state unchanged.
func (s *Session) Edit(fn func(*template.Editor) error) error {
	if s.editor == nil || s.state == StateIdle || s.state == StateLoading || s.state == StateSaving {
		return ErrNotOpen
	}
	if err := fn(s.editor); err != nil {
		return err
	}
	s.state = StateEditing
	return nil
}

// Save encodes the in-memory template and hands it to the store. On failure
// the session stays in editing with the template intact so the caller can
// retry.
func (s *Session) Save(ctx context.Context) error {
	if s.editor == nil {
		return ErrNotOpen
	}
	prev := s.state
	s.state = StateSaving

	doc, err := template.Encode(s.tmpl)
	if err != nil {
		s.state = prev
		return err
	}
	if err := s.store.SaveStyle(ctx, s.itemID, doc); err != nil {
		s.state = StateEditing
		s.logger.Warn("template save failed", zap.Int64("item", s.itemID), zap.Error(err))
		return fmt.Errorf("save template: %w", err)
	}

	s.logger.Info("template saved",
		zap.Int64("item", s.itemID),
		zap.Int("fields", len(s.tmpl.Fields)))
	s.reset()
	return nil
}

// Cancel discards the in-memory template without saving.
func (s *Session) Cancel() {
	s.reset()
}

func (s *Session) reset() {
	s.state = StateIdle
	s.itemID = 0
	s.tmpl = template.Template{}
	s.editor = nil
}
