package logbook

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/faizmokh/hadbit/internal/store"
	"github.com/faizmokh/hadbit/internal/template"
)

// Writer records, edits, and deletes log entries.
type Writer struct {
	store  *store.Store
	reader *Reader
	logger *zap.Logger
}

// NewWriter wires the dependencies required to manipulate logs.
func NewWriter(s *store.Store, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{store: s, reader: NewReader(s, nil), logger: logger}
}

// Record stores a log of item at the given time. The comment is rendered
// from the item's template and values unless override is non-empty. The
// values are kept verbatim as the log's details snapshot.
func (w *Writer) Record(ctx context.Context, item store.Item, values map[string]string, at time.Time, override string) (Entry, error) {
	if w == nil || w.store == nil {
		return Entry{}, fmt.Errorf("writer not initialized with store")
	}

	text := strings.TrimSpace(override)
	if text == "" {
		text = Compose(template.DecodeOrNew(item.Style), values)
	}

	saved, err := w.store.CreateLog(ctx, store.Log{
		ItemID:  item.ID,
		DoneAt:  at,
		Comment: text,
		Details: snapshot(values),
	})
	if err != nil {
		return Entry{}, err
	}

	w.logger.Debug("log recorded",
		zap.Int64("log", saved.ID),
		zap.Int64("item", item.ID),
		zap.Int("values", len(saved.Details)))

	return Entry{
		ID:       saved.ID,
		ItemID:   item.ID,
		Item:     item.Name,
		Category: item.ParentID,
		Time:     at,
		Text:     text,
		Details:  saved.Details,
	}, nil
}

// Edit replaces the time and text of the entry at index (1-based) within the
// section of date.
func (w *Writer) Edit(ctx context.Context, date time.Time, index int, at time.Time, text string) (Entry, error) {
	entry, err := w.entryAt(ctx, date, index)
	if err != nil {
		return Entry{}, err
	}
	if at.IsZero() {
		at = entry.Time
	}
	if err := w.store.UpdateLog(ctx, entry.ID, at, text); err != nil {
		return Entry{}, err
	}
	entry.Time = at
	entry.Text = text
	return entry, nil
}

// Delete removes the entry at index (1-based) from the section of date.
func (w *Writer) Delete(ctx context.Context, date time.Time, index int) (Entry, error) {
	entry, err := w.entryAt(ctx, date, index)
	if err != nil {
		return Entry{}, err
	}
	if err := w.store.DeleteLog(ctx, entry.ID); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (w *Writer) entryAt(ctx context.Context, date time.Time, index int) (Entry, error) {
	if w == nil || w.store == nil {
		return Entry{}, fmt.Errorf("writer not initialized with store")
	}
	section, err := w.reader.Section(ctx, date)
	if err != nil {
		return Entry{}, err
	}
	if index < 1 || index > len(section.Entries) {
		return Entry{}, ErrInvalidIndex
	}
	return section.Entries[index-1], nil
}

// Compose renders the comment for values. Items without an enabled template
// get an empty comment.
func Compose(tmpl template.Template, values map[string]string) string {
	if !tmpl.Enabled() {
		return ""
	}
	return template.Render(tmpl, values)
}

// snapshot copies values as typed so later edits by the caller do not leak
// into the stored details. An empty mapping is stored as no details.
func snapshot(values map[string]string) map[string]string {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]string, len(values))
	for name, value := range values {
		out[name] = value
	}
	return out
}
