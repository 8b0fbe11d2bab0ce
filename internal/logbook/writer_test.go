package logbook

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/faizmokh/hadbit/internal/store"
	"github.com/faizmokh/hadbit/internal/template"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "hadbit.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// runningItem creates a category and an item carrying the running preset.
func runningItem(t *testing.T, s *store.Store) (store.Item, store.Item) {
	t.Helper()
	ctx := context.Background()

	cat, err := s.CreateItem(ctx, store.Item{Name: "Sport"})
	if err != nil {
		t.Fatalf("CreateItem category: %v", err)
	}

	tmpl := template.New()
	if err := template.NewEditor(&tmpl).LoadPreset("running"); err != nil {
		t.Fatalf("LoadPreset: %v", err)
	}
	doc, err := template.Encode(tmpl)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	item, err := s.CreateItem(ctx, store.Item{ParentID: cat.ID, Name: "Running", Style: doc})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	return cat, item
}

func TestWriterRecordRendersComment(t *testing.T) {
	s := openStore(t)
	_, item := runningItem(t, s)
	writer := NewWriter(s, nil)

	at := time.Date(2025, time.November, 2, 7, 30, 0, 0, time.UTC)
	entry, err := writer.Record(context.Background(), item, map[string]string{
		"distance": "5",
		"duration": "30",
		"memo":     "  ",
	}, at, "")
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if entry.Text != "5Km[30分]" {
		t.Fatalf("entry text = %q, want %q", entry.Text, "5Km[30分]")
	}
	if memo, ok := entry.Details["memo"]; !ok || memo != "  " {
		t.Fatalf("memo not kept as typed: %#v", entry.Details)
	}

	section, err := NewReader(s, nil).Section(context.Background(), at)
	if err != nil {
		t.Fatalf("Section: %v", err)
	}
	if len(section.Entries) != 1 || section.Entries[0].Text != "5Km[30分]" {
		t.Fatalf("section entries = %#v", section.Entries)
	}
	want := map[string]string{"distance": "5", "duration": "30", "memo": "  "}
	if got := section.Entries[0].Details; len(got) != len(want) || got["distance"] != "5" || got["memo"] != "  " {
		t.Fatalf("details = %#v, want %#v", got, want)
	}
}

func TestWriterRecordOverrideAndPlainItems(t *testing.T) {
	s := openStore(t)
	_, item := runningItem(t, s)
	writer := NewWriter(s, nil)
	ctx := context.Background()
	at := time.Date(2025, time.November, 3, 8, 0, 0, 0, time.UTC)

	entry, err := writer.Record(ctx, item, map[string]string{"distance": "10"}, at, " Long run ")
	if err != nil {
		t.Fatalf("Record override: %v", err)
	}
	if entry.Text != "Long run" {
		t.Fatalf("override text = %q, want %q", entry.Text, "Long run")
	}
	if entry.Details["distance"] != "10" {
		t.Fatalf("override lost details: %#v", entry.Details)
	}

	plain, err := s.CreateItem(ctx, store.Item{ParentID: item.ParentID, Name: "Stretch"})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	entry, err = writer.Record(ctx, plain, nil, at, "")
	if err != nil {
		t.Fatalf("Record plain: %v", err)
	}
	if entry.Text != "" || entry.Details != nil {
		t.Fatalf("plain entry = %#v, want empty text and details", entry)
	}
}

func TestWriterEditAndDelete(t *testing.T) {
	s := openStore(t)
	_, item := runningItem(t, s)
	writer := NewWriter(s, nil)
	ctx := context.Background()

	date := time.Date(2025, time.November, 4, 0, 0, 0, 0, time.UTC)
	for _, hour := range []int{6, 18} {
		if _, err := writer.Record(ctx, item, map[string]string{"distance": "3"}, date.Add(time.Duration(hour)*time.Hour), ""); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	edited, err := writer.Edit(ctx, date, 2, time.Time{}, "Evening jog")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if edited.Text != "Evening jog" || edited.Time.Hour() != 18 {
		t.Fatalf("edited entry = %#v", edited)
	}

	removed, err := writer.Delete(ctx, date, 1)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if removed.Time.Hour() != 6 {
		t.Fatalf("removed wrong entry: %#v", removed)
	}

	section, err := NewReader(s, nil).Section(ctx, date)
	if err != nil {
		t.Fatalf("Section: %v", err)
	}
	if len(section.Entries) != 1 || section.Entries[0].Text != "Evening jog" {
		t.Fatalf("section after edit/delete = %#v", section.Entries)
	}

	if _, err := writer.Delete(ctx, date, 5); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("Delete out of range err = %v, want ErrInvalidIndex", err)
	}
	if _, err := writer.Edit(ctx, date.AddDate(0, 0, 1), 1, time.Time{}, "x"); !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("Edit missing day err = %v, want ErrSectionNotFound", err)
	}
}

func TestComposeWithoutTemplate(t *testing.T) {
	if got := Compose(template.New(), map[string]string{"distance": "5"}); got != "" {
		t.Fatalf("Compose = %q, want empty", got)
	}
}
