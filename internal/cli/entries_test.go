package cli

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/faizmokh/hadbit/internal/logbook"
	"github.com/faizmokh/hadbit/internal/store"
	"github.com/faizmokh/hadbit/internal/template"
)

// seedRunning stores a Sport category holding a Running item with the
// running preset.
func seedRunning(t *testing.T, a *app) (store.Item, store.Item) {
	t.Helper()
	ctx := context.Background()

	cat, err := a.store.CreateItem(ctx, store.Item{Name: "Sport"})
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

	item, err := a.store.CreateItem(ctx, store.Item{ParentID: cat.ID, Name: "Running", ShortName: "Run", Style: doc})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	return cat, item
}

func seedLog(t *testing.T, a *app, item store.Item, at time.Time, values map[string]string, comment string) {
	t.Helper()
	if _, err := a.writer().Record(context.Background(), item, values, at, comment); err != nil {
		t.Fatalf("Record: %v", err)
	}
}

func TestLogCommandRendersTemplate(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	_, item := seedRunning(t, a)

	out := executeCommand(t, newLogCommand(ctx, a),
		"--date", "2025-11-20", "--time", "07:05",
		"Running", "distance=10", "duration=55", "memo=river loop")
	assertContains(t, out, "Logged [07:05] Running: 10Km[55分] river loop")

	section, err := a.reader().Section(ctx, mustParseDate(t, "2025-11-20"))
	if err != nil {
		t.Fatalf("Section: %v", err)
	}
	if len(section.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(section.Entries))
	}
	entry := section.Entries[0]
	if entry.ItemID != item.ID {
		t.Fatalf("unexpected item id %d", entry.ItemID)
	}
	if entry.Details["memo"] != "river loop" || entry.Details["distance"] != "10" {
		t.Fatalf("unexpected details: %#v", entry.Details)
	}
}

func TestLogCommandCommentOverridesTemplate(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	seedRunning(t, a)

	out := executeCommand(t, newLogCommand(ctx, a),
		"--date", "2025-11-20", "--time", "19:00", "--comment", "Skipped, rain", "Run", "distance=0")
	assertContains(t, out, "Logged [19:00] Running: Skipped, rain")
}

func TestLogCommandRejectsCategory(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	seedRunning(t, a)

	err := executeCommandErr(t, newLogCommand(ctx, a), "Sport")
	if !errors.Is(err, errCategory) {
		t.Fatalf("expected errCategory, got %v", err)
	}
}

func TestLogCommandRejectsMalformedValue(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	seedRunning(t, a)

	err := executeCommandErr(t, newLogCommand(ctx, a), "Running", "distance")
	if !strings.Contains(err.Error(), "expected name=value") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLogCommandUnknownItem(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	seedRunning(t, a)

	err := executeCommandErr(t, newLogCommand(ctx, a), "Swimming")
	if !errors.Is(err, store.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestEditCommandUpdatesFields(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	_, item := seedRunning(t, a)
	date := mustParseDate(t, "2025-11-20")
	seedLog(t, a, item, date.Add(7*time.Hour), map[string]string{"distance": "5"}, "")

	out := executeCommand(t, newEditCommand(ctx, a), "--date", "2025-11-20", "--time", "08:10", "1")
	assertContains(t, out, "Updated entry 1: [08:10] Running: 5Km")

	out = executeCommand(t, newEditCommand(ctx, a), "--date", "2025-11-20", "1", "Tempo", "run")
	assertContains(t, out, "Updated entry 1: [08:10] Running: Tempo run")
}

func TestEditCommandRequiresChange(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	_, item := seedRunning(t, a)
	date := mustParseDate(t, "2025-11-20")
	seedLog(t, a, item, date.Add(7*time.Hour), nil, "Short run")

	err := executeCommandErr(t, newEditCommand(ctx, a), "--date", "2025-11-20", "1")
	if !strings.Contains(err.Error(), "nothing to change") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEditCommandInvalidIndex(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	_, item := seedRunning(t, a)
	date := mustParseDate(t, "2025-11-20")
	seedLog(t, a, item, date.Add(7*time.Hour), nil, "Short run")

	err := executeCommandErr(t, newEditCommand(ctx, a), "--date", "2025-11-20", "3", "x")
	if !errors.Is(err, logbook.ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex, got %v", err)
	}
}

func TestDeleteCommandRemovesEntry(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	_, item := seedRunning(t, a)
	date := mustParseDate(t, "2025-11-20")
	seedLog(t, a, item, date.Add(7*time.Hour), nil, "Morning")
	seedLog(t, a, item, date.Add(19*time.Hour), nil, "Evening")

	out := executeCommand(t, newDeleteCommand(ctx, a), "--date", "2025-11-20", "1")
	assertContains(t, out, "Deleted entry 1: [07:00] Running: Morning")

	section, err := a.reader().Section(ctx, date)
	if err != nil {
		t.Fatalf("Section: %v", err)
	}
	if len(section.Entries) != 1 || section.Entries[0].Text != "Evening" {
		t.Fatalf("unexpected remaining entries: %#v", section.Entries)
	}
}

func TestDeleteCommandMissingSection(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	seedRunning(t, a)

	err := executeCommandErr(t, newDeleteCommand(ctx, a), "--date", "2025-11-20", "1")
	if !errors.Is(err, logbook.ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
}
