package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/faizmokh/hadbit/internal/store"
	"github.com/faizmokh/hadbit/internal/template"
)

func loadStored(t *testing.T, a *app, id int64) template.Template {
	t.Helper()
	doc, err := a.store.LoadStyle(context.Background(), id)
	if err != nil {
		t.Fatalf("LoadStyle: %v", err)
	}
	tmpl, ok := template.Decode(doc)
	if !ok {
		t.Fatalf("Decode(%q) failed", doc)
	}
	return tmpl
}

func TestTemplatePresetList(t *testing.T) {
	a := newTestApp(t)
	out := executeCommand(t, newTemplateCommand(context.Background(), a), "preset")
	assertContains(t, out, "running")
	assertContains(t, out, "training")
	assertContains(t, out, "reading")
}

func TestTemplateShowEmptyItem(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	if _, err := a.store.CreateItem(ctx, store.Item{Name: "Diary"}); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	out := executeCommand(t, newTemplateCommand(ctx, a), "show", "Diary")
	assertContains(t, out, "Diary")
	assertContains(t, out, "(no fields)")
}

func TestTemplateShowJSON(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	_, item := seedRunning(t, a)

	out := executeCommand(t, newTemplateCommand(ctx, a), "show", "--json", "Running")
	tmpl, ok := template.Decode(strings.TrimSpace(out))
	if !ok {
		t.Fatalf("Decode failed for %q", out)
	}
	if len(tmpl.Fields) != 3 || tmpl.Fields[0].Name != "distance" {
		t.Fatalf("unexpected fields: %#v", tmpl.Fields)
	}
	if stored := loadStored(t, a, item.ID); stored.Config.ResultFormat != tmpl.Config.ResultFormat {
		t.Fatalf("format mismatch: %q vs %q", stored.Config.ResultFormat, tmpl.Config.ResultFormat)
	}
}

func TestTemplateSetKeepsFormat(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	_, item := seedRunning(t, a)

	out := executeCommand(t, newTemplateCommand(ctx, a), "set", "Running", "1", "name", "km")
	assertContains(t, out, `Set name of field 1 to "km"`)

	tmpl := loadStored(t, a, item.ID)
	if tmpl.Fields[0].Name != "km" {
		t.Fatalf("name not updated: %#v", tmpl.Fields[0])
	}
	if tmpl.Config.ResultFormat != "{distance}{duration}{memo}" {
		t.Fatalf("format changed: %q", tmpl.Config.ResultFormat)
	}

	out = executeCommand(t, newTemplateCommand(ctx, a), "set", "Running", "3", "hide-if-empty", "false")
	assertContains(t, out, "Set hide_if_empty of field 3")
	if loadStored(t, a, item.ID).Fields[2].HideIfEmpty {
		t.Fatalf("hide_if_empty not updated")
	}
}

func TestTemplateSetRejectsBadValue(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	_, item := seedRunning(t, a)

	err := executeCommandErr(t, newTemplateCommand(ctx, a), "set", "Running", "1", "hide_if_empty", "maybe")
	if !errors.Is(err, template.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if loadStored(t, a, item.ID).Fields[0].Name != "distance" {
		t.Fatalf("failed edit must not be saved")
	}
}

func TestTemplateMoveAndRemoveRegenerateFormat(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	_, item := seedRunning(t, a)

	out := executeCommand(t, newTemplateCommand(ctx, a), "move", "Running", "3", "1")
	assertContains(t, out, "Moved field 3 to 1")
	assertContains(t, out, `format "{memo}{distance}{duration}"`)

	out = executeCommand(t, newTemplateCommand(ctx, a), "rm-field", "Running", "1")
	assertContains(t, out, "Removed field 1")
	assertContains(t, out, "2 fields")

	tmpl := loadStored(t, a, item.ID)
	if tmpl.Config.ResultFormat != "{distance}{duration}" {
		t.Fatalf("unexpected format: %q", tmpl.Config.ResultFormat)
	}

	err := executeCommandErr(t, newTemplateCommand(ctx, a), "rm-field", "Running", "5")
	if !errors.Is(err, template.ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex, got %v", err)
	}
}

func TestTemplateFormatAndPreview(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	seedRunning(t, a)

	out := executeCommand(t, newTemplateCommand(ctx, a), "format", "Running", `{distance}\n{duration}{memo}`)
	assertContains(t, out, `format "{distance}\n{duration}{memo}"`)

	out = executeCommand(t, newTemplateCommand(ctx, a), "preview", "Running", "duration=40", "speed=fast")
	assertContains(t, out, "warning: speed is not a field of this template")
	assertContains(t, out, "[40分]")
	assertNotContains(t, out, "Km")

	out = executeCommand(t, newTemplateCommand(ctx, a), "format", "--regenerate", "Running")
	assertContains(t, out, `format "{distance}{duration}{memo}"`)

	err := executeCommandErr(t, newTemplateCommand(ctx, a), "format", "Running")
	if !strings.Contains(err.Error(), "either a format or --regenerate") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTemplateStyle(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	_, item := seedRunning(t, a)

	executeCommand(t, newTemplateCommand(ctx, a), "style", "Running", "--icon", "Footprints", "--color", "#1273DE")
	tmpl := loadStored(t, a, item.ID)
	if tmpl.Style.Icon != "Footprints" || tmpl.Style.Color != "#1273DE" {
		t.Fatalf("unexpected style: %#v", tmpl.Style)
	}

	err := executeCommandErr(t, newTemplateCommand(ctx, a), "style", "Running", "--icon", "Rocket")
	if !strings.Contains(err.Error(), `unknown icon "Rocket"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTemplateAddFieldWarnsOnDuplicates(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	seedRunning(t, a)

	out := executeCommand(t, newTemplateCommand(ctx, a), "add-field", "Running", "--name", "memo")
	assertContains(t, out, "Added field 4 (memo)")
	assertContains(t, out, "warning: duplicate field names memo")
}

func TestTemplatePresetRefusesConfiguredTemplate(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	_, item := seedRunning(t, a)
	executeCommand(t, newTemplateCommand(ctx, a), "format", "Running", "{distance} in {duration}")

	err := executeCommandErr(t, newTemplateCommand(ctx, a), "preset", "Running", "reading")
	if !errors.Is(err, template.ErrTemplateNotEmpty) {
		t.Fatalf("expected ErrTemplateNotEmpty, got %v", err)
	}

	tmpl := loadStored(t, a, item.ID)
	if len(tmpl.Fields) != 3 || tmpl.Fields[0].Name != "distance" {
		t.Fatalf("fields replaced: %#v", tmpl.Fields)
	}
	if tmpl.Config.ResultFormat != "{distance} in {duration}" {
		t.Fatalf("format replaced: %q", tmpl.Config.ResultFormat)
	}
}
