package cli

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/faizmokh/hadbit/internal/store"
)

func TestPrevCommandShowsPreviousDay(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	_, item := seedRunning(t, a)
	seedLog(t, a, item, mustParseDate(t, "2025-11-19").Add(8*time.Hour), nil, "Hill repeats")
	seedLog(t, a, item, mustParseDate(t, "2025-11-20").Add(8*time.Hour), nil, "Recovery")

	out := executeCommand(t, newPrevCommand(ctx, a), "--date", "2025-11-20")
	assertContains(t, out, "2025-11-19")
	assertContains(t, out, "1. [08:00] Running: Hill repeats")
	assertNotContains(t, out, "Recovery")
}

func TestNextCommandShowsNextDay(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	_, item := seedRunning(t, a)
	seedLog(t, a, item, mustParseDate(t, "2025-11-21").Add(6*time.Hour), nil, "Long run")

	out := executeCommand(t, newNextCommand(ctx, a), "--date", "2025-11-20")
	assertContains(t, out, "2025-11-21")
	assertContains(t, out, "1. [06:00] Running: Long run")
}

func TestJumpCommandWithoutEntries(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	seedRunning(t, a)

	out := executeCommand(t, newJumpCommand(ctx, a), "2025-01-01")
	assertContains(t, out, "No entries for 2025-01-01")
}

func TestTodayCommandPrintsEntries(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	_, item := seedRunning(t, a)
	date := mustParseDate(t, "2025-11-20")
	seedLog(t, a, item, date.Add(18*time.Hour), nil, "Evening")
	seedLog(t, a, item, date.Add(6*time.Hour), map[string]string{"distance": "3", "memo": "line one\nline two"}, "")

	out := executeCommand(t, newTodayCommand(ctx, a), "--date", "2025-11-20")
	assertContains(t, out, "1. [06:00] Running: 3Km line one / line two")
	assertContains(t, out, "2. [18:00] Running: Evening")
}

func TestListCommandAggregatesRange(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	_, item := seedRunning(t, a)
	seedLog(t, a, item, mustParseDate(t, "2025-11-14").Add(7*time.Hour), nil, "Too early")
	seedLog(t, a, item, mustParseDate(t, "2025-11-15").Add(7*time.Hour), nil, "First")
	seedLog(t, a, item, mustParseDate(t, "2025-11-21").Add(7*time.Hour), nil, "Last")

	out := executeCommand(t, newListCommand(ctx, a), "--date", "2025-11-21", "--week")
	assertContains(t, out, "2025-11-15")
	assertContains(t, out, "First")
	assertContains(t, out, "2025-11-21")
	assertContains(t, out, "Last")
	assertNotContains(t, out, "Too early")
}

func TestListCommandFiltersByItemAndCategory(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	sport, running := seedRunning(t, a)
	swim, err := a.store.CreateItem(ctx, store.Item{ParentID: sport.ID, Name: "Swimming"})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	reading, err := a.store.CreateItem(ctx, store.Item{Name: "Hobby"})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	book, err := a.store.CreateItem(ctx, store.Item{ParentID: reading.ID, Name: "Reading"})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	date := mustParseDate(t, "2025-11-20")
	seedLog(t, a, running, date.Add(6*time.Hour), nil, "run log")
	seedLog(t, a, swim, date.Add(12*time.Hour), nil, "swim log")
	seedLog(t, a, book, date.Add(21*time.Hour), nil, "book log")

	out := executeCommand(t, newListCommand(ctx, a), "--date", "2025-11-20", "--item", "Swimming")
	assertContains(t, out, "swim log")
	assertNotContains(t, out, "run log")

	out = executeCommand(t, newListCommand(ctx, a), "--date", "2025-11-20", "--item", "Sport")
	assertContains(t, out, "run log")
	assertContains(t, out, "swim log")
	assertNotContains(t, out, "book log")

	out = executeCommand(t, newListCommand(ctx, a), "--date", "2025-11-22", "--days", "2", "--item", "Sport")
	assertContains(t, out, "No entries between 2025-11-21 and 2025-11-22")
}

func TestSearchCommandMatchesDetails(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	_, item := seedRunning(t, a)
	date := mustParseDate(t, "2025-11-20")
	seedLog(t, a, item, date.Add(6*time.Hour), map[string]string{"distance": "5", "memo": "Riverside"}, "Override text")
	seedLog(t, a, item, date.Add(18*time.Hour), nil, "Treadmill")

	out := executeCommand(t, newSearchCommand(ctx, a), "riverside", "--date", "2025-11-03")
	assertContains(t, out, "2025-11-20 #1 [06:00] Running: Override text")
	assertNotContains(t, out, "Treadmill")
}

func TestSearchCommandCaseSensitive(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	_, item := seedRunning(t, a)
	seedLog(t, a, item, mustParseDate(t, "2025-11-20").Add(6*time.Hour), nil, "Interval session")

	out := executeCommand(t, newSearchCommand(ctx, a), "interval", "--date", "2025-11-20", "--case-sensitive")
	assertContains(t, out, "(no matches)")

	out = executeCommand(t, newSearchCommand(ctx, a), "Interval", "--date", "2025-11-20", "--case-sensitive")
	assertContains(t, out, "Interval session")
}

func TestSearchCommandJSONOutput(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	_, item := seedRunning(t, a)
	seedLog(t, a, item, mustParseDate(t, "2025-11-20").Add(6*time.Hour), map[string]string{"distance": "8"}, "")

	out := executeCommand(t, newSearchCommand(ctx, a), "running", "--date", "2025-11-20", "--json")

	var results []struct {
		Date    string            `json:"date"`
		Index   int               `json:"index"`
		Time    string            `json:"time"`
		Item    string            `json:"item"`
		Comment string            `json:"comment"`
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("json.Unmarshal: %v\n%s", err, out)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	got := results[0]
	if got.Date != "2025-11-20" || got.Index != 1 || got.Time != "06:00" || got.Item != "Running" {
		t.Fatalf("unexpected result: %#v", got)
	}
	if got.Comment != "8Km" || got.Details["distance"] != "8" {
		t.Fatalf("unexpected comment or details: %#v", got)
	}
}

func TestSearchCommandFiltersByItem(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	sport, running := seedRunning(t, a)
	swim, err := a.store.CreateItem(ctx, store.Item{ParentID: sport.ID, Name: "Swimming"})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	date := mustParseDate(t, "2025-11-20")
	seedLog(t, a, running, date.Add(6*time.Hour), nil, "easy pace")
	seedLog(t, a, swim, date.Add(12*time.Hour), nil, "easy laps")

	out := executeCommand(t, newSearchCommand(ctx, a), "easy", "--date", "2025-11-20", "--item", "Swimming")
	assertContains(t, out, "easy laps")
	assertNotContains(t, out, "easy pace")
}
