package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndListItems(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	sport, err := s.CreateItem(ctx, Item{Name: "Sport"})
	require.NoError(t, err)
	assert.True(t, sport.IsCategory())

	run, err := s.CreateItem(ctx, Item{ParentID: sport.ID, Name: "Running", ShortName: "run"})
	require.NoError(t, err)
	swim, err := s.CreateItem(ctx, Item{ParentID: sport.ID, Name: "Swimming"})
	require.NoError(t, err)
	assert.Equal(t, 0, run.Order)
	assert.Equal(t, 1, swim.Order)

	items, err := s.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Sport", items[0].Name)
	assert.Equal(t, "Running", items[1].Name)
	assert.Equal(t, sport.ID, items[1].ParentID)
	assert.Equal(t, "run", items[1].ShortName)

	got, err := s.Item(ctx, swim.ID)
	require.NoError(t, err)
	assert.Equal(t, swim, got)

	_, err = s.Item(ctx, 999)
	assert.True(t, errors.Is(err, ErrItemNotFound))
}

func TestStyleDocument(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	item, err := s.CreateItem(ctx, Item{Name: "Reading"})
	require.NoError(t, err)

	doc, err := s.LoadStyle(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "", doc)

	const stored = `{"style":{"icon":"BookOpen","color":"#1273DE"},"config":{"result_format":"{title}"},"fields":[]}`
	require.NoError(t, s.SaveStyle(ctx, item.ID, stored))

	doc, err = s.LoadStyle(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, stored, doc)

	assert.ErrorIs(t, s.SaveStyle(ctx, 404, stored), ErrItemNotFound)
	_, err = s.LoadStyle(ctx, 404)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestLogsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	cat, err := s.CreateItem(ctx, Item{Name: "Sport"})
	require.NoError(t, err)
	item, err := s.CreateItem(ctx, Item{ParentID: cat.ID, Name: "Running"})
	require.NoError(t, err)

	day := time.Date(2025, time.November, 2, 0, 0, 0, 0, time.UTC)
	first, err := s.CreateLog(ctx, Log{
		ItemID:  item.ID,
		DoneAt:  day.Add(7 * time.Hour),
		Comment: "5Km",
		Details: map[string]string{"distance": "5"},
	})
	require.NoError(t, err)
	_, err = s.CreateLog(ctx, Log{ItemID: item.ID, DoneAt: day.Add(20 * time.Hour)})
	require.NoError(t, err)
	_, err = s.CreateLog(ctx, Log{ItemID: item.ID, DoneAt: day.Add(30 * time.Hour)})
	require.NoError(t, err)

	logs, err := s.LogsBetween(ctx, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, logs, 2)

	assert.Equal(t, first.ID, logs[0].ID)
	assert.Equal(t, "5Km", logs[0].Comment)
	assert.Equal(t, map[string]string{"distance": "5"}, logs[0].Details)
	assert.Equal(t, "Running", logs[0].ItemName)
	assert.Equal(t, cat.ID, logs[0].CategoryID)
	assert.True(t, logs[0].DoneAt.Equal(day.Add(7*time.Hour)))
	assert.Equal(t, "", logs[1].Comment)
	assert.Nil(t, logs[1].Details)

	require.NoError(t, s.UpdateLog(ctx, first.ID, day.Add(8*time.Hour), "6Km"))
	require.NoError(t, s.DeleteLog(ctx, logs[1].ID))

	logs, err = s.LogsBetween(ctx, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "6Km", logs[0].Comment)

	assert.ErrorIs(t, s.DeleteLog(ctx, 12345), ErrLogNotFound)
	assert.ErrorIs(t, s.UpdateLog(ctx, 12345, day, ""), ErrLogNotFound)
}

func TestCreateLogRequiresItem(t *testing.T) {
	s := openTestStore(t)

	_, err := s.CreateLog(context.Background(), Log{ItemID: 77, DoneAt: time.Now()})
	assert.Error(t, err)
}
