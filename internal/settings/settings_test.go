package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFallsBackToDefault(t *testing.T) {
	for name, store := range map[string]Store{
		"memory": NewMemory(),
		"file":   NewFile(filepath.Join(t.TempDir(), "settings.yaml")),
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, "3", Load(store, KeyPeriodMonths, "3"))

			require.NoError(t, Save(store, KeyPeriodMonths, "12"))
			assert.Equal(t, "12", Load(store, KeyPeriodMonths, "3"))
		})
	}
}

func TestFilePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	require.NoError(t, NewFile(path).Set(KeyPeriodMonths, "6"))

	again := NewFile(path)
	v, ok := again.Get(KeyPeriodMonths)
	require.True(t, ok)
	assert.Equal(t, "6", v)

	_, ok = again.Get("missing")
	assert.False(t, ok)
}

func TestFileCorruptContentsReadAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analytics: [unclosed\n"), 0o644))

	store := NewFile(path)
	assert.Equal(t, "1", Load(store, KeyPeriodMonths, "1"))
	assert.Error(t, store.Set(KeyPeriodMonths, "2"))
}

func TestToggleID(t *testing.T) {
	store := NewMemory()

	ids, err := ToggleID(store, KeyExcludedCategories, 4)
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, ids)

	ids, err = ToggleID(store, KeyExcludedCategories, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4}, ids)

	ids, err = ToggleID(store, KeyExcludedCategories, 4)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids)

	require.NoError(t, store.Set(KeyExcludedCategories, "7, x, 9"))
	assert.Equal(t, []int64{7, 9}, LoadIDs(store, KeyExcludedCategories))
}

func TestPeriodMonths(t *testing.T) {
	assert.Equal(t, DefaultPeriodMonths, PeriodMonths(nil))

	store := NewMemory()
	assert.Equal(t, DefaultPeriodMonths, PeriodMonths(store))

	require.NoError(t, store.Set(KeyPeriodMonths, "12"))
	assert.Equal(t, 12, PeriodMonths(store))

	require.NoError(t, store.Set(KeyPeriodMonths, "0"))
	assert.Equal(t, DefaultPeriodMonths, PeriodMonths(store))

	require.NoError(t, store.Set(KeyPeriodMonths, "soon"))
	assert.Equal(t, DefaultPeriodMonths, PeriodMonths(store))
}
