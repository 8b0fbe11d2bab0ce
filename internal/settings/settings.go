// Package settings stores small user preferences under string keys.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Well-known keys.
const (
	KeyExcludedCategories = "analytics.excluded_categories"
	KeyPeriodMonths       = "analytics.period_months"
)

// DefaultPeriodMonths is the analytics window used when none is stored.
const DefaultPeriodMonths = 6

// Store is a keyed preference store.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Load returns the stored value for key, or def when absent.
func Load(s Store, key, def string) string {
	if v, ok := s.Get(key); ok {
		return v
	}
	return def
}

// Save writes value under key.
func Save(s Store, key, value string) error {
	return s.Set(key, value)
}

// LoadIDs reads a comma separated id list. Unparseable entries are skipped.
func LoadIDs(s Store, key string) []int64 {
	raw := Load(s, key, "")
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// SaveIDs writes ids as a sorted comma separated list.
func SaveIDs(s Store, key string, ids []int64) error {
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	parts := make([]string, 0, len(sorted))
	for _, id := range sorted {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return s.Set(key, strings.Join(parts, ","))
}

// ToggleID adds id to the list under key, or removes it when present. It
// returns the resulting list.
func ToggleID(s Store, key string, id int64) ([]int64, error) {
	current := LoadIDs(s, key)
	next := make([]int64, 0, len(current)+1)
	found := false
	for _, existing := range current {
		if existing == id {
			found = true
			continue
		}
		next = append(next, existing)
	}
	if !found {
		next = append(next, id)
	}
	if err := SaveIDs(s, key, next); err != nil {
		return nil, err
	}
	return LoadIDs(s, key), nil
}

// PeriodMonths returns the stored analytics window in months. A nil store or
// a missing or non-positive value gives DefaultPeriodMonths.
func PeriodMonths(s Store) int {
	if s == nil {
		return DefaultPeriodMonths
	}
	n, err := strconv.Atoi(strings.TrimSpace(Load(s, KeyPeriodMonths, "")))
	if err != nil || n <= 0 {
		return DefaultPeriodMonths
	}
	return n
}

// Memory is an in-process Store.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// File persists preferences as a flat YAML mapping. Every Set rewrites the file.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile returns a store backed by path. The file is created on first Set.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return "", false
	}
	v, ok := values[key]
	return v, ok
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}
	values[key] = value

	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

func (f *File) read() (map[string]string, error) {
	values := map[string]string{}
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	if values == nil {
		values = map[string]string{}
	}
	return values, nil
}
