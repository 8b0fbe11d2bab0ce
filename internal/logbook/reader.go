package logbook

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/faizmokh/hadbit/internal/settings"
	"github.com/faizmokh/hadbit/internal/store"
)

// Reader loads recorded logs and groups them into day sections.
type Reader struct {
	store *store.Store
	prefs settings.Store
}

// NewReader wires a reader over the log store. prefs may be nil, in which
// case no categories are excluded from counts.
func NewReader(s *store.Store, prefs settings.Store) *Reader {
	return &Reader{store: s, prefs: prefs}
}

// Section returns the DateSection for the provided date.
func (r *Reader) Section(ctx context.Context, date time.Time) (DateSection, error) {
	sections, err := r.SectionsBetween(ctx, date, date)
	if err != nil {
		return DateSection{}, err
	}
	if len(sections) == 0 {
		return DateSection{}, ErrSectionNotFound
	}
	return sections[0], nil
}

// SectionsBetween returns all DateSections that exist between the provided
// start and end dates (inclusive), oldest first. Days without logs are
// skipped silently. Days are taken in start's location.
func (r *Reader) SectionsBetween(ctx context.Context, start, end time.Time) ([]DateSection, error) {
	if r == nil || r.store == nil {
		return nil, errors.New("reader not initialized with store")
	}
	from := startOfDay(start)
	to := startOfDay(end.In(from.Location())).AddDate(0, 0, 1)
	if !to.After(from) {
		return nil, nil
	}

	logs, err := r.store.LogsBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	var sections []DateSection
	for _, l := range logs {
		entry := entryFromLog(l, from.Location())
		day := startOfDay(entry.Time)
		if n := len(sections); n == 0 || !sameDay(sections[n-1].Date, day) {
			sections = append(sections, DateSection{Date: day})
		}
		last := &sections[len(sections)-1]
		last.Entries = append(last.Entries, entry)
	}
	return sections, nil
}

// ItemCount is the number of logs recorded for one item in a period.
type ItemCount struct {
	ItemID int64
	Item   string
	Count  int
}

// Counts tallies logs per item over the analytics period ending at end,
// skipping categories excluded in the preferences. Most logged first.
func (r *Reader) Counts(ctx context.Context, end time.Time) ([]ItemCount, error) {
	months := settings.PeriodMonths(r.prefs)
	start := startOfDay(end).AddDate(0, -months, 1)

	sections, err := r.SectionsBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	excluded := map[int64]bool{}
	if r.prefs != nil {
		for _, id := range settings.LoadIDs(r.prefs, settings.KeyExcludedCategories) {
			excluded[id] = true
		}
	}

	index := map[int64]int{}
	var counts []ItemCount
	for _, section := range sections {
		for _, entry := range section.Entries {
			if excluded[entry.Category] {
				continue
			}
			i, ok := index[entry.ItemID]
			if !ok {
				i = len(counts)
				index[entry.ItemID] = i
				counts = append(counts, ItemCount{ItemID: entry.ItemID, Item: entry.Item})
			}
			counts[i].Count++
		}
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts, nil
}

func entryFromLog(l store.Log, loc *time.Location) Entry {
	return Entry{
		ID:       l.ID,
		ItemID:   l.ItemID,
		Item:     l.ItemName,
		Category: l.CategoryID,
		Time:     l.DoneAt.In(loc),
		Text:     l.Comment,
		Details:  l.Details,
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
