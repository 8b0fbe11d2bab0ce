package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/faizmokh/hadbit/internal/form"
	"github.com/faizmokh/hadbit/internal/logbook"
	"github.com/faizmokh/hadbit/internal/store"
	"github.com/faizmokh/hadbit/internal/ui"
)

// errCategory is returned when a command needs a loggable item but got a category.
var errCategory = errors.New("categories cannot be logged")

func today() time.Time {
	now := time.Now().In(time.Local)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func resolveDate(dateFlag string) (time.Time, error) {
	if dateFlag == "" {
		return today(), nil
	}

	parsed, err := time.ParseInLocation("2006-01-02", dateFlag, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date: %w", err)
	}
	return parsed, nil
}

func resolveTime(date time.Time, timeFlag string) (time.Time, error) {
	if timeFlag == "" {
		now := time.Now().In(date.Location())
		return time.Date(date.Year(), date.Month(), date.Day(), now.Hour(), now.Minute(), 0, 0, date.Location()), nil
	}

	parsed, err := time.ParseInLocation("15:04", timeFlag, date.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time: %w", err)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), parsed.Hour(), parsed.Minute(), 0, 0, date.Location()), nil
}

func parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil || index <= 0 {
		return 0, fmt.Errorf("index must be a positive integer")
	}
	return index, nil
}

// resolveItem finds an item by id, then by exact name or short name, then by
// the best fuzzy match on names.
func resolveItem(ctx context.Context, s *store.Store, ref string) (store.Item, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return store.Item{}, fmt.Errorf("item is required")
	}

	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		item, err := s.Item(ctx, id)
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, store.ErrItemNotFound) {
			return store.Item{}, err
		}
	}

	items, err := s.Items(ctx)
	if err != nil {
		return store.Item{}, err
	}
	for _, item := range items {
		if strings.EqualFold(item.Name, ref) || (item.ShortName != "" && strings.EqualFold(item.ShortName, ref)) {
			return item, nil
		}
	}

	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name + " " + item.ShortName
	}
	matches := fuzzy.Find(ref, names)
	if len(matches) == 0 {
		return store.Item{}, fmt.Errorf("no item matches %q: %w", ref, store.ErrItemNotFound)
	}
	return items[matches[0].Index], nil
}

// resolveLoggable is resolveItem restricted to items that can carry logs.
func resolveLoggable(ctx context.Context, s *store.Store, ref string) (store.Item, error) {
	item, err := resolveItem(ctx, s, ref)
	if err != nil {
		return store.Item{}, err
	}
	if item.IsCategory() {
		return store.Item{}, fmt.Errorf("%s: %w", item.Name, errCategory)
	}
	return item, nil
}

// parseAssignments reads name=value arguments into form values. Later
// assignments to the same name replace earlier ones.
func parseAssignments(args []string) (form.Values, error) {
	values := form.Values{}
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid value %q (expected name=value)", arg)
		}
		values = values.Set(name, value)
	}
	return values, nil
}

func printMissingSection(cmd *cobra.Command, date time.Time) {
	fmt.Fprintf(cmd.OutOrStdout(), "No entries for %s\n", date.Format("2006-01-02"))
}

func printSection(cmd *cobra.Command, section logbook.DateSection) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", section.Date.Format("2006-01-02"))
	if len(section.Entries) == 0 {
		fmt.Fprintln(out, "(no entries)")
		return nil
	}

	for i, entry := range section.Entries {
		fmt.Fprintf(out, "%d. %s\n", i+1, ui.FormatEntry(entry))
	}
	return nil
}

func printSections(cmd *cobra.Command, sections []logbook.DateSection) error {
	if len(sections) == 0 {
		return nil
	}
	for i, section := range sections {
		if err := printSection(cmd, section); err != nil {
			return err
		}
		if i < len(sections)-1 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
	}
	return nil
}
