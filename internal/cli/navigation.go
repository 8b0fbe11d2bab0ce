package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/faizmokh/hadbit/internal/logbook"
	"github.com/faizmokh/hadbit/internal/store"
	"github.com/faizmokh/hadbit/internal/ui"
)

func newPrevCommand(ctx context.Context, a *app) *cobra.Command {
	return newDayOffsetCommand(ctx, a, "prev", "Show the previous day's log entries.", -1)
}

func newNextCommand(ctx context.Context, a *app) *cobra.Command {
	return newDayOffsetCommand(ctx, a, "next", "Show the next day's log entries.", 1)
}

// newDayOffsetCommand shows the section offset days away from --date.
func newDayOffsetCommand(ctx context.Context, a *app, use, short string, offset int) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}
			return displaySection(ctx, cmd, a, date.AddDate(0, 0, offset))
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Reference date in YYYY-MM-DD (default: today)")

	return cmd
}

func newJumpCommand(ctx context.Context, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jump <date>",
		Short: "Show entries for the specified date.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := time.ParseInLocation("2006-01-02", args[0], time.Local)
			if err != nil {
				return fmt.Errorf("parse date: %w", err)
			}
			return displaySection(ctx, cmd, a, target)
		},
	}

	return cmd
}

func newListCommand(ctx context.Context, a *app) *cobra.Command {
	var (
		dateFlag string
		daysFlag int
		weekFlag bool
		itemFlag string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries across a range of days.",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}

			days := daysFlag
			if weekFlag {
				days = 7
			}
			if days <= 0 {
				days = 1
			}

			start := date.AddDate(0, 0, -(days - 1))
			sections, err := a.reader().SectionsBetween(ctx, start, date)
			if err != nil {
				return err
			}

			if itemFlag != "" {
				item, err := resolveItem(ctx, a.store, itemFlag)
				if err != nil {
					return err
				}
				sections = filterSections(sections, belongsTo(item))
			}

			if len(sections) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No entries between %s and %s\n",
					start.Format("2006-01-02"), date.Format("2006-01-02"))
				return nil
			}

			return printSections(cmd, sections)
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "End date in YYYY-MM-DD (default: today)")
	cmd.Flags().IntVar(&daysFlag, "days", 0, "Number of days to include ending on target date")
	cmd.Flags().BoolVar(&weekFlag, "week", false, "Shortcut for --days=7")
	cmd.Flags().StringVar(&itemFlag, "item", "", "Only show logs of this item or category")

	return cmd
}

func newSearchCommand(ctx context.Context, a *app) *cobra.Command {
	var (
		dateFlag      string
		caseSensitive bool
		outputJSON    bool
		itemFlag      string
	)

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search entries by comment, item, or recorded value within the month.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.TrimSpace(args[0])
			if term == "" {
				return fmt.Errorf("term is required")
			}
			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}

			startOfMonth := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
			endOfMonth := startOfMonth.AddDate(0, 1, -1)

			sections, err := a.reader().SectionsBetween(ctx, startOfMonth, endOfMonth)
			if err != nil {
				return err
			}
			if itemFlag != "" {
				item, err := resolveItem(ctx, a.store, itemFlag)
				if err != nil {
					return err
				}
				sections = filterSections(sections, belongsTo(item))
			}

			results := filterSectionsByTerm(sections, term, caseSensitive)
			if outputJSON {
				return printSearchResultsJSON(cmd, results)
			}
			return printSearchResultsText(cmd, term, startOfMonth, results)
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Reference date in YYYY-MM-DD (default: today)")
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "Match term with case sensitivity")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Emit results as JSON objects")
	cmd.Flags().StringVar(&itemFlag, "item", "", "Only search logs of this item or category")

	return cmd
}

func displaySection(ctx context.Context, cmd *cobra.Command, a *app, date time.Time) error {
	section, err := a.reader().Section(ctx, date)
	if err != nil {
		if errors.Is(err, logbook.ErrSectionNotFound) {
			printMissingSection(cmd, date)
			return nil
		}
		return err
	}
	return printSection(cmd, section)
}

// belongsTo matches logs of item, or of any item in it when item is a category.
func belongsTo(item store.Item) func(logbook.Entry) bool {
	return func(e logbook.Entry) bool {
		return e.ItemID == item.ID || (item.IsCategory() && e.Category == item.ID)
	}
}

func filterSections(sections []logbook.DateSection, keep func(logbook.Entry) bool) []logbook.DateSection {
	var out []logbook.DateSection
	for _, section := range sections {
		var entries []logbook.Entry
		for _, entry := range section.Entries {
			if keep(entry) {
				entries = append(entries, entry)
			}
		}
		if len(entries) > 0 {
			out = append(out, logbook.DateSection{Date: section.Date, Entries: entries})
		}
	}
	return out
}

type searchResult struct {
	section logbook.DateSection
	entry   logbook.Entry
	index   int
}

func filterSectionsByTerm(sections []logbook.DateSection, term string, caseSensitive bool) []searchResult {
	var results []searchResult
	for _, section := range sections {
		for idx, entry := range section.Entries {
			if matchesEntry(entry, term, caseSensitive) {
				results = append(results, searchResult{
					section: section,
					entry:   entry,
					index:   idx,
				})
			}
		}
	}
	return results
}

func matchesEntry(entry logbook.Entry, needle string, caseSensitive bool) bool {
	haystack := []string{entry.Text, entry.Item}
	for _, value := range entry.Details {
		haystack = append(haystack, value)
	}

	if !caseSensitive {
		needle = strings.ToLower(needle)
	}
	for _, hay := range haystack {
		if !caseSensitive {
			hay = strings.ToLower(hay)
		}
		if strings.Contains(hay, needle) {
			return true
		}
	}
	return false
}

func printSearchResultsText(cmd *cobra.Command, term string, start time.Time, results []searchResult) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Results for %q in %s\n", term, start.Format("2006-01"))
	if len(results) == 0 {
		fmt.Fprintln(out, "(no matches)")
		return nil
	}

	for _, res := range results {
		fmt.Fprintf(out, "%s #%d %s\n",
			res.section.Date.Format("2006-01-02"),
			res.index+1,
			ui.FormatEntry(res.entry),
		)
	}
	return nil
}

func printSearchResultsJSON(cmd *cobra.Command, results []searchResult) error {
	type dto struct {
		Date    string            `json:"date"`
		Index   int               `json:"index"`
		Time    string            `json:"time"`
		Item    string            `json:"item"`
		Comment string            `json:"comment,omitempty"`
		Details map[string]string `json:"details,omitempty"`
	}

	list := make([]dto, 0, len(results))
	for _, res := range results {
		list = append(list, dto{
			Date:    res.section.Date.Format("2006-01-02"),
			Index:   res.index + 1,
			Time:    res.entry.Time.Format("15:04"),
			Item:    res.entry.Item,
			Comment: res.entry.Text,
			Details: res.entry.Details,
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
