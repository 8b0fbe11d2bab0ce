package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faizmokh/hadbit/internal/settings"
)

func newAnalyticsCommand(ctx context.Context, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show how often each item was logged.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showAnalytics(ctx, cmd, a, "")
		},
	}

	var dateFlag string
	show := &cobra.Command{
		Use:   "show",
		Short: "Show log counts per item for the analytics period.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showAnalytics(ctx, cmd, a, dateFlag)
		},
	}
	show.Flags().StringVar(&dateFlag, "date", "", "Last day of the period (YYYY-MM-DD)")

	cmd.AddCommand(
		show,
		newAnalyticsToggleCommand(ctx, a, "exclude", "Hide a category from analytics.", true),
		newAnalyticsToggleCommand(ctx, a, "include", "Show a hidden category in analytics again.", false),
		newAnalyticsPeriodCommand(a),
	)
	return cmd
}

func showAnalytics(ctx context.Context, cmd *cobra.Command, a *app, dateFlag string) error {
	end, err := resolveDate(dateFlag)
	if err != nil {
		return err
	}
	counts, err := a.reader().Counts(ctx, end)
	if err != nil {
		return err
	}

	months := settings.PeriodMonths(a.prefs)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Last %d month%s up to %s\n", months, pluralS(months), end.Format("2006-01-02"))
	if len(counts) == 0 {
		fmt.Fprintln(out, "No logs in this period.")
		return nil
	}

	width := 0
	for _, c := range counts {
		if len(c.Item) > width {
			width = len(c.Item)
		}
	}
	for _, c := range counts {
		fmt.Fprintf(out, "%-*s %4d\n", width, c.Item, c.Count)
	}
	return nil
}

func newAnalyticsToggleCommand(ctx context.Context, a *app, use, short string, exclude bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <category>",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := resolveItem(ctx, a.store, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if !category.IsCategory() {
				return fmt.Errorf("%s is not a category", category.Name)
			}

			excluded := false
			for _, id := range settings.LoadIDs(a.prefs, settings.KeyExcludedCategories) {
				if id == category.ID {
					excluded = true
					break
				}
			}
			if excluded != exclude {
				if _, err := settings.ToggleID(a.prefs, settings.KeyExcludedCategories, category.ID); err != nil {
					return err
				}
			}

			state := "included in"
			if exclude {
				state = "excluded from"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s analytics\n", category.Name, state)
			return nil
		},
	}
}

func newAnalyticsPeriodCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "period [months]",
		Short: "Print or set the analytics period in months.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\n", settings.PeriodMonths(a.prefs))
				return nil
			}
			months, err := strconv.Atoi(args[0])
			if err != nil || months <= 0 {
				return fmt.Errorf("invalid period %q (expected a positive number of months)", args[0])
			}
			if err := settings.Save(a.prefs, settings.KeyPeriodMonths, strconv.Itoa(months)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Analytics period set to %d month%s\n", months, pluralS(months))
			return nil
		},
	}
}
