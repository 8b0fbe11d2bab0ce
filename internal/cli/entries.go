package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/faizmokh/hadbit/internal/logbook"
	"github.com/faizmokh/hadbit/internal/ui"
)

func newLogCommand(ctx context.Context, a *app) *cobra.Command {
	var (
		dateFlag    string
		timeFlag    string
		commentFlag string
	)

	cmd := &cobra.Command{
		Use:   "log <item> [name=value ...]",
		Short: "Record a log of an item.",
		Long: "log records one occurrence of an item. Values fill the item's template fields and the " +
			"comment is rendered from its result format unless --comment is given.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := resolveLoggable(ctx, a.store, args[0])
			if err != nil {
				return err
			}

			values, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}

			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}
			at, err := resolveTime(date, timeFlag)
			if err != nil {
				return err
			}

			entry, err := a.writer().Record(ctx, item, values, at, commentFlag)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s\n", ui.FormatEntry(entry))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Target date in YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&timeFlag, "time", "", "Timestamp in HH:MM (default: current time)")
	cmd.Flags().StringVar(&commentFlag, "comment", "", "Comment to store instead of the rendered result")

	return cmd
}

func newRecordCommand(ctx context.Context, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record <item>",
		Short: "Fill an item's template form interactively and record the log.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := resolveLoggable(ctx, a.store, args[0])
			if err != nil {
				return err
			}

			m := ui.NewFormModel(ctx, a.writer(), item, ui.WithPreview(a.cfg.Preview.Show))
			final, err := tea.NewProgram(m).Run()
			if err != nil {
				return fmt.Errorf("run TUI: %w", err)
			}

			if fm, ok := final.(ui.FormModel); ok {
				if entry, ok := fm.Recorded(); ok {
					fmt.Fprintf(cmd.OutOrStdout(), "Logged %s\n", ui.FormatEntry(entry))
					return nil
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing recorded.")
			return nil
		},
	}

	return cmd
}

func newEditCommand(ctx context.Context, a *app) *cobra.Command {
	var (
		dateFlag string
		timeFlag string
	)

	cmd := &cobra.Command{
		Use:   "edit <index> [comment ...]",
		Short: "Replace the comment and/or time of an entry by index.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}

			section, err := a.reader().Section(ctx, date)
			if err != nil {
				return err
			}
			if index > len(section.Entries) {
				return fmt.Errorf("entry %d: %w", index, logbook.ErrInvalidIndex)
			}
			current := section.Entries[index-1]

			text := current.Text
			if len(args) > 1 {
				text = strings.TrimSpace(strings.Join(args[1:], " "))
			}
			var at time.Time
			if timeFlag != "" {
				at, err = resolveTime(current.Time, timeFlag)
				if err != nil {
					return err
				}
			}
			if len(args) == 1 && at.IsZero() {
				return fmt.Errorf("nothing to change (give a comment or --time)")
			}

			entry, err := a.writer().Edit(ctx, date, index, at, text)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated entry %d: %s\n", index, ui.FormatEntry(entry))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Target date in YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&timeFlag, "time", "", "New timestamp in HH:MM")

	return cmd
}

func newDeleteCommand(ctx context.Context, a *app) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "delete <index>",
		Short: "Delete an entry by index.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}

			entry, err := a.writer().Delete(ctx, date, index)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %d: %s\n", index, ui.FormatEntry(entry))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Target date in YYYY-MM-DD (default: today)")

	return cmd
}
