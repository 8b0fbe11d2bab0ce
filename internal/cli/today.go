package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newTodayCommand(ctx context.Context, a *app) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the log entries for today or a specific date.",
		RunE: func(cmd *cobra.Command, args []string) error {
			targetDate, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}
			return displaySection(ctx, cmd, a, targetDate)
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Target date in YYYY-MM-DD (default: today)")

	return cmd
}
