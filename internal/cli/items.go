package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faizmokh/hadbit/internal/icons"
	"github.com/faizmokh/hadbit/internal/store"
	"github.com/faizmokh/hadbit/internal/template"
)

func newItemCommand(ctx context.Context, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage habit items and their categories.",
	}
	cmd.AddCommand(newItemAddCommand(ctx, a), newItemListCommand(ctx, a))
	return cmd
}

func newItemAddCommand(ctx context.Context, a *app) *cobra.Command {
	var (
		parentFlag      string
		shortFlag       string
		descriptionFlag string
	)

	cmd := &cobra.Command{
		Use:   "add <name ...>",
		Short: "Create an item, or a category when no --parent is given.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			if name == "" {
				return fmt.Errorf("name is required")
			}

			item := store.Item{
				Name:        name,
				ShortName:   shortFlag,
				Description: descriptionFlag,
			}
			if parentFlag != "" {
				parent, err := resolveItem(ctx, a.store, parentFlag)
				if err != nil {
					return err
				}
				if !parent.IsCategory() {
					return fmt.Errorf("parent %s is not a category", parent.Name)
				}
				item.ParentID = parent.ID
			}

			created, err := a.store.CreateItem(ctx, item)
			if err != nil {
				return err
			}

			kind := "item"
			if created.IsCategory() {
				kind = "category"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %d: %s\n", kind, created.ID, created.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&parentFlag, "parent", "", "Category the item belongs to")
	cmd.Flags().StringVar(&shortFlag, "short", "", "Short name used on buttons")
	cmd.Flags().StringVar(&descriptionFlag, "description", "", "Free description")

	return cmd
}

func newItemListCommand(ctx context.Context, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories and their items.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.store.Items(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "(no items)")
				return nil
			}

			children := map[int64][]store.Item{}
			var categories []store.Item
			for _, item := range items {
				if item.IsCategory() {
					categories = append(categories, item)
					continue
				}
				children[item.ParentID] = append(children[item.ParentID], item)
			}

			for _, cat := range categories {
				fmt.Fprintf(out, "%s\n", itemLine(cat))
				for _, child := range children[cat.ID] {
					fmt.Fprintf(out, "  %s\n", itemLine(child))
				}
			}
			return nil
		},
	}
	return cmd
}

func itemLine(item store.Item) string {
	tmpl := template.DecodeOrNew(item.Style)
	var b strings.Builder
	fmt.Fprintf(&b, "%d %s %s", item.ID, icons.Badge(tmpl.Style.Icon, tmpl.Style.Color), item.Name)
	if item.ShortName != "" {
		fmt.Fprintf(&b, " (%s)", item.ShortName)
	}
	if tmpl.Enabled() {
		fmt.Fprintf(&b, " [%d field%s]", len(tmpl.Fields), pluralS(len(tmpl.Fields)))
	}
	return b.String()
}

func newIconsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "icons",
		Short: "List the icons and colors available to templates.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range icons.Names() {
				fmt.Fprintf(out, "%s  %s\n", icons.Lookup(name).Glyph, name)
			}
			fmt.Fprintln(out)
			for _, color := range icons.Palette {
				fmt.Fprintf(out, "%s %s\n", icons.Badge("Palette", color), color)
			}
			return nil
		},
	}
}
