package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/faizmokh/hadbit/internal/icons"
	"github.com/faizmokh/hadbit/internal/session"
	"github.com/faizmokh/hadbit/internal/store"
	"github.com/faizmokh/hadbit/internal/template"
)

func newTemplateCommand(ctx context.Context, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Inspect and edit the log template of an item.",
	}

	cmd.AddCommand(
		newTemplateShowCommand(ctx, a),
		newTemplateAddFieldCommand(ctx, a),
		newTemplateRemoveFieldCommand(ctx, a),
		newTemplateSetCommand(ctx, a),
		newTemplateMoveCommand(ctx, a),
		newTemplatePresetCommand(ctx, a),
		newTemplateFormatCommand(ctx, a),
		newTemplateStyleCommand(ctx, a),
		newTemplatePreviewCommand(ctx, a),
	)
	return cmd
}

// loadTemplate reads the template of an item without keeping a session open.
func loadTemplate(ctx context.Context, a *app, ref string) (store.Item, template.Template, error) {
	item, err := resolveItem(ctx, a.store, ref)
	if err != nil {
		return store.Item{}, template.Template{}, err
	}
	sess := session.New(a.store, a.logger, a.cfg.NewTemplate)
	if err := sess.Open(ctx, item.ID); err != nil {
		return store.Item{}, template.Template{}, err
	}
	defer sess.Cancel()
	return item, sess.Template(), nil
}

// editTemplate applies fn to the item's template in one editing session and
// saves the result.
func editTemplate(ctx context.Context, a *app, ref string, fn func(*template.Editor) error) (store.Item, template.Template, error) {
	item, err := resolveItem(ctx, a.store, ref)
	if err != nil {
		return store.Item{}, template.Template{}, err
	}

	sess := session.New(a.store, a.logger, a.cfg.NewTemplate)
	if err := sess.Open(ctx, item.ID); err != nil {
		return store.Item{}, template.Template{}, err
	}
	if err := sess.Edit(fn); err != nil {
		sess.Cancel()
		return store.Item{}, template.Template{}, err
	}
	edited := sess.Template()
	if err := sess.Save(ctx); err != nil {
		sess.Cancel()
		return store.Item{}, template.Template{}, err
	}
	return item, edited, nil
}

func printTemplateSummary(cmd *cobra.Command, item store.Item, tmpl template.Template) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s: %d field%s, format %q\n",
		icons.Badge(tmpl.Style.Icon, tmpl.Style.Color), item.Name,
		len(tmpl.Fields), pluralS(len(tmpl.Fields)), tmpl.Config.ResultFormat)
	if dups := template.DuplicateNames(tmpl.Fields); len(dups) > 0 {
		fmt.Fprintf(out, "warning: duplicate field names %s (the last field wins)\n", strings.Join(dups, ", "))
	}
}

func newTemplateShowCommand(ctx context.Context, a *app) *cobra.Command {
	var (
		outputJSON bool
		pretty     bool
	)

	cmd := &cobra.Command{
		Use:   "show <item>",
		Short: "Print an item's template.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, tmpl, err := loadTemplate(ctx, a, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case outputJSON:
				doc, err := template.Encode(tmpl)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, doc)
				return nil
			case pretty:
				renderer, err := glamour.NewTermRenderer(
					glamour.WithAutoStyle(),
					glamour.WithWordWrap(100),
				)
				if err != nil {
					return fmt.Errorf("create renderer: %w", err)
				}
				rendered, err := renderer.Render(templateMarkdown(item, tmpl))
				if err != nil {
					return fmt.Errorf("render template: %w", err)
				}
				fmt.Fprint(out, rendered)
				return nil
			}

			fmt.Fprintf(out, "%s %s\n", icons.Badge(tmpl.Style.Icon, tmpl.Style.Color), item.Name)
			fmt.Fprintf(out, "style:  %s %s\n", tmpl.Style.Icon, tmpl.Style.Color)
			fmt.Fprintf(out, "format: %s\n", tmpl.Config.ResultFormat)
			if !tmpl.Enabled() {
				fmt.Fprintln(out, "(no fields)")
				return nil
			}
			fmt.Fprintln(out, fieldTable(tmpl))
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "Print the stored template document")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Render the template as formatted Markdown")

	return cmd
}

func fieldRows(tmpl template.Template) [][]string {
	rows := make([][]string, 0, len(tmpl.Fields))
	for i, f := range tmpl.Fields {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			f.Name,
			f.Label,
			string(f.Type),
			string(f.Width),
			f.Prefix,
			f.Suffix,
			strconv.FormatBool(f.HideIfEmpty),
			f.Placeholder,
		})
	}
	return rows
}

var fieldHeaders = []string{"#", "name", "label", "type", "width", "prefix", "suffix", "hide_if_empty", "placeholder"}

func fieldTable(tmpl template.Template) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(fieldHeaders...).
		Rows(fieldRows(tmpl)...).
		String()
}

func templateMarkdown(item store.Item, tmpl template.Template) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", item.Name)
	fmt.Fprintf(&b, "- **Icon:** %s %s\n", icons.Lookup(tmpl.Style.Icon).Glyph, tmpl.Style.Icon)
	fmt.Fprintf(&b, "- **Color:** `%s`\n", tmpl.Style.Color)
	fmt.Fprintf(&b, "- **Format:** `%s`\n\n", tmpl.Config.ResultFormat)
	if !tmpl.Enabled() {
		b.WriteString("_No fields._\n")
		return b.String()
	}

	b.WriteString("| " + strings.Join(fieldHeaders, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(fieldHeaders)) + "\n")
	for _, row := range fieldRows(tmpl) {
		for i, cell := range row {
			if cell == "" {
				row[i] = " "
			} else {
				row[i] = strings.ReplaceAll(cell, "|", `\|`)
			}
		}
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	return b.String()
}

func newTemplateAddFieldCommand(ctx context.Context, a *app) *cobra.Command {
	var (
		name        string
		label       string
		fieldType   string
		width       string
		placeholder string
		prefix      string
		suffix      string
		hideIfEmpty string
	)

	cmd := &cobra.Command{
		Use:   "add-field <item>",
		Short: "Append a field to an item's template.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attrs := []struct {
				key   template.FieldKey
				value string
				set   bool
			}{
				{template.KeyName, name, cmd.Flags().Changed("name")},
				{template.KeyLabel, label, cmd.Flags().Changed("label")},
				{template.KeyType, fieldType, cmd.Flags().Changed("type")},
				{template.KeyWidth, width, cmd.Flags().Changed("width")},
				{template.KeyPlaceholder, placeholder, cmd.Flags().Changed("placeholder")},
				{template.KeyPrefix, prefix, cmd.Flags().Changed("prefix")},
				{template.KeySuffix, suffix, cmd.Flags().Changed("suffix")},
				{template.KeyHideIfEmpty, hideIfEmpty, cmd.Flags().Changed("hide-if-empty")},
			}

			item, tmpl, err := editTemplate(ctx, a, args[0], func(ed *template.Editor) error {
				index := ed.Add()
				for _, attr := range attrs {
					if !attr.set {
						continue
					}
					if err := ed.Update(index, attr.key, attr.value); err != nil {
						return err
					}
				}
				// The add is structural; its token should carry the final name.
				ed.SetFormat(template.RegenerateFormat(ed.Template().Fields))
				return nil
			})
			if err != nil {
				return err
			}

			added := tmpl.Fields[len(tmpl.Fields)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "Added field %d (%s)\n", len(tmpl.Fields), added.Name)
			printTemplateSummary(cmd, item, tmpl)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Field name used as the {name} token")
	cmd.Flags().StringVar(&label, "label", "", "Caption shown on the form")
	cmd.Flags().StringVar(&fieldType, "type", "", "string, integer, text, real or number")
	cmd.Flags().StringVar(&width, "width", "", "small, normal or big")
	cmd.Flags().StringVar(&placeholder, "placeholder", "", "Hint shown in the empty control")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Text placed before the value")
	cmd.Flags().StringVar(&suffix, "suffix", "", "Text placed after the value")
	cmd.Flags().StringVar(&hideIfEmpty, "hide-if-empty", "", "true or false")

	return cmd
}

func newTemplateRemoveFieldCommand(ctx context.Context, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm-field <item> <index>",
		Short: "Remove a field from an item's template.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			item, tmpl, err := editTemplate(ctx, a, args[0], func(ed *template.Editor) error {
				return ed.Remove(index - 1)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed field %d\n", index)
			printTemplateSummary(cmd, item, tmpl)
			return nil
		},
	}
	return cmd
}

func newTemplateSetCommand(ctx context.Context, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <item> <index> <attribute> <value>",
		Short: "Change one attribute of a field.",
		Long: "set changes name, label, type, width, placeholder, prefix, suffix or hide_if_empty " +
			"of a field. The result format is not regenerated.",
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			key := template.FieldKey(strings.ReplaceAll(args[2], "-", "_"))
			item, tmpl, err := editTemplate(ctx, a, args[0], func(ed *template.Editor) error {
				return ed.Update(index-1, key, args[3])
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s of field %d to %q\n", key, index, args[3])
			printTemplateSummary(cmd, item, tmpl)
			return nil
		},
	}
	return cmd
}

func newTemplateMoveCommand(ctx context.Context, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <item> <from> <to>",
		Short: "Move a field to another position.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			to, err := parseIndex(args[2])
			if err != nil {
				return err
			}
			item, tmpl, err := editTemplate(ctx, a, args[0], func(ed *template.Editor) error {
				return ed.Move(from-1, to-1)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved field %d to %d\n", from, to)
			printTemplateSummary(cmd, item, tmpl)
			return nil
		},
	}
	return cmd
}

func newTemplatePresetCommand(ctx context.Context, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset [item] [preset]",
		Short: "List presets, or fill an item's empty template with one.",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				out := cmd.OutOrStdout()
				for _, p := range template.Presets() {
					fmt.Fprintf(out, "%-10s %s\n", p.Key, p.Name)
				}
				return nil
			}

			item, tmpl, err := editTemplate(ctx, a, args[0], func(ed *template.Editor) error {
				if err := ed.LoadPreset(args[1]); err != nil {
					if errors.Is(err, template.ErrTemplateNotEmpty) {
						return fmt.Errorf("%w (remove its fields first)", err)
					}
					return err
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded preset %s\n", args[1])
			printTemplateSummary(cmd, item, tmpl)
			return nil
		},
	}
	return cmd
}

func newTemplateFormatCommand(ctx context.Context, a *app) *cobra.Command {
	var regenerate bool

	cmd := &cobra.Command{
		Use:   "format <item> [format]",
		Short: "Set the result format, or regenerate it from the field order.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if regenerate == (len(args) == 2) {
				return fmt.Errorf("give either a format or --regenerate")
			}
			item, tmpl, err := editTemplate(ctx, a, args[0], func(ed *template.Editor) error {
				if regenerate {
					ed.SetFormat(template.RegenerateFormat(ed.Template().Fields))
					return nil
				}
				ed.SetFormat(unescapeFormat(args[1]))
				return nil
			})
			if err != nil {
				return err
			}
			printTemplateSummary(cmd, item, tmpl)
			return nil
		},
	}

	cmd.Flags().BoolVar(&regenerate, "regenerate", false, "Rebuild the format from the field order")

	return cmd
}

// unescapeFormat turns a typed "\n" into a line break.
func unescapeFormat(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

func newTemplateStyleCommand(ctx context.Context, a *app) *cobra.Command {
	var (
		icon  string
		color string
	)

	cmd := &cobra.Command{
		Use:   "style <item>",
		Short: "Set the icon and color of an item's template.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if icon != "" && !icons.Known(icon) {
				return fmt.Errorf("unknown icon %q (see hadbit icons)", icon)
			}
			item, tmpl, err := editTemplate(ctx, a, args[0], func(ed *template.Editor) error {
				style := ed.Template().Style
				if icon != "" {
					style.Icon = icon
				}
				if color != "" {
					style.Color = color
				}
				ed.SetStyle(style)
				return nil
			})
			if err != nil {
				return err
			}
			printTemplateSummary(cmd, item, tmpl)
			return nil
		},
	}

	cmd.Flags().StringVar(&icon, "icon", "", "Icon name")
	cmd.Flags().StringVar(&color, "color", "", "Color as #RRGGBB")

	return cmd
}

func newTemplatePreviewCommand(ctx context.Context, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <item> [name=value ...]",
		Short: "Render the result for some values without recording anything.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, tmpl, err := loadTemplate(ctx, a, args[0])
			if err != nil {
				return err
			}
			values, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range sortedKeys(values) {
				if _, ok := tmpl.FieldByName(name); !ok {
					fmt.Fprintf(out, "warning: %s is not a field of this template\n", name)
				}
			}
			fmt.Fprintln(out, template.Render(tmpl, values))
			return nil
		},
	}
	return cmd
}

func pluralS(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
