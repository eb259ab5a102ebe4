package cli

import (
	"fmt"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Browse curated itineraries and merge them into a plan",
	}

	cmd.AddCommand(
		newTemplateListCmd(app),
		newTemplateShowCmd(app),
		newTemplateApplyCmd(app),
	)

	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List available templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := app.Templates.List(cmd.Context())
			if err != nil {
				return err
			}

			if len(templates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No templates found.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTemplateList(templates))
			return nil
		},
	}
}

func newTemplateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show TEMPLATE",
		Short: "Show template details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := app.Templates.Get(ctx, args[0])
			if err != nil {
				return err
			}
			settings, err := app.Budget.Settings(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTemplate(t, settings))
			return nil
		},
	}
}

func newTemplateApplyCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "apply TEMPLATE",
		Short: "Append a template's items to the active plan",
		Long: `Append every item of the template to the matching day of the active plan,
adding days when the template is longer. Existing items are kept. When the
affected days hold locked items you are asked to unlock them first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Templates.Apply(cmd.Context(), args[0], yes)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.Pending != nil {
				if _, ran, err := resolveGate(cmd, app, res.Pending); err != nil || !ran {
					return err
				}
			}
			fmt.Fprintf(out, "Applied %s: %s added, %s added\n",
				formatter.Bold(res.Template.Name),
				formatter.Plural(res.Stats.ItemsAdded, "item"),
				formatter.Plural(res.Stats.DaysAdded, "day"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Merge without the unlock confirmation")
	return cmd
}
