package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/alexanderramin/itinera/internal/service"
	"github.com/spf13/cobra"
)

func newChecklistCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "checklist",
		Aliases: []string{"pack"},
		Short:   "Packing checklist of the active plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showChecklist(cmd, app)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show the checklist",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showChecklist(cmd, app)
			},
		},
		&cobra.Command{
			Use:   "add TEXT...",
			Short: "Add an entry",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				change, err := app.Checklist.Add(cmd.Context(), strings.Join(args, " "))
				if err != nil || !change.Applied {
					return err
				}
				return showChecklist(cmd, app)
			},
		},
		&cobra.Command{
			Use:   "toggle ENTRY",
			Short: "Check or uncheck an entry (by id prefix or text)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return checklistEntryOp(cmd, app, args[0], app.Checklist.Toggle)
			},
		},
		&cobra.Command{
			Use:     "remove ENTRY",
			Aliases: []string{"rm"},
			Short:   "Remove an entry (by id prefix or text)",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return checklistEntryOp(cmd, app, args[0], app.Checklist.Remove)
			},
		},
	)

	return cmd
}

func checklistEntryOp(cmd *cobra.Command, app *App, ref string, op func(context.Context, string) (service.Change, error)) error {
	ctx := cmd.Context()
	items, err := app.Checklist.List(ctx)
	if err != nil {
		return err
	}
	id, err := resolveChecklistID(items, ref)
	if err != nil {
		return err
	}
	change, err := op(ctx, id)
	if err != nil || !change.Applied {
		return err
	}
	return showChecklist(cmd, app)
}

func showChecklist(cmd *cobra.Command, app *App) error {
	items, err := app.Checklist.List(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatChecklist(items))
	return nil
}
