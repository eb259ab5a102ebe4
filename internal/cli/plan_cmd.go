package cli

import (
	"fmt"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/service"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage trip plans",
	}

	cmd.AddCommand(
		newPlanCreateCmd(app),
		newPlanListCmd(app),
		newPlanSelectCmd(app),
		newPlanShowCmd(app),
		newPlanRenameCmd(app),
		newPlanUpdateCmd(app),
		newPlanDeleteCmd(app),
	)

	return cmd
}

func newPlanCreateCmd(app *App) *cobra.Command {
	var (
		req      domain.BlankPlanRequest
		start    dateValue
		template string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a plan, blank or from a template",
		Example: `  itinera plan create --name "Autumn in Kyoto" --region Kyoto --days 3 --start 2026-11-14
  itinera plan create --template kyoto-classic`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req.StartDate = start.t

			var (
				plan domain.Plan
				err  error
			)
			switch {
			case template != "":
				plan, err = app.Templates.CreatePlan(ctx, template, req.Name, req.StartDate)
			default:
				if req.Name == "" && app.interactive() {
					if err := planWizard(&req); err != nil {
						return err
					}
				}
				plan, err = app.Plans.Create(ctx, req)
			}
			if err != nil {
				return err
			}
			return printPlan(cmd, app, plan, 1)
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Plan name")
	cmd.Flags().StringVar(&req.Region, "region", "", "Destination region")
	cmd.Flags().IntVar(&req.TotalDays, "days", 1, "Number of days")
	cmd.Flags().Var(&start, "start", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&template, "template", "", "Seed the plan from a template (id, name or number)")
	cmd.MarkFlagsMutuallyExclusive("template", "days")
	cmd.MarkFlagsMutuallyExclusive("template", "region")

	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			plans, err := app.Plans.List(ctx)
			if err != nil {
				return err
			}
			if len(plans) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No plans found.")
				return nil
			}

			activeID := ""
			if active, _, err := app.Plans.Active(ctx); err == nil {
				activeID = active.ID
			}
			settings, err := app.Budget.Settings(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlanList(plans, activeID, settings))
			return nil
		},
	}
}

func newPlanSelectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "select PLAN",
		Short: "Make a plan active (by id, id prefix or name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := app.Plans.Select(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active plan: %s\n", formatter.Bold(plan.Name))
			return nil
		},
	}
}

func newPlanShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [PLAN]",
		Short: "Show a plan day by day (defaults to the active plan)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return showActivePlan(cmd, app)
			}
			plan, err := app.Plans.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printPlan(cmd, app, plan, 0)
		},
	}
}

func newPlanRenameCmd(app *App) *cobra.Command {
	var ref string

	cmd := &cobra.Command{
		Use:   "rename NAME",
		Short: "Rename the active plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := planRef(cmd, app, ref)
			if err != nil {
				return err
			}
			plan, err := app.Plans.Update(cmd.Context(), target, service.PlanUpdate{Name: &args[0]})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed to %s\n", formatter.Bold(plan.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&ref, "plan", "", "Plan to rename (defaults to the active plan)")
	return cmd
}

func newPlanUpdateCmd(app *App) *cobra.Command {
	var (
		ref        string
		name       string
		region     string
		start      dateValue
		clearStart bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change the name, region or start date of a plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := planRef(cmd, app, ref)
			if err != nil {
				return err
			}
			var upd service.PlanUpdate
			if cmd.Flags().Changed("name") {
				upd.Name = &name
			}
			if cmd.Flags().Changed("region") {
				upd.Region = &region
			}
			upd.StartDate = start.t
			upd.ClearStartDate = clearStart

			plan, err := app.Plans.Update(cmd.Context(), target, upd)
			if err != nil {
				return err
			}
			return printPlan(cmd, app, plan, 0)
		},
	}

	cmd.Flags().StringVar(&ref, "plan", "", "Plan to update (defaults to the active plan)")
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&region, "region", "", "New region")
	cmd.Flags().Var(&start, "start", "New start date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&clearStart, "clear-start", false, "Remove the start and end dates")
	cmd.MarkFlagsMutuallyExclusive("start", "clear-start")

	return cmd
}

func newPlanDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete PLAN",
		Aliases: []string{"rm"},
		Short:   "Delete a plan",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			plan, err := app.Plans.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if !yes && app.interactive() {
				ok, err := app.confirm(fmt.Sprintf("Delete %q?", plan.Name), "This cannot be undone.")
				if err != nil || !ok {
					return err
				}
			}
			if err := app.Plans.Delete(ctx, plan.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", plan.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// planRef returns ref, or the active plan's id when ref is empty.
func planRef(cmd *cobra.Command, app *App, ref string) (string, error) {
	if ref != "" {
		return ref, nil
	}
	plan, _, err := app.Plans.Active(cmd.Context())
	if err != nil {
		return "", err
	}
	return plan.ID, nil
}
