package cli

import (
	"fmt"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Add, remove and select days of the active plan",
	}

	cmd.AddCommand(
		newDayAddCmd(app),
		newDayDeleteCmd(app),
		newDaySelectCmd(app),
		newDayShowCmd(app),
	)

	return cmd
}

func newDayAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Append an empty day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := app.Schedule.AddDay(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s now has %s\n", formatter.Bold(plan.Name), formatter.Plural(plan.TotalDays, "day"))
			return nil
		},
	}
}

func newDayDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete DAY",
		Short: "Delete a day; later days move up",
		Long: `Delete a day from the active plan. Later days are renumbered.
A day holding locked (premium) items asks for confirmation first; --yes
deletes without unlocking anything else.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[0])
			if err != nil {
				return err
			}
			res, err := app.Schedule.DeleteDay(cmd.Context(), day, yes)
			if err != nil {
				return err
			}
			plan := res.Plan
			if res.Pending != nil {
				var ran bool
				plan, ran, err = resolveGate(cmd, app, res.Pending)
				if err != nil || !ran {
					return err
				}
			} else if !res.Applied {
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted day %d; %s left\n", day, formatter.Plural(plan.TotalDays, "day"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without the unlock confirmation")
	return cmd
}

func newDaySelectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "select DAY",
		Short: "Set the active day (clamped to the plan)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[0])
			if err != nil {
				return err
			}
			selected, err := app.Schedule.SelectDay(cmd.Context(), day)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active day: %d\n", selected)
			return nil
		},
	}
}

func newDayShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [DAY]",
		Short: "Show one day of the active plan (defaults to the active day)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			plan, active, err := app.Plans.Active(ctx)
			if err != nil {
				return err
			}
			day := active
			if len(args) == 1 {
				if day, err = parseDay(args[0]); err != nil {
					return err
				}
			}
			settings, err := app.Budget.Settings(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDay(plan, day, day == active, settings))
			return nil
		},
	}
}
