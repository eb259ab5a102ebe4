package cli

import (
	"fmt"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newBudgetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Spending against your limit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showBudget(cmd, app)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show spend, limit and breakdown for the active plan",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showBudget(cmd, app)
			},
		},
		newBudgetSetLimitCmd(app),
		newBudgetSetCurrencyCmd(app),
		newBudgetRatesCmd(app),
	)

	return cmd
}

func showBudget(cmd *cobra.Command, app *App) error {
	report, err := app.Budget.Report(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBudget(report.Plan.Name, report.Summary, report.PerDay))
	return nil
}

func newBudgetSetLimitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-limit AMOUNT",
		Short: "Set the spending limit in the display currency (0 or text clears it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := app.Budget.SetLimit(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if settings.Limit == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Limit cleared")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Limit: %s\n",
				formatter.BaseMoney(settings.Limit, settings.Currency, settings.ExchangeRate))
			return nil
		},
	}
}

func newBudgetSetCurrencyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-currency CODE",
		Short: "Show amounts in another currency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := app.Budget.SetCurrency(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Display currency: %s\n", settings.Currency)
			return nil
		},
	}
}

func newBudgetRatesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "List known currencies and exchange rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := app.Budget.Settings(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRates(app.Budget.Rates(), settings.Currency))
			return nil
		},
	}
}
