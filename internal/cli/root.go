package cli

import (
	"fmt"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/alexanderramin/itinera/internal/config"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/service"
	"github.com/spf13/cobra"
)

// CatalogBrowser is the read side of the item catalog.
type CatalogBrowser interface {
	List(types ...domain.ItemType) []domain.TravelItem
	Find(query string) []domain.TravelItem
	Get(key string) (domain.TravelItem, bool)
}

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plans     service.PlanService
	Schedule  service.ScheduleService
	Gate      service.GateService
	Templates service.TemplateService
	Budget    service.BudgetService
	Checklist service.ChecklistService
	Catalog   CatalogBrowser

	Config     *config.Config
	ConfigPath string

	// IsInteractive reports whether prompts can be shown. Nil means never.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Defaults to a huh confirm form.
	Confirm func(title, description string) (bool, error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) confirm(title, description string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(title, description)
	}
	return huhConfirm(title, description)
}

// NewRootCmd creates the top-level "itinera" command and registers all
// subcommands against the provided App. Without a subcommand it shows the
// active plan.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "itinera",
		Short:         "Day-by-day trip planner",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showActivePlan(cmd, app)
		},
	}

	root.AddCommand(
		newPlanCmd(app),
		newDayCmd(app),
		newItemCmd(app),
		newTemplateCmd(app),
		newBudgetCmd(app),
		newChecklistCmd(app),
		newCatalogCmd(app),
		newConfigCmd(app),
	)

	return root
}

func showActivePlan(cmd *cobra.Command, app *App) error {
	out := cmd.OutOrStdout()
	plan, day, err := app.Plans.Active(cmd.Context())
	if err != nil {
		if isNoActivePlan(err) {
			fmt.Fprintln(out, "No plans yet. Create one with: itinera plan create --name \"Kyoto\" --days 3")
			return nil
		}
		return err
	}
	return printPlan(cmd, app, plan, day)
}

func printPlan(cmd *cobra.Command, app *App, plan domain.Plan, activeDay int) error {
	settings, err := app.Budget.Settings(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlan(plan, activeDay, settings))
	return nil
}
