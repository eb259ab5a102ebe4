package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse curated places to add to a plan",
	}

	cmd.AddCommand(
		newCatalogListCmd(app),
		newCatalogFindCmd(app),
	)

	return cmd
}

func newCatalogListCmd(app *App) *cobra.Command {
	var types []string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List catalog items, optionally filtered by --type",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := make([]domain.ItemType, 0, len(types))
			for _, t := range types {
				filter = append(filter, domain.ParseItemType(t))
			}
			return printCatalog(cmd, app, app.Catalog.List(filter...))
		},
	}

	cmd.Flags().StringSliceVar(&types, "type", nil, "Only these categories (repeatable)")
	return cmd
}

func newCatalogFindCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "find QUERY...",
		Short: "Search catalog titles, ids and descriptions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printCatalog(cmd, app, app.Catalog.Find(strings.Join(args, " ")))
		},
	}
}

func printCatalog(cmd *cobra.Command, app *App, items []domain.TravelItem) error {
	if len(items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matching items.")
		return nil
	}
	settings, err := app.Budget.Settings(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalog(items, settings))
	return nil
}
