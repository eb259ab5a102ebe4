package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/service"
	"github.com/spf13/cobra"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Place, edit and move items in the active plan",
		Long: `Items are addressed as DAY/SLOT/INDEX, e.g. 2/evening/0. The index is
the [n] shown by "itinera day show". Slots: morning, afternoon, evening,
night, accommodation.`,
	}

	cmd.AddCommand(
		newItemAddCmd(app),
		newItemRemoveCmd(app),
		newItemUpdateCmd(app),
		newItemMoveCmd(app),
	)

	return cmd
}

func newItemAddCmd(app *App) *cobra.Command {
	var (
		slot     = slotValue{slot: domain.SlotMorning}
		itemType = itemTypeValue{t: domain.ItemAttraction}
		title    string
		price    int
		at       string
		note     string
	)

	cmd := &cobra.Command{
		Use:   "add DAY [CATALOG-ITEM]",
		Short: "Add a catalog item, or a custom one with --title",
		Example: `  itinera item add 1 fushimi-inari --slot morning --at 08:00
  itinera item add 2 --title "Ramen at Ichiran" --type food --price 1200 --slot night`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			day, err := parseDay(args[0])
			if err != nil {
				return err
			}
			if at, err = domain.ParseStartTime(at); err != nil {
				return err
			}

			var (
				change service.Change
				placed domain.ScheduleItem
			)
			switch {
			case len(args) == 2:
				change, placed, err = app.Schedule.AddCatalogItem(ctx, day, slot.slot, args[1])
			case strings.TrimSpace(title) != "":
				change, placed, err = app.Schedule.AddItem(ctx, day, slot.slot, domain.TravelItem{
					Title: strings.TrimSpace(title),
					Type:  itemType.t,
					Price: price,
				})
			default:
				return fmt.Errorf("give a catalog item or --title")
			}
			if err != nil || !change.Applied {
				return err
			}

			addr := domain.Address{Day: day, Slot: slot.slot, Index: len(change.Plan.Schedule[domain.DayKey(day)].Items(slot.slot)) - 1}
			if at != "" || note != "" {
				patch := domain.ItemPatch{}
				if at != "" {
					patch.StartTime = &at
				}
				if note != "" {
					patch.Note = &note
				}
				if _, err := app.Schedule.UpdateItem(ctx, addr, patch); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s at %s %s\n", formatter.Bold(placed.Title), formatter.Dim(addrArg(addr)), formatter.LockBadge(placed.IsLocked))
			return nil
		},
	}

	cmd.Flags().Var(&slot, "slot", "Slot: morning, afternoon, evening, night, accommodation")
	cmd.Flags().StringVar(&title, "title", "", "Title of a custom item")
	cmd.Flags().Var(&itemType, "type", "Category of a custom item: attraction, food, hotel, transport, shopping, other")
	cmd.Flags().IntVar(&price, "price", 0, "Price of a custom item in the base currency")
	cmd.Flags().StringVar(&at, "at", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&note, "note", "", "Free-form note")

	return cmd
}

func newItemRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ADDR",
		Aliases: []string{"rm"},
		Short:   "Remove an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			change, err := app.Schedule.RemoveItem(cmd.Context(), addr)
			if err != nil || !change.Applied {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed item at %s\n", addrArg(addr))
			return nil
		},
	}
}

func newItemUpdateCmd(app *App) *cobra.Command {
	var (
		title    string
		itemType itemTypeValue
		price    int
		at       string
		note     string
	)

	cmd := &cobra.Command{
		Use:   "update ADDR",
		Short: "Edit an item's title, type, price, time or note",
		Example: `  itinera item update 1/morning/0 --at 07:30 --note "beat the crowds"
  itinera item update 1/morning/0 --at ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseAddress(args[0])
			if err != nil {
				return err
			}

			var patch domain.ItemPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if itemType.set {
				patch.Type = &itemType.t
			}
			if flags.Changed("price") {
				patch.Price = &price
			}
			if flags.Changed("at") {
				patch.StartTime = &at
			}
			if flags.Changed("note") {
				patch.Note = &note
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to update: pass at least one of --title, --type, --price, --at, --note")
			}

			change, err := app.Schedule.UpdateItem(cmd.Context(), addr, patch)
			if err != nil || !change.Applied {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated item at %s\n", addrArg(addr))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().Var(&itemType, "type", "New category")
	cmd.Flags().IntVar(&price, "price", 0, "New price in the base currency")
	cmd.Flags().StringVar(&at, "at", "", "Start time (HH:MM); empty clears it")
	cmd.Flags().StringVar(&note, "note", "", "Note; empty clears it")

	return cmd
}

func newItemMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move ADDR DAY SLOT",
		Short: "Move an item to the end of another day/slot",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			day, err := parseDay(args[1])
			if err != nil {
				return err
			}
			slot, err := domain.ParseSlot(args[2])
			if err != nil {
				return err
			}
			change, err := app.Schedule.MoveItem(cmd.Context(), src, day, slot)
			if err != nil || !change.Applied {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to day %d %s\n", addrArg(src), day, slot)
			return nil
		},
	}
}

// addrArg formats an address the way item commands accept it.
func addrArg(a domain.Address) string {
	return fmt.Sprintf("%d/%s/%d", a.Day, a.Slot, a.Index)
}
