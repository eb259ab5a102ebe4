package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/gate"
	"github.com/alexanderramin/itinera/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// itineraHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func itineraHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// runForm renders on stderr so command output on stdout stays clean.
func runForm(form *huh.Form) error {
	err := form.
		WithTheme(itineraHuhTheme()).
		WithShowHelp(false).
		WithProgramOptions(tea.WithOutput(os.Stderr)).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return errAborted
	}
	return err
}

var errAborted = errors.New("aborted")

// huhConfirm asks a yes/no question. Aborting counts as no.
func huhConfirm(title, description string) (bool, error) {
	var ok bool
	err := runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Unlock").
				Negative("Cancel").
				Value(&ok),
		),
	))
	if errors.Is(err, errAborted) {
		return false, nil
	}
	return ok, err
}

// resolveGate settles an action held by the unlock gate: interactive
// sessions are asked, everything else is cancelled with a hint to rerun
// with --yes. It returns the plan after the action ran, or false when the
// action was dropped.
func resolveGate(cmd *cobra.Command, app *App, pending *gate.Pending) (domain.Plan, bool, error) {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatter.FormatPending(pending))

	if !app.interactive() && app.Confirm == nil {
		app.Gate.Cancel(ctx)
		return domain.Plan{}, false, fmt.Errorf("%w: %s would unlock premium items; rerun with --yes", service.ErrConfirmationRequired, pending.Action.Name)
	}

	ok, err := app.confirm("Unlock locked items and continue?",
		fmt.Sprintf("Every locked item in the plan will be unlocked before %s runs.", pending.Action.Name))
	if err != nil {
		app.Gate.Cancel(ctx)
		return domain.Plan{}, false, err
	}
	if !ok {
		app.Gate.Cancel(ctx)
		fmt.Fprintln(out, formatter.Dim("Cancelled; nothing changed."))
		return domain.Plan{}, false, nil
	}
	plan, err := app.Gate.Confirm(ctx)
	if err != nil {
		return domain.Plan{}, false, err
	}
	return plan, true, nil
}

// planWizard collects a blank plan request from huh inputs.
func planWizard(req *domain.BlankPlanRequest) error {
	var days = "3"
	var start string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Trip name").
				Placeholder("Autumn in Kyoto").
				Value(&req.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Region").
				Placeholder("Kyoto").
				Value(&req.Region),
			huh.NewInput().
				Title("Days").
				Value(&days).
				Validate(func(s string) error {
					if n, err := strconv.Atoi(strings.TrimSpace(s)); err != nil || n < 1 {
						return fmt.Errorf("enter a number from 1")
					}
					return nil
				}),
			huh.NewInput().
				Title("Start date").
				Description("YYYY-MM-DD, optional").
				Value(&start).
				Validate(validateOptionalDate),
		),
	)
	if err := runForm(form); err != nil {
		return err
	}
	req.TotalDays, _ = strconv.Atoi(strings.TrimSpace(days))
	if start = strings.TrimSpace(start); start != "" {
		d, _ := parseDate(start)
		req.StartDate = &d
	}
	return nil
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string.
func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := parseDate(s)
	return err
}
