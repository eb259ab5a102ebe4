package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/itinera/internal/budget"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/notify"
	"github.com/alexanderramin/itinera/internal/repository"
)

type budgetService struct {
	w        *Workspace
	settings repository.BudgetRepo
	initial  domain.BudgetSettings
	rates    budget.Rates
}

// NewBudgetService serves budget views. initial is used until settings are
// first saved; rates is the exchange rate table for SetCurrency.
func NewBudgetService(w *Workspace, settings repository.BudgetRepo, initial domain.BudgetSettings, rates budget.Rates) BudgetService {
	if rates == nil {
		rates = budget.DefaultRates
	}
	return &budgetService{w: w, settings: settings, initial: initial, rates: rates}
}

func (s *budgetService) Settings(ctx context.Context) (domain.BudgetSettings, error) {
	settings, found, err := s.settings.Get(ctx)
	if err != nil {
		return domain.BudgetSettings{}, err
	}
	if !found {
		return s.initial, nil
	}
	return settings, nil
}

func (s *budgetService) Report(ctx context.Context) (BudgetReport, error) {
	plan, err := s.w.store.Active()
	if err != nil {
		return BudgetReport{}, err
	}
	settings, err := s.Settings(ctx)
	if err != nil {
		return BudgetReport{}, err
	}
	return BudgetReport{
		Plan:     plan,
		Settings: settings,
		Summary:  budget.Summarize(plan, settings),
		PerDay:   budget.PerDay(plan),
	}, nil
}

// SetLimit parses displayInput in the display currency and stores the
// limit in base units. Unparsable input clears the limit.
func (s *budgetService) SetLimit(ctx context.Context, displayInput string) (settings domain.BudgetSettings, err error) {
	defer s.w.track(ctx, "set-budget-limit", map[string]any{"input": displayInput})(&err)

	current, err := s.Settings(ctx)
	if err != nil {
		return domain.BudgetSettings{}, err
	}
	settings = budget.SetLimitFromDisplay(current, displayInput)
	if err = s.settings.Upsert(ctx, settings); err != nil {
		return domain.BudgetSettings{}, err
	}
	if settings.Limit == 0 {
		s.w.notify(ctx, notify.SeverityInfo, "Budget limit cleared")
	} else {
		s.w.notify(ctx, notify.SeveritySuccess, "Budget limit set to %.2f %s",
			budget.ToDisplay(settings.Limit, settings.ExchangeRate), settings.Currency)
	}
	return settings, nil
}

func (s *budgetService) SetCurrency(ctx context.Context, code string) (settings domain.BudgetSettings, err error) {
	defer s.w.track(ctx, "set-currency", map[string]any{"currency": code})(&err)

	current, err := s.Settings(ctx)
	if err != nil {
		return domain.BudgetSettings{}, err
	}
	settings, ok := s.rates.WithCurrency(current, code)
	if !ok {
		return current, fmt.Errorf("%w %q (known: %s)", ErrUnknownCurrency, code, strings.Join(s.rates.Codes(), ", "))
	}
	if err = s.settings.Upsert(ctx, settings); err != nil {
		return domain.BudgetSettings{}, err
	}
	s.w.notify(ctx, notify.SeveritySuccess, "Showing amounts in %s", settings.Currency)
	return settings, nil
}

func (s *budgetService) Rates() budget.Rates {
	return s.rates
}
