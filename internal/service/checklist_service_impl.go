package service

import (
	"context"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/notify"
	"github.com/alexanderramin/itinera/internal/schedule"
)

type checklistService struct {
	w *Workspace
}

func NewChecklistService(w *Workspace) ChecklistService {
	return &checklistService{w: w}
}

func (s *checklistService) List(ctx context.Context) ([]domain.ChecklistItem, error) {
	plan, err := s.w.store.Active()
	if err != nil {
		return nil, err
	}
	return plan.Checklist, nil
}

func (s *checklistService) Add(ctx context.Context, text string) (Change, error) {
	change, err := s.w.apply(ctx, func(p domain.Plan) (domain.Plan, bool) {
		return s.w.mutator.AddChecklistItem(p, text)
	})
	if err != nil {
		return Change{}, err
	}
	if change.Applied {
		s.w.notify(ctx, notify.SeveritySuccess, "Added %q to the checklist", text)
	} else {
		s.w.notify(ctx, notify.SeverityWarning, "Checklist entries need some text")
	}
	return change, nil
}

func (s *checklistService) Toggle(ctx context.Context, id string) (Change, error) {
	change, err := s.w.apply(ctx, func(p domain.Plan) (domain.Plan, bool) {
		return schedule.ToggleChecklistItem(p, id)
	})
	if err != nil {
		return Change{}, err
	}
	s.reportMissing(ctx, change, id)
	return change, nil
}

func (s *checklistService) Remove(ctx context.Context, id string) (Change, error) {
	change, err := s.w.apply(ctx, func(p domain.Plan) (domain.Plan, bool) {
		return schedule.RemoveChecklistItem(p, id)
	})
	if err != nil {
		return Change{}, err
	}
	s.reportMissing(ctx, change, id)
	return change, nil
}

func (s *checklistService) reportMissing(ctx context.Context, change Change, id string) {
	if !change.Applied {
		s.w.notify(ctx, notify.SeverityWarning, "No checklist entry matches %q", id)
	}
}
