package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/notify"
)

type planService struct {
	w *Workspace
}

func NewPlanService(w *Workspace) PlanService {
	return &planService{w: w}
}

func (s *planService) Create(ctx context.Context, req domain.CreatePlanRequest) (plan domain.Plan, err error) {
	fields := map[string]any{"kind": "blank"}
	if r, ok := req.(domain.TemplatePlanRequest); ok {
		fields["kind"] = "template"
		fields["template"] = r.Template.ID
	}
	defer s.w.track(ctx, "create-plan", fields)(&err)

	plan, err = s.w.store.Create(req)
	if err != nil {
		return domain.Plan{}, err
	}
	if err = s.w.persist(ctx, &plan, ""); err != nil {
		return domain.Plan{}, err
	}
	fields["plan"] = plan.ID
	fields["days"] = plan.TotalDays
	s.w.notify(ctx, notify.SeveritySuccess, "Created %q with %d day(s)", plan.Name, plan.TotalDays)
	return plan, nil
}

func (s *planService) List(ctx context.Context) ([]domain.Plan, error) {
	return s.w.store.List(), nil
}

func (s *planService) Get(ctx context.Context, ref string) (domain.Plan, error) {
	return s.w.store.Resolve(ref)
}

// Active returns the active plan and selected day.
func (s *planService) Active(ctx context.Context) (domain.Plan, int, error) {
	plan, err := s.w.store.Active()
	if err != nil {
		return domain.Plan{}, 0, err
	}
	return plan, s.w.store.Selection().Day, nil
}

func (s *planService) Select(ctx context.Context, ref string) (domain.Plan, error) {
	plan, err := s.w.store.Resolve(ref)
	if err != nil {
		return domain.Plan{}, err
	}
	if err := s.w.store.Select(plan.ID); err != nil {
		return domain.Plan{}, err
	}
	if err := s.w.persist(ctx, nil, ""); err != nil {
		return domain.Plan{}, err
	}
	return plan, nil
}

func (s *planService) Update(ctx context.Context, ref string, upd PlanUpdate) (plan domain.Plan, err error) {
	defer s.w.track(ctx, "update-plan", map[string]any{"ref": ref})(&err)

	target, err := s.w.store.Resolve(ref)
	if err != nil {
		return domain.Plan{}, err
	}
	change, err := s.w.applyTo(ctx, target.ID, func(p domain.Plan) (domain.Plan, bool) {
		return applyPlanUpdate(p, upd)
	})
	if err != nil {
		return domain.Plan{}, err
	}
	if change.Applied {
		s.w.notify(ctx, notify.SeveritySuccess, "Updated %q", change.Plan.Name)
	}
	return change.Plan, nil
}

func applyPlanUpdate(p domain.Plan, upd PlanUpdate) (domain.Plan, bool) {
	next := p.Clone()
	changed := false
	if upd.Name != nil {
		if name := strings.TrimSpace(*upd.Name); name != "" && name != next.Name {
			next.Name = name
			changed = true
		}
	}
	if upd.Region != nil && strings.TrimSpace(*upd.Region) != next.Region {
		next.Region = strings.TrimSpace(*upd.Region)
		changed = true
	}
	switch {
	case upd.ClearStartDate && next.StartDate != nil:
		next.StartDate = nil
		changed = true
	case upd.StartDate != nil:
		d := *upd.StartDate
		next.StartDate = &d
		changed = true
	}
	next.SyncEndDate()
	return next, changed
}

func (s *planService) Delete(ctx context.Context, ref string) (err error) {
	defer s.w.track(ctx, "delete-plan", map[string]any{"ref": ref})(&err)

	plan, err := s.w.store.Resolve(ref)
	if err != nil {
		return err
	}
	if err = s.w.store.Delete(plan.ID); err != nil {
		return err
	}
	if err = s.w.persist(ctx, nil, plan.ID); err != nil {
		return err
	}
	s.w.notify(ctx, notify.SeveritySuccess, "Deleted %q", plan.Name)
	return nil
}
