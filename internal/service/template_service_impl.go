package service

import (
	"context"
	"time"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/merge"
	"github.com/alexanderramin/itinera/internal/notify"
	tmpl "github.com/alexanderramin/itinera/internal/template"
)

type templateService struct {
	w      *Workspace
	source tmpl.Source
	plans  PlanService
}

func NewTemplateService(w *Workspace, source tmpl.Source) TemplateService {
	return &templateService{w: w, source: source, plans: NewPlanService(w)}
}

func (s *templateService) List(ctx context.Context) ([]tmpl.Summary, error) {
	return s.source.List()
}

func (s *templateService) Get(ctx context.Context, ref string) (domain.Template, error) {
	return s.source.Get(ref)
}

// Apply merges a template into the active plan. When the destination days
// already hold locked items the merge waits behind the unlock gate unless
// skipConfirm is set.
func (s *templateService) Apply(ctx context.Context, ref string, skipConfirm bool) (res TemplateApplied, err error) {
	fields := map[string]any{"template": ref, "skip_confirm": skipConfirm}
	defer s.w.track(ctx, "apply-template", fields)(&err)

	t, err := s.source.Get(ref)
	if err != nil {
		return TemplateApplied{}, err
	}
	plan, err := s.w.store.Active()
	if err != nil {
		return TemplateApplied{}, err
	}

	var result merge.Result
	change, err := s.w.applyTo(ctx, plan.ID, func(p domain.Plan) (domain.Plan, bool) {
		result = s.w.merger.Apply(p, t, skipConfirm, s.w.gate)
		return result.Plan, result.Applied
	})
	if err != nil {
		return TemplateApplied{}, err
	}

	res = TemplateApplied{
		GatedChange: GatedChange{Change: change, Pending: result.Pending},
		Template:    t,
		Stats:       result.Stats,
	}
	if result.Pending != nil {
		s.w.notifyPending(ctx, result.Pending)
		return res, nil
	}
	fields["items_added"] = res.Stats.ItemsAdded
	fields["days_added"] = res.Stats.DaysAdded
	s.w.notify(ctx, notify.SeveritySuccess, "Applied %s: %d item(s) added, %d day(s) added",
		t.Name, res.Stats.ItemsAdded, res.Stats.DaysAdded)
	return res, nil
}

// CreatePlan creates a new plan seeded from a template.
func (s *templateService) CreatePlan(ctx context.Context, ref, name string, start *time.Time) (domain.Plan, error) {
	t, err := s.source.Get(ref)
	if err != nil {
		return domain.Plan{}, err
	}
	if name == "" {
		name = t.Name
	}
	return s.plans.Create(ctx, domain.TemplatePlanRequest{Name: name, StartDate: start, Template: t})
}
