package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/itinera/internal/catalog"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/gate"
	"github.com/alexanderramin/itinera/internal/notify"
	"github.com/alexanderramin/itinera/internal/schedule"
)

// CatalogLookup is the part of the catalog the schedule service needs.
type CatalogLookup interface {
	catalog.Resolver
	Get(key string) (domain.TravelItem, bool)
}

type scheduleService struct {
	w       *Workspace
	catalog CatalogLookup
}

func NewScheduleService(w *Workspace, cat CatalogLookup) ScheduleService {
	return &scheduleService{w: w, catalog: cat}
}

func (s *scheduleService) SelectDay(ctx context.Context, day int) (int, error) {
	selected, err := s.w.store.SelectDay(day)
	if err != nil {
		return 0, err
	}
	if err := s.w.persist(ctx, nil, ""); err != nil {
		return 0, err
	}
	return selected, nil
}

func (s *scheduleService) AddDay(ctx context.Context) (plan domain.Plan, err error) {
	defer s.w.track(ctx, "add-day", nil)(&err)

	change, err := s.w.apply(ctx, func(p domain.Plan) (domain.Plan, bool) {
		return schedule.AddDay(p), true
	})
	if err != nil {
		return domain.Plan{}, err
	}
	s.w.notify(ctx, notify.SeveritySuccess, "Added %s", domain.DayKey(change.Plan.TotalDays))
	return change.Plan, nil
}

// DeleteDay removes day and renumbers later days. A day holding locked
// items goes through the unlock gate unless skipConfirm is set.
func (s *scheduleService) DeleteDay(ctx context.Context, day int, skipConfirm bool) (res GatedChange, err error) {
	defer s.w.track(ctx, "delete-day", map[string]any{"day": day})(&err)

	plan, err := s.w.store.Active()
	if err != nil {
		return GatedChange{}, err
	}
	if !plan.HasDay(day) || plan.TotalDays <= 1 {
		s.w.notify(ctx, notify.SeverityWarning, "Cannot delete %s of a %d-day plan", domain.DayKey(day), plan.TotalDays)
		return GatedChange{Change: Change{Plan: plan}}, nil
	}

	action := gate.Action{
		Name: "delete-day",
		Apply: func(p domain.Plan) domain.Plan {
			next, _ := schedule.DeleteDay(p, day)
			return next
		},
	}
	res, err = s.w.gated(ctx, plan, action, skipConfirm, func(p domain.Plan) bool {
		return gate.DaysLocked(p, day)
	})
	if err != nil {
		return GatedChange{}, err
	}
	if res.Applied {
		s.w.notify(ctx, notify.SeveritySuccess, "Deleted %s; %d day(s) left", domain.DayKey(day), res.Plan.TotalDays)
	}
	return res, nil
}

// AddItem places item at the end of day/slot. Missing coordinates are
// filled from the catalog when it knows the place.
func (s *scheduleService) AddItem(ctx context.Context, day int, slot domain.Slot, item domain.TravelItem) (change Change, placed domain.ScheduleItem, err error) {
	defer s.w.track(ctx, "add-item", map[string]any{"day": day, "slot": string(slot)})(&err)

	item.Type = item.Type.Normalize()
	if item.Coordinates == nil && s.catalog != nil {
		for _, key := range []string{item.ID, item.Title} {
			if pos, ok := s.catalog.ResolveCoordinates(key); ok && key != "" {
				item.Coordinates = &pos
				break
			}
		}
	}

	change, err = s.w.apply(ctx, func(p domain.Plan) (domain.Plan, bool) {
		var ok bool
		var next domain.Plan
		next, placed, ok = s.w.mutator.AddItem(p, day, slot, item)
		return next, ok
	})
	if err != nil {
		return Change{}, domain.ScheduleItem{}, err
	}
	if !change.Applied {
		s.w.notify(ctx, notify.SeverityWarning, "Cannot add to %s/%s: no such day or slot", domain.DayKey(day), slot)
		return change, domain.ScheduleItem{}, nil
	}
	s.w.notify(ctx, notify.SeveritySuccess, "Added %s to %s %s", placed.Title, domain.DayKey(day), slot)
	return change, placed, nil
}

func (s *scheduleService) AddCatalogItem(ctx context.Context, day int, slot domain.Slot, ref string) (Change, domain.ScheduleItem, error) {
	if s.catalog == nil {
		return Change{}, domain.ScheduleItem{}, fmt.Errorf("%w: %q (no catalog loaded)", ErrCatalogItemNotFound, ref)
	}
	item, ok := s.catalog.Get(ref)
	if !ok {
		return Change{}, domain.ScheduleItem{}, fmt.Errorf("%w: %q", ErrCatalogItemNotFound, ref)
	}
	return s.AddItem(ctx, day, slot, item)
}

func (s *scheduleService) RemoveItem(ctx context.Context, addr domain.Address) (change Change, err error) {
	defer s.w.track(ctx, "remove-item", map[string]any{"at": addr.String()})(&err)

	var removed domain.ScheduleItem
	change, err = s.w.apply(ctx, func(p domain.Plan) (domain.Plan, bool) {
		removed, _ = schedule.Lookup(p, addr)
		return schedule.RemoveItem(p, addr.Day, addr.Slot, addr.Index)
	})
	if err != nil {
		return Change{}, err
	}
	s.report(ctx, change, addr, "Removed %s", removed.Title)
	return change, nil
}

func (s *scheduleService) UpdateItem(ctx context.Context, addr domain.Address, patch domain.ItemPatch) (change Change, err error) {
	defer s.w.track(ctx, "update-item", map[string]any{"at": addr.String()})(&err)

	if patch.StartTime != nil {
		normalized, err := domain.ParseStartTime(*patch.StartTime)
		if err != nil {
			return Change{}, err
		}
		patch.StartTime = &normalized
	}
	change, err = s.w.apply(ctx, func(p domain.Plan) (domain.Plan, bool) {
		return schedule.UpdateItem(p, addr.Day, addr.Slot, addr.Index, patch)
	})
	if err != nil {
		return Change{}, err
	}
	item, _ := schedule.Lookup(change.Plan, addr)
	s.report(ctx, change, addr, "Updated %s", item.Title)
	return change, nil
}

func (s *scheduleService) MoveItem(ctx context.Context, src domain.Address, dstDay int, dstSlot domain.Slot) (change Change, err error) {
	fields := map[string]any{"from": src.String(), "to": fmt.Sprintf("%s/%s", domain.DayKey(dstDay), dstSlot)}
	defer s.w.track(ctx, "move-item", fields)(&err)

	var moved domain.ScheduleItem
	change, err = s.w.apply(ctx, func(p domain.Plan) (domain.Plan, bool) {
		moved, _ = schedule.Lookup(p, src)
		return schedule.MoveItem(p, src.Day, src.Slot, src.Index, dstDay, dstSlot)
	})
	if err != nil {
		return Change{}, err
	}
	s.report(ctx, change, src, "Moved %s to %s %s", moved.Title, domain.DayKey(dstDay), dstSlot)
	return change, nil
}

func (s *scheduleService) report(ctx context.Context, change Change, addr domain.Address, format string, args ...any) {
	if !change.Applied {
		s.w.notify(ctx, notify.SeverityWarning, "Nothing at %s; the item may have been moved or removed", addr)
		return
	}
	s.w.notify(ctx, notify.SeveritySuccess, format, args...)
}
