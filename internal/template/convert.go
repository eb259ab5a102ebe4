package template

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/itinera/internal/catalog"
	"github.com/alexanderramin/itinera/internal/domain"
)

// ItemLookup resolves catalog references. *catalog.Catalog satisfies it.
type ItemLookup interface {
	Get(key string) (domain.TravelItem, bool)
}

var _ ItemLookup = (*catalog.Catalog)(nil)

// ToDomain converts a validated schema into a domain.Template. Entries the
// engine cannot place (unknown slots, malformed or out-of-range day keys,
// unresolvable refs without a title) are dropped and reported as warnings.
func ToDomain(schema *TemplateSchema, lookup ItemLookup) (domain.Template, []string) {
	var warnings []string

	dayCount := schema.DayCount
	if dayCount == 0 {
		for key := range schema.Schedule {
			if n, ok := domain.ParseDayKey(key); ok && n > dayCount {
				dayCount = n
			}
		}
	}
	if dayCount < 1 {
		dayCount = 1
	}

	t := domain.Template{
		NumericID:   schema.NumericID,
		ID:          schema.ID,
		Name:        schema.Name,
		Region:      schema.Region,
		Description: schema.Description,
		DayCount:    dayCount,
		Schedule:    domain.NewSchedule(dayCount),
	}

	for _, key := range sortedKeys(schema.Schedule) {
		n, ok := domain.ParseDayKey(key)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("ignoring malformed day key %q", key))
			continue
		}
		if n > dayCount {
			warnings = append(warnings, fmt.Sprintf("ignoring %q beyond day_count %d", key, dayCount))
			continue
		}
		day := t.Schedule[domain.DayKey(n)]
		slots := schema.Schedule[key]
		for _, name := range sortedKeys(slots) {
			if _, err := domain.ParseSlot(name); err != nil {
				warnings = append(warnings, fmt.Sprintf("%s: ignoring unknown slot %q", key, name))
			}
		}
		for _, slot := range domain.Slots {
			for i, cfg := range slotItems(slots, slot) {
				item, err := toScheduleItem(cfg, n, lookup)
				if err != nil {
					warnings = append(warnings, fmt.Sprintf("%s/%s[%d]: %v", key, slot, i, err))
					continue
				}
				day.SetItems(slot, append(day.Items(slot), item))
			}
		}
		t.Schedule[domain.DayKey(n)] = day
	}
	return t, warnings
}

// slotItems finds the items for slot, matching names case-insensitively.
func slotItems(slots map[string][]ItemConfig, slot domain.Slot) []ItemConfig {
	var out []ItemConfig
	for _, name := range sortedKeys(slots) {
		if strings.EqualFold(strings.TrimSpace(name), string(slot)) {
			out = append(out, slots[name]...)
		}
	}
	return out
}

func toScheduleItem(cfg ItemConfig, day int, lookup ItemLookup) (domain.ScheduleItem, error) {
	var base domain.TravelItem
	if cfg.Ref != "" {
		var found bool
		if lookup != nil {
			base, found = lookup.Get(cfg.Ref)
		}
		if !found && cfg.Title == "" {
			return domain.ScheduleItem{}, fmt.Errorf("unknown catalog ref %q", cfg.Ref)
		}
	}

	inline := cfg.Entry.TravelItem()
	item := domain.ScheduleItem{TravelItem: base, Day: day, Note: cfg.Note}
	item.ID = domain.CoalesceStr(inline.ID, base.ID, cfg.Ref)
	item.Title = domain.CoalesceStr(inline.Title, base.Title)
	if cfg.Type != "" || cfg.Ref == "" {
		item.Type = inline.Type
	}
	if cfg.Price != 0 {
		item.Price = cfg.Price
	}
	item.Image = domain.CoalesceStr(inline.Image, base.Image)
	item.Author = domain.CoalesceStr(inline.Author, base.Author)
	item.Description = domain.CoalesceStr(inline.Description, base.Description)
	if inline.DurationMin != 0 {
		item.DurationMin = inline.DurationMin
	}
	if inline.Coordinates != nil {
		item.Coordinates = inline.Coordinates
	}
	item.IsPremium = base.IsPremium || inline.IsPremium
	if item.ID == "" {
		item.ID = slugify(item.Title)
	}

	start, err := domain.ParseStartTime(cfg.StartTime)
	if err != nil {
		return domain.ScheduleItem{}, err
	}
	item.StartTime = start
	item.IsLocked = domain.BoolFromPtrWithDefault(item.IsPremium, cfg.Locked)
	return item, nil
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
