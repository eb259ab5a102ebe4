package schedule

import (
	"slices"
	"strings"

	"github.com/alexanderramin/itinera/internal/domain"
)

// DefaultChecklist is the packing list every new plan starts with.
var DefaultChecklist = []string{
	"Passport",
	"Phone charger",
	"Travel insurance",
	"Cash and cards",
	"Power adapter",
}

// SeedChecklist builds the default checklist entries with fresh ids.
func (m *Mutator) SeedChecklist() []domain.ChecklistItem {
	items := make([]domain.ChecklistItem, 0, len(DefaultChecklist))
	for _, text := range DefaultChecklist {
		items = append(items, domain.ChecklistItem{ID: m.newID(), Text: text})
	}
	return items
}

// AddChecklistItem appends an unchecked entry. Blank text is ignored.
func (m *Mutator) AddChecklistItem(p domain.Plan, text string) (domain.Plan, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return p, false
	}
	next := p.Clone()
	next.Checklist = append(next.Checklist, domain.ChecklistItem{ID: m.newID(), Text: text})
	return next, true
}

// ToggleChecklistItem flips the checked state of the entry with id.
func ToggleChecklistItem(p domain.Plan, id string) (domain.Plan, bool) {
	idx := checklistIndex(p, id)
	if idx < 0 {
		return p, false
	}
	next := p.Clone()
	next.Checklist[idx].Checked = !next.Checklist[idx].Checked
	return next, true
}

// RemoveChecklistItem deletes the entry with id.
func RemoveChecklistItem(p domain.Plan, id string) (domain.Plan, bool) {
	idx := checklistIndex(p, id)
	if idx < 0 {
		return p, false
	}
	next := p.Clone()
	next.Checklist = slices.Delete(next.Checklist, idx, idx+1)
	return next, true
}

// checklistIndex accepts a full id or a unique prefix of one.
func checklistIndex(p domain.Plan, id string) int {
	if id == "" {
		return -1
	}
	match := -1
	for i, c := range p.Checklist {
		if c.ID == id {
			return i
		}
		if strings.HasPrefix(c.ID, id) {
			if match >= 0 {
				return -1
			}
			match = i
		}
	}
	return match
}
