package template

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/itinera/internal/domain"
)

// ValidateSchema checks a TemplateSchema for structural errors.
// Returns a slice of errors (empty if valid). Unknown slots and malformed
// day keys are not errors; ToDomain drops them with a warning.
func ValidateSchema(schema *TemplateSchema) []error {
	var errs []error

	if schema.ID == "" {
		errs = append(errs, fmt.Errorf("template id is required"))
	}
	if schema.Name == "" {
		errs = append(errs, fmt.Errorf("template name is required"))
	}
	if schema.DayCount < 0 {
		errs = append(errs, fmt.Errorf("day_count must not be negative"))
	}
	if len(schema.Schedule) == 0 {
		errs = append(errs, fmt.Errorf("schedule must have at least one day"))
	}

	for _, key := range sortedKeys(schema.Schedule) {
		slots := schema.Schedule[key]
		for _, slot := range sortedKeys(slots) {
			for i, item := range slots[slot] {
				where := fmt.Sprintf("%s/%s[%d]", key, slot, i)
				if item.Title == "" && item.Ref == "" {
					errs = append(errs, fmt.Errorf("%s: title or ref is required", where))
				}
				if item.Price < 0 {
					errs = append(errs, fmt.Errorf("%s: price must not be negative", where))
				}
				if _, err := domain.ParseStartTime(item.StartTime); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", where, err))
				}
			}
		}
	}

	return errs
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
