package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/itinera/internal/domain"
)

const dateLayout = "2006-01-02"

func isNoActivePlan(err error) bool {
	return errors.Is(err, domain.ErrNoActivePlan)
}

// parseDay accepts "2", "day2" or "Day 2", the last being how days are
// printed.
func parseDay(s string) (int, error) {
	raw := strings.TrimSpace(s)
	num := raw
	if len(num) >= 3 && strings.EqualFold(num[:3], "day") {
		num = strings.TrimSpace(num[3:])
	}
	n, err := strconv.Atoi(num)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid day %q: use a number from 1", raw)
	}
	return n, nil
}

// parseAddress reads an item address written as DAY/SLOT/INDEX, for example
// "2/evening/0" or "day2/evening/0". The index may be omitted for 0.
func parseAddress(s string) (domain.Address, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) < 2 || len(parts) > 3 {
		return domain.Address{}, fmt.Errorf("invalid item address %q: use DAY/SLOT/INDEX, e.g. 1/morning/0", s)
	}
	day, err := parseDay(parts[0])
	if err != nil {
		return domain.Address{}, err
	}
	slot, err := domain.ParseSlot(parts[1])
	if err != nil {
		return domain.Address{}, err
	}
	index := 0
	if len(parts) == 3 {
		index, err = strconv.Atoi(parts[2])
		if err != nil || index < 0 {
			return domain.Address{}, fmt.Errorf("invalid item index %q", parts[2])
		}
	}
	return domain.Address{Day: day, Slot: slot, Index: index}, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	return d, nil
}

// resolveChecklistID matches an entry by exact id, unique id prefix, or
// case-insensitive text.
func resolveChecklistID(items []domain.ChecklistItem, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("checklist entry is required")
	}
	for _, it := range items {
		if it.ID == input {
			return it.ID, nil
		}
	}
	var matches []string
	for _, it := range items {
		if strings.HasPrefix(it.ID, input) || strings.EqualFold(it.Text, input) {
			matches = append(matches, it.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("checklist entry not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("checklist reference %q is ambiguous (%d matches)", input, len(matches))
	}
}
