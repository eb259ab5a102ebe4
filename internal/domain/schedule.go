package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type Slot string

const (
	SlotMorning       Slot = "morning"
	SlotAfternoon     Slot = "afternoon"
	SlotEvening       Slot = "evening"
	SlotNight         Slot = "night"
	SlotAccommodation Slot = "accommodation"
)

// Slots lists the five time-of-day slots in canonical scan order.
var Slots = []Slot{
	SlotMorning,
	SlotAfternoon,
	SlotEvening,
	SlotNight,
	SlotAccommodation,
}

// ParseSlot resolves a slot name case-insensitively.
func ParseSlot(s string) (Slot, error) {
	candidate := Slot(strings.ToLower(strings.TrimSpace(s)))
	for _, slot := range Slots {
		if slot == candidate {
			return slot, nil
		}
	}
	return "", fmt.Errorf("unknown slot %q (want one of morning, afternoon, evening, night, accommodation)", s)
}

const dayKeyPrefix = "Day "

// DayKey returns the schedule key for day n ("Day 3").
func DayKey(n int) string {
	return dayKeyPrefix + strconv.Itoa(n)
}

// ParseDayKey extracts the day number from a key produced by DayKey.
func ParseDayKey(key string) (int, bool) {
	if !strings.HasPrefix(key, dayKeyPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(key, dayKeyPrefix))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// DaySchedule holds one day's items partitioned by slot. Slice position is
// display order and the address used by remove/update/move.
type DaySchedule struct {
	Morning       []ScheduleItem `json:"morning"`
	Afternoon     []ScheduleItem `json:"afternoon"`
	Evening       []ScheduleItem `json:"evening"`
	Night         []ScheduleItem `json:"night"`
	Accommodation []ScheduleItem `json:"accommodation"`
}

// Items returns the items in slot. The returned slice must not be modified.
func (d DaySchedule) Items(slot Slot) []ScheduleItem {
	switch slot {
	case SlotMorning:
		return d.Morning
	case SlotAfternoon:
		return d.Afternoon
	case SlotEvening:
		return d.Evening
	case SlotNight:
		return d.Night
	case SlotAccommodation:
		return d.Accommodation
	}
	return nil
}

// SetItems replaces the items in slot. Unknown slots are ignored.
func (d *DaySchedule) SetItems(slot Slot, items []ScheduleItem) {
	switch slot {
	case SlotMorning:
		d.Morning = items
	case SlotAfternoon:
		d.Afternoon = items
	case SlotEvening:
		d.Evening = items
	case SlotNight:
		d.Night = items
	case SlotAccommodation:
		d.Accommodation = items
	}
}

// Count returns the number of items across all slots.
func (d DaySchedule) Count() int {
	n := 0
	for _, slot := range Slots {
		n += len(d.Items(slot))
	}
	return n
}

// Clone returns a DaySchedule that shares no memory with d: slot slices get
// new backing arrays and each item's Coordinates its own LatLng.
func (d DaySchedule) Clone() DaySchedule {
	var out DaySchedule
	for _, slot := range Slots {
		items := d.Items(slot)
		cp := make([]ScheduleItem, len(items))
		copy(cp, items)
		for i := range cp {
			if c := cp[i].Coordinates; c != nil {
				ll := *c
				cp[i].Coordinates = &ll
			}
		}
		out.SetItems(slot, cp)
	}
	return out
}

// Schedule maps day keys to their slot contents.
type Schedule map[string]DaySchedule

// NewSchedule returns a schedule with empty days 1..days.
func NewSchedule(days int) Schedule {
	s := make(Schedule, days)
	for i := 1; i <= days; i++ {
		s[DayKey(i)] = DaySchedule{}.Clone()
	}
	return s
}

// Day returns the schedule for day n.
func (s Schedule) Day(n int) (DaySchedule, bool) {
	d, ok := s[DayKey(n)]
	return d, ok
}

// Clone deep-copies the schedule.
func (s Schedule) Clone() Schedule {
	out := make(Schedule, len(s))
	for k, d := range s {
		out[k] = d.Clone()
	}
	return out
}

// Address locates an item by day, slot and index.
type Address struct {
	Day   int
	Slot  Slot
	Index int
}

func (a Address) String() string {
	return fmt.Sprintf("%s/%s[%d]", DayKey(a.Day), a.Slot, a.Index)
}
