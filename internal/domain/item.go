package domain

import (
	"fmt"
	"strings"
	"time"
)

type ItemType string

const (
	ItemAttraction ItemType = "attraction"
	ItemFood       ItemType = "food"
	ItemHotel      ItemType = "hotel"
	ItemTransport  ItemType = "transport"
	ItemShopping   ItemType = "shopping"
	ItemOther      ItemType = "other"
)

// ItemTypes is the canonical category order used by budget breakdowns.
var ItemTypes = []ItemType{
	ItemAttraction,
	ItemFood,
	ItemHotel,
	ItemTransport,
	ItemShopping,
	ItemOther,
}

var itemTypeLabels = map[ItemType]string{
	ItemAttraction: "Sightseeing",
	ItemFood:       "Food & Drink",
	ItemHotel:      "Lodging",
	ItemTransport:  "Transport",
	ItemShopping:   "Shopping",
	ItemOther:      "Other",
}

var itemTypeColors = map[ItemType]string{
	ItemAttraction: "#83a598",
	ItemFood:       "#fe8019",
	ItemHotel:      "#d3869b",
	ItemTransport:  "#8ec07c",
	ItemShopping:   "#fabd2f",
	ItemOther:      "#928374",
}

// ParseItemType normalizes s into a known ItemType. Aliases used by curated
// data ("restaurant", "lodging", ...) are folded in; anything else is ItemOther.
func ParseItemType(s string) ItemType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "attraction", "sight", "sightseeing", "spot":
		return ItemAttraction
	case "food", "meal", "restaurant", "cafe":
		return ItemFood
	case "hotel", "lodging", "accommodation", "stay":
		return ItemHotel
	case "transport", "transit", "train", "flight":
		return ItemTransport
	case "shopping", "shop":
		return ItemShopping
	default:
		return ItemOther
	}
}

// Label returns the human-readable category name.
func (t ItemType) Label() string {
	if l, ok := itemTypeLabels[t]; ok {
		return l
	}
	return itemTypeLabels[ItemOther]
}

// Color returns the category's display color as a hex string.
func (t ItemType) Color() string {
	if c, ok := itemTypeColors[t]; ok {
		return c
	}
	return itemTypeColors[ItemOther]
}

// Normalize maps unknown values onto ItemOther.
func (t ItemType) Normalize() ItemType {
	if _, ok := itemTypeLabels[t]; ok {
		return t
	}
	return ItemOther
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TravelItem is a curated catalog entry. Price is denominated in the base
// currency.
type TravelItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Type        ItemType `json:"type"`
	Price       int      `json:"price"`
	Image       string   `json:"image,omitempty"`
	Coordinates *LatLng  `json:"coordinates,omitempty"`
	IsPremium   bool     `json:"isPremium,omitempty"`
	Author      string   `json:"author,omitempty"`
	Description string   `json:"description,omitempty"`
	DurationMin int      `json:"durationMin,omitempty"`
}

// ScheduleItem is one placement of a TravelItem inside a plan. The same
// catalog item may be placed many times; InstanceID tells them apart.
type ScheduleItem struct {
	TravelItem
	InstanceID string `json:"instanceId"`
	Day        int    `json:"day"`
	StartTime  string `json:"startTime,omitempty"`
	IsLocked   bool   `json:"isLocked"`
	Note       string `json:"note,omitempty"`
}

// ItemPatch carries the fields UpdateItem may change. Nil fields are left
// untouched. Identity fields (InstanceID, Day) and the lock flag are absent:
// locks only clear through the gate's batch unlock.
type ItemPatch struct {
	Title       *string
	Type        *ItemType
	Price       *int
	StartTime   *string
	Note        *string
	Coordinates *LatLng
}

// Apply returns a copy of item with the non-nil patch fields merged in.
func (p ItemPatch) Apply(item ScheduleItem) ScheduleItem {
	item.Title = CoalesceStrPtr(item.Title, p.Title)
	item.Price = IntFromPtrWithDefault(item.Price, p.Price)
	item.StartTime = CoalesceStrPtr(item.StartTime, p.StartTime)
	item.Note = CoalesceStrPtr(item.Note, p.Note)
	if p.Type != nil {
		item.Type = p.Type.Normalize()
	}
	if p.Coordinates != nil {
		c := *p.Coordinates
		item.Coordinates = &c
	}
	return item
}

// IsEmpty reports whether the patch would change nothing.
func (p ItemPatch) IsEmpty() bool {
	return p.Title == nil && p.Type == nil && p.Price == nil && p.StartTime == nil &&
		p.Note == nil && p.Coordinates == nil
}

// ParseStartTime normalizes a wall-clock time to "HH:MM". Empty input means
// unset and is returned as "".
func ParseStartTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return "", fmt.Errorf("invalid start time %q (want HH:MM)", s)
	}
	return t.Format("15:04"), nil
}
