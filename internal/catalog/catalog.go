// Package catalog holds the curated travel items users can place into a
// plan. It is read-only at runtime.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/itinera/internal/domain"
)

//go:embed data/catalog.json
var builtin []byte

// Entry is the on-disk shape of a catalog item, shared with template files.
type Entry struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Type        string       `json:"type" yaml:"type"`
	Price       int          `json:"price" yaml:"price"`
	Image       string       `json:"image,omitempty" yaml:"image,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
	Premium     bool         `json:"premium,omitempty" yaml:"premium,omitempty"`
	Author      string       `json:"author,omitempty" yaml:"author,omitempty"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	DurationMin int          `json:"duration_min,omitempty" yaml:"duration_min,omitempty"`
}

type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// TravelItem converts the entry, normalizing unknown types to other.
func (e Entry) TravelItem() domain.TravelItem {
	item := domain.TravelItem{
		ID:          strings.TrimSpace(e.ID),
		Title:       strings.TrimSpace(e.Title),
		Type:        domain.ParseItemType(e.Type),
		Price:       e.Price,
		Image:       e.Image,
		IsPremium:   e.Premium,
		Author:      e.Author,
		Description: e.Description,
		DurationMin: e.DurationMin,
	}
	if e.Coordinates != nil {
		item.Coordinates = &domain.LatLng{Lat: e.Coordinates.Lat, Lng: e.Coordinates.Lng}
	}
	return item
}

type file struct {
	Items []Entry `json:"items" yaml:"items"`
}

// Resolver looks up a position for a place name or catalog id.
type Resolver interface {
	ResolveCoordinates(key string) (domain.LatLng, bool)
}

type Catalog struct {
	items   []domain.TravelItem
	byID    map[string]int
	byTitle map[string]int
}

var _ Resolver = (*Catalog)(nil)

// Builtin returns the catalog compiled into the binary.
func Builtin() *Catalog {
	c, err := Parse(builtin, ".json")
	if err != nil {
		panic(fmt.Sprintf("builtin catalog: %v", err))
	}
	return c
}

// Load reads a catalog file. ".yaml" and ".yml" files are YAML, anything
// else is JSON.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	c, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func Parse(data []byte, ext string) (*Catalog, error) {
	var f file
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing catalog: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing catalog: %w", err)
		}
	}
	if errs := ValidateEntries(f.Items); len(errs) > 0 {
		return nil, fmt.Errorf("invalid catalog: %w", errs[0])
	}
	return New(f.Items), nil
}

// New indexes entries. Later entries with a duplicate title do not replace
// the first one in the title index.
func New(entries []Entry) *Catalog {
	c := &Catalog{
		items:   make([]domain.TravelItem, 0, len(entries)),
		byID:    make(map[string]int, len(entries)),
		byTitle: make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		item := e.TravelItem()
		idx := len(c.items)
		c.items = append(c.items, item)
		c.byID[strings.ToLower(item.ID)] = idx
		if _, dup := c.byTitle[strings.ToLower(item.Title)]; !dup {
			c.byTitle[strings.ToLower(item.Title)] = idx
		}
	}
	return c
}

// ValidateEntries reports structural problems; an empty slice means valid.
func ValidateEntries(entries []Entry) []error {
	var errs []error
	seen := map[string]bool{}
	for i, e := range entries {
		id := strings.ToLower(strings.TrimSpace(e.ID))
		if id == "" {
			errs = append(errs, fmt.Errorf("item[%d]: id is required", i))
		} else if seen[id] {
			errs = append(errs, fmt.Errorf("item[%d]: duplicate id %q", i, e.ID))
		}
		seen[id] = true
		if strings.TrimSpace(e.Title) == "" {
			errs = append(errs, fmt.Errorf("item[%d]: title is required", i))
		}
		if e.Price < 0 {
			errs = append(errs, fmt.Errorf("item[%d]: price must not be negative", i))
		}
	}
	return errs
}

func (c *Catalog) Len() int { return len(c.items) }

// List returns items in file order, optionally restricted to types.
func (c *Catalog) List(types ...domain.ItemType) []domain.TravelItem {
	want := make(map[domain.ItemType]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	out := make([]domain.TravelItem, 0, len(c.items))
	for _, item := range c.items {
		if len(want) == 0 || want[item.Type] {
			out = append(out, item)
		}
	}
	return out
}

// Get looks up an item by id or exact title, case-insensitively.
func (c *Catalog) Get(key string) (domain.TravelItem, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	if idx, ok := c.byID[key]; ok {
		return c.items[idx], true
	}
	if idx, ok := c.byTitle[key]; ok {
		return c.items[idx], true
	}
	return domain.TravelItem{}, false
}

// Find returns items whose title, id or description contains query,
// title matches first.
func (c *Catalog) Find(query string) []domain.TravelItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.List()
	}
	type hit struct {
		item  domain.TravelItem
		rank  int
		order int
	}
	var hits []hit
	for i, item := range c.items {
		switch {
		case strings.Contains(strings.ToLower(item.Title), q):
			hits = append(hits, hit{item, 0, i})
		case strings.Contains(strings.ToLower(item.ID), q):
			hits = append(hits, hit{item, 1, i})
		case strings.Contains(strings.ToLower(item.Description), q):
			hits = append(hits, hit{item, 2, i})
		}
	}
	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].rank != hits[b].rank {
			return hits[a].rank < hits[b].rank
		}
		return hits[a].order < hits[b].order
	})
	out := make([]domain.TravelItem, len(hits))
	for i, h := range hits {
		out[i] = h.item
	}
	return out
}

// ResolveCoordinates returns the position of a catalog item by id or title.
func (c *Catalog) ResolveCoordinates(key string) (domain.LatLng, bool) {
	item, ok := c.Get(key)
	if !ok || item.Coordinates == nil {
		return domain.LatLng{}, false
	}
	return *item.Coordinates, true
}
