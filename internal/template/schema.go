package template

import "github.com/alexanderramin/itinera/internal/catalog"

// TemplateSchema is the top-level structure of a template file (JSON or
// YAML). Schedule maps "Day n" keys to slot names to items.
type TemplateSchema struct {
	ID          string                             `json:"id" yaml:"id"`
	NumericID   int                                `json:"numeric_id,omitempty" yaml:"numeric_id,omitempty"`
	Name        string                             `json:"name" yaml:"name"`
	Region      string                             `json:"region,omitempty" yaml:"region,omitempty"`
	Description string                             `json:"description,omitempty" yaml:"description,omitempty"`
	DayCount    int                                `json:"day_count,omitempty" yaml:"day_count,omitempty"`
	Schedule    map[string]map[string][]ItemConfig `json:"schedule" yaml:"schedule"`
}

// ItemConfig is a catalog entry plus placement fields. Ref names a catalog
// item to start from; fields set inline override it.
type ItemConfig struct {
	catalog.Entry `yaml:",inline"`
	Ref           string `json:"ref,omitempty" yaml:"ref,omitempty"`
	StartTime     string `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	Note          string `json:"note,omitempty" yaml:"note,omitempty"`
	Locked        *bool  `json:"locked,omitempty" yaml:"locked,omitempty"` // defaults to premium
}
