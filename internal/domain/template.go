package domain

import "time"

// Template is a curated, reusable itinerary in the same day/slot shape as
// Plan.Schedule. Its items carry their own IsLocked flags.
type Template struct {
	NumericID   int
	ID          string
	Name        string
	Region      string
	Description string
	DayCount    int
	Schedule    Schedule
}

// CreatePlanRequest is the payload accepted by plan creation. It is one of
// BlankPlanRequest or TemplatePlanRequest.
type CreatePlanRequest interface {
	isCreatePlanRequest()
}

// BlankPlanRequest creates a plan with TotalDays empty days.
type BlankPlanRequest struct {
	Name      string
	Region    string
	StartDate *time.Time
	TotalDays int
}

// TemplatePlanRequest creates a plan seeded from a template. The plan takes
// the template's region and day count.
type TemplatePlanRequest struct {
	Name      string
	StartDate *time.Time
	Template  Template
}

func (BlankPlanRequest) isCreatePlanRequest()    {}
func (TemplatePlanRequest) isCreatePlanRequest() {}

