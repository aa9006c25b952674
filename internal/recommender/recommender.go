package recommender

import (
	"context"

	"github.com/nomadly/itinerary-api/internal/planner"
)

// DayContext describes the day a producer should plan. Free segments are
// supplied for context only; producers are not trusted to respect them and
// the planner re-validates everything they return.
type DayContext struct {
	Destination  string             `json:"destination"`
	DayNumber    int                `json:"dayNumber"`
	Interests    []string           `json:"interests,omitempty"`
	Budget       string             `json:"budget,omitempty"`
	MealPlan     string             `json:"mealPlan,omitempty"`
	Theme        string             `json:"theme,omitempty"`
	FreeSegments []planner.Interval `json:"freeSegments,omitempty"`
	MaxItems     int                `json:"maxItems"`
}

// Producer proposes a raw day plan from a candidate set. Implementations are
// external and non-deterministic; their output is untrusted until it has
// passed through planner.ValidatePlan.
type Producer interface {
	ProposeDay(ctx context.Context, day DayContext, candidates []planner.Candidate) (planner.RawPlan, error)
}
