package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

// Trip pace levels. Pace bounds how many visits a single day may hold.
const (
	PaceRelax  = "relax"
	PaceNormal = "normal"
	PaceMax    = "max"
)

// Trip budget bands.
const (
	BudgetLow  = "dollar"
	BudgetMid  = "dollarDollar"
	BudgetHigh = "dollarDollarDollar"
)

// Trip represents a planned journey owned by a user.
type Trip struct {
	ID        string         `db:"id" json:"id"`
	UserID    string         `db:"user_id" json:"user_id"`
	Title     string         `db:"title" json:"title"`
	City      string         `db:"city" json:"city,omitempty"`
	DestTz    string         `db:"dest_tz" json:"dest_tz"`
	StartDate time.Time      `db:"start_date" json:"start_date"`
	EndDate   time.Time      `db:"end_date" json:"end_date"`
	Pace      string         `db:"pace" json:"pace"`
	DayStart  string         `db:"day_start" json:"day_start"`
	DayEnd    string         `db:"day_end" json:"day_end"`
	Budget    string         `db:"budget" json:"budget"`
	MealPlan  string         `db:"meal_plan" json:"meal_plan"`
	Interests types.JSONText `db:"interests" json:"interests,omitempty"`
	Cuisines  pq.StringArray `db:"cuisines" json:"cuisines"`
	// LastGeneratedAt records when the itinerary was last regenerated.
	LastGeneratedAt *time.Time `db:"last_generated_at" json:"last_generated_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// ItemCap maps the trip pace to the maximum number of agenda items per day.
func (t *Trip) ItemCap() int {
	switch t.Pace {
	case PaceRelax:
		return 4
	case PaceNormal:
		return 5
	default:
		return 6
	}
}

// TripDay is one local calendar day of a trip.
type TripDay struct {
	ID        string         `db:"id" json:"id"`
	TripID    string         `db:"trip_id" json:"trip_id"`
	DateLocal time.Time      `db:"date_local" json:"date_local"`
	City      string         `db:"city" json:"city,omitempty"`
	AreaFocus pq.StringArray `db:"area_focus" json:"area_focus"`
	Theme     string         `db:"theme" json:"theme,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}
