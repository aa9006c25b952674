package models

import (
	"time"

	"github.com/nomadly/itinerary-api/internal/planner"
)

// FixedWindow is an immovable commitment occupying part of a day, such as a
// flight or a booked tour.
type FixedWindow struct {
	ID       string    `db:"id" json:"id"`
	DayID    string    `db:"day_id" json:"day_id"`
	Title    string    `db:"title" json:"title"`
	StartAt  time.Time `db:"start_at" json:"start_at"`
	EndAt    time.Time `db:"end_at" json:"end_at"`
	Location string    `db:"location" json:"location,omitempty"`
}

// AgendaItem is a scheduled POI visit with concrete timestamps. Items for a
// day never overlap; the materializer enforces the invariant before insert.
type AgendaItem struct {
	ID        string    `db:"id" json:"id"`
	DayID     string    `db:"day_id" json:"day_id"`
	PoiID     string    `db:"poi_id" json:"poi_id"`
	StartAt   time.Time `db:"start_at" json:"start_at"`
	EndAt     time.Time `db:"end_at" json:"end_at"`
	Mode      string    `db:"mode" json:"mode"`
	Locked    bool      `db:"locked" json:"locked"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Interval views the item as a planner interval for conflict checks.
func (a *AgendaItem) Interval() planner.Interval {
	return planner.Interval{Start: a.StartAt, End: a.EndAt}
}

// FixedIntervals converts fixed windows for the free-segment calculator.
// Malformed rows pass through untouched; the planner drops them.
func FixedIntervals(windows []FixedWindow) []planner.Interval {
	out := make([]planner.Interval, 0, len(windows))
	for _, w := range windows {
		out = append(out, planner.Interval{Start: w.StartAt, End: w.EndAt})
	}
	return out
}

// AgendaIntervals converts agenda items for conflict checks.
func AgendaIntervals(items []AgendaItem) []planner.Interval {
	out := make([]planner.Interval, 0, len(items))
	for i := range items {
		out = append(out, items[i].Interval())
	}
	return out
}
