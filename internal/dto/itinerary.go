package dto

import (
	"time"

	"github.com/nomadly/itinerary-api/internal/models"
)

// DayDetail is a trip day with its fixed windows and scheduled items.
type DayDetail struct {
	Day   models.TripDay       `json:"day"`
	Fixed []models.FixedWindow `json:"fixed"`
	Items []models.AgendaItem  `json:"items"`
}

// ItineraryItemView is the readback shape for a single scheduled visit.
type ItineraryItemView struct {
	PoiID           string `json:"poiId"`
	PoiName         string `json:"poiName"`
	DurationMinutes int    `json:"durationMinutes"`
	IsMeal          bool   `json:"isMeal"`
	Notes           string `json:"notes"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
}

// ItineraryDay groups the scheduled visits of one local date.
type ItineraryDay struct {
	ID        string              `json:"id"`
	DateLocal time.Time           `json:"dateLocal"`
	Items     []ItineraryItemView `json:"items"`
}

// ItineraryResponse is the full day-by-day schedule of a trip.
type ItineraryResponse struct {
	Days      []ItineraryDay `json:"days"`
	Reasoning string         `json:"reasoning"`
}

// GenerateResponse reports the outcome of a trip regeneration.
type GenerateResponse struct {
	TripID    string `json:"tripId"`
	Days      int    `json:"days"`
	Items     int    `json:"items"`
	Reasoning string `json:"reasoning,omitempty"`
	Queued    bool   `json:"queued,omitempty"`
}
