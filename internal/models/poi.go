package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/nomadly/itinerary-api/internal/planner"
)

// POI is a visitable place in the catalog.
type POI struct {
	ID                string         `db:"id" json:"id"`
	Name              string         `db:"name" json:"name"`
	City              string         `db:"city" json:"city"`
	District          string         `db:"district" json:"district,omitempty"`
	Tags              pq.StringArray `db:"tags" json:"tags"`
	Mode              string         `db:"mode" json:"mode"`
	Cuisine           pq.StringArray `db:"cuisine" json:"cuisine"`
	PriceBand         string         `db:"price_band" json:"price_band,omitempty"`
	Iconic            bool           `db:"iconic" json:"iconic"`
	Popularity        int            `db:"popularity" json:"popularity"`
	EstimatedDuration int            `db:"estimated_duration" json:"estimated_duration,omitempty"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
}

// Candidate converts the catalog row into the planner's value type.
func (p *POI) Candidate() planner.Candidate {
	return planner.Candidate{
		ID:                p.ID,
		Name:              p.Name,
		City:              p.City,
		District:          p.District,
		Tags:              p.Tags,
		Mode:              p.Mode,
		Cuisine:           p.Cuisine,
		EstimatedDuration: p.EstimatedDuration,
	}
}

// Candidates converts a catalog slice for the planner.
func Candidates(pois []POI) []planner.Candidate {
	out := make([]planner.Candidate, 0, len(pois))
	for i := range pois {
		out = append(out, pois[i].Candidate())
	}
	return out
}

// POIFilter describes query params for listing POIs.
type POIFilter struct {
	City     string
	District string
	Tag      string
	Limit    int
}
