package planner

import "sort"

// POI scheduling modes.
const (
	ModeLocationAware   = "location_aware"
	ModeActivityFocused = "activity_focused"
)

// Candidate is a point of interest eligible for scheduling.
type Candidate struct {
	ID                string
	Name              string
	City              string
	District          string
	Tags              []string
	Mode              string
	Cuisine           []string
	EstimatedDuration int
}

// SelectCandidates narrows the POI catalog down to the candidates relevant
// for a trip/day context. When the trip has a city only POIs in that city
// qualify; otherwise the activity-focused POIs do. A non-empty areaFocus is
// a soft preference: POIs in a focus district sort before the rest, but none
// are dropped. Ties within each group break on name ascending so identical
// inputs always produce identical output order. The input slice is never
// mutated.
func SelectCandidates(pois []Candidate, tripCity string, areaFocus []string) []Candidate {
	candidates := make([]Candidate, 0, len(pois))
	for _, poi := range pois {
		if tripCity != "" {
			if poi.City == tripCity {
				candidates = append(candidates, poi)
			}
			continue
		}
		if poi.Mode == ModeActivityFocused {
			candidates = append(candidates, poi)
		}
	}

	focus := make(map[string]struct{}, len(areaFocus))
	for _, district := range areaFocus {
		if district != "" {
			focus[district] = struct{}{}
		}
	}
	if len(focus) == 0 {
		// Without a focus the catalog's own relevance order stands.
		return candidates
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		_, iFocused := focus[candidates[i].District]
		_, jFocused := focus[candidates[j].District]
		if iFocused != jFocused {
			return iFocused
		}
		return candidates[i].Name < candidates[j].Name
	})

	return candidates
}
