package recommender

import (
	"context"
	"fmt"
	"time"

	"github.com/nomadly/itinerary-api/internal/planner"
)

const (
	defaultVisitMinutes = 90
	defaultMealMinutes  = 60
)

// Heuristic is the deterministic in-process fallback producer. It fills the
// day's free time with the candidates in their given order, flags
// cuisine-tagged POIs as meals and sizes visits from the catalog's estimated
// durations. Identical inputs always yield identical plans.
type Heuristic struct {
	Buffer time.Duration
}

// NewHeuristic builds the fallback producer.
func NewHeuristic(buffer time.Duration) *Heuristic {
	if buffer <= 0 {
		buffer = planner.DefaultVisitBuffer
	}
	return &Heuristic{Buffer: buffer}
}

// ProposeDay greedily stacks candidates into the day's free time.
func (h *Heuristic) ProposeDay(_ context.Context, day DayContext, candidates []planner.Candidate) (planner.RawPlan, error) {
	maxItems := day.MaxItems
	if maxItems <= 0 {
		maxItems = planner.DefaultMaxItems
	}

	budget := freeMinutes(day.FreeSegments)
	if budget == 0 {
		// No bounds supplied; assume a full default day.
		budget = 11 * 60
	}

	items := make([]planner.RawItem, 0, maxItems)
	used := 0
	mealScheduled := false
	for _, candidate := range candidates {
		if len(items) == maxItems {
			break
		}

		isMeal := len(candidate.Cuisine) > 0
		if isMeal && mealScheduled {
			// One meal per day is enough for the fallback plan.
			continue
		}

		duration := visitMinutes(candidate, isMeal)
		cost := duration
		if len(items) > 0 {
			cost += int(h.Buffer.Minutes())
		}
		if used+cost > budget {
			continue
		}

		items = append(items, planner.RawItem{
			PoiID:           candidate.ID,
			DurationMinutes: duration,
			IsMeal:          isMeal,
			Notes:           fmt.Sprintf("Visit %s", candidate.Name),
		})
		used += cost
		if isMeal {
			mealScheduled = true
		}
	}

	return planner.RawPlan{
		Items:     items,
		Reasoning: fmt.Sprintf("Day %d filled from the top ranked candidates for %s.", day.DayNumber, day.Destination),
	}, nil
}

func freeMinutes(segments []planner.Interval) int {
	total := 0
	for _, segment := range segments {
		if segment.End.After(segment.Start) {
			total += int(segment.Duration().Minutes())
		}
	}
	return total
}

func visitMinutes(candidate planner.Candidate, isMeal bool) int {
	duration := candidate.EstimatedDuration
	if duration <= 0 {
		if isMeal {
			duration = defaultMealMinutes
		} else {
			duration = defaultVisitMinutes
		}
	}
	if duration < planner.MinVisitMinutes {
		duration = planner.MinVisitMinutes
	}
	if duration > planner.MaxVisitMinutes {
		duration = planner.MaxVisitMinutes
	}
	return duration
}
