package recommender

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomadly/itinerary-api/internal/planner"
)

func heuristicCandidates() []planner.Candidate {
	return []planner.Candidate{
		{ID: "a", Name: "Senso-ji", EstimatedDuration: 90},
		{ID: "b", Name: "Afuri Ramen", Cuisine: []string{"ramen"}, EstimatedDuration: 60},
		{ID: "c", Name: "Ichiran", Cuisine: []string{"ramen"}, EstimatedDuration: 45},
		{ID: "d", Name: "Meiji Shrine", EstimatedDuration: 90},
		{ID: "e", Name: "TeamLab Planets", EstimatedDuration: 120},
	}
}

func TestHeuristicFillsFreeTime(t *testing.T) {
	h := NewHeuristic(30 * time.Minute)
	day := DayContext{
		DayNumber: 1,
		MaxItems:  4,
		FreeSegments: []planner.Interval{{
			Start: time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC),
			End:   time.Date(2025, 5, 1, 20, 30, 0, 0, time.UTC),
		}},
	}

	plan, err := h.ProposeDay(context.Background(), day, heuristicCandidates())
	require.NoError(t, err)
	require.NotEmpty(t, plan.Items)
	assert.LessOrEqual(t, len(plan.Items), 4)
	assert.NotEmpty(t, plan.Reasoning)

	total := 0
	for i, item := range plan.Items {
		if i > 0 {
			total += 30
		}
		total += item.DurationMinutes
	}
	assert.LessOrEqual(t, total, 660, "plan plus buffers must fit the free time")
}

func TestHeuristicSchedulesAtMostOneMeal(t *testing.T) {
	h := NewHeuristic(30 * time.Minute)
	day := DayContext{DayNumber: 1, MaxItems: 5}

	plan, err := h.ProposeDay(context.Background(), day, heuristicCandidates())
	require.NoError(t, err)

	meals := 0
	for _, item := range plan.Items {
		if item.IsMeal {
			meals++
		}
	}
	assert.LessOrEqual(t, meals, 1)
}

func TestHeuristicIsDeterministic(t *testing.T) {
	h := NewHeuristic(30 * time.Minute)
	day := DayContext{DayNumber: 2, MaxItems: 3}

	first, err := h.ProposeDay(context.Background(), day, heuristicCandidates())
	require.NoError(t, err)
	second, err := h.ProposeDay(context.Background(), day, heuristicCandidates())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHeuristicClampsDurations(t *testing.T) {
	h := NewHeuristic(30 * time.Minute)
	candidates := []planner.Candidate{
		{ID: "long", Name: "All-day hike", EstimatedDuration: 600},
		{ID: "short", Name: "Photo stop", EstimatedDuration: 5},
	}

	plan, err := h.ProposeDay(context.Background(), DayContext{MaxItems: 2}, candidates)
	require.NoError(t, err)
	for _, item := range plan.Items {
		assert.GreaterOrEqual(t, item.DurationMinutes, planner.MinVisitMinutes)
		assert.LessOrEqual(t, item.DurationMinutes, planner.MaxVisitMinutes)
	}
}
