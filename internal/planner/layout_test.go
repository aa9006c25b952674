package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutItemsStacksWithBuffer(t *testing.T) {
	anchor := time.Date(2025, time.November, 1, 9, 30, 0, 0, time.UTC)
	plan := ValidatedPlan{Items: []ValidatedItem{
		{PoiID: "a", DurationMinutes: 60},
		{PoiID: "b", DurationMinutes: 90, IsMeal: true},
		{PoiID: "c", DurationMinutes: 30},
	}}

	slots := LayoutItems(plan, anchor, 30*time.Minute)

	require.Len(t, slots, 3)
	assert.Equal(t, anchor, slots[0].Start)
	assert.Equal(t, anchor.Add(60*time.Minute), slots[0].End)

	// 30 minute buffer between consecutive visits.
	assert.Equal(t, slots[0].End.Add(30*time.Minute), slots[1].Start)
	assert.Equal(t, slots[1].Start.Add(90*time.Minute), slots[1].End)
	assert.True(t, slots[1].IsMeal)

	assert.Equal(t, slots[1].End.Add(30*time.Minute), slots[2].Start)
	assert.Equal(t, slots[2].Start.Add(30*time.Minute), slots[2].End)
}

func TestLayoutItemsProducesNoOverlaps(t *testing.T) {
	anchor := time.Date(2025, time.November, 1, 9, 30, 0, 0, time.UTC)
	plan := ValidatedPlan{Items: []ValidatedItem{
		{PoiID: "a", DurationMinutes: 240},
		{PoiID: "b", DurationMinutes: 240},
		{PoiID: "c", DurationMinutes: 240},
	}}

	slots := LayoutItems(plan, anchor, 30*time.Minute)

	for i := 1; i < len(slots); i++ {
		assert.False(t, Overlaps(slots[i].Start, slots[i].End, slots[i-1].Start, slots[i-1].End))
	}
}

func TestLayoutItemsEmptyPlan(t *testing.T) {
	slots := LayoutItems(ValidatedPlan{}, time.Now().UTC(), 30*time.Minute)
	assert.Empty(t, slots)
}

func TestLayoutItemsNegativeBufferFallsBackToDefault(t *testing.T) {
	anchor := time.Date(2025, time.November, 1, 9, 0, 0, 0, time.UTC)
	plan := ValidatedPlan{Items: []ValidatedItem{
		{PoiID: "a", DurationMinutes: 60},
		{PoiID: "b", DurationMinutes: 60},
	}}

	slots := LayoutItems(plan, anchor, -time.Minute)

	require.Len(t, slots, 2)
	assert.Equal(t, slots[0].End.Add(DefaultVisitBuffer), slots[1].Start)
}

func TestConflictsAny(t *testing.T) {
	anchor := time.Date(2025, time.November, 1, 9, 0, 0, 0, time.UTC)
	slot := VisitSlot{PoiID: "a", Start: anchor, End: anchor.Add(time.Hour)}

	existing := []Interval{{Start: anchor.Add(time.Hour), End: anchor.Add(2 * time.Hour)}}
	assert.False(t, ConflictsAny(slot, existing), "adjacent items do not conflict")

	existing = append(existing, Interval{Start: anchor.Add(30 * time.Minute), End: anchor.Add(90 * time.Minute)})
	assert.True(t, ConflictsAny(slot, existing))
}
