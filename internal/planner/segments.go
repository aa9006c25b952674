package planner

import (
	"sort"
	"time"
)

// Interval is a half-open [Start, End) span of absolute time.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns the interval length.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether two half-open intervals intersect. Adjacent
// intervals sharing a single instant do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ComputeFreeSegments subtracts the fixed windows from the day bounds and
// returns the maximal disjoint free intervals, sorted by start ascending.
// Malformed windows (end not after start) carry no temporal meaning and are
// dropped; the rest are clipped to the bounds and merged before the gaps are
// emitted. The union of the result with the merged windows reconstructs the
// bounds exactly.
func ComputeFreeSegments(bounds DayWindow, fixed []Interval) []Interval {
	clipped := make([]Interval, 0, len(fixed))
	for _, win := range fixed {
		if !win.End.After(win.Start) {
			continue
		}
		start, end := win.Start, win.End
		if start.Before(bounds.Start) {
			start = bounds.Start
		}
		if end.After(bounds.End) {
			end = bounds.End
		}
		if !end.After(start) {
			continue
		}
		clipped = append(clipped, Interval{Start: start, End: end})
	}

	sort.Slice(clipped, func(i, j int) bool {
		return clipped[i].Start.Before(clipped[j].Start)
	})

	merged := mergeIntervals(clipped)

	free := make([]Interval, 0, len(merged)+1)
	cursor := bounds.Start
	for _, win := range merged {
		if win.Start.After(cursor) {
			free = append(free, Interval{Start: cursor, End: win.Start})
		}
		cursor = win.End
	}
	if bounds.End.After(cursor) {
		free = append(free, Interval{Start: cursor, End: bounds.End})
	}

	return free
}

// mergeIntervals folds a start-sorted slice into maximal runs, joining
// windows that overlap or touch.
func mergeIntervals(sorted []Interval) []Interval {
	if len(sorted) == 0 {
		return nil
	}

	merged := make([]Interval, 0, len(sorted))
	current := sorted[0]
	for _, next := range sorted[1:] {
		if !next.Start.After(current.End) {
			if next.End.After(current.End) {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)

	return merged
}
