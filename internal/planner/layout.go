package planner

import "time"

// DefaultVisitBuffer separates consecutive visits when laying out a day.
const DefaultVisitBuffer = 30 * time.Minute

// VisitSlot is a validated visit pinned to absolute timestamps.
type VisitSlot struct {
	PoiID  string
	Start  time.Time
	End    time.Time
	IsMeal bool
	Notes  string
}

// LayoutItems stacks a validated plan sequentially from the given start
// instant, inserting the buffer between consecutive visits:
//
//	start[i] = anchor + sum(duration[j] + buffer, j < i)
//	end[i]   = start[i] + duration[i]
func LayoutItems(plan ValidatedPlan, anchor time.Time, buffer time.Duration) []VisitSlot {
	if buffer < 0 {
		buffer = DefaultVisitBuffer
	}

	slots := make([]VisitSlot, 0, len(plan.Items))
	cursor := anchor
	for i, item := range plan.Items {
		if i > 0 {
			cursor = cursor.Add(buffer)
		}
		duration := time.Duration(item.DurationMinutes) * time.Minute
		slots = append(slots, VisitSlot{
			PoiID:  item.PoiID,
			Start:  cursor,
			End:    cursor.Add(duration),
			IsMeal: item.IsMeal,
			Notes:  item.Notes,
		})
		cursor = cursor.Add(duration)
	}

	return slots
}

// ConflictsAny reports whether the proposed slot overlaps any of the
// existing intervals.
func ConflictsAny(slot VisitSlot, existing []Interval) bool {
	for _, iv := range existing {
		if Overlaps(slot.Start, slot.End, iv.Start, iv.End) {
			return true
		}
	}
	return false
}
