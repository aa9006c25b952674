package planner

import (
	"fmt"
	"strconv"
	"strings"

	appErrors "github.com/nomadly/itinerary-api/pkg/errors"
)

// TimeOfDay is a wall-clock time with no date or timezone attached.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses an "HH:MM" string into a TimeOfDay. Hours must be
// 0-23 and minutes 0-59.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return TimeOfDay{}, appErrors.Clone(appErrors.ErrInvalidTime, fmt.Sprintf("invalid time %q, expected HH:MM", raw))
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, appErrors.Wrap(err, appErrors.ErrInvalidTime.Code, appErrors.ErrInvalidTime.Status, fmt.Sprintf("invalid hour in %q", raw))
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, appErrors.Wrap(err, appErrors.ErrInvalidTime.Code, appErrors.ErrInvalidTime.Status, fmt.Sprintf("invalid minute in %q", raw))
	}

	if hour < 0 || hour > 23 {
		return TimeOfDay{}, appErrors.Clone(appErrors.ErrInvalidTime, fmt.Sprintf("hour %d out of range 0-23", hour))
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, appErrors.Clone(appErrors.ErrInvalidTime, fmt.Sprintf("minute %d out of range 0-59", minute))
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// Minutes returns the offset from midnight in minutes.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// String formats the time back into HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// TimeOfDayFromMinutes converts a minute offset back to a TimeOfDay. It does
// not wrap across day boundaries: an Hour of 24 or more signals the caller
// that the day window was exceeded while stacking durations.
func TimeOfDayFromMinutes(total int) TimeOfDay {
	return TimeOfDay{Hour: total / 60, Minute: total % 60}
}

// IsRangeValid reports whether end strictly follows start on the same day.
// Unparseable inputs are treated as invalid ranges.
func IsRangeValid(startHHMM, endHHMM string) bool {
	start, err := ParseTimeOfDay(startHHMM)
	if err != nil {
		return false
	}
	end, err := ParseTimeOfDay(endHHMM)
	if err != nil {
		return false
	}
	return end.Minutes() > start.Minutes()
}
