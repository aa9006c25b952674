package planner

import (
	"fmt"
	"time"

	appErrors "github.com/nomadly/itinerary-api/pkg/errors"
)

// DayWindow is the absolute UTC interval during which a local calendar day
// is open for scheduling. End always follows Start.
type DayWindow struct {
	Start time.Time
	End   time.Time
}

// ResolveDayBounds converts a local calendar date plus start/end clock times
// and a timezone into a DayWindow. Overnight spans (end not after start) are
// rejected with ErrInvalidRange; unknown zones with ErrInvalidTimezone.
func ResolveDayBounds(localDate time.Time, startHHMM, endHHMM, timezone string) (DayWindow, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return DayWindow{}, appErrors.Wrap(err, appErrors.ErrInvalidTimezone.Code, appErrors.ErrInvalidTimezone.Status, fmt.Sprintf("unrecognized timezone %q", timezone))
	}

	start, err := ParseTimeOfDay(startHHMM)
	if err != nil {
		return DayWindow{}, err
	}
	end, err := ParseTimeOfDay(endHHMM)
	if err != nil {
		return DayWindow{}, err
	}
	if end.Minutes() <= start.Minutes() {
		return DayWindow{}, appErrors.Clone(appErrors.ErrInvalidRange, fmt.Sprintf("day end %s must be after day start %s", endHHMM, startHHMM))
	}

	year, month, day := localDate.Date()
	startUTC := time.Date(year, month, day, start.Hour, start.Minute, 0, 0, loc).UTC()
	endUTC := time.Date(year, month, day, end.Hour, end.Minute, 0, 0, loc).UTC()

	return DayWindow{Start: startUTC, End: endUTC}, nil
}
