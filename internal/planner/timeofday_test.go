package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/nomadly/itinerary-api/pkg/errors"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{name: "morning", input: "09:30", want: TimeOfDay{Hour: 9, Minute: 30}},
		{name: "midnight", input: "00:00", want: TimeOfDay{}},
		{name: "last minute", input: "23:59", want: TimeOfDay{Hour: 23, Minute: 59}},
		{name: "single digit hour", input: "9:05", want: TimeOfDay{Hour: 9, Minute: 5}},
		{name: "missing colon", input: "0930", wantErr: true},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "12:60", wantErr: true},
		{name: "negative hour", input: "-1:30", wantErr: true},
		{name: "not numeric", input: "ab:cd", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseTimeOfDay(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				appErr := appErrors.FromError(err)
				assert.Equal(t, appErrors.ErrInvalidTime.Code, appErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMinutesRoundTrip(t *testing.T) {
	original := TimeOfDay{Hour: 14, Minute: 45}
	assert.Equal(t, 885, original.Minutes())
	assert.Equal(t, original, TimeOfDayFromMinutes(original.Minutes()))
}

func TestTimeOfDayFromMinutesDoesNotWrap(t *testing.T) {
	// 25:30 signals that stacked durations exceeded the day window.
	overflowed := TimeOfDayFromMinutes(25*60 + 30)
	assert.Equal(t, 25, overflowed.Hour)
	assert.Equal(t, 30, overflowed.Minute)
}

func TestIsRangeValid(t *testing.T) {
	assert.True(t, IsRangeValid("09:30", "20:30"))
	assert.False(t, IsRangeValid("20:30", "09:30"))
	assert.False(t, IsRangeValid("12:00", "12:00"))
	assert.False(t, IsRangeValid("garbage", "12:00"))
	assert.False(t, IsRangeValid("12:00", "garbage"))
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "09:05", TimeOfDay{Hour: 9, Minute: 5}.String())
}
