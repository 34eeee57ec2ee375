package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextWeekBounds(t *testing.T) {
	tests := []struct {
		name      string
		today     time.Time
		wantStart time.Time
	}{
		{"wednesday jumps to next monday", date(2024, time.April, 17), date(2024, time.April, 22)},
		{"monday skips to following monday", date(2024, time.April, 15), date(2024, time.April, 22)},
		{"sunday starts tomorrow", date(2024, time.April, 21), date(2024, time.April, 22)},
		{"saturday", date(2024, time.April, 20), date(2024, time.April, 22)},
		{"tuesday", date(2024, time.April, 16), date(2024, time.April, 22)},
		{"across month boundary", date(2024, time.April, 30), date(2024, time.May, 6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := NextWeekBounds(tt.today)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, time.Monday, start.Weekday())
			assert.True(t, start.After(tt.today), "start must be strictly after today")
			assert.Equal(t, 6*24*time.Hour, end.Sub(start))
		})
	}
}

func TestNextWeekBoundsAlwaysMonday(t *testing.T) {
	// Property check across a full season of start days.
	day := date(2024, time.March, 28)
	for i := 0; i < 190; i++ {
		start, end := NextWeekBounds(day)
		require.Equal(t, time.Monday, start.Weekday(), "start for %s", day)
		require.True(t, start.After(day))
		require.Equal(t, start.AddDate(0, 0, 6), end)
		day = day.AddDate(0, 0, 1)
	}
}

func TestCurrentWeekBounds(t *testing.T) {
	start, end := CurrentWeekBounds(date(2024, time.April, 17)) // Wednesday
	assert.Equal(t, date(2024, time.April, 15), start)
	assert.Equal(t, date(2024, time.April, 21), end)

	start, _ = CurrentWeekBounds(date(2024, time.April, 15)) // Monday stays put
	assert.Equal(t, date(2024, time.April, 15), start)
}

func TestTargetDates(t *testing.T) {
	start := date(2024, time.April, 22) // Monday
	end := start.AddDate(0, 0, 6)

	got := TargetDates(start, end, nil)
	require.Len(t, got, 2)
	assert.Equal(t, date(2024, time.April, 22), got[0])
	assert.Equal(t, date(2024, time.April, 23), got[1])

	got = TargetDates(start, end, []string{"Monday", "Tuesday", "Wednesday"})
	require.Len(t, got, 3)
	assert.Equal(t, date(2024, time.April, 24), got[2])

	got = TargetDates(start, end, []string{"Friday"})
	require.Len(t, got, 1)
	assert.Equal(t, date(2024, time.April, 26), got[0])
}

func TestWeekNumber(t *testing.T) {
	assert.Equal(t, 17, WeekNumber(date(2024, time.April, 22)))
	assert.Equal(t, 1, WeekNumber(date(2024, time.January, 1)))
}

func TestIsMondayOrTuesday(t *testing.T) {
	assert.True(t, IsMondayOrTuesday(date(2024, time.April, 22)))
	assert.True(t, IsMondayOrTuesday(date(2024, time.April, 23)))
	assert.False(t, IsMondayOrTuesday(date(2024, time.April, 24)))
	assert.False(t, IsMondayOrTuesday(date(2024, time.April, 21)))
}

func TestFormatRange(t *testing.T) {
	assert.Equal(t, "Apr 15 - 21", FormatRange(date(2024, time.April, 15), date(2024, time.April, 21)))
	assert.Equal(t, "Apr 29 - May 05", FormatRange(date(2024, time.April, 29), date(2024, time.May, 5)))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-04-15")
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.April, 15), got)

	_, err = ParseDate("April 15")
	assert.Error(t, err)
}
