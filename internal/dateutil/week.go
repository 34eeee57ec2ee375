package dateutil

import (
	"fmt"
	"time"
)

// DefaultTargetDays are the days of a fantasy week worth streaming a starter
// for: a Monday or Tuesday start leaves room for a second turn through the
// rotation before the week closes.
var DefaultTargetDays = []string{"Monday", "Tuesday"}

// DateOf truncates a time to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NextWeekBounds returns the Monday-Sunday bounds of the next fantasy week.
// The start is always strictly after today: if today is a Monday, the window
// begins the following Monday.
func NextWeekBounds(today time.Time) (start, end time.Time) {
	today = DateOf(today)

	// time.Weekday counts from Sunday; fantasy weeks count from Monday.
	daysUntilMonday := (8 - int(today.Weekday())) % 7
	if daysUntilMonday == 0 {
		daysUntilMonday = 7
	}

	start = today.AddDate(0, 0, daysUntilMonday)
	end = start.AddDate(0, 0, 6)
	return start, end
}

// CurrentWeekBounds returns the Monday-Sunday bounds of the week containing
// today.
func CurrentWeekBounds(today time.Time) (start, end time.Time) {
	today = DateOf(today)

	daysSinceMonday := (int(today.Weekday()) + 6) % 7
	start = today.AddDate(0, 0, -daysSinceMonday)
	end = start.AddDate(0, 0, 6)
	return start, end
}

// WeekNumber returns the ISO week index of a week's start date.
func WeekNumber(weekStart time.Time) int {
	_, week := weekStart.ISOWeek()
	return week
}

// TargetDates walks the week from start to end and returns the dates whose
// weekday name appears in targetDays, in calendar order.
func TargetDates(start, end time.Time, targetDays []string) []time.Time {
	if len(targetDays) == 0 {
		targetDays = DefaultTargetDays
	}

	wanted := make(map[string]bool, len(targetDays))
	for _, day := range targetDays {
		wanted[day] = true
	}

	var dates []time.Time
	for d := DateOf(start); !d.After(DateOf(end)); d = d.AddDate(0, 0, 1) {
		if wanted[d.Weekday().String()] {
			dates = append(dates, d)
		}
	}
	return dates
}

// IsMondayOrTuesday reports whether a date falls on the front of the week.
func IsMondayOrTuesday(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Monday || wd == time.Tuesday
}

// SameDate reports whether two times fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}

// FormatRange renders a week span for display: "Apr 15 - 21" within a single
// month, "Apr 29 - May 05" across a month boundary.
func FormatRange(start, end time.Time) string {
	if start.Month() == end.Month() {
		return fmt.Sprintf("%s - %s", start.Format("Jan 02"), end.Format("02"))
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 02"), end.Format("Jan 02"))
}

// FormatDisplay renders a date for display, e.g. "Mon, Apr 15".
func FormatDisplay(date time.Time) string {
	return date.Format("Mon, Jan 02")
}

// ParseDate parses a calendar date in the formats the upstream APIs and the
// HTTP surface use.
func ParseDate(value string) (time.Time, error) {
	formats := []string{"2006-01-02", "01/02/2006", "2006/01/02"}
	for _, layout := range formats {
		if t, err := time.Parse(layout, value); err == nil {
			return DateOf(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", value)
}
