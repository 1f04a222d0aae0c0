package dateutil

import "time"

// Date truncates t to midnight in its location.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CurrentWeek returns the first instant (Monday midnight) of the ISO week
// containing t.
func CurrentWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}

	return Date(t).AddDate(0, 0, -(weekday - 1))
}

// DaysBetween returns the number of calendar days from a to b. It is zero
// when both fall on the same day and negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(Date(b).Sub(Date(a.In(b.Location()))) / (24 * time.Hour))
}
