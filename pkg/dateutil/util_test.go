package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCurrentWeek(t *testing.T) {
	// 2023-05-17 is a Wednesday, its ISO week starts on Monday the 15th.
	wednesday := time.Date(2023, 5, 17, 13, 45, 0, 0, time.UTC)
	require.Equal(t, time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC), CurrentWeek(wednesday))

	// Sunday still belongs to the week started the previous Monday.
	sunday := time.Date(2023, 5, 21, 23, 59, 0, 0, time.UTC)
	require.Equal(t, time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC), CurrentWeek(sunday))

	monday := time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)
	require.Equal(t, monday, CurrentWeek(monday))
}

func TestDaysBetween(t *testing.T) {
	morning := time.Date(2023, 5, 17, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2023, 5, 17, 23, 0, 0, 0, time.UTC)
	require.Equal(t, 0, DaysBetween(morning, evening))

	// Just across midnight still counts as one day.
	nextMidnight := time.Date(2023, 5, 18, 0, 1, 0, 0, time.UTC)
	require.Equal(t, 1, DaysBetween(evening, nextMidnight))

	require.Equal(t, 3, DaysBetween(morning, morning.AddDate(0, 0, 3)))
	require.Equal(t, -1, DaysBetween(morning, morning.AddDate(0, 0, -1)))
}
