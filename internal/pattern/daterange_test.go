package pattern

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localDate(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.Local)
}

func startMillis(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local).UnixMilli()
}

func endMillis(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 23, 59, 59, 999e6, time.Local).UnixMilli()
}

func TestParseScope(t *testing.T) {
	for _, valid := range []string{"today", "thisWeek", "lastWeek"} {
		scope, err := ParseScope(valid)
		require.NoError(t, err)
		assert.Equal(t, Scope(valid), scope)
	}

	_, err := ParseScope("fortnight")
	assert.Error(t, err)
}

func TestRangeForToday(t *testing.T) {
	// Wednesday afternoon
	now := localDate(2025, time.March, 12, 15, 30)

	r := RangeFor(ScopeToday, now)

	assert.Equal(t, startMillis(2025, time.March, 12), r.Start)
	assert.Equal(t, endMillis(2025, time.March, 12), r.End)
	assert.Equal(t, startMillis(2025, time.March, 11), r.PreviousStart)
	assert.Equal(t, endMillis(2025, time.March, 11), r.PreviousEnd)
	assert.Equal(t, 1, r.DaysInScope)
}

func TestRangeForTodayAfterClockShift(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Shortly after midnight on the day following a spring-forward
	// Sunday. The 23-hour Sunday must still be "yesterday".
	now := time.Date(2025, time.March, 10, 0, 30, 0, 0, loc)

	r := RangeFor(ScopeToday, now)

	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, loc).UnixMilli(), r.Start)
	assert.Equal(t, time.Date(2025, time.March, 9, 0, 0, 0, 0, loc).UnixMilli(), r.PreviousStart)
	assert.Equal(t, time.Date(2025, time.March, 9, 23, 59, 59, 999e6, loc).UnixMilli(), r.PreviousEnd)
}

func TestRangeForThisWeek(t *testing.T) {
	t.Run("midweek covers Monday through now", func(t *testing.T) {
		now := localDate(2025, time.March, 12, 15, 30) // Wednesday

		r := RangeFor(ScopeThisWeek, now)

		assert.Equal(t, startMillis(2025, time.March, 10), r.Start) // Monday
		assert.Equal(t, endMillis(2025, time.March, 12), r.End)
		assert.Equal(t, 3, r.DaysInScope)
		// Previous window: same 3 days of the prior week, Monday-aligned.
		assert.Equal(t, startMillis(2025, time.March, 3), r.PreviousStart)
		assert.Equal(t, endMillis(2025, time.March, 5), r.PreviousEnd)
	})

	t.Run("Monday is a one-day window", func(t *testing.T) {
		now := localDate(2025, time.March, 10, 9, 0)

		r := RangeFor(ScopeThisWeek, now)

		assert.Equal(t, startMillis(2025, time.March, 10), r.Start)
		assert.Equal(t, 1, r.DaysInScope)
		assert.Equal(t, startMillis(2025, time.March, 3), r.PreviousStart)
		assert.Equal(t, endMillis(2025, time.March, 3), r.PreviousEnd)
	})

	t.Run("Sunday spans the full week", func(t *testing.T) {
		now := localDate(2025, time.March, 16, 20, 0)

		r := RangeFor(ScopeThisWeek, now)

		assert.Equal(t, startMillis(2025, time.March, 10), r.Start)
		assert.Equal(t, 7, r.DaysInScope)
	})
}

func TestRangeForLastWeek(t *testing.T) {
	now := localDate(2025, time.March, 12, 15, 30) // Wednesday

	r := RangeFor(ScopeLastWeek, now)

	assert.Equal(t, startMillis(2025, time.March, 3), r.Start) // prior Monday
	assert.Equal(t, endMillis(2025, time.March, 9), r.End)     // prior Sunday
	assert.Equal(t, startMillis(2025, time.February, 24), r.PreviousStart)
	assert.Equal(t, endMillis(2025, time.March, 2), r.PreviousEnd)
	assert.Equal(t, 7, r.DaysInScope)
}

func TestDayWindows(t *testing.T) {
	now := localDate(2025, time.March, 12, 15, 30) // Wednesday

	t.Run("today has no weekday grid", func(t *testing.T) {
		assert.Nil(t, DayWindows(ScopeToday, now))
	})

	t.Run("thisWeek marks future days", func(t *testing.T) {
		days := DayWindows(ScopeThisWeek, now)
		require.Len(t, days, 7)

		assert.Equal(t, "Mon", days[0].Label)
		assert.Equal(t, "Sun", days[6].Label)
		assert.False(t, days[2].Future) // Wednesday (today)
		assert.True(t, days[3].Future)  // Thursday
		assert.True(t, days[2].InScope)
		assert.False(t, days[3].InScope)
	})

	t.Run("lastWeek has every day in scope", func(t *testing.T) {
		days := DayWindows(ScopeLastWeek, now)
		require.Len(t, days, 7)

		assert.Equal(t, startMillis(2025, time.March, 3), days[0].Start)
		for _, day := range days {
			assert.True(t, day.InScope)
			assert.False(t, day.Future)
		}
	})
}
