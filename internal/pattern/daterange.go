package pattern

import (
	"fmt"
	"time"
)

// Scope is a named time window used to filter and compare logged events.
type Scope string

const (
	ScopeToday    Scope = "today"
	ScopeThisWeek Scope = "thisWeek"
	ScopeLastWeek Scope = "lastWeek"
)

// ParseScope validates a scope string coming from the API.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeToday, ScopeThisWeek, ScopeLastWeek:
		return Scope(s), nil
	}
	return "", fmt.Errorf("unknown scope %q", s)
}

const dayMillis = 24 * 60 * 60 * 1000

// Range is a concrete time window plus the matching prior-period
// comparison window. Bounds are epoch milliseconds, inclusive.
type Range struct {
	Start         int64
	End           int64
	PreviousStart int64
	PreviousEnd   int64
	DaysInScope   int
}

// startOfDay returns local midnight of the given instant.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay returns 23:59:59.999 local time of the given instant.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999e6, t.Location())
}

// startOfWeekMonday returns local midnight of the Monday of t's week.
// Weeks start Monday.
func startOfWeekMonday(t time.Time) time.Time {
	diff := (int(t.Weekday()) + 6) % 7
	return startOfDay(t.AddDate(0, 0, -diff))
}

func endOfWeekSunday(t time.Time) time.Time {
	return endOfDay(startOfWeekMonday(t).AddDate(0, 0, 6))
}

// RangeFor computes the window for a scope relative to "now", using the
// host's local calendar. thisWeek is the partial week up to now, and its
// previous window is the same number of days starting the prior Monday.
func RangeFor(scope Scope, now time.Time) Range {
	switch scope {
	case ScopeToday:
		// Calendar shift, not a 24h duration: the two differ on days
		// adjacent to a wall-clock change.
		yesterday := now.AddDate(0, 0, -1)
		return Range{
			Start:         startOfDay(now).UnixMilli(),
			End:           endOfDay(now).UnixMilli(),
			PreviousStart: startOfDay(yesterday).UnixMilli(),
			PreviousEnd:   endOfDay(yesterday).UnixMilli(),
			DaysInScope:   1,
		}

	case ScopeThisWeek:
		weekStart := startOfWeekMonday(now)
		daysInScope := int((startOfDay(now).UnixMilli()-weekStart.UnixMilli())/dayMillis) + 1
		previousStart := weekStart.AddDate(0, 0, -7)
		previousEnd := endOfDay(previousStart.AddDate(0, 0, daysInScope-1))
		return Range{
			Start:         weekStart.UnixMilli(),
			End:           endOfDay(now).UnixMilli(),
			PreviousStart: previousStart.UnixMilli(),
			PreviousEnd:   previousEnd.UnixMilli(),
			DaysInScope:   daysInScope,
		}

	default: // ScopeLastWeek
		lastWeekStart := startOfWeekMonday(now.AddDate(0, 0, -7))
		lastWeekEnd := endOfWeekSunday(lastWeekStart)
		return Range{
			Start:         lastWeekStart.UnixMilli(),
			End:           lastWeekEnd.UnixMilli(),
			PreviousStart: startOfDay(lastWeekStart.AddDate(0, 0, -7)).UnixMilli(),
			PreviousEnd:   endOfDay(lastWeekEnd.AddDate(0, 0, -7)).UnixMilli(),
			DaysInScope:   7,
		}
	}
}

// DayWindow is one weekday bucket of a week scope, used for the
// per-day activity grid.
type DayWindow struct {
	Label   string // "Mon".."Sun"
	Date    time.Time
	Start   int64 // epoch ms
	End     int64
	InScope bool // day starts on or before the range end
	Future  bool // thisWeek only: day has not started yet
}

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DayWindows returns the Monday–Sunday buckets for a week scope.
// It returns nil for the today scope, which has no weekday grid.
func DayWindows(scope Scope, now time.Time) []DayWindow {
	if scope == ScopeToday {
		return nil
	}

	base := startOfWeekMonday(now)
	if scope == ScopeLastWeek {
		base = startOfWeekMonday(now.AddDate(0, 0, -7))
	}
	rangeEnd := RangeFor(scope, now).End

	days := make([]DayWindow, 0, 7)
	for i, label := range weekdayLabels {
		date := base.AddDate(0, 0, i)
		start := startOfDay(date).UnixMilli()
		days = append(days, DayWindow{
			Label:   label,
			Date:    date,
			Start:   start,
			End:     endOfDay(date).UnixMilli(),
			InScope: start <= rangeEnd,
			Future:  scope == ScopeThisWeek && start > endOfDay(now).UnixMilli(),
		})
	}
	return days
}
