package pattern

import (
	"fmt"
	"math"
	"time"

	"fitstudio/coach-app/internal/domain"
)

// DietTargetPerDay is the assumed number of logged meals per day when
// computing diet compliance.
const DietTargetPerDay = 3

// WorkoutTotals are the per-window workout aggregates.
type WorkoutTotals struct {
	Sessions    int
	Calories    int
	TimeSeconds int64
}

// DietTotals are the per-window diet aggregates.
type DietTotals struct {
	Logs     int
	Calories int
}

// FilterWorkouts keeps sessions whose start time falls in [from, to].
func FilterWorkouts(sessions []domain.WorkoutSession, from, to int64) []domain.WorkoutSession {
	out := make([]domain.WorkoutSession, 0, len(sessions))
	for _, s := range sessions {
		if s.StartTime >= from && s.StartTime <= to {
			out = append(out, s)
		}
	}
	return out
}

// FilterDietLogs keeps entries whose creation time falls in [from, to].
func FilterDietLogs(logs []domain.DietLog, from, to int64) []domain.DietLog {
	out := make([]domain.DietLog, 0, len(logs))
	for _, l := range logs {
		if l.CreatedAt >= from && l.CreatedAt <= to {
			out = append(out, l)
		}
	}
	return out
}

// FilterWeightLogs keeps entries whose creation time falls in [from, to].
func FilterWeightLogs(logs []domain.WeightLog, from, to int64) []domain.WeightLog {
	out := make([]domain.WeightLog, 0, len(logs))
	for _, l := range logs {
		if l.CreatedAt >= from && l.CreatedAt <= to {
			out = append(out, l)
		}
	}
	return out
}

// SumWorkouts totals session count, calories burned and time.
func SumWorkouts(sessions []domain.WorkoutSession) WorkoutTotals {
	totals := WorkoutTotals{Sessions: len(sessions)}
	for _, s := range sessions {
		totals.Calories += s.TotalCaloriesBurned
		totals.TimeSeconds += s.TotalTime
	}
	return totals
}

// CompletedSessions counts sessions that actually finished; only those
// count toward percent-of-plan metrics.
func CompletedSessions(sessions []domain.WorkoutSession) int {
	n := 0
	for _, s := range sessions {
		if s.Status == domain.WorkoutCompleted {
			n++
		}
	}
	return n
}

// SumDietLogs totals entry count and calories consumed.
func SumDietLogs(logs []domain.DietLog) DietTotals {
	totals := DietTotals{Logs: len(logs)}
	for _, l := range logs {
		totals.Calories += l.Calories
	}
	return totals
}

// FormatDelta renders a period-over-period comparison. Zero deltas never
// show a sign.
func FormatDelta(current, previous int) string {
	diff := current - previous
	if diff == 0 {
		return "No change"
	}
	if diff > 0 {
		return fmt.Sprintf("+%d vs prev", diff)
	}
	return fmt.Sprintf("-%d vs prev", -diff)
}

// WorkoutProgressPercent is completed sessions as a percentage of planned
// sessions, clamped to 100. Zero planned sessions yield 0.
func WorkoutProgressPercent(completed, planned int) int {
	if planned == 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(completed) / float64(planned)))
	if pct > 100 {
		return 100
	}
	return pct
}

// DietProgressPercent is logged meals as a percentage of the scope's
// meal target, clamped to 100.
func DietProgressPercent(logged, daysInScope int) int {
	target := daysInScope * DietTargetPerDay
	if target == 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(logged) / float64(target)))
	if pct > 100 {
		return 100
	}
	return pct
}

// PlannedWorkoutDays counts the in-scope days whose weekday has at least
// one exercise in the template. Template days with a label outside the
// Mon..Sun set never count.
func PlannedWorkoutDays(tpl domain.ProgramTemplate, days []DayWindow) int {
	scheduled := make(map[time.Weekday]bool, len(tpl.DailyWorkouts))
	for _, day := range tpl.DailyWorkouts {
		if len(day.KeyWork) == 0 {
			continue
		}
		if wd, ok := domain.WeekdayForLabel(day.DayLabel); ok {
			scheduled[wd] = true
		}
	}

	n := 0
	for _, day := range days {
		wd, ok := domain.WeekdayForLabel(day.Label)
		if ok && day.InScope && !day.Future && scheduled[wd] {
			n++
		}
	}
	return n
}

// WeeklyConsistencyPercent is the share of in-scope days with any
// activity, rounded.
func WeeklyConsistencyPercent(daysWithActivity, daysInScope int) int {
	if daysInScope <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(daysWithActivity) / float64(daysInScope)))
}
