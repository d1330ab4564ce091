package pattern

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"fitstudio/coach-app/internal/domain"

	"github.com/google/uuid"
)

// DefaultTaskDay is used when a custom task has no day label.
const DefaultTaskDay = "Any day"

// WeeksFor derives the number of weeks a template is expanded across:
// the template's configured duration with a floor of 1.
func WeeksFor(durationWeeks int) int {
	if durationWeeks < 1 {
		return 1
	}
	return durationWeeks
}

// ExpandSchedule repeats a template's day-entries cyclically across the
// requested number of weeks. For a template with T days the result has
// weeks×T entries; entry i takes template day i mod T and is labelled
// with week ⌊i/T⌋+1.
func ExpandSchedule(tpl domain.ProgramTemplate, weeks int) []domain.ScheduleEntry {
	t := len(tpl.DailyWorkouts)
	if t == 0 {
		return nil
	}
	weeks = WeeksFor(weeks)

	schedule := make([]domain.ScheduleEntry, 0, weeks*t)
	for i := 0; i < weeks*t; i++ {
		day := tpl.DailyWorkouts[i%t]
		schedule = append(schedule, domain.ScheduleEntry{
			Day:      fmt.Sprintf("Week %d · %s", i/t+1, day.DayLabel),
			Focus:    fmt.Sprintf("%s · %s", day.Focus, day.Theme),
			Detail:   firstNonEmpty(day.ReadinessCue, tpl.ProgressionNotes, day.Theme),
			DietNote: day.NutritionCue,
		})
	}
	return schedule
}

// ExpandDietDays applies the same cyclic expansion to diet template days
// and renders each day's guidance line.
func ExpandDietDays(tpl domain.DietTemplate, weeks int) []domain.DietDayGuidance {
	t := len(tpl.Days)
	if t == 0 {
		return nil
	}
	weeks = WeeksFor(weeks)

	plan := make([]domain.DietDayGuidance, 0, weeks*t)
	for i := 0; i < weeks*t; i++ {
		day := tpl.Days[i%t]
		plan = append(plan, domain.DietDayGuidance{
			Day:      fmt.Sprintf("Week %d · %s", i/t+1, day.DayLabel),
			Guidance: dietGuidance(day),
		})
	}
	return plan
}

// dietGuidance renders one diet day as
// "{emphasis} • {meal}: {desc} | {meal}: {desc} • Hydration: {hydration}",
// appending " Note: {notes}" only when notes are present.
func dietGuidance(day domain.DietDay) string {
	meals := make([]string, 0, len(day.Meals))
	for _, meal := range day.Meals {
		meals = append(meals, fmt.Sprintf("%s: %s", meal.Title, meal.Description))
	}
	guidance := fmt.Sprintf("%s • %s • Hydration: %s",
		day.Emphasis, strings.Join(meals, " | "), day.Hydration)
	if day.Notes != "" {
		guidance += " Note: " + day.Notes
	}
	return guidance
}

// AssignWorkout replaces the pattern's workout with the expanded schedule,
// reseeds the task list from it (discarding prior tasks) and clears the
// finalized marker. The caller is responsible for refusing templates with
// no workout days before invoking the engine.
func AssignWorkout(state domain.ClientPattern, tpl domain.ProgramTemplate, weeks int) domain.ClientPattern {
	schedule := ExpandSchedule(tpl, weeks)

	tasks := make([]domain.WorkoutTask, 0, len(schedule))
	for _, entry := range schedule {
		tasks = append(tasks, domain.WorkoutTask{
			ID:        uuid.NewString(),
			Label:     fmt.Sprintf("%s · %s", entry.Day, entry.Focus),
			Detail:    entry.Detail,
			Completed: false,
			Day:       entry.Day,
		})
	}

	templateID := tpl.ID
	state.Workout = &domain.AssignedWorkoutPattern{
		ID:               uuid.NewString(),
		Name:             tpl.Name,
		Focus:            tpl.Focus,
		SourceTemplateID: &templateID,
		Schedule:         schedule,
	}
	state.Tasks = tasks
	state.FinalizedAt = nil
	return state
}

// AssignDiet replaces only the pattern's diet assignment. Tasks and the
// finalized marker are untouched.
func AssignDiet(state domain.ClientPattern, tpl domain.DietTemplate, weeks int) domain.ClientPattern {
	templateID := tpl.ID
	state.Diet = &domain.DietAssignment{
		ID:               uuid.NewString(),
		Title:            tpl.Name,
		Summary:          tpl.Overview,
		SourceTemplateID: &templateID,
		DailyPlan:        ExpandDietDays(tpl, weeks),
	}
	return state
}

// ToggleTask flips the completed flag on exactly one matching task.
// An unknown id is a no-op, reported through the second return value.
func ToggleTask(state domain.ClientPattern, taskID string) (domain.ClientPattern, bool) {
	for i := range state.Tasks {
		if state.Tasks[i].ID == taskID {
			tasks := make([]domain.WorkoutTask, len(state.Tasks))
			copy(tasks, state.Tasks)
			tasks[i].Completed = !tasks[i].Completed
			state.Tasks = tasks
			return state, true
		}
	}
	return state, false
}

// AddCustomTask prepends a new incomplete task. A blank label is
// rejected, leaving the state unchanged.
func AddCustomTask(state domain.ClientPattern, label, detail, day string) (domain.ClientPattern, bool) {
	if strings.TrimSpace(label) == "" {
		return state, false
	}
	if day == "" {
		day = DefaultTaskDay
	}
	task := domain.WorkoutTask{
		ID:        uuid.NewString(),
		Label:     label,
		Detail:    detail,
		Completed: false,
		Day:       day,
	}
	state.Tasks = append([]domain.WorkoutTask{task}, state.Tasks...)
	return state, true
}

// Finalize stamps the pattern as done and marks every task completed.
// This is a trust-based coach action: it does not verify the tasks were
// legitimately finished. Idempotent on the completed state.
func Finalize(state domain.ClientPattern, now time.Time) domain.ClientPattern {
	finalizedAt := now
	state.FinalizedAt = &finalizedAt

	tasks := make([]domain.WorkoutTask, len(state.Tasks))
	copy(tasks, state.Tasks)
	for i := range tasks {
		tasks[i].Completed = true
	}
	state.Tasks = tasks
	return state
}

// LogWeight inserts a weight measurement, keeps the log sorted newest
// first and caps it to the most recent entries. Non-finite or
// non-positive weights are rejected, leaving the log unchanged.
func LogWeight(state domain.ClientPattern, weight float64, at time.Time) (domain.ClientPattern, bool) {
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight <= 0 {
		return state, false
	}

	next := make([]domain.WeightEntry, 0, len(state.WeightLog)+1)
	next = append(next, domain.WeightEntry{
		ID:     uuid.NewString(),
		Date:   at,
		Weight: weight,
	})
	next = append(next, state.WeightLog...)

	sort.SliceStable(next, func(i, j int) bool {
		return next[i].Date.After(next[j].Date)
	})
	if len(next) > domain.WeightLogCap {
		next = next[:domain.WeightLogCap]
	}
	state.WeightLog = next
	return state, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
