package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Intensity tier for a single training day.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// Day labels used by program and diet templates. Templates are authored
// against a generic week; the assignment engine stamps the week number on.
const (
	DayMon = "Mon"
	DayTue = "Tue"
	DayWed = "Wed"
	DayThu = "Thu"
	DayFri = "Fri"
	DaySat = "Sat"
	DaySun = "Sun"
)

// WeekdayForLabel maps a template day label to a time.Weekday.
// The second return value is false for labels like "Any day".
func WeekdayForLabel(label string) (time.Weekday, bool) {
	switch label {
	case DayMon:
		return time.Monday, true
	case DayTue:
		return time.Tuesday, true
	case DayWed:
		return time.Wednesday, true
	case DayThu:
		return time.Thursday, true
	case DayFri:
		return time.Friday, true
	case DaySat:
		return time.Saturday, true
	case DaySun:
		return time.Sunday, true
	}
	return time.Sunday, false
}

// DailyWorkout is one day-entry of a reusable program template.
type DailyWorkout struct {
	DayLabel        string    `bson:"dayLabel" json:"dayLabel"` // e.g. "Mon"
	Theme           string    `bson:"theme" json:"theme"`       // e.g. "Lower push"
	Focus           string    `bson:"focus" json:"focus"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
	Intensity       Intensity `bson:"intensity" json:"intensity"`
	KeyWork         []string  `bson:"keyWork" json:"keyWork"` // exercises for the day, in order
	ReadinessCue    string    `bson:"readinessCue,omitempty" json:"readinessCue,omitempty"`
	NutritionCue    string    `bson:"nutritionCue,omitempty" json:"nutritionCue,omitempty"`
}

// ProgramTemplate is a reusable, read-only multi-day workout definition.
// It is never mutated by the assignment engine.
type ProgramTemplate struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Focus            string             `bson:"focus" json:"focus"`
	Level            string             `bson:"level,omitempty" json:"level,omitempty"` // e.g. "Beginner"
	DurationWeeks    int                `bson:"durationWeeks" json:"durationWeeks"`
	ProgressionNotes string             `bson:"progressionNotes,omitempty" json:"progressionNotes,omitempty"`
	Status           string             `bson:"status,omitempty" json:"status,omitempty"` // "Draft", "Live"
	DailyWorkouts    []DailyWorkout     `bson:"dailyWorkouts" json:"dailyWorkouts"`
	CreatedBy        primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasWorkoutDays reports whether the template can be assigned at all.
func (t *ProgramTemplate) HasWorkoutDays() bool {
	return len(t.DailyWorkouts) > 0
}
