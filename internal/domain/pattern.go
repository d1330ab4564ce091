package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScheduleEntry is one concrete day-assignment produced by expanding a
// program template across multiple weeks.
type ScheduleEntry struct {
	Day      string `bson:"day" json:"day"` // e.g. "Week 2 · Mon"
	Focus    string `bson:"focus" json:"focus"`
	Detail   string `bson:"detail" json:"detail"`
	DietNote string `bson:"dietNote,omitempty" json:"dietNote,omitempty"`
}

// AssignedWorkoutPattern is the expanded workout schedule currently
// assigned to a client.
type AssignedWorkoutPattern struct {
	ID               string              `bson:"id" json:"id"`
	Name             string              `bson:"name" json:"name"`
	Focus            string              `bson:"focus" json:"focus"`
	SourceTemplateID *primitive.ObjectID `bson:"sourceTemplateId,omitempty" json:"sourceTemplateId,omitempty"`
	Schedule         []ScheduleEntry     `bson:"schedule" json:"schedule"`
}

// DietDayGuidance is one expanded diet day.
type DietDayGuidance struct {
	Day      string `bson:"day" json:"day"`
	Guidance string `bson:"guidance" json:"guidance"`
}

// DietAssignment is the expanded diet plan currently assigned to a client.
type DietAssignment struct {
	ID               string              `bson:"id" json:"id"`
	Title            string              `bson:"title" json:"title"`
	Summary          string              `bson:"summary,omitempty" json:"summary,omitempty"`
	SourceTemplateID *primitive.ObjectID `bson:"sourceTemplateId,omitempty" json:"sourceTemplateId,omitempty"`
	DailyPlan        []DietDayGuidance   `bson:"dailyPlan" json:"dailyPlan"`
}

// WorkoutTask is a single checkable item derived from the schedule or
// added by the coach. Order is insertion order: custom tasks are
// prepended, template-derived tasks are seeded in schedule order.
type WorkoutTask struct {
	ID        string `bson:"id" json:"id"`
	Label     string `bson:"label" json:"label"`
	Detail    string `bson:"detail,omitempty" json:"detail,omitempty"`
	Completed bool   `bson:"completed" json:"completed"`
	Day       string `bson:"day" json:"day"`
}

// WeightEntry is one weight measurement in the pattern's rolling log.
type WeightEntry struct {
	ID     string    `bson:"id" json:"id"`
	Date   time.Time `bson:"date" json:"date"`
	Weight float64   `bson:"weight" json:"weight"` // kg, > 0
}

// WeightLogCap bounds the pattern weight log to the most recent entries.
const WeightLogCap = 30

// ClientPattern is the per-client mutable aggregate the coaching console
// works on: the assigned workout schedule and diet plan plus derived
// tasks and the rolling weight log. One document per client; created
// empty when the client record is created, deleted with the client.
type ClientPattern struct {
	ID          primitive.ObjectID      `bson:"_id,omitempty" json:"id"`
	ClientID    primitive.ObjectID      `bson:"clientId" json:"clientId"`
	Workout     *AssignedWorkoutPattern `bson:"workout,omitempty" json:"workout,omitempty"`
	Diet        *DietAssignment         `bson:"diet,omitempty" json:"diet,omitempty"`
	Tasks       []WorkoutTask           `bson:"tasks" json:"tasks"`
	FinalizedAt *time.Time              `bson:"finalizedAt,omitempty" json:"finalizedAt,omitempty"` // nil means "in progress"
	WeightLog   []WeightEntry           `bson:"weightLog" json:"weightLog"`                         // newest first, capped
	CreatedAt   time.Time               `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time               `bson:"updatedAt" json:"updatedAt"`
}
