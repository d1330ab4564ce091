package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutStatus type for workout session lifecycle
type WorkoutStatus string

const (
	WorkoutOngoing   WorkoutStatus = "ongoing"
	WorkoutCompleted WorkoutStatus = "completed"
	WorkoutCancelled WorkoutStatus = "cancelled"
)

// WorkoutType classifies a logged session.
type WorkoutType string

const (
	WorkoutCardio      WorkoutType = "cardio"
	WorkoutStrength    WorkoutType = "strength"
	WorkoutFlexibility WorkoutType = "flexibility"
	WorkoutBalance     WorkoutType = "balance"
)

// MealType classifies a diet log entry.
type MealType string

const (
	MealBreakfast   MealType = "breakfast"
	MealLunch       MealType = "lunch"
	MealDinner      MealType = "dinner"
	MealSnack       MealType = "snack"
	MealPostWorkout MealType = "postWorkout"
)

// WorkoutSession is one logged workout. Timestamps are epoch milliseconds;
// these events are immutable once logged except for explicit edit/delete.
type WorkoutSession struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID              primitive.ObjectID `bson:"userId" json:"userId"`
	StartTime           int64              `bson:"startTime" json:"startTime"`
	EndTime             *int64             `bson:"endTime,omitempty" json:"endTime,omitempty"`
	Status              WorkoutStatus      `bson:"status" json:"status"`
	WorkoutType         WorkoutType        `bson:"workoutType" json:"workoutType"`
	TotalTime           int64              `bson:"totalTime" json:"totalTime"` // seconds
	TotalCaloriesBurned int                `bson:"totalCaloriesBurned" json:"totalCaloriesBurned"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DietLog is one logged meal.
type DietLog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	CreatedAt   int64              `bson:"createdAt" json:"createdAt"` // epoch ms
	MealType    MealType           `bson:"mealType" json:"mealType"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Calories    int                `bson:"calories" json:"calories"`
	PhotoKey    string             `bson:"photoKey,omitempty" json:"-"` // S3 object key, internal use
}

// WeightLog is one logged body-weight measurement.
type WeightLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"` // epoch ms
	Weight    float64            `bson:"weight" json:"weight"`       // kg
}
