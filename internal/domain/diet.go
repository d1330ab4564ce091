package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Meal is a single meal entry inside a diet template day.
type Meal struct {
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Calories    int    `bson:"calories" json:"calories"` // >= 0
}

// DietDay is one day-entry of a reusable diet template.
type DietDay struct {
	DayLabel  string `bson:"dayLabel" json:"dayLabel"` // e.g. "Mon"
	Emphasis  string `bson:"emphasis" json:"emphasis"`
	Meals     []Meal `bson:"meals" json:"meals"`
	Hydration string `bson:"hydration" json:"hydration"`
	Notes     string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// DietTemplate is a reusable multi-day nutrition definition.
type DietTemplate struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Overview  string             `bson:"overview,omitempty" json:"overview,omitempty"`
	Days      []DietDay          `bson:"days" json:"days"`
	CreatedBy primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasDietDays reports whether the template can be assigned at all.
func (t *DietTemplate) HasDietDays() bool {
	return len(t.Days) > 0
}
