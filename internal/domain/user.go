package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleTrainer        Role = "trainer"
	RoleTrainerManaged Role = "trainerManagedCustomer"
	RoleSelfManaged    Role = "selfManagedCustomer"
	RoleAdmin          Role = "admin"
)

// Goal describes what a client is training toward.
type Goal string

const (
	GoalWeightLoss     Goal = "weightLoss"
	GoalMuscleGain     Goal = "muscleGain"
	GoalEndurance      Goal = "endurance"
	GoalFlexibility    Goal = "flexibility"
	GoalGeneralFitness Goal = "generalFitness"
)

// User represents a user in the system (a trainer, a customer, or an admin).
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"` // Should be unique
	PhoneNumber  string             `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	Goal         Goal               `bson:"goal,omitempty" json:"goal,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// --- Trainer-specific ---
	// Stores ObjectIDs of clients managed by this trainer.
	ClientIDs []primitive.ObjectID `bson:"clientIds,omitempty" json:"clientIds,omitempty"`

	// --- Client-specific ---
	// Stores the ObjectID of the trainer managing this client.
	TrainerID *primitive.ObjectID `bson:"trainerId,omitempty" json:"trainerId,omitempty"`
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsCustomer reports whether the user logs workouts/meals as a client,
// whether self-managed or coached.
func (u *User) IsCustomer() bool {
	return u.Role == RoleTrainerManaged || u.Role == RoleSelfManaged
}

// IsPrivileged reports whether the user may operate the coaching console.
func (u *User) IsPrivileged() bool {
	return u.Role == RoleTrainer || u.Role == RoleAdmin
}
