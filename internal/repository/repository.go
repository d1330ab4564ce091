package repository

import (
	"context"

	"fitstudio/coach-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer. Store failures other than
// these propagate unchanged to the caller; there is no retry.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrConflict     = RepositoryError("conflict")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	AddClientIDToTrainer(ctx context.Context, trainerID, clientID primitive.ObjectID) error
	RemoveClientIDFromTrainer(ctx context.Context, trainerID, clientID primitive.ObjectID) error
	GetClientsByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error)
	SetTrainerForClient(ctx context.Context, clientID, trainerID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProgramTemplateRepository defines the interface for interacting with
// program template data. Templates are read-only during assignment.
type ProgramTemplateRepository interface {
	Create(ctx context.Context, tpl *domain.ProgramTemplate) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgramTemplate, error)
	List(ctx context.Context) ([]domain.ProgramTemplate, error)
	GetByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]domain.ProgramTemplate, error)
	Update(ctx context.Context, tpl *domain.ProgramTemplate) error
	Delete(ctx context.Context, id primitive.ObjectID, creatorID primitive.ObjectID) error
}

// DietTemplateRepository defines the interface for interacting with
// diet template data.
type DietTemplateRepository interface {
	Create(ctx context.Context, tpl *domain.DietTemplate) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DietTemplate, error)
	GetByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]domain.DietTemplate, error)
	Update(ctx context.Context, tpl *domain.DietTemplate) error
	Delete(ctx context.Context, id primitive.ObjectID, creatorID primitive.ObjectID) error
}

// ClientPatternRepository stores one pattern document per client.
// Save is a whole-document overwrite: last writer wins, no merge.
type ClientPatternRepository interface {
	Create(ctx context.Context, p *domain.ClientPattern) (primitive.ObjectID, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID) (*domain.ClientPattern, error)
	Save(ctx context.Context, p *domain.ClientPattern) error
	DeleteByClientID(ctx context.Context, clientID primitive.ObjectID) error
}

// WorkoutSessionRepository defines the interface for workout session logs.
type WorkoutSessionRepository interface {
	Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.WorkoutSession, error)
	GetByUserInRange(ctx context.Context, userID primitive.ObjectID, from, to int64) ([]domain.WorkoutSession, error)
	Update(ctx context.Context, session *domain.WorkoutSession) error
}

// DietLogRepository defines the interface for diet logs.
type DietLogRepository interface {
	Create(ctx context.Context, log *domain.DietLog) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DietLog, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.DietLog, error)
	GetByUserInRange(ctx context.Context, userID primitive.ObjectID, from, to int64) ([]domain.DietLog, error)
	Update(ctx context.Context, log *domain.DietLog) error
	Delete(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error
}

// WeightLogRepository defines the interface for weight logs.
type WeightLogRepository interface {
	Create(ctx context.Context, log *domain.WeightLog) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.WeightLog, error)
	GetByUserInRange(ctx context.Context, userID primitive.ObjectID, from, to int64) ([]domain.WeightLog, error)
}
