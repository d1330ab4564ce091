package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"fitstudio/coach-app/internal/domain"
	"fitstudio/coach-app/internal/pattern"
	"fitstudio/coach-app/internal/repository"
	"fitstudio/coach-app/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrSessionNotFound     = errors.New("workout session not found")
	ErrSessionAccessDenied = errors.New("access denied to this workout session")
	ErrSessionClosed       = errors.New("workout session is already finished or cancelled")
	ErrDietLogNotFound     = errors.New("diet log entry not found")
	ErrInvalidWorkoutType  = errors.New("invalid workout type")
	ErrInvalidMealType     = errors.New("invalid meal type")
	ErrUnsupportedPhoto    = errors.New("unsupported photo content type")
)

// LogService records a customer's own activity: workout sessions, meals
// (optionally with a photo in object storage) and weight measurements.
type LogService interface {
	StartWorkout(ctx context.Context, userID primitive.ObjectID, workoutType domain.WorkoutType) (*domain.WorkoutSession, error)
	FinishWorkout(ctx context.Context, userID, sessionID primitive.ObjectID, caloriesBurned int) (*domain.WorkoutSession, error)
	CancelWorkout(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error)
	GetWorkouts(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.WorkoutSession, error)

	LogMeal(ctx context.Context, userID primitive.ObjectID, mealType domain.MealType, title, description string, calories int, photoKey string) (*domain.DietLog, error)
	UpdateMeal(ctx context.Context, userID, logID primitive.ObjectID, mealType domain.MealType, title, description string, calories int) (*domain.DietLog, error)
	DeleteMeal(ctx context.Context, userID, logID primitive.ObjectID) error
	GetMeals(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.DietLog, error)
	MealPhotoUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (url, objectKey string, err error)
	MealPhotoDownloadURL(ctx context.Context, userID, logID primitive.ObjectID) (string, error)

	LogWeight(ctx context.Context, userID primitive.ObjectID, weight float64) (*domain.WeightLog, error)
	GetWeights(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.WeightLog, error)
}

// logService implements the LogService interface.
type logService struct {
	sessionRepo repository.WorkoutSessionRepository
	dietLogRepo repository.DietLogRepository
	weightRepo  repository.WeightLogRepository
	patternRepo repository.ClientPatternRepository
	fileStorage storage.FileStorage
	log         *logrus.Logger
	now         func() time.Time
}

// NewLogService creates a new instance of logService.
func NewLogService(
	sessionRepo repository.WorkoutSessionRepository,
	dietLogRepo repository.DietLogRepository,
	weightRepo repository.WeightLogRepository,
	patternRepo repository.ClientPatternRepository,
	fileStorage storage.FileStorage,
	log *logrus.Logger,
) LogService {
	return &logService{
		sessionRepo: sessionRepo,
		dietLogRepo: dietLogRepo,
		weightRepo:  weightRepo,
		patternRepo: patternRepo,
		fileStorage: fileStorage,
		log:         log,
		now:         time.Now,
	}
}

// === Workout sessions ===

// StartWorkout opens a new ongoing session stamped with the current time.
func (s *logService) StartWorkout(ctx context.Context, userID primitive.ObjectID, workoutType domain.WorkoutType) (*domain.WorkoutSession, error) {
	switch workoutType {
	case domain.WorkoutCardio, domain.WorkoutStrength, domain.WorkoutFlexibility, domain.WorkoutBalance:
	default:
		return nil, ErrInvalidWorkoutType
	}

	session := &domain.WorkoutSession{
		UserID:      userID,
		StartTime:   s.now().UnixMilli(),
		Status:      domain.WorkoutOngoing,
		WorkoutType: workoutType,
	}
	id, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = id
	return session, nil
}

// FinishWorkout closes an ongoing session, deriving the total time from
// the start and end stamps.
func (s *logService) FinishWorkout(ctx context.Context, userID, sessionID primitive.ObjectID, caloriesBurned int) (*domain.WorkoutSession, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.WorkoutOngoing {
		return nil, ErrSessionClosed
	}

	endTime := s.now().UnixMilli()
	session.EndTime = &endTime
	session.Status = domain.WorkoutCompleted
	session.TotalTime = (endTime - session.StartTime) / 1000
	if caloriesBurned > 0 {
		session.TotalCaloriesBurned = caloriesBurned
	}

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CancelWorkout marks an ongoing session cancelled. Cancelled sessions
// never count toward plan progress.
func (s *logService) CancelWorkout(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.WorkoutOngoing {
		return nil, ErrSessionClosed
	}

	endTime := s.now().UnixMilli()
	session.EndTime = &endTime
	session.Status = domain.WorkoutCancelled
	session.TotalTime = (endTime - session.StartTime) / 1000

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetWorkouts lists the user's sessions, newest first.
func (s *logService) GetWorkouts(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.WorkoutSession, error) {
	return s.sessionRepo.GetByUserID(ctx, userID, limit)
}

func (s *logService) ownedSession(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrSessionAccessDenied
	}
	return session, nil
}

// === Diet logs ===

// LogMeal records one meal, optionally referencing a photo previously
// uploaded through MealPhotoUploadURL.
func (s *logService) LogMeal(ctx context.Context, userID primitive.ObjectID, mealType domain.MealType, title, description string, calories int, photoKey string) (*domain.DietLog, error) {
	if err := validMealType(mealType); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, errors.New("meal title is required")
	}
	if calories < 0 {
		calories = 0
	}

	entry := &domain.DietLog{
		UserID:      userID,
		CreatedAt:   s.now().UnixMilli(),
		MealType:    mealType,
		Title:       title,
		Description: description,
		Calories:    calories,
		PhotoKey:    photoKey,
	}
	id, err := s.dietLogRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	return entry, nil
}

// UpdateMeal edits a meal entry's descriptive fields. The creation stamp
// and photo are kept.
func (s *logService) UpdateMeal(ctx context.Context, userID, logID primitive.ObjectID, mealType domain.MealType, title, description string, calories int) (*domain.DietLog, error) {
	if err := validMealType(mealType); err != nil {
		return nil, err
	}

	entry, err := s.dietLogRepo.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDietLogNotFound
		}
		return nil, err
	}
	if entry.UserID != userID {
		return nil, ErrDietLogNotFound
	}

	entry.MealType = mealType
	entry.Title = title
	entry.Description = description
	if calories >= 0 {
		entry.Calories = calories
	}

	if err := s.dietLogRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteMeal removes a meal entry and its photo, if any. A failed photo
// delete leaves an orphaned object but never fails the request.
func (s *logService) DeleteMeal(ctx context.Context, userID, logID primitive.ObjectID) error {
	entry, err := s.dietLogRepo.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDietLogNotFound
		}
		return err
	}
	if entry.UserID != userID {
		return ErrDietLogNotFound
	}

	if err := s.dietLogRepo.Delete(ctx, logID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDietLogNotFound
		}
		return err
	}

	if entry.PhotoKey != "" && s.fileStorage != nil {
		if err := s.fileStorage.DeleteObject(ctx, entry.PhotoKey); err != nil {
			s.log.WithError(err).WithField("objectKey", entry.PhotoKey).
				Warn("meal photo left orphaned in object storage")
		}
	}
	return nil
}

// GetMeals lists the user's meal entries, newest first.
func (s *logService) GetMeals(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.DietLog, error) {
	return s.dietLogRepo.GetByUserID(ctx, userID, limit)
}

// MealPhotoUploadURL issues a presigned PUT URL for a new meal photo and
// returns the object key the client should attach to the meal entry.
func (s *logService) MealPhotoUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (string, string, error) {
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		return "", "", ErrUnsupportedPhoto
	}

	objectKey := fmt.Sprintf("meal-photos/%s/%s", userID.Hex(), uuid.NewString())
	url, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", "", err
	}
	return url, objectKey, nil
}

// MealPhotoDownloadURL issues a presigned GET URL for a meal's photo.
func (s *logService) MealPhotoDownloadURL(ctx context.Context, userID, logID primitive.ObjectID) (string, error) {
	entry, err := s.dietLogRepo.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrDietLogNotFound
		}
		return "", err
	}
	if entry.UserID != userID {
		return "", ErrDietLogNotFound
	}
	if entry.PhotoKey == "" {
		return "", ErrDietLogNotFound
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, entry.PhotoKey, storage.DefaultPresignedURLExpiry)
}

// === Weight logs ===

// LogWeight records a measurement in the log collection and mirrors it
// into the coaching pattern's rolling log so trend views stay in sync.
func (s *logService) LogWeight(ctx context.Context, userID primitive.ObjectID, weight float64) (*domain.WeightLog, error) {
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight <= 0 {
		return nil, ErrInvalidWeight
	}

	now := s.now()
	entry := &domain.WeightLog{
		UserID:    userID,
		CreatedAt: now.UnixMilli(),
		Weight:    weight,
	}
	id, err := s.weightRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id

	// Mirror into the pattern document. The log collection stays the
	// source of truth; a mirror failure is reported but not fatal.
	state, err := s.patternRepo.GetByClientID(ctx, userID)
	if err == nil {
		if next, ok := pattern.LogWeight(*state, weight, now); ok {
			if err := s.patternRepo.Save(ctx, &next); err != nil {
				s.log.WithError(err).WithField("userId", userID.Hex()).
					Warn("weight logged but pattern mirror failed")
			}
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.log.WithError(err).WithField("userId", userID.Hex()).
			Warn("weight logged but pattern lookup failed")
	}

	return entry, nil
}

// GetWeights lists the user's weight measurements, newest first.
func (s *logService) GetWeights(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.WeightLog, error) {
	return s.weightRepo.GetByUserID(ctx, userID, limit)
}

func validMealType(t domain.MealType) error {
	switch t {
	case domain.MealBreakfast, domain.MealLunch, domain.MealDinner, domain.MealSnack, domain.MealPostWorkout:
		return nil
	}
	return ErrInvalidMealType
}
