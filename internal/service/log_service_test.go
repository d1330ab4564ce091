package service

import (
	"context"
	"testing"
	"time"

	"fitstudio/coach-app/internal/domain"
	"fitstudio/coach-app/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newLogServiceForTest(
	sessionRepo *MockWorkoutSessionRepository,
	dietLogRepo *MockDietLogRepository,
	weightRepo *MockWeightLogRepository,
	patternRepo *MockPatternRepository,
	now time.Time,
) *logService {
	return &logService{
		sessionRepo: sessionRepo,
		dietLogRepo: dietLogRepo,
		weightRepo:  weightRepo,
		patternRepo: patternRepo,
		log:         logrus.New(),
		now:         func() time.Time { return now },
	}
}

func TestLogService_WorkoutLifecycle(t *testing.T) {
	userID := primitive.NewObjectID()
	now := time.Date(2025, 3, 12, 15, 0, 0, 0, time.Local)

	t.Run("start opens an ongoing session", func(t *testing.T) {
		sessionRepo := new(MockWorkoutSessionRepository)
		sessionRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.WorkoutSession")).
			Return(primitive.NewObjectID(), nil)

		svc := newLogServiceForTest(sessionRepo, new(MockDietLogRepository), new(MockWeightLogRepository), new(MockPatternRepository), now)
		session, err := svc.StartWorkout(context.Background(), userID, domain.WorkoutStrength)
		require.NoError(t, err)

		assert.Equal(t, domain.WorkoutOngoing, session.Status)
		assert.Equal(t, now.UnixMilli(), session.StartTime)
		assert.Nil(t, session.EndTime)
	})

	t.Run("unknown workout type is rejected", func(t *testing.T) {
		svc := newLogServiceForTest(new(MockWorkoutSessionRepository), new(MockDietLogRepository), new(MockWeightLogRepository), new(MockPatternRepository), now)
		_, err := svc.StartWorkout(context.Background(), userID, domain.WorkoutType("parkour"))
		assert.ErrorIs(t, err, ErrInvalidWorkoutType)
	})

	t.Run("finish derives total time and marks completed", func(t *testing.T) {
		sessionRepo := new(MockWorkoutSessionRepository)
		sessionID := primitive.NewObjectID()
		started := now.Add(-30 * time.Minute)

		sessionRepo.On("GetByID", mock.Anything, sessionID).Return(&domain.WorkoutSession{
			ID:        sessionID,
			UserID:    userID,
			StartTime: started.UnixMilli(),
			Status:    domain.WorkoutOngoing,
		}, nil)
		sessionRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.WorkoutSession")).Return(nil)

		svc := newLogServiceForTest(sessionRepo, new(MockDietLogRepository), new(MockWeightLogRepository), new(MockPatternRepository), now)
		session, err := svc.FinishWorkout(context.Background(), userID, sessionID, 350)
		require.NoError(t, err)

		assert.Equal(t, domain.WorkoutCompleted, session.Status)
		assert.Equal(t, int64(1800), session.TotalTime)
		assert.Equal(t, 350, session.TotalCaloriesBurned)
		require.NotNil(t, session.EndTime)
		assert.Equal(t, now.UnixMilli(), *session.EndTime)
	})

	t.Run("a closed session cannot be finished again", func(t *testing.T) {
		sessionRepo := new(MockWorkoutSessionRepository)
		sessionID := primitive.NewObjectID()

		sessionRepo.On("GetByID", mock.Anything, sessionID).Return(&domain.WorkoutSession{
			ID:     sessionID,
			UserID: userID,
			Status: domain.WorkoutCompleted,
		}, nil)

		svc := newLogServiceForTest(sessionRepo, new(MockDietLogRepository), new(MockWeightLogRepository), new(MockPatternRepository), now)
		_, err := svc.FinishWorkout(context.Background(), userID, sessionID, 0)
		assert.ErrorIs(t, err, ErrSessionClosed)
		sessionRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("someone else's session is off limits", func(t *testing.T) {
		sessionRepo := new(MockWorkoutSessionRepository)
		sessionID := primitive.NewObjectID()

		sessionRepo.On("GetByID", mock.Anything, sessionID).Return(&domain.WorkoutSession{
			ID:     sessionID,
			UserID: primitive.NewObjectID(),
			Status: domain.WorkoutOngoing,
		}, nil)

		svc := newLogServiceForTest(sessionRepo, new(MockDietLogRepository), new(MockWeightLogRepository), new(MockPatternRepository), now)
		_, err := svc.CancelWorkout(context.Background(), userID, sessionID)
		assert.ErrorIs(t, err, ErrSessionAccessDenied)
	})
}

func TestLogService_LogWeight(t *testing.T) {
	userID := primitive.NewObjectID()
	now := time.Date(2025, 3, 12, 15, 0, 0, 0, time.Local)

	t.Run("writes the log and mirrors into the pattern", func(t *testing.T) {
		weightRepo := new(MockWeightLogRepository)
		patternRepo := new(MockPatternRepository)

		weightRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.WeightLog")).
			Return(primitive.NewObjectID(), nil)
		patternRepo.On("GetByClientID", mock.Anything, userID).Return(&domain.ClientPattern{ClientID: userID}, nil)

		var mirrored *domain.ClientPattern
		patternRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.ClientPattern")).
			Run(func(args mock.Arguments) { mirrored = args.Get(1).(*domain.ClientPattern) }).
			Return(nil)

		svc := newLogServiceForTest(new(MockWorkoutSessionRepository), new(MockDietLogRepository), weightRepo, patternRepo, now)
		entry, err := svc.LogWeight(context.Background(), userID, 81.4)
		require.NoError(t, err)

		assert.Equal(t, 81.4, entry.Weight)
		assert.Equal(t, now.UnixMilli(), entry.CreatedAt)

		require.NotNil(t, mirrored)
		require.Len(t, mirrored.WeightLog, 1)
		assert.Equal(t, 81.4, mirrored.WeightLog[0].Weight)
	})

	t.Run("a missing pattern does not fail the log", func(t *testing.T) {
		weightRepo := new(MockWeightLogRepository)
		patternRepo := new(MockPatternRepository)

		weightRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.WeightLog")).
			Return(primitive.NewObjectID(), nil)
		patternRepo.On("GetByClientID", mock.Anything, userID).Return(nil, repository.ErrNotFound)

		svc := newLogServiceForTest(new(MockWorkoutSessionRepository), new(MockDietLogRepository), weightRepo, patternRepo, now)
		_, err := svc.LogWeight(context.Background(), userID, 81.4)
		assert.NoError(t, err)
	})

	t.Run("non-finite and non-positive weights are rejected", func(t *testing.T) {
		svc := newLogServiceForTest(new(MockWorkoutSessionRepository), new(MockDietLogRepository), new(MockWeightLogRepository), new(MockPatternRepository), now)
		for _, w := range []float64{0, -3} {
			_, err := svc.LogWeight(context.Background(), userID, w)
			assert.ErrorIs(t, err, ErrInvalidWeight)
		}
	})
}

func TestLogService_DeleteMeal(t *testing.T) {
	userID := primitive.NewObjectID()
	now := time.Date(2025, 3, 12, 15, 0, 0, 0, time.Local)

	t.Run("deletes the entry", func(t *testing.T) {
		dietLogRepo := new(MockDietLogRepository)
		logID := primitive.NewObjectID()

		dietLogRepo.On("GetByID", mock.Anything, logID).Return(&domain.DietLog{
			ID:     logID,
			UserID: userID,
		}, nil)
		dietLogRepo.On("Delete", mock.Anything, logID, userID).Return(nil)

		svc := newLogServiceForTest(new(MockWorkoutSessionRepository), dietLogRepo, new(MockWeightLogRepository), new(MockPatternRepository), now)
		err := svc.DeleteMeal(context.Background(), userID, logID)
		assert.NoError(t, err)
	})

	t.Run("someone else's entry reads as missing", func(t *testing.T) {
		dietLogRepo := new(MockDietLogRepository)
		logID := primitive.NewObjectID()

		dietLogRepo.On("GetByID", mock.Anything, logID).Return(&domain.DietLog{
			ID:     logID,
			UserID: primitive.NewObjectID(),
		}, nil)

		svc := newLogServiceForTest(new(MockWorkoutSessionRepository), dietLogRepo, new(MockWeightLogRepository), new(MockPatternRepository), now)
		err := svc.DeleteMeal(context.Background(), userID, logID)
		assert.ErrorIs(t, err, ErrDietLogNotFound)
		dietLogRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}
