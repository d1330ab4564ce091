package service

import (
	"context"

	"fitstudio/coach-app/internal/domain"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Repository mocks shared by the service tests ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) AddClientIDToTrainer(ctx context.Context, trainerID, clientID primitive.ObjectID) error {
	args := m.Called(ctx, trainerID, clientID)
	return args.Error(0)
}

func (m *MockUserRepository) RemoveClientIDFromTrainer(ctx context.Context, trainerID, clientID primitive.ObjectID) error {
	args := m.Called(ctx, trainerID, clientID)
	return args.Error(0)
}

func (m *MockUserRepository) GetClientsByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error) {
	args := m.Called(ctx, trainerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SetTrainerForClient(ctx context.Context, clientID, trainerID primitive.ObjectID) error {
	args := m.Called(ctx, clientID, trainerID)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPatternRepository struct {
	mock.Mock
}

func (m *MockPatternRepository) Create(ctx context.Context, p *domain.ClientPattern) (primitive.ObjectID, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockPatternRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID) (*domain.ClientPattern, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientPattern), args.Error(1)
}

func (m *MockPatternRepository) Save(ctx context.Context, p *domain.ClientPattern) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPatternRepository) DeleteByClientID(ctx context.Context, clientID primitive.ObjectID) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

type MockProgramRepository struct {
	mock.Mock
}

func (m *MockProgramRepository) Create(ctx context.Context, tpl *domain.ProgramTemplate) (primitive.ObjectID, error) {
	args := m.Called(ctx, tpl)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockProgramRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgramTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProgramTemplate), args.Error(1)
}

func (m *MockProgramRepository) List(ctx context.Context) ([]domain.ProgramTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProgramTemplate), args.Error(1)
}

func (m *MockProgramRepository) GetByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]domain.ProgramTemplate, error) {
	args := m.Called(ctx, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProgramTemplate), args.Error(1)
}

func (m *MockProgramRepository) Update(ctx context.Context, tpl *domain.ProgramTemplate) error {
	args := m.Called(ctx, tpl)
	return args.Error(0)
}

func (m *MockProgramRepository) Delete(ctx context.Context, id primitive.ObjectID, creatorID primitive.ObjectID) error {
	args := m.Called(ctx, id, creatorID)
	return args.Error(0)
}

type MockDietTemplateRepository struct {
	mock.Mock
}

func (m *MockDietTemplateRepository) Create(ctx context.Context, tpl *domain.DietTemplate) (primitive.ObjectID, error) {
	args := m.Called(ctx, tpl)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockDietTemplateRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DietTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DietTemplate), args.Error(1)
}

func (m *MockDietTemplateRepository) GetByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]domain.DietTemplate, error) {
	args := m.Called(ctx, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DietTemplate), args.Error(1)
}

func (m *MockDietTemplateRepository) Update(ctx context.Context, tpl *domain.DietTemplate) error {
	args := m.Called(ctx, tpl)
	return args.Error(0)
}

func (m *MockDietTemplateRepository) Delete(ctx context.Context, id primitive.ObjectID, creatorID primitive.ObjectID) error {
	args := m.Called(ctx, id, creatorID)
	return args.Error(0)
}

type MockWorkoutSessionRepository struct {
	mock.Mock
}

func (m *MockWorkoutSessionRepository) Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockWorkoutSessionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkoutSession), args.Error(1)
}

func (m *MockWorkoutSessionRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.WorkoutSession, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkoutSession), args.Error(1)
}

func (m *MockWorkoutSessionRepository) GetByUserInRange(ctx context.Context, userID primitive.ObjectID, from, to int64) ([]domain.WorkoutSession, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkoutSession), args.Error(1)
}

func (m *MockWorkoutSessionRepository) Update(ctx context.Context, session *domain.WorkoutSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

type MockDietLogRepository struct {
	mock.Mock
}

func (m *MockDietLogRepository) Create(ctx context.Context, log *domain.DietLog) (primitive.ObjectID, error) {
	args := m.Called(ctx, log)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockDietLogRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DietLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DietLog), args.Error(1)
}

func (m *MockDietLogRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.DietLog, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DietLog), args.Error(1)
}

func (m *MockDietLogRepository) GetByUserInRange(ctx context.Context, userID primitive.ObjectID, from, to int64) ([]domain.DietLog, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DietLog), args.Error(1)
}

func (m *MockDietLogRepository) Update(ctx context.Context, log *domain.DietLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockDietLogRepository) Delete(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

type MockWeightLogRepository struct {
	mock.Mock
}

func (m *MockWeightLogRepository) Create(ctx context.Context, log *domain.WeightLog) (primitive.ObjectID, error) {
	args := m.Called(ctx, log)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockWeightLogRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.WeightLog, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WeightLog), args.Error(1)
}

func (m *MockWeightLogRepository) GetByUserInRange(ctx context.Context, userID primitive.ObjectID, from, to int64) ([]domain.WeightLog, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WeightLog), args.Error(1)
}
