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
	"golang.org/x/crypto/bcrypt"
)

func newAuthServiceForTest(userRepo *MockUserRepository, patternRepo *MockPatternRepository, secret string) *authService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return &authService{
		userRepo:      userRepo,
		patternRepo:   patternRepo,
		jwtSecret:     secret,
		jwtExpiration: time.Hour,
		log:           log,
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("customer registration creates a pattern document", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByEmail", mock.Anything, "jo@example.com").Return(nil, repository.ErrNotFound)

		userID := primitive.NewObjectID()
		userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(userID, nil)

		patternRepo := new(MockPatternRepository)
		patternRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.ClientPattern) bool {
			return p.ClientID == userID
		})).Return(primitive.NewObjectID(), nil)

		svc := newAuthServiceForTest(userRepo, patternRepo, "test-secret")
		user, err := svc.Register(context.Background(), "Jo", "jo@example.com", "hunter22", domain.RoleSelfManaged, domain.GoalWeightLoss)
		require.NoError(t, err)

		assert.Equal(t, userID, user.ID)
		assert.Empty(t, user.PasswordHash)
		patternRepo.AssertExpectations(t)
	})

	t.Run("trainer registration skips the pattern document", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByEmail", mock.Anything, "coach@example.com").Return(nil, repository.ErrNotFound)
		userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(primitive.NewObjectID(), nil)

		patternRepo := new(MockPatternRepository)
		svc := newAuthServiceForTest(userRepo, patternRepo, "test-secret")
		_, err := svc.Register(context.Background(), "Coach", "coach@example.com", "hunter22", domain.RoleTrainer, "")
		require.NoError(t, err)
		patternRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByEmail", mock.Anything, "jo@example.com").Return(&domain.User{Email: "jo@example.com"}, nil)

		svc := newAuthServiceForTest(userRepo, new(MockPatternRepository), "test-secret")
		_, err := svc.Register(context.Background(), "Jo", "jo@example.com", "hunter22", domain.RoleSelfManaged, "")
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	userID := primitive.NewObjectID()
	// Login blanks the password hash on the returned user, so every
	// subtest gets its own copy.
	storedUser := func() *domain.User {
		return &domain.User{
			ID:           userID,
			Name:         "Jo",
			Email:        "jo@example.com",
			PasswordHash: string(hash),
			Role:         domain.RoleSelfManaged,
		}
	}

	t.Run("issues a token on valid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByEmail", mock.Anything, "jo@example.com").Return(storedUser(), nil)

		svc := newAuthServiceForTest(userRepo, new(MockPatternRepository), "test-secret")
		token, user, err := svc.Login(context.Background(), "jo@example.com", "hunter22")
		require.NoError(t, err)

		assert.NotEmpty(t, token)
		assert.Equal(t, userID, user.ID)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByEmail", mock.Anything, "jo@example.com").Return(storedUser(), nil)

		svc := newAuthServiceForTest(userRepo, new(MockPatternRepository), "test-secret")
		_, _, err := svc.Login(context.Background(), "jo@example.com", "wrong")
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	})

	t.Run("unknown email reads as auth failure", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrNotFound)

		svc := newAuthServiceForTest(userRepo, new(MockPatternRepository), "test-secret")
		_, _, err := svc.Login(context.Background(), "nobody@example.com", "hunter22")
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	})
}

func TestAuthService_GetJWTSecret(t *testing.T) {
	svc := newAuthServiceForTest(new(MockUserRepository), new(MockPatternRepository), "middleware-secret")
	assert.Equal(t, "middleware-secret", svc.GetJWTSecret())
}
