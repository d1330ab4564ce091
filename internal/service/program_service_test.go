package service

import (
	"context"
	"testing"

	"fitstudio/coach-app/internal/domain"
	"fitstudio/coach-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newProgramServiceForTest(programRepo *MockProgramRepository, dietRepo *MockDietTemplateRepository) *programService {
	return &programService{
		programRepo: programRepo,
		dietRepo:    dietRepo,
	}
}

func TestProgramService_CreateProgram(t *testing.T) {
	creatorID := primitive.NewObjectID()

	t.Run("defaults to a one week draft", func(t *testing.T) {
		programRepo := new(MockProgramRepository)
		programRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ProgramTemplate")).
			Return(primitive.NewObjectID(), nil)

		svc := newProgramServiceForTest(programRepo, new(MockDietTemplateRepository))
		tpl, err := svc.CreateProgram(context.Background(), creatorID, domain.ProgramTemplate{Name: "Starter"})
		require.NoError(t, err)

		assert.Equal(t, TemplateStatusDraft, tpl.Status)
		assert.Equal(t, 1, tpl.DurationWeeks)
		assert.Equal(t, creatorID, tpl.CreatedBy)
	})

	t.Run("a name is required", func(t *testing.T) {
		svc := newProgramServiceForTest(new(MockProgramRepository), new(MockDietTemplateRepository))
		_, err := svc.CreateProgram(context.Background(), creatorID, domain.ProgramTemplate{})
		assert.ErrorIs(t, err, ErrTemplateNameRequired)
	})
}

func TestProgramService_GetProgramsByCreator(t *testing.T) {
	creatorID := primitive.NewObjectID()

	t.Run("returns only the creator's templates", func(t *testing.T) {
		mine := []domain.ProgramTemplate{
			{ID: primitive.NewObjectID(), Name: "Strength Base", CreatedBy: creatorID},
			{ID: primitive.NewObjectID(), Name: "Hypertrophy Block", CreatedBy: creatorID},
		}
		programRepo := new(MockProgramRepository)
		programRepo.On("GetByCreator", mock.Anything, creatorID).Return(mine, nil)

		svc := newProgramServiceForTest(programRepo, new(MockDietTemplateRepository))
		got, err := svc.GetProgramsByCreator(context.Background(), creatorID)
		require.NoError(t, err)
		assert.Equal(t, mine, got)
	})

	t.Run("a creator ID is required", func(t *testing.T) {
		programRepo := new(MockProgramRepository)
		svc := newProgramServiceForTest(programRepo, new(MockDietTemplateRepository))
		_, err := svc.GetProgramsByCreator(context.Background(), primitive.NilObjectID)
		assert.Error(t, err)
		programRepo.AssertNotCalled(t, "GetByCreator", mock.Anything, mock.Anything)
	})
}

func TestProgramService_UpdateProgram(t *testing.T) {
	creatorID := primitive.NewObjectID()
	templateID := primitive.NewObjectID()

	t.Run("only the creator may edit", func(t *testing.T) {
		programRepo := new(MockProgramRepository)
		programRepo.On("GetByID", mock.Anything, templateID).Return(&domain.ProgramTemplate{
			ID:        templateID,
			Name:      "Strength Base",
			CreatedBy: primitive.NewObjectID(),
		}, nil)

		svc := newProgramServiceForTest(programRepo, new(MockDietTemplateRepository))
		_, err := svc.UpdateProgram(context.Background(), creatorID, domain.ProgramTemplate{ID: templateID, Name: "Strength Base v2"})
		assert.ErrorIs(t, err, ErrTemplateAccessDenied)
		programRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("ownership survives the update payload", func(t *testing.T) {
		programRepo := new(MockProgramRepository)
		programRepo.On("GetByID", mock.Anything, templateID).Return(&domain.ProgramTemplate{
			ID:        templateID,
			Name:      "Strength Base",
			CreatedBy: creatorID,
		}, nil)

		var saved *domain.ProgramTemplate
		programRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.ProgramTemplate")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.ProgramTemplate) }).
			Return(nil)

		svc := newProgramServiceForTest(programRepo, new(MockDietTemplateRepository))
		tpl, err := svc.UpdateProgram(context.Background(), creatorID, domain.ProgramTemplate{
			ID:        templateID,
			Name:      "Strength Base v2",
			CreatedBy: primitive.NewObjectID(), // forged owner is ignored
		})
		require.NoError(t, err)

		assert.Equal(t, creatorID, tpl.CreatedBy)
		require.NotNil(t, saved)
		assert.Equal(t, creatorID, saved.CreatedBy)
	})
}

func TestProgramService_DuplicateProgram(t *testing.T) {
	creatorID := primitive.NewObjectID()
	sourceID := primitive.NewObjectID()

	t.Run("clones as a draft copy owned by the caller", func(t *testing.T) {
		programRepo := new(MockProgramRepository)
		programRepo.On("GetByID", mock.Anything, sourceID).Return(&domain.ProgramTemplate{
			ID:            sourceID,
			Name:          "Hypertrophy Block",
			Status:        TemplateStatusLive,
			DurationWeeks: 6,
			CreatedBy:     primitive.NewObjectID(),
			DailyWorkouts: []domain.DailyWorkout{{DayLabel: "Mon", KeyWork: []string{"Bench press"}}},
		}, nil)

		cloneID := primitive.NewObjectID()
		programRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ProgramTemplate")).
			Return(cloneID, nil)

		svc := newProgramServiceForTest(programRepo, new(MockDietTemplateRepository))
		clone, err := svc.DuplicateProgram(context.Background(), creatorID, sourceID)
		require.NoError(t, err)

		assert.Equal(t, cloneID, clone.ID)
		assert.Equal(t, "Hypertrophy Block Copy", clone.Name)
		assert.Equal(t, TemplateStatusDraft, clone.Status)
		assert.Equal(t, creatorID, clone.CreatedBy)
		assert.Equal(t, 6, clone.DurationWeeks)
		require.Len(t, clone.DailyWorkouts, 1)
	})

	t.Run("unknown source", func(t *testing.T) {
		programRepo := new(MockProgramRepository)
		programRepo.On("GetByID", mock.Anything, sourceID).Return(nil, repository.ErrNotFound)

		svc := newProgramServiceForTest(programRepo, new(MockDietTemplateRepository))
		_, err := svc.DuplicateProgram(context.Background(), creatorID, sourceID)
		assert.ErrorIs(t, err, ErrTemplateNotFound)
	})
}

func TestProgramService_DietTemplates(t *testing.T) {
	creatorID := primitive.NewObjectID()
	templateID := primitive.NewObjectID()

	t.Run("create stamps the owner", func(t *testing.T) {
		dietRepo := new(MockDietTemplateRepository)
		dietRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.DietTemplate")).
			Return(templateID, nil)

		svc := newProgramServiceForTest(new(MockProgramRepository), dietRepo)
		tpl, err := svc.CreateDietTemplate(context.Background(), creatorID, domain.DietTemplate{Name: "Cutting Plan"})
		require.NoError(t, err)
		assert.Equal(t, creatorID, tpl.CreatedBy)
		assert.Equal(t, templateID, tpl.ID)
	})

	t.Run("delete of a foreign template reads as missing", func(t *testing.T) {
		dietRepo := new(MockDietTemplateRepository)
		dietRepo.On("Delete", mock.Anything, templateID, creatorID).Return(repository.ErrNotFound)

		svc := newProgramServiceForTest(new(MockProgramRepository), dietRepo)
		err := svc.DeleteDietTemplate(context.Background(), creatorID, templateID)
		assert.ErrorIs(t, err, ErrTemplateNotFound)
	})
}
