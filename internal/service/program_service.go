package service

import (
	"context"
	"errors"
	"fmt"

	"fitstudio/coach-app/internal/domain"
	"fitstudio/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrTemplateNotFound     = errors.New("template not found")
	ErrTemplateAccessDenied = errors.New("access denied to modify this template")
	ErrTemplateNameRequired = errors.New("template name is required")
)

// Template lifecycle states.
const (
	TemplateStatusDraft = "Draft"
	TemplateStatusLive  = "Live"
)

// ProgramService manages reusable program and diet templates. Templates
// are read-only during assignment; editing one never touches patterns
// already expanded from it.
type ProgramService interface {
	// Program templates
	CreateProgram(ctx context.Context, creatorID primitive.ObjectID, tpl domain.ProgramTemplate) (*domain.ProgramTemplate, error)
	GetProgram(ctx context.Context, id primitive.ObjectID) (*domain.ProgramTemplate, error)
	ListPrograms(ctx context.Context) ([]domain.ProgramTemplate, error)
	GetProgramsByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]domain.ProgramTemplate, error)
	UpdateProgram(ctx context.Context, creatorID primitive.ObjectID, tpl domain.ProgramTemplate) (*domain.ProgramTemplate, error)
	DuplicateProgram(ctx context.Context, creatorID, id primitive.ObjectID) (*domain.ProgramTemplate, error)
	DeleteProgram(ctx context.Context, creatorID, id primitive.ObjectID) error

	// Diet templates
	CreateDietTemplate(ctx context.Context, creatorID primitive.ObjectID, tpl domain.DietTemplate) (*domain.DietTemplate, error)
	GetDietTemplate(ctx context.Context, id primitive.ObjectID) (*domain.DietTemplate, error)
	GetDietTemplatesByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]domain.DietTemplate, error)
	UpdateDietTemplate(ctx context.Context, creatorID primitive.ObjectID, tpl domain.DietTemplate) (*domain.DietTemplate, error)
	DeleteDietTemplate(ctx context.Context, creatorID, id primitive.ObjectID) error
}

// programService implements the ProgramService interface.
type programService struct {
	programRepo repository.ProgramTemplateRepository
	dietRepo    repository.DietTemplateRepository
}

// NewProgramService creates a new instance of programService.
func NewProgramService(
	programRepo repository.ProgramTemplateRepository,
	dietRepo repository.DietTemplateRepository,
) ProgramService {
	return &programService{
		programRepo: programRepo,
		dietRepo:    dietRepo,
	}
}

// === Program templates ===

// CreateProgram stores a new program template owned by the creator.
func (s *programService) CreateProgram(ctx context.Context, creatorID primitive.ObjectID, tpl domain.ProgramTemplate) (*domain.ProgramTemplate, error) {
	if creatorID == primitive.NilObjectID {
		return nil, errors.New("creator ID is required")
	}
	if tpl.Name == "" {
		return nil, ErrTemplateNameRequired
	}
	if tpl.Status == "" {
		tpl.Status = TemplateStatusDraft
	}
	if tpl.DurationWeeks < 1 {
		tpl.DurationWeeks = 1
	}
	tpl.CreatedBy = creatorID

	id, err := s.programRepo.Create(ctx, &tpl)
	if err != nil {
		return nil, err
	}
	tpl.ID = id
	return &tpl, nil
}

// GetProgram retrieves a single program template. Any authenticated
// trainer may read templates; only the creator may change them.
func (s *programService) GetProgram(ctx context.Context, id primitive.ObjectID) (*domain.ProgramTemplate, error) {
	tpl, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return tpl, nil
}

// ListPrograms retrieves all program templates, newest first.
func (s *programService) ListPrograms(ctx context.Context) ([]domain.ProgramTemplate, error) {
	return s.programRepo.List(ctx)
}

// GetProgramsByCreator retrieves the creator's own templates.
func (s *programService) GetProgramsByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]domain.ProgramTemplate, error) {
	if creatorID == primitive.NilObjectID {
		return nil, errors.New("creator ID is required")
	}
	return s.programRepo.GetByCreator(ctx, creatorID)
}

// UpdateProgram replaces an existing template's content after verifying
// the caller created it.
func (s *programService) UpdateProgram(ctx context.Context, creatorID primitive.ObjectID, tpl domain.ProgramTemplate) (*domain.ProgramTemplate, error) {
	if tpl.Name == "" {
		return nil, ErrTemplateNameRequired
	}

	existing, err := s.programRepo.GetByID(ctx, tpl.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if existing.CreatedBy != creatorID {
		return nil, ErrTemplateAccessDenied
	}

	if tpl.DurationWeeks < 1 {
		tpl.DurationWeeks = 1
	}
	tpl.CreatedBy = existing.CreatedBy
	if err := s.programRepo.Update(ctx, &tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// DuplicateProgram clones a template as a draft named "{name} Copy",
// owned by the caller.
func (s *programService) DuplicateProgram(ctx context.Context, creatorID, id primitive.ObjectID) (*domain.ProgramTemplate, error) {
	source, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	clone := *source
	clone.ID = primitive.NilObjectID
	clone.Name = fmt.Sprintf("%s Copy", source.Name)
	clone.Status = TemplateStatusDraft
	clone.CreatedBy = creatorID

	cloneID, err := s.programRepo.Create(ctx, &clone)
	if err != nil {
		return nil, err
	}
	clone.ID = cloneID
	return &clone, nil
}

// DeleteProgram removes a template the caller created. Patterns already
// expanded from it keep their schedules.
func (s *programService) DeleteProgram(ctx context.Context, creatorID, id primitive.ObjectID) error {
	err := s.programRepo.Delete(ctx, id, creatorID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTemplateNotFound
	}
	return err
}

// === Diet templates ===

// CreateDietTemplate stores a new diet template owned by the creator.
func (s *programService) CreateDietTemplate(ctx context.Context, creatorID primitive.ObjectID, tpl domain.DietTemplate) (*domain.DietTemplate, error) {
	if creatorID == primitive.NilObjectID {
		return nil, errors.New("creator ID is required")
	}
	if tpl.Name == "" {
		return nil, ErrTemplateNameRequired
	}
	tpl.CreatedBy = creatorID

	id, err := s.dietRepo.Create(ctx, &tpl)
	if err != nil {
		return nil, err
	}
	tpl.ID = id
	return &tpl, nil
}

// GetDietTemplate retrieves a single diet template.
func (s *programService) GetDietTemplate(ctx context.Context, id primitive.ObjectID) (*domain.DietTemplate, error) {
	tpl, err := s.dietRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return tpl, nil
}

// GetDietTemplatesByCreator retrieves the creator's own diet templates.
func (s *programService) GetDietTemplatesByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]domain.DietTemplate, error) {
	if creatorID == primitive.NilObjectID {
		return nil, errors.New("creator ID is required")
	}
	return s.dietRepo.GetByCreator(ctx, creatorID)
}

// UpdateDietTemplate replaces an existing diet template's content after
// verifying the caller created it.
func (s *programService) UpdateDietTemplate(ctx context.Context, creatorID primitive.ObjectID, tpl domain.DietTemplate) (*domain.DietTemplate, error) {
	if tpl.Name == "" {
		return nil, ErrTemplateNameRequired
	}

	existing, err := s.dietRepo.GetByID(ctx, tpl.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if existing.CreatedBy != creatorID {
		return nil, ErrTemplateAccessDenied
	}

	tpl.CreatedBy = existing.CreatedBy
	if err := s.dietRepo.Update(ctx, &tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// DeleteDietTemplate removes a diet template the caller created.
func (s *programService) DeleteDietTemplate(ctx context.Context, creatorID, id primitive.ObjectID) error {
	err := s.dietRepo.Delete(ctx, id, creatorID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTemplateNotFound
	}
	return err
}
