package service

import (
	"context"
	"errors"
	"time"

	"fitstudio/coach-app/internal/domain"
	"fitstudio/coach-app/internal/pattern"
	"fitstudio/coach-app/internal/repository"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrTemplateEmpty     = errors.New("template has no days to assign")
	ErrTaskNotFound      = errors.New("task not found in pattern")
	ErrTaskLabelRequired = errors.New("task label is required")
	ErrInvalidWeight     = errors.New("weight must be a positive finite number")
	ErrPatternDenied     = errors.New("access denied to this client's pattern")
)

// PatternService operates on a client's coaching pattern: the expanded
// workout schedule, diet plan, task list and rolling weight log. Every
// mutation reads the current document, applies the engine function and
// writes the whole document back. Last writer wins.
type PatternService interface {
	GetPattern(ctx context.Context, requesterID, clientID primitive.ObjectID) (*domain.ClientPattern, error)
	AssignWorkout(ctx context.Context, requesterID, clientID, templateID primitive.ObjectID) (*domain.ClientPattern, error)
	AssignDiet(ctx context.Context, requesterID, clientID, templateID primitive.ObjectID) (*domain.ClientPattern, error)
	ToggleTask(ctx context.Context, requesterID, clientID primitive.ObjectID, taskID string) (*domain.ClientPattern, error)
	AddTask(ctx context.Context, requesterID, clientID primitive.ObjectID, label, detail, day string) (*domain.ClientPattern, error)
	Finalize(ctx context.Context, requesterID, clientID primitive.ObjectID) (*domain.ClientPattern, error)
	LogWeight(ctx context.Context, requesterID, clientID primitive.ObjectID, weight float64) (*domain.ClientPattern, error)
}

// patternService implements the PatternService interface.
type patternService struct {
	userRepo    repository.UserRepository
	patternRepo repository.ClientPatternRepository
	programRepo repository.ProgramTemplateRepository
	dietRepo    repository.DietTemplateRepository
	log         *logrus.Logger
	now         func() time.Time
}

// NewPatternService creates a new instance of patternService.
func NewPatternService(
	userRepo repository.UserRepository,
	patternRepo repository.ClientPatternRepository,
	programRepo repository.ProgramTemplateRepository,
	dietRepo repository.DietTemplateRepository,
	log *logrus.Logger,
) PatternService {
	return &patternService{
		userRepo:    userRepo,
		patternRepo: patternRepo,
		programRepo: programRepo,
		dietRepo:    dietRepo,
		log:         log,
		now:         time.Now,
	}
}

// authorize verifies the requester may touch the client's pattern:
// the client themself, their trainer, or an admin.
func (s *patternService) authorize(ctx context.Context, requesterID, clientID primitive.ObjectID) (*domain.User, error) {
	client, err := s.userRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if !client.IsCustomer() {
		return nil, ErrClientNotRole
	}

	if requesterID == clientID {
		return client, nil
	}
	if client.TrainerID != nil && *client.TrainerID == requesterID {
		return client, nil
	}

	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err == nil && requester.IsAdmin() {
		return client, nil
	}
	return nil, ErrPatternDenied
}

// ensurePattern loads the client's pattern document, creating an empty
// one if registration-time creation failed or predates this feature.
func (s *patternService) ensurePattern(ctx context.Context, clientID primitive.ObjectID) (*domain.ClientPattern, error) {
	state, err := s.patternRepo.GetByClientID(ctx, clientID)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	fresh := &domain.ClientPattern{ClientID: clientID}
	if _, err := s.patternRepo.Create(ctx, fresh); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// Someone else created it between the read and the insert.
			return s.patternRepo.GetByClientID(ctx, clientID)
		}
		return nil, err
	}
	return fresh, nil
}

// GetPattern returns the client's current pattern document.
func (s *patternService) GetPattern(ctx context.Context, requesterID, clientID primitive.ObjectID) (*domain.ClientPattern, error) {
	if _, err := s.authorize(ctx, requesterID, clientID); err != nil {
		return nil, err
	}
	return s.ensurePattern(ctx, clientID)
}

// AssignWorkout expands a program template across its configured weeks
// and replaces the client's workout, reseeding the task list and
// reopening a finalized pattern. The diet assignment is untouched.
func (s *patternService) AssignWorkout(ctx context.Context, requesterID, clientID, templateID primitive.ObjectID) (*domain.ClientPattern, error) {
	if _, err := s.authorize(ctx, requesterID, clientID); err != nil {
		return nil, err
	}

	tpl, err := s.programRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if !tpl.HasWorkoutDays() {
		return nil, ErrTemplateEmpty
	}

	state, err := s.ensurePattern(ctx, clientID)
	if err != nil {
		return nil, err
	}

	next := pattern.AssignWorkout(*state, *tpl, tpl.DurationWeeks)
	if err := s.patternRepo.Save(ctx, &next); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"clientId":   clientID.Hex(),
		"templateId": templateID.Hex(),
		"tasks":      len(next.Tasks),
	}).Info("workout pattern assigned")
	return &next, nil
}

// AssignDiet expands a diet template and replaces only the client's diet
// assignment. Tasks and the finalized marker survive.
func (s *patternService) AssignDiet(ctx context.Context, requesterID, clientID, templateID primitive.ObjectID) (*domain.ClientPattern, error) {
	if _, err := s.authorize(ctx, requesterID, clientID); err != nil {
		return nil, err
	}

	tpl, err := s.dietRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if !tpl.HasDietDays() {
		return nil, ErrTemplateEmpty
	}

	state, err := s.ensurePattern(ctx, clientID)
	if err != nil {
		return nil, err
	}

	weeks := 1
	if state.Workout != nil && state.Workout.SourceTemplateID != nil {
		// Stretch the diet plan across the same horizon as the workout.
		if src, err := s.programRepo.GetByID(ctx, *state.Workout.SourceTemplateID); err == nil {
			weeks = src.DurationWeeks
		}
	}

	next := pattern.AssignDiet(*state, *tpl, weeks)
	if err := s.patternRepo.Save(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// ToggleTask flips one task's completed flag. An unknown task ID leaves
// the pattern untouched and is reported to the caller.
func (s *patternService) ToggleTask(ctx context.Context, requesterID, clientID primitive.ObjectID, taskID string) (*domain.ClientPattern, error) {
	if _, err := s.authorize(ctx, requesterID, clientID); err != nil {
		return nil, err
	}

	state, err := s.ensurePattern(ctx, clientID)
	if err != nil {
		return nil, err
	}

	next, changed := pattern.ToggleTask(*state, taskID)
	if !changed {
		return nil, ErrTaskNotFound
	}
	if err := s.patternRepo.Save(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// AddTask prepends a coach-authored task to the client's list.
func (s *patternService) AddTask(ctx context.Context, requesterID, clientID primitive.ObjectID, label, detail, day string) (*domain.ClientPattern, error) {
	if _, err := s.authorize(ctx, requesterID, clientID); err != nil {
		return nil, err
	}

	state, err := s.ensurePattern(ctx, clientID)
	if err != nil {
		return nil, err
	}

	next, ok := pattern.AddCustomTask(*state, label, detail, day)
	if !ok {
		return nil, ErrTaskLabelRequired
	}
	if err := s.patternRepo.Save(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// Finalize stamps the pattern as done and completes every task. Repeating
// the call refreshes the timestamp only.
func (s *patternService) Finalize(ctx context.Context, requesterID, clientID primitive.ObjectID) (*domain.ClientPattern, error) {
	if _, err := s.authorize(ctx, requesterID, clientID); err != nil {
		return nil, err
	}

	state, err := s.ensurePattern(ctx, clientID)
	if err != nil {
		return nil, err
	}

	next := pattern.Finalize(*state, s.now())
	if err := s.patternRepo.Save(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// LogWeight records a measurement in the pattern's rolling weight log.
func (s *patternService) LogWeight(ctx context.Context, requesterID, clientID primitive.ObjectID, weight float64) (*domain.ClientPattern, error) {
	if _, err := s.authorize(ctx, requesterID, clientID); err != nil {
		return nil, err
	}

	state, err := s.ensurePattern(ctx, clientID)
	if err != nil {
		return nil, err
	}

	next, ok := pattern.LogWeight(*state, weight, s.now())
	if !ok {
		return nil, ErrInvalidWeight
	}
	if err := s.patternRepo.Save(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}
