package service

import (
	"context"
	"errors"

	"fitstudio/coach-app/internal/domain"
	"fitstudio/coach-app/internal/repository"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrClientNotFound        = errors.New("client user not found")
	ErrClientNotRole         = errors.New("user found but is not a client")
	ErrClientAlreadyAssigned = errors.New("client is already assigned to a trainer")
	ErrClientNotManaged      = errors.New("client is not managed by this trainer")
)

// TrainerService manages the trainer's client roster.
type TrainerService interface {
	AddClientByEmail(ctx context.Context, trainerID primitive.ObjectID, clientEmail string) (*domain.User, error)
	GetManagedClients(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error)
	RemoveClient(ctx context.Context, trainerID, clientID primitive.ObjectID) error
}

// trainerService implements the TrainerService interface.
type trainerService struct {
	userRepo    repository.UserRepository
	patternRepo repository.ClientPatternRepository
	log         *logrus.Logger
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(
	userRepo repository.UserRepository,
	patternRepo repository.ClientPatternRepository,
	log *logrus.Logger,
) TrainerService {
	return &trainerService{
		userRepo:    userRepo,
		patternRepo: patternRepo,
		log:         log,
	}
}

// AddClientByEmail finds a registered customer by email and puts them on
// the trainer's roster.
func (s *trainerService) AddClientByEmail(ctx context.Context, trainerID primitive.ObjectID, clientEmail string) (*domain.User, error) {
	if trainerID == primitive.NilObjectID || clientEmail == "" {
		return nil, errors.New("trainer ID and client email are required")
	}

	client, err := s.userRepo.GetByEmail(ctx, clientEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	if client.Role != domain.RoleTrainerManaged {
		return nil, ErrClientNotRole
	}

	if client.TrainerID != nil && *client.TrainerID != primitive.NilObjectID {
		if *client.TrainerID == trainerID {
			// Already on this trainer's roster.
			client.PasswordHash = ""
			return client, nil
		}
		return nil, ErrClientAlreadyAssigned
	}

	// Both records are updated without a transaction. If the second write
	// fails the roster entry is orphaned until the trainer retries.
	if err := s.userRepo.AddClientIDToTrainer(ctx, trainerID, client.ID); err != nil {
		return nil, err
	}
	if err := s.userRepo.SetTrainerForClient(ctx, client.ID, trainerID); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"trainerId": trainerID.Hex(),
			"clientId":  client.ID.Hex(),
		}).Error("roster updated but client record was not; retry add-client")
		return nil, err
	}

	client.TrainerID = &trainerID
	client.PasswordHash = ""
	return client, nil
}

// GetManagedClients retrieves the list of clients managed by the trainer.
func (s *trainerService) GetManagedClients(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error) {
	if trainerID == primitive.NilObjectID {
		return nil, errors.New("trainer ID is required")
	}
	clients, err := s.userRepo.GetClientsByTrainerID(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		clients[i].PasswordHash = ""
	}
	return clients, nil
}

// RemoveClient deletes a managed client and their pattern document.
// Logged sessions and meals are kept for record keeping.
func (s *trainerService) RemoveClient(ctx context.Context, trainerID, clientID primitive.ObjectID) error {
	if trainerID == primitive.NilObjectID || clientID == primitive.NilObjectID {
		return errors.New("trainer ID and client ID are required")
	}

	client, err := s.userRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClientNotFound
		}
		return err
	}
	if client.TrainerID == nil || *client.TrainerID != trainerID {
		return ErrClientNotManaged
	}

	if err := s.userRepo.RemoveClientIDFromTrainer(ctx, trainerID, clientID); err != nil {
		return err
	}
	if err := s.patternRepo.DeleteByClientID(ctx, clientID); err != nil &&
		!errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return s.userRepo.Delete(ctx, clientID)
}
