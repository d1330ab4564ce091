package mongo

import (
	"context"
	"errors"
	"time"

	"fitstudio/coach-app/internal/domain"
	"fitstudio/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const patternCollectionName = "client_patterns"

// mongoPatternRepository implements repository.ClientPatternRepository using MongoDB.
// There is exactly one pattern document per client.
type mongoPatternRepository struct {
	collection *mongo.Collection
}

// NewMongoPatternRepository creates a new instance of mongoPatternRepository.
func NewMongoPatternRepository(db *mongo.Database) repository.ClientPatternRepository {
	return &mongoPatternRepository{
		collection: db.Collection(patternCollectionName),
	}
}

// Create inserts an empty pattern document for a client.
func (r *mongoPatternRepository) Create(ctx context.Context, p *domain.ClientPattern) (primitive.ObjectID, error) {
	if p.ClientID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("client ID is required")
	}

	p.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Tasks == nil {
		p.Tasks = []domain.WorkoutTask{}
	}
	if p.WeightLog == nil {
		p.WeightLog = []domain.WeightEntry{}
	}

	result, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByClientID retrieves the pattern document for a client.
func (r *mongoPatternRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID) (*domain.ClientPattern, error) {
	var p domain.ClientPattern
	err := r.collection.FindOne(ctx, bson.M{"clientId": clientID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Save overwrites the client's pattern document with the given state.
// Last writer wins; there is no merge and no concurrency token.
func (r *mongoPatternRepository) Save(ctx context.Context, p *domain.ClientPattern) error {
	p.UpdatedAt = time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"workout":     p.Workout,
			"diet":        p.Diet,
			"tasks":       p.Tasks,
			"finalizedAt": p.FinalizedAt,
			"weightLog":   p.WeightLog,
			"updatedAt":   p.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"clientId": p.ClientID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByClientID removes the pattern document when the client is deleted.
func (r *mongoPatternRepository) DeleteByClientID(ctx context.Context, clientID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"clientId": clientID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePatternIndexes creates necessary indexes for the client_patterns collection.
func EnsurePatternIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
