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

const dietLogCollectionName = "diet_logs"

// mongoDietLogRepository implements repository.DietLogRepository using MongoDB.
type mongoDietLogRepository struct {
	collection *mongo.Collection
}

// NewMongoDietLogRepository creates a new instance of mongoDietLogRepository.
func NewMongoDietLogRepository(db *mongo.Database) repository.DietLogRepository {
	return &mongoDietLogRepository{
		collection: db.Collection(dietLogCollectionName),
	}
}

// Create inserts a new diet log entry.
func (r *mongoDietLogRepository) Create(ctx context.Context, log *domain.DietLog) (primitive.ObjectID, error) {
	if log.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("user ID is required")
	}

	log.ID = primitive.NewObjectID()
	if log.CreatedAt == 0 {
		log.CreatedAt = time.Now().UTC().UnixMilli()
	}

	result, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single diet log entry.
func (r *mongoDietLogRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DietLog, error) {
	var log domain.DietLog
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&log)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// GetByUserID retrieves a user's diet logs, newest first. A limit of 0
// means no limit.
func (r *mongoDietLogRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.DietLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []domain.DietLog
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// GetByUserInRange retrieves a user's diet logs created within [from, to]
// epoch milliseconds, inclusive.
func (r *mongoDietLogRepository) GetByUserInRange(ctx context.Context, userID primitive.ObjectID, from, to int64) ([]domain.DietLog, error) {
	filter := bson.M{
		"userId":    userID,
		"createdAt": bson.M{"$gte": from, "$lte": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []domain.DietLog
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// Update replaces the mutable fields of a diet log entry.
func (r *mongoDietLogRepository) Update(ctx context.Context, log *domain.DietLog) error {
	update := bson.M{
		"$set": bson.M{
			"mealType":    log.MealType,
			"title":       log.Title,
			"description": log.Description,
			"calories":    log.Calories,
			"photoKey":    log.PhotoKey,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": log.ID, "userId": log.UserID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a diet log entry, enforcing owner in the filter.
func (r *mongoDietLogRepository) Delete(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureDietLogIndexes creates necessary indexes for the diet_logs collection.
func EnsureDietLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
