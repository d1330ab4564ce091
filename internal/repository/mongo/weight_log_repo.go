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

const weightLogCollectionName = "weight_logs"

// mongoWeightLogRepository implements repository.WeightLogRepository using MongoDB.
type mongoWeightLogRepository struct {
	collection *mongo.Collection
}

// NewMongoWeightLogRepository creates a new instance of mongoWeightLogRepository.
func NewMongoWeightLogRepository(db *mongo.Database) repository.WeightLogRepository {
	return &mongoWeightLogRepository{
		collection: db.Collection(weightLogCollectionName),
	}
}

// Create inserts a new weight log entry.
func (r *mongoWeightLogRepository) Create(ctx context.Context, log *domain.WeightLog) (primitive.ObjectID, error) {
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

// GetByUserID retrieves a user's weight logs, newest first. A limit of 0
// means no limit.
func (r *mongoWeightLogRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.WeightLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []domain.WeightLog
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// GetByUserInRange retrieves a user's weight logs created within [from, to]
// epoch milliseconds, inclusive.
func (r *mongoWeightLogRepository) GetByUserInRange(ctx context.Context, userID primitive.ObjectID, from, to int64) ([]domain.WeightLog, error) {
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

	var logs []domain.WeightLog
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// EnsureWeightLogIndexes creates necessary indexes for the weight_logs collection.
func EnsureWeightLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
