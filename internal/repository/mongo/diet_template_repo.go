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

const dietTemplateCollectionName = "diet_templates"

// mongoDietTemplateRepository implements repository.DietTemplateRepository using MongoDB.
type mongoDietTemplateRepository struct {
	collection *mongo.Collection
}

// NewMongoDietTemplateRepository creates a new instance of mongoDietTemplateRepository.
func NewMongoDietTemplateRepository(db *mongo.Database) repository.DietTemplateRepository {
	return &mongoDietTemplateRepository{
		collection: db.Collection(dietTemplateCollectionName),
	}
}

// Create inserts a new diet template.
func (r *mongoDietTemplateRepository) Create(ctx context.Context, tpl *domain.DietTemplate) (primitive.ObjectID, error) {
	if tpl.Name == "" {
		return primitive.NilObjectID, errors.New("diet template name is required")
	}

	tpl.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, tpl)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single diet template.
func (r *mongoDietTemplateRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DietTemplate, error) {
	var tpl domain.DietTemplate
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tpl)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &tpl, nil
}

// GetByCreator retrieves all diet templates created by a trainer, newest first.
func (r *mongoDietTemplateRepository) GetByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]domain.DietTemplate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"createdBy": creatorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var templates []domain.DietTemplate
	if err = cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// Update replaces the mutable fields of a diet template.
func (r *mongoDietTemplateRepository) Update(ctx context.Context, tpl *domain.DietTemplate) error {
	tpl.UpdatedAt = time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"name":      tpl.Name,
			"overview":  tpl.Overview,
			"days":      tpl.Days,
			"updatedAt": tpl.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": tpl.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a diet template, enforcing creator ownership in the filter.
func (r *mongoDietTemplateRepository) Delete(ctx context.Context, id primitive.ObjectID, creatorID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "createdBy": creatorID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureDietTemplateIndexes creates necessary indexes for the diet_templates collection.
func EnsureDietTemplateIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdBy", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
