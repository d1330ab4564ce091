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

const programCollectionName = "program_templates"

// mongoProgramRepository implements repository.ProgramTemplateRepository using MongoDB.
type mongoProgramRepository struct {
	collection *mongo.Collection
}

// NewMongoProgramRepository creates a new instance of mongoProgramRepository.
func NewMongoProgramRepository(db *mongo.Database) repository.ProgramTemplateRepository {
	return &mongoProgramRepository{
		collection: db.Collection(programCollectionName),
	}
}

// Create inserts a new program template.
func (r *mongoProgramRepository) Create(ctx context.Context, tpl *domain.ProgramTemplate) (primitive.ObjectID, error) {
	if tpl.Name == "" {
		return primitive.NilObjectID, errors.New("program template name is required")
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

// GetByID retrieves a single program template.
func (r *mongoProgramRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgramTemplate, error) {
	var tpl domain.ProgramTemplate
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tpl)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &tpl, nil
}

// List retrieves all program templates, newest first.
func (r *mongoProgramRepository) List(ctx context.Context) ([]domain.ProgramTemplate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var templates []domain.ProgramTemplate
	if err = cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// GetByCreator retrieves all program templates created by a trainer, newest first.
func (r *mongoProgramRepository) GetByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]domain.ProgramTemplate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"createdBy": creatorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var templates []domain.ProgramTemplate
	if err = cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// Update replaces the mutable fields of a program template.
func (r *mongoProgramRepository) Update(ctx context.Context, tpl *domain.ProgramTemplate) error {
	tpl.UpdatedAt = time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"name":             tpl.Name,
			"focus":            tpl.Focus,
			"level":            tpl.Level,
			"durationWeeks":    tpl.DurationWeeks,
			"progressionNotes": tpl.ProgressionNotes,
			"status":           tpl.Status,
			"dailyWorkouts":    tpl.DailyWorkouts,
			"updatedAt":        tpl.UpdatedAt,
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

// Delete removes a program template, enforcing creator ownership in the filter.
func (r *mongoProgramRepository) Delete(ctx context.Context, id primitive.ObjectID, creatorID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "createdBy": creatorID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureProgramIndexes creates necessary indexes for the program_templates collection.
func EnsureProgramIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdBy", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
