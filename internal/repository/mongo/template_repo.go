package mongo

import (
	"context"
	"errors"

	"github.com/Hares-2088/team-training-sub000/internal/domain"
	"github.com/Hares-2088/team-training-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const templateCollectionName = "workout_templates"

// mongoTemplateRepository implements repository.TemplateRepository using
// MongoDB. The collection is read-only at runtime; only the seeding tool
// writes to it.
type mongoTemplateRepository struct {
	collection *mongo.Collection
}

// NewMongoTemplateRepository creates a new instance of mongoTemplateRepository.
func NewMongoTemplateRepository(db *mongo.Database) repository.TemplateRepository {
	return &mongoTemplateRepository{
		collection: db.Collection(templateCollectionName),
	}
}

// GetByID retrieves a template by ObjectID.
func (r *mongoTemplateRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	var tpl domain.WorkoutTemplate
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tpl)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &tpl, nil
}

// List retrieves templates matching the filter, ordered by title.
func (r *mongoTemplateRepository) List(ctx context.Context, filter repository.TemplateFilter) ([]domain.WorkoutTemplate, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Difficulty != "" {
		query["difficulty"] = filter.Difficulty
	}
	if filter.Tag != "" {
		query["tags"] = filter.Tag
	}

	opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var templates []domain.WorkoutTemplate
	if err = cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// UpsertByTitle inserts or replaces a template keyed by title, so reseeding
// is idempotent.
func (r *mongoTemplateRepository) UpsertByTitle(ctx context.Context, tpl *domain.WorkoutTemplate) error {
	if tpl.Title == "" {
		return errors.New("template title is required")
	}
	if tpl.ID == primitive.NilObjectID {
		tpl.ID = primitive.NewObjectID()
	}

	filter := bson.M{"title": tpl.Title}
	update := bson.M{"$set": bson.M{
		"title":                    tpl.Title,
		"description":              tpl.Description,
		"category":                 tpl.Category,
		"difficulty":               tpl.Difficulty,
		"tags":                     tpl.Tags,
		"estimatedDurationMinutes": tpl.EstimatedDurationMinutes,
		"exercises":                tpl.Exercises,
	}}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// EnsureTemplateIndexes creates necessary indexes for the workout_templates collection.
func EnsureTemplateIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "title", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "difficulty", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
