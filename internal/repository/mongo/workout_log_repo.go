package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/Hares-2088/team-training-sub000/internal/domain"
	"github.com/Hares-2088/team-training-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutLogCollectionName = "workout_logs"

// mongoWorkoutLogRepository implements repository.WorkoutLogRepository using
// MongoDB. Logs are written once and never updated.
type mongoWorkoutLogRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutLogRepository creates a new instance of mongoWorkoutLogRepository.
func NewMongoWorkoutLogRepository(db *mongo.Database) repository.WorkoutLogRepository {
	return &mongoWorkoutLogRepository{
		collection: db.Collection(workoutLogCollectionName),
	}
}

// Create inserts a completed workout log.
func (r *mongoWorkoutLogRepository) Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error) {
	if log.TrainingID == primitive.NilObjectID || log.MemberID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("training ID and member ID are required")
	}

	log.ID = primitive.NewObjectID()
	if log.CompletedAt.IsZero() {
		log.CompletedAt = time.Now().UTC()
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

// GetByID retrieves a log by ObjectID.
func (r *mongoWorkoutLogRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error) {
	var log domain.WorkoutLog
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&log)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// GetByMemberID retrieves all of a member's logs, newest first.
func (r *mongoWorkoutLogRepository) GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	return r.find(ctx, bson.M{"memberId": memberID})
}

// GetByTrainingID retrieves every log recorded against a training.
func (r *mongoWorkoutLogRepository) GetByTrainingID(ctx context.Context, trainingID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	return r.find(ctx, bson.M{"trainingId": trainingID})
}

// GetByMemberBetween retrieves a member's logs completed in [from, to).
func (r *mongoWorkoutLogRepository) GetByMemberBetween(ctx context.Context, memberID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutLog, error) {
	filter := bson.M{
		"memberId":    memberID,
		"completedAt": bson.M{"$gte": from, "$lt": to},
	}
	return r.find(ctx, filter)
}

func (r *mongoWorkoutLogRepository) find(ctx context.Context, filter bson.M) ([]domain.WorkoutLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []domain.WorkoutLog
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// EnsureWorkoutLogIndexes creates necessary indexes for the workout_logs collection.
func EnsureWorkoutLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "memberId", Value: 1}, {Key: "completedAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "trainingId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
