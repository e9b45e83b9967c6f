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

const teamCollectionName = "teams"

// mongoTeamRepository implements repository.TeamRepository using MongoDB.
type mongoTeamRepository struct {
	collection *mongo.Collection
}

// NewMongoTeamRepository creates a new instance of mongoTeamRepository.
func NewMongoTeamRepository(db *mongo.Database) repository.TeamRepository {
	return &mongoTeamRepository{
		collection: db.Collection(teamCollectionName),
	}
}

// Create inserts a new team.
func (r *mongoTeamRepository) Create(ctx context.Context, team *domain.Team) (primitive.ObjectID, error) {
	if team.Name == "" || team.TrainerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("team name and trainer ID are required")
	}

	team.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	team.CreatedAt = now
	team.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, team)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a team by ObjectID.
func (r *mongoTeamRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Team, error) {
	var team domain.Team
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&team)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}

// GetByInviteCode retrieves the team holding the given invite code.
// Callers normalize the code before lookup.
func (r *mongoTeamRepository) GetByInviteCode(ctx context.Context, code string) (*domain.Team, error) {
	if code == "" {
		return nil, repository.ErrNotFound
	}
	var team domain.Team
	err := r.collection.FindOne(ctx, bson.M{"inviteCode": code}).Decode(&team)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}

// GetByUser retrieves every team the user trains, belongs to, or holds an
// explicit role tag in.
func (r *mongoTeamRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Team, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"trainerId": userID},
		bson.M{"members": userID},
		bson.M{"memberRoles." + userID.Hex(): bson.M{"$exists": true}},
	}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var teams []domain.Team
	if err = cursor.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// Update persists name/description changes.
func (r *mongoTeamRepository) Update(ctx context.Context, team *domain.Team) error {
	filter := bson.M{"_id": team.ID}
	update := bson.M{"$set": bson.M{
		"name":        team.Name,
		"description": team.Description,
		"updatedAt":   time.Now().UTC(),
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a team document.
func (r *mongoTeamRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetInviteCode writes a new invite code. The sparse unique index is the
// authority on uniqueness: a duplicate-key rejection surfaces as ErrDuplicate
// so the caller regenerates and retries.
func (r *mongoTeamRepository) SetInviteCode(ctx context.Context, teamID primitive.ObjectID, code string) error {
	filter := bson.M{"_id": teamID}
	update := bson.M{"$set": bson.M{
		"inviteCode": code,
		"updatedAt":  time.Now().UTC(),
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddMember adds a user to the plain members set. $addToSet keeps the set
// duplicate-free even under concurrent joins.
func (r *mongoTeamRepository) AddMember(ctx context.Context, teamID, userID primitive.ObjectID) error {
	filter := bson.M{"_id": teamID}
	update := bson.M{
		"$addToSet": bson.M{"members": userID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// RemoveMember pulls a user from the members set and drops any role tag.
func (r *mongoTeamRepository) RemoveMember(ctx context.Context, teamID, userID primitive.ObjectID) error {
	filter := bson.M{"_id": teamID}
	update := bson.M{
		"$pull":  bson.M{"members": userID},
		"$unset": bson.M{"memberRoles." + userID.Hex(): ""},
		"$set":   bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetMemberRole records an elevated role tag for a member.
func (r *mongoTeamRepository) SetMemberRole(ctx context.Context, teamID, userID primitive.ObjectID, role domain.TeamRole) error {
	filter := bson.M{"_id": teamID}
	update := bson.M{"$set": bson.M{
		"memberRoles." + userID.Hex(): role,
		"updatedAt":                   time.Now().UTC(),
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UnsetMemberRole drops a member's role tag, reverting them to plain member.
func (r *mongoTeamRepository) UnsetMemberRole(ctx context.Context, teamID, userID primitive.ObjectID) error {
	filter := bson.M{"_id": teamID}
	update := bson.M{
		"$unset": bson.M{"memberRoles." + userID.Hex(): ""},
		"$set":   bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureTeamIndexes creates necessary indexes for the teams collection.
// The invite code index is sparse so teams without a code never collide.
func EnsureTeamIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "inviteCode", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "members", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
