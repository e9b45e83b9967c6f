package repository

import (
	"context"
	"time"

	"github.com/Hares-2088/team-training-sub000/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// TeamRepository defines the interface for interacting with team data.
// SetInviteCode must surface ErrDuplicate on a unique-index violation so the
// caller can regenerate and retry; the write, not any pre-check, is the
// authority on code uniqueness.
type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Team, error)
	GetByInviteCode(ctx context.Context, code string) (*domain.Team, error)
	GetByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Team, error)
	Update(ctx context.Context, team *domain.Team) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetInviteCode(ctx context.Context, teamID primitive.ObjectID, code string) error
	AddMember(ctx context.Context, teamID, userID primitive.ObjectID) error
	RemoveMember(ctx context.Context, teamID, userID primitive.ObjectID) error
	SetMemberRole(ctx context.Context, teamID, userID primitive.ObjectID, role domain.TeamRole) error
	UnsetMemberRole(ctx context.Context, teamID, userID primitive.ObjectID) error
}

// TrainingRepository defines the interface for interacting with training data.
type TrainingRepository interface {
	Create(ctx context.Context, training *domain.Training) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Training, error)
	GetByTeamID(ctx context.Context, teamID primitive.ObjectID) ([]domain.Training, error)
	GetPersonalByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Training, error)
	Update(ctx context.Context, training *domain.Training) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.TrainingStatus) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// WorkoutLogRepository defines the interface for interacting with workout logs.
// Logs are immutable: there is deliberately no Update or Delete.
type WorkoutLogRepository interface {
	Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error)
	GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.WorkoutLog, error)
	GetByTrainingID(ctx context.Context, trainingID primitive.ObjectID) ([]domain.WorkoutLog, error)
	GetByMemberBetween(ctx context.Context, memberID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutLog, error)
}

// TemplateFilter narrows template listing. Zero fields match everything.
type TemplateFilter struct {
	Category   string
	Difficulty domain.TemplateDifficulty
	Tag        string
}

// TemplateRepository defines the interface for the read-only template library.
// UpsertByTitle exists only for the seeding tool.
type TemplateRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error)
	List(ctx context.Context, filter TemplateFilter) ([]domain.WorkoutTemplate, error)
	UpsertByTitle(ctx context.Context, tpl *domain.WorkoutTemplate) error
}

// ExerciseRepository defines the interface for the per-team exercise catalog.
// Create surfaces ErrDuplicate when (teamId, name) already exists.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByTeamID(ctx context.Context, teamID primitive.ObjectID) ([]domain.Exercise, error)
	Delete(ctx context.Context, id, teamID primitive.ObjectID) error
}
