package service

import (
	"context"
	"errors"

	"github.com/Hares-2088/team-training-sub000/internal/domain"
	"github.com/Hares-2088/team-training-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrExerciseNotFound  = errors.New("exercise not found")
	ErrExerciseDuplicate = errors.New("an exercise with this name already exists for the team")
)

// ExerciseService manages the per-team exercise catalog.
type ExerciseService interface {
	CreateExercise(ctx context.Context, userID, teamID primitive.ObjectID, name string, muscleGroups []string, equipment string) (*domain.Exercise, error)
	GetTeamExercises(ctx context.Context, userID, teamID primitive.ObjectID) ([]domain.Exercise, error)
	DeleteExercise(ctx context.Context, userID, teamID, exerciseID primitive.ObjectID) error
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	roles        RoleService
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, roles RoleService) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		roles:        roles,
	}
}

// CreateExercise adds a catalog entry. Trainer only; duplicate names within
// the team (case-insensitive) are rejected by the store's compound index.
func (s *exerciseService) CreateExercise(ctx context.Context, userID, teamID primitive.ObjectID, name string, muscleGroups []string, equipment string) (*domain.Exercise, error) {
	if _, _, err := s.roles.Authorize(ctx, userID, teamID, OpExerciseCreate); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrValidationFailed
	}

	exercise := &domain.Exercise{
		TeamID:       teamID,
		Name:         name,
		MuscleGroups: muscleGroups,
		Equipment:    equipment,
	}

	id, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrExerciseDuplicate
		}
		return nil, err
	}
	exercise.ID = id
	return exercise, nil
}

// GetTeamExercises lists the catalog for any team participant.
func (s *exerciseService) GetTeamExercises(ctx context.Context, userID, teamID primitive.ObjectID) ([]domain.Exercise, error) {
	if _, _, err := s.roles.Authorize(ctx, userID, teamID, OpExerciseRead); err != nil {
		return nil, err
	}
	return s.exerciseRepo.GetByTeamID(ctx, teamID)
}

// DeleteExercise removes a catalog entry. Trainer only.
func (s *exerciseService) DeleteExercise(ctx context.Context, userID, teamID, exerciseID primitive.ObjectID) error {
	if _, _, err := s.roles.Authorize(ctx, userID, teamID, OpExerciseCreate); err != nil {
		return err
	}
	if err := s.exerciseRepo.Delete(ctx, exerciseID, teamID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	return nil
}
