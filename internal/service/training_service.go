package service

import (
	"context"
	"errors"
	"time"

	"github.com/Hares-2088/team-training-sub000/internal/domain"
	"github.com/Hares-2088/team-training-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidStatusChange = errors.New("invalid training status transition")
)

// TrainingInput carries the mutable fields of a training plan.
type TrainingInput struct {
	Title         string
	Description   string
	Exercises     []domain.ExerciseEntry
	ScheduledDate time.Time
}

// TrainingService manages team schedules and personal trainings.
type TrainingService interface {
	CreateTraining(ctx context.Context, userID, teamID primitive.ObjectID, input TrainingInput) (*domain.Training, error)
	GetTraining(ctx context.Context, userID, trainingID primitive.ObjectID) (*domain.Training, error)
	GetTeamSchedule(ctx context.Context, userID, teamID primitive.ObjectID) ([]domain.Training, error)
	GetPersonalTrainings(ctx context.Context, userID primitive.ObjectID) ([]domain.Training, error)
	UpdateTraining(ctx context.Context, userID, trainingID primitive.ObjectID, input TrainingInput) (*domain.Training, error)
	UpdateStatus(ctx context.Context, userID, trainingID primitive.ObjectID, status domain.TrainingStatus) error
	DeleteTraining(ctx context.Context, userID, trainingID primitive.ObjectID) error
}

type trainingService struct {
	trainingRepo repository.TrainingRepository
	roles        RoleService
}

// NewTrainingService creates a new instance of trainingService.
func NewTrainingService(trainingRepo repository.TrainingRepository, roles RoleService) TrainingService {
	return &trainingService{
		trainingRepo: trainingRepo,
		roles:        roles,
	}
}

// normalizeExercises validates entries and applies the rest-interval default.
func normalizeExercises(entries []domain.ExerciseEntry) ([]domain.ExerciseEntry, error) {
	if len(entries) == 0 {
		return nil, ErrValidationFailed
	}
	out := make([]domain.ExerciseEntry, len(entries))
	for i, e := range entries {
		if e.Name == "" || e.Sets == 0 || e.Reps == "" {
			return nil, ErrValidationFailed
		}
		if e.RestTimeSeconds == 0 {
			e.RestTimeSeconds = domain.DefaultRestSeconds
		}
		out[i] = e
	}
	return out, nil
}

// CreateTraining schedules a team training. Trainer only.
func (s *trainingService) CreateTraining(ctx context.Context, userID, teamID primitive.ObjectID, input TrainingInput) (*domain.Training, error) {
	if _, _, err := s.roles.Authorize(ctx, userID, teamID, OpTrainingCreate); err != nil {
		return nil, err
	}
	if input.Title == "" {
		return nil, ErrValidationFailed
	}
	exercises, err := normalizeExercises(input.Exercises)
	if err != nil {
		return nil, err
	}

	training := &domain.Training{
		TeamID:        teamID,
		CreatedBy:     userID,
		Title:         input.Title,
		Description:   input.Description,
		Exercises:     exercises,
		ScheduledDate: input.ScheduledDate,
		Status:        domain.TrainingScheduled,
	}

	id, err := s.trainingRepo.Create(ctx, training)
	if err != nil {
		return nil, err
	}
	training.ID = id
	return training, nil
}

// loadTraining fetches a training and authorizes the caller against its team.
// Existence is resolved before any role check.
func (s *trainingService) loadTraining(ctx context.Context, userID, trainingID primitive.ObjectID, op Operation) (*domain.Training, domain.TeamRole, error) {
	training, err := s.trainingRepo.GetByID(ctx, trainingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.RoleNone, ErrTrainingNotFound
		}
		return nil, domain.RoleNone, err
	}

	_, role, err := s.roles.Authorize(ctx, userID, training.TeamID, op)
	if err != nil {
		return nil, role, err
	}
	return training, role, nil
}

// GetTraining returns a training for any team participant. Personal trainings
// are visible to their owner only.
func (s *trainingService) GetTraining(ctx context.Context, userID, trainingID primitive.ObjectID) (*domain.Training, error) {
	training, _, err := s.loadTraining(ctx, userID, trainingID, OpTrainingRead)
	if err != nil {
		return nil, err
	}
	if training.IsPersonal && training.CreatedBy != userID {
		return nil, ErrInsufficientRole
	}
	return training, nil
}

// GetTeamSchedule lists the team's scheduled trainings for any participant.
func (s *trainingService) GetTeamSchedule(ctx context.Context, userID, teamID primitive.ObjectID) ([]domain.Training, error) {
	if _, _, err := s.roles.Authorize(ctx, userID, teamID, OpTrainingRead); err != nil {
		return nil, err
	}
	return s.trainingRepo.GetByTeamID(ctx, teamID)
}

// GetPersonalTrainings lists the caller's own personal trainings.
func (s *trainingService) GetPersonalTrainings(ctx context.Context, userID primitive.ObjectID) ([]domain.Training, error) {
	return s.trainingRepo.GetPersonalByUser(ctx, userID)
}

// UpdateTraining replaces plan fields. Trainer only; personal trainings may
// be edited by their owner.
func (s *trainingService) UpdateTraining(ctx context.Context, userID, trainingID primitive.ObjectID, input TrainingInput) (*domain.Training, error) {
	training, err := s.trainingRepo.GetByID(ctx, trainingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainingNotFound
		}
		return nil, err
	}

	if training.IsPersonal {
		if training.CreatedBy != userID {
			return nil, ErrInsufficientRole
		}
	} else if _, _, err := s.roles.Authorize(ctx, userID, training.TeamID, OpTrainingUpdate); err != nil {
		return nil, err
	}

	if input.Title == "" {
		return nil, ErrValidationFailed
	}
	exercises, err := normalizeExercises(input.Exercises)
	if err != nil {
		return nil, err
	}

	training.Title = input.Title
	training.Description = input.Description
	training.Exercises = exercises
	training.ScheduledDate = input.ScheduledDate

	if err := s.trainingRepo.Update(ctx, training); err != nil {
		return nil, err
	}
	return training, nil
}

// UpdateStatus progresses the lifecycle. Any team participant may progress a
// team training; personal trainings only by their owner. Only
// scheduled -> completed/cancelled transitions are legal.
func (s *trainingService) UpdateStatus(ctx context.Context, userID, trainingID primitive.ObjectID, status domain.TrainingStatus) error {
	if status != domain.TrainingCompleted && status != domain.TrainingCancelled {
		return ErrInvalidStatusChange
	}

	training, _, err := s.loadTraining(ctx, userID, trainingID, OpTrainingRead)
	if err != nil {
		return err
	}
	if training.IsPersonal && training.CreatedBy != userID {
		return ErrInsufficientRole
	}
	if training.Status != domain.TrainingScheduled {
		return ErrInvalidStatusChange
	}

	return s.trainingRepo.UpdateStatus(ctx, trainingID, status)
}

// DeleteTraining removes a training. Trainer only; personal trainings by
// their owner.
func (s *trainingService) DeleteTraining(ctx context.Context, userID, trainingID primitive.ObjectID) error {
	training, err := s.trainingRepo.GetByID(ctx, trainingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainingNotFound
		}
		return err
	}

	if training.IsPersonal {
		if training.CreatedBy != userID {
			return ErrInsufficientRole
		}
	} else if _, _, err := s.roles.Authorize(ctx, userID, training.TeamID, OpTrainingDelete); err != nil {
		return err
	}

	return s.trainingRepo.Delete(ctx, trainingID)
}
