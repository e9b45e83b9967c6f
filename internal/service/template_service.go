package service

import (
	"context"
	"errors"
	"time"

	"github.com/Hares-2088/team-training-sub000/internal/domain"
	"github.com/Hares-2088/team-training-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateService exposes the read-only workout template library and the two
// copy paths: into a team schedule (trainer) or as a personal training
// (member/coach). The template itself is never mutated.
type TemplateService interface {
	ListTemplates(ctx context.Context, filter repository.TemplateFilter) ([]domain.WorkoutTemplate, error)
	GetTemplate(ctx context.Context, templateID primitive.ObjectID) (*domain.WorkoutTemplate, error)
	CopyToTeam(ctx context.Context, userID, templateID, teamID primitive.ObjectID, scheduledDate time.Time) (*domain.Training, error)
	InstantiatePersonal(ctx context.Context, userID, templateID, teamID primitive.ObjectID) (*domain.Training, error)
}

type templateService struct {
	templateRepo repository.TemplateRepository
	trainingRepo repository.TrainingRepository
	roles        RoleService
}

// NewTemplateService creates a new instance of templateService.
func NewTemplateService(templateRepo repository.TemplateRepository, trainingRepo repository.TrainingRepository, roles RoleService) TemplateService {
	return &templateService{
		templateRepo: templateRepo,
		trainingRepo: trainingRepo,
		roles:        roles,
	}
}

// ListTemplates returns the library, optionally filtered.
func (s *templateService) ListTemplates(ctx context.Context, filter repository.TemplateFilter) ([]domain.WorkoutTemplate, error) {
	return s.templateRepo.List(ctx, filter)
}

// GetTemplate fetches a single template.
func (s *templateService) GetTemplate(ctx context.Context, templateID primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	tpl, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return tpl, nil
}

// copyExercises clones template entries so the training owns its plan.
func copyExercises(entries []domain.ExerciseEntry) []domain.ExerciseEntry {
	out := make([]domain.ExerciseEntry, len(entries))
	copy(out, entries)
	for i := range out {
		if out[i].RestTimeSeconds == 0 {
			out[i].RestTimeSeconds = domain.DefaultRestSeconds
		}
	}
	return out
}

// CopyToTeam schedules a template as a team training. Trainer only.
func (s *templateService) CopyToTeam(ctx context.Context, userID, templateID, teamID primitive.ObjectID, scheduledDate time.Time) (*domain.Training, error) {
	tpl, err := s.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.roles.Authorize(ctx, userID, teamID, OpTrainingCreate); err != nil {
		return nil, err
	}

	training := &domain.Training{
		TeamID:        teamID,
		CreatedBy:     userID,
		Title:         tpl.Title,
		Description:   tpl.Description,
		Exercises:     copyExercises(tpl.Exercises),
		ScheduledDate: scheduledDate,
		Status:        domain.TrainingScheduled,
	}

	id, err := s.trainingRepo.Create(ctx, training)
	if err != nil {
		return nil, err
	}
	training.ID = id
	return training, nil
}

// InstantiatePersonal creates a quick-log personal training from a template.
// Member/coach path: trainers schedule team plans instead, so the log-create
// rule (member or coach, never trainer) applies here too.
func (s *templateService) InstantiatePersonal(ctx context.Context, userID, templateID, teamID primitive.ObjectID) (*domain.Training, error) {
	tpl, err := s.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.roles.Authorize(ctx, userID, teamID, OpLogCreate); err != nil {
		return nil, err
	}

	training := &domain.Training{
		TeamID:        teamID,
		CreatedBy:     userID,
		Title:         tpl.Title,
		Description:   tpl.Description,
		Exercises:     copyExercises(tpl.Exercises),
		ScheduledDate: time.Now().UTC(),
		Status:        domain.TrainingScheduled,
		IsPersonal:    true,
	}

	id, err := s.trainingRepo.Create(ctx, training)
	if err != nil {
		return nil, err
	}
	training.ID = id
	return training, nil
}
