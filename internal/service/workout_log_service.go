package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Hares-2088/team-training-sub000/internal/domain"
	"github.com/Hares-2088/team-training-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogInput carries a completed session as submitted by the member.
type LogInput struct {
	Sets            []domain.SetEntry
	StartTime       time.Time
	EndTime         time.Time
	DurationSeconds uint
	Notes           string
}

// CalendarDay aggregates one day's logging activity.
type CalendarDay struct {
	Date  string `json:"date"` // YYYY-MM-DD, UTC
	Count int    `json:"count"`
}

// WorkoutLogService records immutable performance logs and serves the
// calendar/streak aggregations built on top of them.
type WorkoutLogService interface {
	LogWorkout(ctx context.Context, memberID, trainingID primitive.ObjectID, input LogInput) (*domain.WorkoutLog, error)
	GetOwnLogs(ctx context.Context, memberID primitive.ObjectID) ([]domain.WorkoutLog, error)
	// GetTrainingLogs returns logs recorded against one training: the team's
	// trainer sees everyone's, other participants only their own.
	GetTrainingLogs(ctx context.Context, userID, trainingID primitive.ObjectID) ([]domain.WorkoutLog, error)
	// GetMemberLogs lets a trainer read a roster member's logs against that
	// team's trainings. Personal trainings stay private to their owner.
	GetMemberLogs(ctx context.Context, requesterID, teamID, memberID primitive.ObjectID) ([]domain.WorkoutLog, error)
	GetCalendar(ctx context.Context, memberID primitive.ObjectID, year int, month time.Month) ([]CalendarDay, error)
	GetStreak(ctx context.Context, memberID primitive.ObjectID) (int, error)
}

type workoutLogService struct {
	logRepo      repository.WorkoutLogRepository
	trainingRepo repository.TrainingRepository
	roles        RoleService
	now          func() time.Time
}

// NewWorkoutLogService creates a new instance of workoutLogService.
func NewWorkoutLogService(logRepo repository.WorkoutLogRepository, trainingRepo repository.TrainingRepository, roles RoleService) WorkoutLogService {
	return &workoutLogService{
		logRepo:      logRepo,
		trainingRepo: trainingRepo,
		roles:        roles,
		now:          time.Now,
	}
}

func validateSets(sets []domain.SetEntry) error {
	if len(sets) == 0 {
		return ErrValidationFailed
	}
	for _, set := range sets {
		if set.ExerciseName == "" || set.SetNumber == 0 {
			return ErrValidationFailed
		}
		switch set.WeightUnit {
		case domain.UnitLbs, domain.UnitKg, domain.UnitBodyweight:
		default:
			return ErrValidationFailed
		}
		if set.RPE != nil && (*set.RPE < 1 || *set.RPE > 10) {
			return ErrValidationFailed
		}
	}
	return nil
}

// LogWorkout records a completed session. Members and coaches only: the
// trainer of the training's team is explicitly denied.
func (s *workoutLogService) LogWorkout(ctx context.Context, memberID, trainingID primitive.ObjectID, input LogInput) (*domain.WorkoutLog, error) {
	training, err := s.trainingRepo.GetByID(ctx, trainingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainingNotFound
		}
		return nil, err
	}

	_, role, err := s.roles.Authorize(ctx, memberID, training.TeamID, OpLogCreate)
	if err != nil {
		if errors.Is(err, ErrInsufficientRole) && role == domain.RoleTrainer {
			return nil, ErrTrainerCannotLog
		}
		return nil, err
	}
	if training.IsPersonal && training.CreatedBy != memberID {
		return nil, ErrInsufficientRole
	}

	if err := validateSets(input.Sets); err != nil {
		return nil, err
	}

	duration := input.DurationSeconds
	if duration == 0 && !input.StartTime.IsZero() && input.EndTime.After(input.StartTime) {
		duration = uint(input.EndTime.Sub(input.StartTime) / time.Second)
	}

	log := &domain.WorkoutLog{
		TrainingID:      trainingID,
		MemberID:        memberID,
		Sets:            input.Sets,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		DurationSeconds: duration,
		Notes:           input.Notes,
		CompletedAt:     s.now().UTC(),
	}

	id, err := s.logRepo.Create(ctx, log)
	if err != nil {
		return nil, err
	}
	log.ID = id
	return log, nil
}

// GetOwnLogs returns the caller's own logs, newest first.
func (s *workoutLogService) GetOwnLogs(ctx context.Context, memberID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	return s.logRepo.GetByMemberID(ctx, memberID)
}

func (s *workoutLogService) GetTrainingLogs(ctx context.Context, userID, trainingID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	training, err := s.trainingRepo.GetByID(ctx, trainingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainingNotFound
		}
		return nil, err
	}

	_, role, err := s.roles.Authorize(ctx, userID, training.TeamID, OpTrainingRead)
	if err != nil {
		return nil, err
	}
	if training.IsPersonal && training.CreatedBy != userID {
		return nil, ErrInsufficientRole
	}

	logs, err := s.logRepo.GetByTrainingID(ctx, trainingID)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleTrainer {
		return logs, nil
	}

	own := logs[:0]
	for i := range logs {
		if logs[i].MemberID == userID {
			own = append(own, logs[i])
		}
	}
	return own, nil
}

func (s *workoutLogService) GetMemberLogs(ctx context.Context, requesterID, teamID, memberID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	team, _, err := s.roles.Authorize(ctx, requesterID, teamID, OpLogReadMember)
	if err != nil {
		return nil, err
	}
	if !team.HasMember(memberID) {
		return nil, ErrNotTeamMember
	}

	logs, err := s.logRepo.GetByMemberID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	// Keep only logs against this team's shared trainings.
	trainings := make(map[primitive.ObjectID]*domain.Training)
	filtered := logs[:0]
	for i := range logs {
		training, ok := trainings[logs[i].TrainingID]
		if !ok {
			training, err = s.trainingRepo.GetByID(ctx, logs[i].TrainingID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					continue
				}
				return nil, err
			}
			trainings[logs[i].TrainingID] = training
		}
		if training.TeamID == teamID && !training.IsPersonal {
			filtered = append(filtered, logs[i])
		}
	}
	return filtered, nil
}

// GetCalendar aggregates the member's logs for one month into per-day counts.
func (s *workoutLogService) GetCalendar(ctx context.Context, memberID primitive.ObjectID, year int, month time.Month) ([]CalendarDay, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	logs, err := s.logRepo.GetByMemberBetween(ctx, memberID, from, to)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for i := range logs {
		counts[logs[i].CompletedAt.UTC().Format("2006-01-02")]++
	}

	days := make([]CalendarDay, 0, len(counts))
	for date, count := range counts {
		days = append(days, CalendarDay{Date: date, Count: count})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days, nil
}

// GetStreak counts consecutive logging days ending today or yesterday.
func (s *workoutLogService) GetStreak(ctx context.Context, memberID primitive.ObjectID) (int, error) {
	logs, err := s.logRepo.GetByMemberID(ctx, memberID)
	if err != nil {
		return 0, err
	}
	if len(logs) == 0 {
		return 0, nil
	}

	days := make(map[string]bool, len(logs))
	for i := range logs {
		days[logs[i].CompletedAt.UTC().Format("2006-01-02")] = true
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	cursor := today
	// A streak survives until a day without a log; missing only today is
	// fine (the member may not have trained yet).
	if !days[cursor.Format("2006-01-02")] {
		cursor = cursor.AddDate(0, 0, -1)
	}

	streak := 0
	for days[cursor.Format("2006-01-02")] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak, nil
}
