package service

import (
	"context"
	"strings"
	"time"

	"github.com/Hares-2088/team-training-sub000/internal/domain"
	"github.com/Hares-2088/team-training-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. They honor the same error contracts as the
// Mongo implementations (ErrNotFound, ErrDuplicate) so services can be tested
// without a database.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	clone := *user
	clone.ID = id
	r.users[id] = &clone
	return id, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

type fakeTeamRepo struct {
	teams map[primitive.ObjectID]*domain.Team

	// rejectSetCodes makes the next N SetInviteCode calls fail with
	// ErrDuplicate, simulating unique-index collisions.
	rejectSetCodes int
	setCodeCalls   int
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[primitive.ObjectID]*domain.Team)}
}

func (r *fakeTeamRepo) Create(_ context.Context, team *domain.Team) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	clone := *team
	clone.ID = id
	r.teams[id] = &clone
	return id, nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *team
	return &clone, nil
}

func (r *fakeTeamRepo) GetByInviteCode(_ context.Context, code string) (*domain.Team, error) {
	for _, team := range r.teams {
		if team.InviteCode != "" && team.InviteCode == code {
			clone := *team
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeTeamRepo) GetByUser(_ context.Context, userID primitive.ObjectID) ([]domain.Team, error) {
	var out []domain.Team
	for _, team := range r.teams {
		if team.RoleOf(userID) != domain.RoleNone {
			out = append(out, *team)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) Update(_ context.Context, team *domain.Team) error {
	if _, ok := r.teams[team.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *team
	r.teams[team.ID] = &clone
	return nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.teams[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.teams, id)
	return nil
}

func (r *fakeTeamRepo) SetInviteCode(_ context.Context, teamID primitive.ObjectID, code string) error {
	r.setCodeCalls++
	if r.rejectSetCodes > 0 {
		r.rejectSetCodes--
		return repository.ErrDuplicate
	}
	team, ok := r.teams[teamID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, other := range r.teams {
		if id != teamID && other.InviteCode == code {
			return repository.ErrDuplicate
		}
	}
	team.InviteCode = code
	return nil
}

func (r *fakeTeamRepo) AddMember(_ context.Context, teamID, userID primitive.ObjectID) error {
	team, ok := r.teams[teamID]
	if !ok {
		return repository.ErrNotFound
	}
	if !team.HasMember(userID) {
		team.Members = append(team.Members, userID)
	}
	return nil
}

func (r *fakeTeamRepo) RemoveMember(_ context.Context, teamID, userID primitive.ObjectID) error {
	team, ok := r.teams[teamID]
	if !ok {
		return repository.ErrNotFound
	}
	for i, id := range team.Members {
		if id == userID {
			team.Members = append(team.Members[:i], team.Members[i+1:]...)
			break
		}
	}
	delete(team.MemberRoles, userID.Hex())
	return nil
}

func (r *fakeTeamRepo) SetMemberRole(_ context.Context, teamID, userID primitive.ObjectID, role domain.TeamRole) error {
	team, ok := r.teams[teamID]
	if !ok {
		return repository.ErrNotFound
	}
	if team.MemberRoles == nil {
		team.MemberRoles = make(map[string]domain.TeamRole)
	}
	team.MemberRoles[userID.Hex()] = role
	return nil
}

func (r *fakeTeamRepo) UnsetMemberRole(_ context.Context, teamID, userID primitive.ObjectID) error {
	team, ok := r.teams[teamID]
	if !ok {
		return repository.ErrNotFound
	}
	delete(team.MemberRoles, userID.Hex())
	return nil
}

type fakeTrainingRepo struct {
	trainings map[primitive.ObjectID]*domain.Training
}

func newFakeTrainingRepo() *fakeTrainingRepo {
	return &fakeTrainingRepo{trainings: make(map[primitive.ObjectID]*domain.Training)}
}

func (r *fakeTrainingRepo) Create(_ context.Context, training *domain.Training) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	clone := *training
	clone.ID = id
	r.trainings[id] = &clone
	return id, nil
}

func (r *fakeTrainingRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Training, error) {
	training, ok := r.trainings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *training
	return &clone, nil
}

func (r *fakeTrainingRepo) GetByTeamID(_ context.Context, teamID primitive.ObjectID) ([]domain.Training, error) {
	var out []domain.Training
	for _, training := range r.trainings {
		if training.TeamID == teamID && !training.IsPersonal {
			out = append(out, *training)
		}
	}
	return out, nil
}

func (r *fakeTrainingRepo) GetPersonalByUser(_ context.Context, userID primitive.ObjectID) ([]domain.Training, error) {
	var out []domain.Training
	for _, training := range r.trainings {
		if training.IsPersonal && training.CreatedBy == userID {
			out = append(out, *training)
		}
	}
	return out, nil
}

func (r *fakeTrainingRepo) Update(_ context.Context, training *domain.Training) error {
	if _, ok := r.trainings[training.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *training
	r.trainings[training.ID] = &clone
	return nil
}

func (r *fakeTrainingRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status domain.TrainingStatus) error {
	training, ok := r.trainings[id]
	if !ok {
		return repository.ErrNotFound
	}
	training.Status = status
	return nil
}

func (r *fakeTrainingRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.trainings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.trainings, id)
	return nil
}

type fakeWorkoutLogRepo struct {
	logs map[primitive.ObjectID]*domain.WorkoutLog
}

func newFakeWorkoutLogRepo() *fakeWorkoutLogRepo {
	return &fakeWorkoutLogRepo{logs: make(map[primitive.ObjectID]*domain.WorkoutLog)}
}

func (r *fakeWorkoutLogRepo) Create(_ context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	clone := *log
	clone.ID = id
	r.logs[id] = &clone
	return id, nil
}

func (r *fakeWorkoutLogRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error) {
	log, ok := r.logs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *log
	return &clone, nil
}

func (r *fakeWorkoutLogRepo) GetByMemberID(_ context.Context, memberID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	var out []domain.WorkoutLog
	for _, log := range r.logs {
		if log.MemberID == memberID {
			out = append(out, *log)
		}
	}
	return out, nil
}

func (r *fakeWorkoutLogRepo) GetByTrainingID(_ context.Context, trainingID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	var out []domain.WorkoutLog
	for _, log := range r.logs {
		if log.TrainingID == trainingID {
			out = append(out, *log)
		}
	}
	return out, nil
}

func (r *fakeWorkoutLogRepo) GetByMemberBetween(_ context.Context, memberID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutLog, error) {
	var out []domain.WorkoutLog
	for _, log := range r.logs {
		if log.MemberID == memberID && !log.CompletedAt.Before(from) && log.CompletedAt.Before(to) {
			out = append(out, *log)
		}
	}
	return out, nil
}

type fakeTemplateRepo struct {
	templates map[primitive.ObjectID]*domain.WorkoutTemplate
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: make(map[primitive.ObjectID]*domain.WorkoutTemplate)}
}

func (r *fakeTemplateRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	tpl, ok := r.templates[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *tpl
	return &clone, nil
}

func (r *fakeTemplateRepo) List(_ context.Context, filter repository.TemplateFilter) ([]domain.WorkoutTemplate, error) {
	var out []domain.WorkoutTemplate
	for _, tpl := range r.templates {
		if filter.Category != "" && tpl.Category != filter.Category {
			continue
		}
		if filter.Difficulty != "" && tpl.Difficulty != filter.Difficulty {
			continue
		}
		if filter.Tag != "" && !containsTag(tpl.Tags, filter.Tag) {
			continue
		}
		out = append(out, *tpl)
	}
	return out, nil
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (r *fakeTemplateRepo) UpsertByTitle(_ context.Context, tpl *domain.WorkoutTemplate) error {
	for id, existing := range r.templates {
		if existing.Title == tpl.Title {
			clone := *tpl
			clone.ID = id
			r.templates[id] = &clone
			return nil
		}
	}
	id := primitive.NewObjectID()
	clone := *tpl
	clone.ID = id
	r.templates[id] = &clone
	return nil
}

type fakeExerciseRepo struct {
	exercises map[primitive.ObjectID]*domain.Exercise
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: make(map[primitive.ObjectID]*domain.Exercise)}
}

func (r *fakeExerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	for _, ex := range r.exercises {
		if ex.TeamID == exercise.TeamID && strings.EqualFold(ex.Name, exercise.Name) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	clone := *exercise
	clone.ID = id
	r.exercises[id] = &clone
	return id, nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	ex, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *ex
	return &clone, nil
}

func (r *fakeExerciseRepo) GetByTeamID(_ context.Context, teamID primitive.ObjectID) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, ex := range r.exercises {
		if ex.TeamID == teamID {
			out = append(out, *ex)
		}
	}
	return out, nil
}

func (r *fakeExerciseRepo) Delete(_ context.Context, id, teamID primitive.ObjectID) error {
	ex, ok := r.exercises[id]
	if !ok || ex.TeamID != teamID {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}

// seedTeam inserts a team with the given roster directly into the fake.
func seedTeam(repo *fakeTeamRepo, trainerID primitive.ObjectID, members []primitive.ObjectID, memberRoles map[string]domain.TeamRole) *domain.Team {
	team := &domain.Team{
		ID:          primitive.NewObjectID(),
		Name:        "Test Team",
		TrainerID:   trainerID,
		Members:     members,
		MemberRoles: memberRoles,
	}
	repo.teams[team.ID] = team
	return team
}
