package service

import (
	"context"
	"errors"

	"github.com/Hares-2088/team-training-sub000/internal/domain"
	"github.com/Hares-2088/team-training-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamService covers team CRUD, the invite/join flow and roster management.
type TeamService interface {
	CreateTeam(ctx context.Context, trainerID primitive.ObjectID, name, description string) (*domain.Team, error)
	GetTeam(ctx context.Context, userID, teamID primitive.ObjectID) (*domain.Team, domain.TeamRole, error)
	GetUserTeams(ctx context.Context, userID primitive.ObjectID) ([]domain.Team, error)
	UpdateTeam(ctx context.Context, userID, teamID primitive.ObjectID, name, description string) (*domain.Team, error)
	DeleteTeam(ctx context.Context, userID, teamID primitive.ObjectID) error

	RegenerateInviteCode(ctx context.Context, userID, teamID primitive.ObjectID) (string, error)
	JoinByCode(ctx context.Context, userID primitive.ObjectID, code string) (*domain.Team, error)
	JoinByID(ctx context.Context, userID, teamID primitive.ObjectID) (*domain.Team, error)

	GetMembers(ctx context.Context, userID, teamID primitive.ObjectID) ([]domain.User, error)
	RemoveMember(ctx context.Context, userID, teamID, memberID primitive.ObjectID) error
	SetMemberRole(ctx context.Context, userID, teamID, memberID primitive.ObjectID, role domain.TeamRole) error
}

type teamService struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
	roles    RoleService
}

// NewTeamService creates a new instance of teamService.
func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository, roles RoleService) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
		roles:    roles,
	}
}

// CreateTeam establishes the creator as the team's trainer. The trainer is
// never added to the members set.
func (s *teamService) CreateTeam(ctx context.Context, trainerID primitive.ObjectID, name, description string) (*domain.Team, error) {
	if trainerID == primitive.NilObjectID || name == "" {
		return nil, ErrValidationFailed
	}

	team := &domain.Team{
		Name:        name,
		Description: description,
		TrainerID:   trainerID,
	}

	teamID, err := s.teamRepo.Create(ctx, team)
	if err != nil {
		return nil, err
	}
	team.ID = teamID
	return team, nil
}

// GetTeam returns the team for anyone with a relationship to it.
func (s *teamService) GetTeam(ctx context.Context, userID, teamID primitive.ObjectID) (*domain.Team, domain.TeamRole, error) {
	team, role, err := s.roles.Authorize(ctx, userID, teamID, OpTeamRead)
	if err != nil {
		return nil, domain.RoleNone, err
	}
	return team, role, nil
}

// GetUserTeams lists every team the user trains or belongs to.
func (s *teamService) GetUserTeams(ctx context.Context, userID primitive.ObjectID) ([]domain.Team, error) {
	return s.teamRepo.GetByUser(ctx, userID)
}

// UpdateTeam changes name/description. Trainer only.
func (s *teamService) UpdateTeam(ctx context.Context, userID, teamID primitive.ObjectID, name, description string) (*domain.Team, error) {
	team, _, err := s.roles.Authorize(ctx, userID, teamID, OpTeamUpdate)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrValidationFailed
	}

	team.Name = name
	team.Description = description
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// DeleteTeam removes the team. Trainer only.
func (s *teamService) DeleteTeam(ctx context.Context, userID, teamID primitive.ObjectID) error {
	if _, _, err := s.roles.Authorize(ctx, userID, teamID, OpTeamDelete); err != nil {
		return err
	}
	return s.teamRepo.Delete(ctx, teamID)
}

// RegenerateInviteCode writes a fresh code, retrying on unique-index
// rejections. The write is the authority on uniqueness; there is no
// check-then-insert race. Exhausting the retry budget surfaces as a
// conflict distinct from "team not found".
func (s *teamService) RegenerateInviteCode(ctx context.Context, userID, teamID primitive.ObjectID) (string, error) {
	if _, _, err := s.roles.Authorize(ctx, userID, teamID, OpInviteRegenerate); err != nil {
		return "", err
	}

	for attempt := 0; attempt < inviteCodeMaxAttempts; attempt++ {
		code, err := GenerateInviteCode()
		if err != nil {
			return "", err
		}
		err = s.teamRepo.SetInviteCode(ctx, teamID, code)
		if err == nil {
			return code, nil
		}
		if errors.Is(err, repository.ErrDuplicate) {
			continue
		}
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrTeamNotFound
		}
		return "", err
	}
	return "", ErrInviteCodeExhausted
}

// JoinByCode adds the caller to the team holding the (normalized) code.
// A regenerated code invalidates the previous one because lookup goes by
// the single stored value.
func (s *teamService) JoinByCode(ctx context.Context, userID primitive.ObjectID, code string) (*domain.Team, error) {
	normalized := NormalizeInviteCode(code)
	if normalized == "" {
		return nil, ErrValidationFailed
	}

	team, err := s.teamRepo.GetByInviteCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidInviteCode
		}
		return nil, err
	}
	return s.join(ctx, userID, team)
}

// JoinByID adds the caller to a team reached via direct link.
func (s *teamService) JoinByID(ctx context.Context, userID, teamID primitive.ObjectID) (*domain.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return s.join(ctx, userID, team)
}

func (s *teamService) join(ctx context.Context, userID primitive.ObjectID, team *domain.Team) (*domain.Team, error) {
	// The trainer already owns the team; joining again makes no sense.
	if team.RoleOf(userID) != domain.RoleNone {
		return nil, ErrAlreadyMember
	}

	if err := s.teamRepo.AddMember(ctx, team.ID, userID); err != nil {
		return nil, err
	}
	team.Members = append(team.Members, userID)
	return team, nil
}

// GetMembers lists the team roster (trainer excluded) for any participant.
func (s *teamService) GetMembers(ctx context.Context, userID, teamID primitive.ObjectID) ([]domain.User, error) {
	team, _, err := s.roles.Authorize(ctx, userID, teamID, OpTeamRead)
	if err != nil {
		return nil, err
	}
	if len(team.Members) == 0 {
		return []domain.User{}, nil
	}

	members, err := s.userRepo.GetByIDs(ctx, team.Members)
	if err != nil {
		return nil, err
	}
	for i := range members {
		members[i].PasswordHash = ""
	}
	return members, nil
}

// RemoveMember drops a member from the roster. Trainer only.
func (s *teamService) RemoveMember(ctx context.Context, userID, teamID, memberID primitive.ObjectID) error {
	team, _, err := s.roles.Authorize(ctx, userID, teamID, OpMemberRemove)
	if err != nil {
		return err
	}
	if !team.HasMember(memberID) {
		return ErrNotTeamMember
	}
	return s.teamRepo.RemoveMember(ctx, teamID, memberID)
}

// SetMemberRole promotes a member to coach or demotes them back. Trainer only.
func (s *teamService) SetMemberRole(ctx context.Context, userID, teamID, memberID primitive.ObjectID, role domain.TeamRole) error {
	if role != domain.RoleCoach && role != domain.RoleMember {
		return ErrValidationFailed
	}

	team, _, err := s.roles.Authorize(ctx, userID, teamID, OpMemberRoleSet)
	if err != nil {
		return err
	}
	if !team.HasMember(memberID) {
		return ErrNotTeamMember
	}

	// Plain membership already means member; only coach needs a tag.
	if role == domain.RoleMember {
		return s.teamRepo.UnsetMemberRole(ctx, teamID, memberID)
	}
	return s.teamRepo.SetMemberRole(ctx, teamID, memberID, role)
}
