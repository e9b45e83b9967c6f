package service

import (
	"context"
	"errors"

	"github.com/Hares-2088/team-training-sub000/internal/domain"
	"github.com/Hares-2088/team-training-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Operation names a team-scoped action subject to authorization.
type Operation string

const (
	OpTeamRead         Operation = "team:read"
	OpTeamUpdate       Operation = "team:update"
	OpTeamDelete       Operation = "team:delete"
	OpInviteRegenerate Operation = "team:invite-code"
	OpMemberRemove     Operation = "team:member-remove"
	OpMemberRoleSet    Operation = "team:member-role"
	OpTrainingCreate   Operation = "training:create"
	OpTrainingRead     Operation = "training:read"
	OpTrainingUpdate   Operation = "training:update"
	OpTrainingDelete   Operation = "training:delete"
	OpLogCreate        Operation = "log:create"
	OpLogReadMember    Operation = "log:read-member"
	OpExerciseCreate   Operation = "exercise:create"
	OpExerciseRead     Operation = "exercise:read"
)

// anyRole marks operations open to every team relationship (role != none).
var anyRole = []domain.TeamRole{domain.RoleTrainer, domain.RoleCoach, domain.RoleMember}

// allowedRoles is the authorization rule table. Absent operations are denied
// outright. Note that log creation explicitly excludes the trainer.
var allowedRoles = map[Operation][]domain.TeamRole{
	OpTeamRead:         anyRole,
	OpTeamUpdate:       {domain.RoleTrainer},
	OpTeamDelete:       {domain.RoleTrainer},
	OpInviteRegenerate: {domain.RoleTrainer},
	OpMemberRemove:     {domain.RoleTrainer},
	OpMemberRoleSet:    {domain.RoleTrainer},
	OpTrainingCreate:   {domain.RoleTrainer},
	OpTrainingRead:     anyRole,
	OpTrainingUpdate:   {domain.RoleTrainer},
	OpTrainingDelete:   {domain.RoleTrainer},
	OpLogCreate:        {domain.RoleCoach, domain.RoleMember},
	OpLogReadMember:    {domain.RoleTrainer},
	OpExerciseCreate:   {domain.RoleTrainer},
	OpExerciseRead:     anyRole,
}

// RoleService derives a user's effective role from the team roster and
// authorizes team-scoped operations against it. Roles are never read from
// session state here: membership can change after a token was issued, so
// every privileged operation re-resolves.
type RoleService interface {
	// ResolveRole returns the user's role in the given team, or RoleNone.
	ResolveRole(ctx context.Context, userID, teamID primitive.ObjectID) (domain.TeamRole, error)
	// ResolvePrimaryRole picks a role across all of the user's teams: the
	// first trainer or coach relationship wins, else member, else none.
	// Used only as a UI hint (e.g. inside the login token).
	ResolvePrimaryRole(ctx context.Context, userID primitive.ObjectID) (domain.TeamRole, error)
	// Authorize loads the team (existence is checked before any role logic,
	// uniformly across all operations), resolves the caller's role and
	// applies the rule table. On success it returns the team and role so
	// callers avoid a second round trip.
	Authorize(ctx context.Context, userID, teamID primitive.ObjectID, op Operation) (*domain.Team, domain.TeamRole, error)
}

type roleService struct {
	teamRepo repository.TeamRepository
}

// NewRoleService creates a new instance of roleService.
func NewRoleService(teamRepo repository.TeamRepository) RoleService {
	return &roleService{teamRepo: teamRepo}
}

func (s *roleService) ResolveRole(ctx context.Context, userID, teamID primitive.ObjectID) (domain.TeamRole, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.RoleNone, ErrTeamNotFound
		}
		return domain.RoleNone, err
	}
	return team.RoleOf(userID), nil
}

func (s *roleService) ResolvePrimaryRole(ctx context.Context, userID primitive.ObjectID) (domain.TeamRole, error) {
	teams, err := s.teamRepo.GetByUser(ctx, userID)
	if err != nil {
		return domain.RoleNone, err
	}

	primary := domain.RoleNone
	for i := range teams {
		switch teams[i].RoleOf(userID) {
		case domain.RoleTrainer:
			return domain.RoleTrainer, nil
		case domain.RoleCoach:
			primary = domain.RoleCoach
		case domain.RoleMember:
			if primary == domain.RoleNone {
				primary = domain.RoleMember
			}
		}
	}
	return primary, nil
}

func (s *roleService) Authorize(ctx context.Context, userID, teamID primitive.ObjectID, op Operation) (*domain.Team, domain.TeamRole, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.RoleNone, ErrTeamNotFound
		}
		return nil, domain.RoleNone, err
	}

	role := team.RoleOf(userID)
	if role == domain.RoleNone {
		return nil, domain.RoleNone, ErrNotTeamMember
	}

	for _, allowed := range allowedRoles[op] {
		if role == allowed {
			return team, role, nil
		}
	}
	return nil, role, ErrInsufficientRole
}
