package service

import (
	"context"
	"testing"

	"github.com/Hares-2088/team-training-sub000/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveRole(t *testing.T) {
	teamRepo := newFakeTeamRepo()
	trainer := primitive.NewObjectID()
	coach := primitive.NewObjectID()
	member := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	team := seedTeam(teamRepo, trainer,
		[]primitive.ObjectID{coach, member},
		map[string]domain.TeamRole{coach.Hex(): domain.RoleCoach},
	)

	svc := NewRoleService(teamRepo)
	ctx := context.Background()

	tests := []struct {
		name   string
		userID primitive.ObjectID
		want   domain.TeamRole
	}{
		{"trainer", trainer, domain.RoleTrainer},
		{"coach", coach, domain.RoleCoach},
		{"member", member, domain.RoleMember},
		{"stranger", stranger, domain.RoleNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := svc.ResolveRole(ctx, tt.userID, team.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, role)
		})
	}
}

func TestResolveRoleTeamNotFound(t *testing.T) {
	svc := NewRoleService(newFakeTeamRepo())
	_, err := svc.ResolveRole(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestResolvePrimaryRole(t *testing.T) {
	teamRepo := newFakeTeamRepo()
	user := primitive.NewObjectID()
	otherTrainer := primitive.NewObjectID()

	// Member of one team, coach in another: coach wins as the primary hint.
	seedTeam(teamRepo, otherTrainer, []primitive.ObjectID{user}, nil)
	seedTeam(teamRepo, otherTrainer, []primitive.ObjectID{user},
		map[string]domain.TeamRole{user.Hex(): domain.RoleCoach})

	svc := NewRoleService(teamRepo)
	role, err := svc.ResolvePrimaryRole(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCoach, role)

	// Owning any team makes trainer the primary role.
	seedTeam(teamRepo, user, nil, nil)
	role, err = svc.ResolvePrimaryRole(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTrainer, role)
}

func TestResolvePrimaryRoleNoTeams(t *testing.T) {
	svc := NewRoleService(newFakeTeamRepo())
	role, err := svc.ResolvePrimaryRole(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Equal(t, domain.RoleNone, role)
}

func TestAuthorize(t *testing.T) {
	teamRepo := newFakeTeamRepo()
	trainer := primitive.NewObjectID()
	coach := primitive.NewObjectID()
	member := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	team := seedTeam(teamRepo, trainer,
		[]primitive.ObjectID{coach, member},
		map[string]domain.TeamRole{coach.Hex(): domain.RoleCoach},
	)

	svc := NewRoleService(teamRepo)
	ctx := context.Background()

	t.Run("trainer may manage the team", func(t *testing.T) {
		got, role, err := svc.Authorize(ctx, trainer, team.ID, OpTeamUpdate)
		require.NoError(t, err)
		assert.Equal(t, team.ID, got.ID)
		assert.Equal(t, domain.RoleTrainer, role)
	})

	t.Run("member may read but not manage", func(t *testing.T) {
		_, _, err := svc.Authorize(ctx, member, team.ID, OpTeamRead)
		require.NoError(t, err)

		_, role, err := svc.Authorize(ctx, member, team.ID, OpTeamUpdate)
		assert.ErrorIs(t, err, ErrInsufficientRole)
		assert.Equal(t, domain.RoleMember, role)
	})

	t.Run("coach has member privileges, not trainer ones", func(t *testing.T) {
		_, _, err := svc.Authorize(ctx, coach, team.ID, OpLogCreate)
		require.NoError(t, err)

		_, _, err = svc.Authorize(ctx, coach, team.ID, OpTrainingCreate)
		assert.ErrorIs(t, err, ErrInsufficientRole)
	})

	t.Run("trainer may not create logs", func(t *testing.T) {
		_, role, err := svc.Authorize(ctx, trainer, team.ID, OpLogCreate)
		assert.ErrorIs(t, err, ErrInsufficientRole)
		assert.Equal(t, domain.RoleTrainer, role)
	})

	t.Run("non-member is rejected before any role check", func(t *testing.T) {
		_, _, err := svc.Authorize(ctx, stranger, team.ID, OpTeamRead)
		assert.ErrorIs(t, err, ErrNotTeamMember)
	})

	t.Run("missing team reported before membership", func(t *testing.T) {
		_, _, err := svc.Authorize(ctx, stranger, primitive.NewObjectID(), OpTeamUpdate)
		assert.ErrorIs(t, err, ErrTeamNotFound)
	})

	t.Run("unknown operation is denied", func(t *testing.T) {
		_, _, err := svc.Authorize(ctx, trainer, team.ID, Operation("bogus"))
		assert.ErrorIs(t, err, ErrInsufficientRole)
	})
}
