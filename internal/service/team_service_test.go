package service

import (
	"context"
	"testing"

	"github.com/Hares-2088/team-training-sub000/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTeamServiceForTest() (TeamService, *fakeTeamRepo, *fakeUserRepo) {
	teamRepo := newFakeTeamRepo()
	userRepo := newFakeUserRepo()
	roles := NewRoleService(teamRepo)
	return NewTeamService(teamRepo, userRepo, roles), teamRepo, userRepo
}

func TestCreateTeam(t *testing.T) {
	svc, teamRepo, _ := newTeamServiceForTest()
	trainer := primitive.NewObjectID()

	team, err := svc.CreateTeam(context.Background(), trainer, "Barbell Club", "Tuesday evenings")
	require.NoError(t, err)
	assert.Equal(t, trainer, team.TrainerID)
	assert.Empty(t, team.Members, "creator must not appear in the members set")
	assert.Empty(t, team.InviteCode, "no code until the trainer generates one")

	stored, err := teamRepo.GetByID(context.Background(), team.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTrainer, stored.RoleOf(trainer))
}

func TestCreateTeamValidation(t *testing.T) {
	svc, _, _ := newTeamServiceForTest()
	_, err := svc.CreateTeam(context.Background(), primitive.NewObjectID(), "", "")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestUpdateTeamTrainerOnly(t *testing.T) {
	svc, teamRepo, _ := newTeamServiceForTest()
	trainer := primitive.NewObjectID()
	member := primitive.NewObjectID()
	team := seedTeam(teamRepo, trainer, []primitive.ObjectID{member}, nil)

	_, err := svc.UpdateTeam(context.Background(), member, team.ID, "Renamed", "")
	assert.ErrorIs(t, err, ErrInsufficientRole)

	updated, err := svc.UpdateTeam(context.Background(), trainer, team.ID, "Renamed", "new blurb")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestRegenerateInviteCode(t *testing.T) {
	svc, teamRepo, _ := newTeamServiceForTest()
	trainer := primitive.NewObjectID()
	team := seedTeam(teamRepo, trainer, nil, nil)

	code, err := svc.RegenerateInviteCode(context.Background(), trainer, team.ID)
	require.NoError(t, err)
	assert.Len(t, code, 6)

	stored, err := teamRepo.GetByID(context.Background(), team.ID)
	require.NoError(t, err)
	assert.Equal(t, code, stored.InviteCode)
}

func TestRegenerateInviteCodeAlwaysUnique(t *testing.T) {
	svc, teamRepo, _ := newTeamServiceForTest()
	ctx := context.Background()

	codes := make(map[string]bool)
	for i := 0; i < 20; i++ {
		trainer := primitive.NewObjectID()
		team := seedTeam(teamRepo, trainer, nil, nil)
		code, err := svc.RegenerateInviteCode(ctx, trainer, team.ID)
		require.NoError(t, err)
		assert.False(t, codes[code], "code %q issued twice", code)
		codes[code] = true
	}
}

func TestRegenerateInviteCodeTwiceCodesDiffer(t *testing.T) {
	svc, teamRepo, _ := newTeamServiceForTest()
	trainer := primitive.NewObjectID()
	team := seedTeam(teamRepo, trainer, nil, nil)
	ctx := context.Background()

	first, err := svc.RegenerateInviteCode(ctx, trainer, team.ID)
	require.NoError(t, err)
	second, err := svc.RegenerateInviteCode(ctx, trainer, team.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	// Only the latest code joins; the replaced one is gone.
	_, err = svc.JoinByCode(ctx, primitive.NewObjectID(), second)
	require.NoError(t, err)
	_, err = svc.JoinByCode(ctx, primitive.NewObjectID(), first)
	assert.ErrorIs(t, err, ErrInvalidInviteCode)
}

func TestRegenerateInviteCodeRetriesOnConflict(t *testing.T) {
	svc, teamRepo, _ := newTeamServiceForTest()
	trainer := primitive.NewObjectID()
	team := seedTeam(teamRepo, trainer, nil, nil)

	// First two writes bounce off the unique index; the third sticks.
	teamRepo.rejectSetCodes = 2
	code, err := svc.RegenerateInviteCode(context.Background(), trainer, team.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, code)
	assert.Equal(t, 3, teamRepo.setCodeCalls)
}

func TestRegenerateInviteCodeExhaustsRetries(t *testing.T) {
	svc, teamRepo, _ := newTeamServiceForTest()
	trainer := primitive.NewObjectID()
	team := seedTeam(teamRepo, trainer, nil, nil)

	teamRepo.rejectSetCodes = inviteCodeMaxAttempts
	_, err := svc.RegenerateInviteCode(context.Background(), trainer, team.ID)
	assert.ErrorIs(t, err, ErrInviteCodeExhausted)
	assert.Equal(t, inviteCodeMaxAttempts, teamRepo.setCodeCalls)
}

func TestRegenerateInviteCodeDeniedForMember(t *testing.T) {
	svc, teamRepo, _ := newTeamServiceForTest()
	trainer := primitive.NewObjectID()
	member := primitive.NewObjectID()
	team := seedTeam(teamRepo, trainer, []primitive.ObjectID{member}, nil)

	_, err := svc.RegenerateInviteCode(context.Background(), member, team.ID)
	assert.ErrorIs(t, err, ErrInsufficientRole)
}

func TestJoinByCode(t *testing.T) {
	svc, teamRepo, _ := newTeamServiceForTest()
	trainer := primitive.NewObjectID()
	joiner := primitive.NewObjectID()
	team := seedTeam(teamRepo, trainer, nil, nil)
	team.InviteCode = "AB12CD"

	joined, err := svc.JoinByCode(context.Background(), joiner, "ab12cd") // case-insensitive
	require.NoError(t, err)
	assert.Equal(t, team.ID, joined.ID)

	stored, err := teamRepo.GetByID(context.Background(), team.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, stored.RoleOf(joiner))
}

func TestJoinByCodeInvalid(t *testing.T) {
	svc, teamRepo, _ := newTeamServiceForTest()
	team := seedTeam(teamRepo, primitive.NewObjectID(), nil, nil)
	team.InviteCode = "AB12CD"

	_, err := svc.JoinByCode(context.Background(), primitive.NewObjectID(), "ZZZZZZ")
	assert.ErrorIs(t, err, ErrInvalidInviteCode)

	_, err = svc.JoinByCode(context.Background(), primitive.NewObjectID(), "   ")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestJoinByCodeOldCodeInvalidAfterRegenerate(t *testing.T) {
	svc, teamRepo, _ := newTeamServiceForTest()
	trainer := primitive.NewObjectID()
	team := seedTeam(teamRepo, trainer, nil, nil)
	team.InviteCode = "OLDC0D"

	_, err := svc.RegenerateInviteCode(context.Background(), trainer, team.ID)
	require.NoError(t, err)

	_, err = svc.JoinByCode(context.Background(), primitive.NewObjectID(), "OLDC0D")
	assert.ErrorIs(t, err, ErrInvalidInviteCode)
}

func TestJoinAlreadyMember(t *testing.T) {
	svc, teamRepo, _ := newTeamServiceForTest()
	trainer := primitive.NewObjectID()
	member := primitive.NewObjectID()
	team := seedTeam(teamRepo, trainer, []primitive.ObjectID{member}, nil)
	team.InviteCode = "AB12CD"

	_, err := svc.JoinByCode(context.Background(), member, "AB12CD")
	assert.ErrorIs(t, err, ErrAlreadyMember)

	// The trainer cannot join their own team either.
	_, err = svc.JoinByID(context.Background(), trainer, team.ID)
	assert.ErrorIs(t, err, ErrAlreadyMember)
}

func TestJoinByIDTeamNotFound(t *testing.T) {
	svc, _, _ := newTeamServiceForTest()
	_, err := svc.JoinByID(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestGetMembersStripsPasswordHash(t *testing.T) {
	svc, teamRepo, userRepo := newTeamServiceForTest()
	trainer := primitive.NewObjectID()

	memberID, err := userRepo.Create(context.Background(), &domain.User{
		Name: "Sam", Email: "sam@example.com", PasswordHash: "secret",
	})
	require.NoError(t, err)
	team := seedTeam(teamRepo, trainer, []primitive.ObjectID{memberID}, nil)

	members, err := svc.GetMembers(context.Background(), trainer, team.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Sam", members[0].Name)
	assert.Empty(t, members[0].PasswordHash)
}

func TestRemoveMember(t *testing.T) {
	svc, teamRepo, _ := newTeamServiceForTest()
	trainer := primitive.NewObjectID()
	member := primitive.NewObjectID()
	team := seedTeam(teamRepo, trainer, []primitive.ObjectID{member},
		map[string]domain.TeamRole{member.Hex(): domain.RoleCoach})

	require.NoError(t, svc.RemoveMember(context.Background(), trainer, team.ID, member))

	stored, err := teamRepo.GetByID(context.Background(), team.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleNone, stored.RoleOf(member), "removal also drops the role tag")

	err = svc.RemoveMember(context.Background(), trainer, team.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotTeamMember)
}

func TestSetMemberRole(t *testing.T) {
	svc, teamRepo, _ := newTeamServiceForTest()
	trainer := primitive.NewObjectID()
	member := primitive.NewObjectID()
	team := seedTeam(teamRepo, trainer, []primitive.ObjectID{member}, nil)
	ctx := context.Background()

	require.NoError(t, svc.SetMemberRole(ctx, trainer, team.ID, member, domain.RoleCoach))
	stored, err := teamRepo.GetByID(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCoach, stored.RoleOf(member))

	// Demoting back to member removes the tag instead of storing "member".
	require.NoError(t, svc.SetMemberRole(ctx, trainer, team.ID, member, domain.RoleMember))
	stored, err = teamRepo.GetByID(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, stored.RoleOf(member))
	assert.NotContains(t, stored.MemberRoles, member.Hex())

	assert.ErrorIs(t, svc.SetMemberRole(ctx, trainer, team.ID, member, domain.RoleTrainer), ErrValidationFailed)
	assert.ErrorIs(t, svc.SetMemberRole(ctx, member, team.ID, member, domain.RoleCoach), ErrInsufficientRole)
	assert.ErrorIs(t, svc.SetMemberRole(ctx, trainer, team.ID, primitive.NewObjectID(), domain.RoleCoach), ErrNotTeamMember)
}

func TestDeleteTeam(t *testing.T) {
	svc, teamRepo, _ := newTeamServiceForTest()
	trainer := primitive.NewObjectID()
	member := primitive.NewObjectID()
	team := seedTeam(teamRepo, trainer, []primitive.ObjectID{member}, nil)

	assert.ErrorIs(t, svc.DeleteTeam(context.Background(), member, team.ID), ErrInsufficientRole)
	require.NoError(t, svc.DeleteTeam(context.Background(), trainer, team.ID))

	_, _, err := svc.GetTeam(context.Background(), trainer, team.ID)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}
