package service

import (
	"context"
	"testing"
	"time"

	"github.com/Hares-2088/team-training-sub000/internal/domain"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testJWTSecret = "test-secret"

func newAuthServiceForTest() (AuthService, *fakeUserRepo, *fakeTeamRepo) {
	userRepo := newFakeUserRepo()
	teamRepo := newFakeTeamRepo()
	svc := NewAuthService(userRepo, NewRoleService(teamRepo), testJWTSecret, time.Hour)
	return svc, userRepo, teamRepo
}

func TestRegister(t *testing.T) {
	svc, userRepo, _ := newAuthServiceForTest()
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alex", "Alex@Example.COM", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", user.Email, "email is stored lower-cased")
	assert.Empty(t, user.PasswordHash, "hash never leaves the service")

	stored, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "hunter22", stored.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alex", "alex@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other", "ALEX@example.com", "different")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()
	_, err := svc.Register(context.Background(), "", "a@b.c", "pw")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestLogin(t *testing.T) {
	svc, _, teamRepo := newAuthServiceForTest()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Alex", "alex@example.com", "hunter22")
	require.NoError(t, err)
	seedTeam(teamRepo, registered.ID, nil, nil)

	token, user, role, err := svc.Login(ctx, "alex@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, domain.RoleTrainer, role, "owns a team, so the hint is trainer")

	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(_ *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, registered.ID.Hex(), claims.UserID)
	assert.Equal(t, "alex@example.com", claims.Email)
	assert.Equal(t, domain.RoleTrainer, claims.Role)
}

func TestLoginFailures(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alex", "alex@example.com", "hunter22")
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "alex@example.com", "wrong")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	// Unknown email reports the same error so the response does not leak
	// which accounts exist.
	_, _, _, err = svc.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, _, err = svc.Login(ctx, "", "")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alex", "alex@example.com", "hunter22")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, user.ID, "Alexis", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Alexis", updated.Name)
	assert.Equal(t, "alex@example.com", updated.Email, "empty email leaves it unchanged")

	// A password change must invalidate the old one.
	_, err = svc.UpdateProfile(ctx, user.ID, "", "", "newpass")
	require.NoError(t, err)
	_, _, _, err = svc.Login(ctx, "alex@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	_, _, _, err = svc.Login(ctx, "alex@example.com", "newpass")
	assert.NoError(t, err)
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alex", "alex@example.com", "hunter22")
	require.NoError(t, err)
	other, err := svc.Register(ctx, "Sam", "sam@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, other.ID, "", "alex@example.com", "")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestGetUser(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alex", "alex@example.com", "hunter22")
	require.NoError(t, err)

	got, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Empty(t, got.PasswordHash)

	_, err = svc.GetUser(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
