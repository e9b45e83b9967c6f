package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Hares-2088/team-training-sub000/internal/domain"
	"github.com/Hares-2088/team-training-sub000/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// AuthService handles registration, login and profile updates. The role
// embedded in the issued token is a display hint derived at login time;
// authorization decisions always go through RoleService instead.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, role domain.TeamRole, err error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, name, email, password string) (*domain.User, error)
	GetUser(ctx context.Context, userID primitive.ObjectID) (*domain.User, error)
	GetJWTSecret() string
}

// SessionClaims is the JWT payload carried by the identity token.
type SessionClaims struct {
	UserID string          `json:"uid"`
	Email  string          `json:"email"`
	Role   domain.TeamRole `json:"role"` // UI hint only, never authoritative
	jwt.RegisteredClaims
}

type authService struct {
	userRepo      repository.UserRepository
	roles         RoleService
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, roles RoleService, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 7 * 24 * time.Hour
	}
	return &authService{
		userRepo:      userRepo,
		roles:         roles,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new user registration.
func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrValidationFailed
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.User{
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: string(hashedPassword),
	}

	// The unique index on email is the authority; no racy pre-check.
	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	user.ID = userID

	user.PasswordHash = ""
	return user, nil
}

// Login authenticates a user and issues a signed identity token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, domain.TeamRole, error) {
	if email == "" || password == "" {
		return "", nil, domain.RoleNone, ErrAuthenticationFailed
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, domain.RoleNone, ErrAuthenticationFailed
		}
		return "", nil, domain.RoleNone, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.RoleNone, ErrAuthenticationFailed
	}

	// Primary role is derived from the team rosters at login time; it can go
	// stale while the token lives, which is why it is only a hint.
	role, err := s.roles.ResolvePrimaryRole(ctx, user.ID)
	if err != nil {
		return "", nil, domain.RoleNone, err
	}

	token, err := s.generateJWT(user, role)
	if err != nil {
		return "", nil, domain.RoleNone, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, role, nil
}

// UpdateProfile mutates name, email and/or password. Empty arguments leave
// the corresponding field unchanged.
func (s *authService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, name, email, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = strings.ToLower(email)
	}
	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrHashingFailed
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// GetUser fetches a user by id with the password hash cleared.
func (s *authService) GetUser(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// generateJWT creates a signed token for the given user.
func (s *authService) generateJWT(user *domain.User, role domain.TeamRole) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &SessionClaims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "team-training",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication.
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
