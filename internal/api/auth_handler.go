package api

import (
	"net/http"
	"time"

	"github.com/Hares-2088/team-training-sub000/internal/domain"
	"github.com/Hares-2088/team-training-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthHandler holds the authentication service dependency plus the
// active-team cookie codec.
type AuthHandler struct {
	authService service.AuthService
	roleService service.RoleService
	activeTeam  *ActiveTeamCodec
	production  bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, roleService service.RoleService, activeTeam *ActiveTeamCodec, production bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		roleService: roleService,
		activeTeam:  activeTeam,
		production:  production,
	}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse excludes sensitive info like the password hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoginResponse struct {
	Token string          `json:"token"`
	Role  domain.TeamRole `json:"role"` // hint for the UI, not authoritative
	User  UserResponse    `json:"user"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=8"`
}

type SetActiveTeamRequest struct {
	TeamID string `json:"teamId" binding:"required"`
}

type ActiveTeamResponse struct {
	TeamID *string          `json:"teamId"`
	Role   *domain.TeamRole `json:"role"`
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        user.ID.Hex(),
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// --- Handler Methods ---

// Register creates a new user account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// Login authenticates a user, returns the identity token and also sets it as
// an httpOnly cookie for browser clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	token, user, role, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	sameSite := http.SameSiteLaxMode
	if h.production {
		sameSite = http.SameSiteStrictMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(SessionCookieName, token, sessionMaxAge, "/", "", h.production, true)

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		Role:  role,
		User:  MapUserToResponse(user),
	})
}

// Logout clears the session cookies.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", h.production, true)
	h.activeTeam.Clear(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UpdateProfile mutates name/email/password.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, req.Name, req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// SetActiveTeam validates membership, then caches (teamId, role) as a signed
// cookie and returns the resolved role so the client avoids a second trip.
func (h *AuthHandler) SetActiveTeam(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}

	var req SetActiveTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	teamID, err := primitive.ObjectIDFromHex(req.TeamID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid team id")
		return
	}

	role, err := h.roleService.ResolveRole(c.Request.Context(), userID, teamID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if role == domain.RoleNone {
		respondServiceError(c, service.ErrNotTeamMember)
		return
	}

	if err := h.activeTeam.Write(c, ActiveTeamState{TeamID: teamID.Hex(), Role: role}); err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to persist active team")
		return
	}

	teamHex := teamID.Hex()
	c.JSON(http.StatusOK, ActiveTeamResponse{TeamID: &teamHex, Role: &role})
}

// GetActiveTeam reads the cached pair. No store access; never authoritative.
func (h *AuthHandler) GetActiveTeam(c *gin.Context) {
	state, ok := h.activeTeam.Read(c)
	if !ok {
		c.JSON(http.StatusOK, ActiveTeamResponse{})
		return
	}
	c.JSON(http.StatusOK, ActiveTeamResponse{TeamID: &state.TeamID, Role: &state.Role})
}
