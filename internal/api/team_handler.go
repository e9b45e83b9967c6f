package api

import (
	"net/http"
	"time"

	"github.com/Hares-2088/team-training-sub000/internal/domain"
	"github.com/Hares-2088/team-training-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamHandler holds the team service dependency.
type TeamHandler struct {
	teamService service.TeamService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// --- DTOs ---

type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateTeamRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type JoinByCodeRequest struct {
	InviteCode string `json:"inviteCode" binding:"required"`
}

type SetMemberRoleRequest struct {
	Role domain.TeamRole `json:"role" binding:"required,oneof=coach member"`
}

// TeamResponse converts ObjectIDs to hex strings. The invite code is only
// included for the trainer.
type TeamResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	TrainerID   string          `json:"trainerId"`
	Members     []string        `json:"members"`
	InviteCode  string          `json:"inviteCode,omitempty"`
	MyRole      domain.TeamRole `json:"myRole,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// MapTeamToResponse converts a domain.Team to a TeamResponse DTO.
func MapTeamToResponse(team *domain.Team, viewerRole domain.TeamRole) TeamResponse {
	if team == nil {
		return TeamResponse{}
	}
	members := make([]string, len(team.Members))
	for i, id := range team.Members {
		members[i] = id.Hex()
	}
	resp := TeamResponse{
		ID:          team.ID.Hex(),
		Name:        team.Name,
		Description: team.Description,
		TrainerID:   team.TrainerID.Hex(),
		Members:     members,
		MyRole:      viewerRole,
		CreatedAt:   team.CreatedAt,
	}
	if viewerRole == domain.RoleTrainer {
		resp.InviteCode = team.InviteCode
	}
	return resp
}

func teamIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("teamId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid team id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// --- Handler Methods ---

// CreateTeam establishes the caller as trainer of a new team.
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	team, err := h.teamService.CreateTeam(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapTeamToResponse(team, domain.RoleTrainer))
}

// GetTeam returns a team to any participant.
func (h *TeamHandler) GetTeam(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}
	teamID, ok := teamIDParam(c)
	if !ok {
		return
	}

	team, role, err := h.teamService.GetTeam(c.Request.Context(), userID, teamID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapTeamToResponse(team, role))
}

// ListMyTeams returns every team the caller trains or belongs to.
func (h *TeamHandler) ListMyTeams(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}

	teams, err := h.teamService.GetUserTeams(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]TeamResponse, len(teams))
	for i := range teams {
		responses[i] = MapTeamToResponse(&teams[i], teams[i].RoleOf(userID))
	}
	c.JSON(http.StatusOK, responses)
}

// UpdateTeam changes name/description. Trainer only.
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}
	teamID, ok := teamIDParam(c)
	if !ok {
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	team, err := h.teamService.UpdateTeam(c.Request.Context(), userID, teamID, req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapTeamToResponse(team, domain.RoleTrainer))
}

// DeleteTeam removes a team. Trainer only.
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}
	teamID, ok := teamIDParam(c)
	if !ok {
		return
	}

	if err := h.teamService.DeleteTeam(c.Request.Context(), userID, teamID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "team deleted"})
}

// RegenerateInviteCode issues a fresh code, invalidating the previous one.
func (h *TeamHandler) RegenerateInviteCode(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}
	teamID, ok := teamIDParam(c)
	if !ok {
		return
	}

	code, err := h.teamService.RegenerateInviteCode(c.Request.Context(), userID, teamID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inviteCode": code})
}

// JoinByCode joins the caller to the team holding the submitted code.
func (h *TeamHandler) JoinByCode(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}

	var req JoinByCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	team, err := h.teamService.JoinByCode(c.Request.Context(), userID, req.InviteCode)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapTeamToResponse(team, domain.RoleMember))
}

// JoinByID joins the caller via a direct team link.
func (h *TeamHandler) JoinByID(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}
	teamID, ok := teamIDParam(c)
	if !ok {
		return
	}

	team, err := h.teamService.JoinByID(c.Request.Context(), userID, teamID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapTeamToResponse(team, domain.RoleMember))
}

// GetMembers lists the roster for any participant.
func (h *TeamHandler) GetMembers(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}
	teamID, ok := teamIDParam(c)
	if !ok {
		return
	}

	members, err := h.teamService.GetMembers(c.Request.Context(), userID, teamID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]UserResponse, len(members))
	for i := range members {
		responses[i] = MapUserToResponse(&members[i])
	}
	c.JSON(http.StatusOK, responses)
}

// RemoveMember drops a member from the roster. Trainer only.
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}
	teamID, ok := teamIDParam(c)
	if !ok {
		return
	}
	memberID, err := primitive.ObjectIDFromHex(c.Param("memberId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid member id")
		return
	}

	if err := h.teamService.RemoveMember(c.Request.Context(), userID, teamID, memberID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "member removed"})
}

// SetMemberRole promotes a member to coach or demotes them back. Trainer only.
func (h *TeamHandler) SetMemberRole(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}
	teamID, ok := teamIDParam(c)
	if !ok {
		return
	}
	memberID, err := primitive.ObjectIDFromHex(c.Param("memberId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid member id")
		return
	}

	var req SetMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.teamService.SetMemberRole(c.Request.Context(), userID, teamID, memberID, req.Role); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "member role updated"})
}
