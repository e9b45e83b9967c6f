package api

import (
	"net/http"
	"time"

	"github.com/Hares-2088/team-training-sub000/internal/domain"
	"github.com/Hares-2088/team-training-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs ---

type CreateExerciseRequest struct {
	Name         string   `json:"name" binding:"required"`
	MuscleGroups []string `json:"muscleGroups"`
	Equipment    string   `json:"equipment"`
}

type ExerciseResponse struct {
	ID           string    `json:"id"`
	TeamID       string    `json:"teamId"`
	Name         string    `json:"name"`
	MuscleGroups []string  `json:"muscleGroups,omitempty"`
	Equipment    string    `json:"equipment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// MapExerciseToResponse converts a domain.Exercise to its DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:           ex.ID.Hex(),
		TeamID:       ex.TeamID.Hex(),
		Name:         ex.Name,
		MuscleGroups: ex.MuscleGroups,
		Equipment:    ex.Equipment,
		CreatedAt:    ex.CreatedAt,
	}
}

// --- Handler Methods ---

// CreateExercise adds a catalog entry. Trainer only.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}
	teamID, ok := teamIDParam(c)
	if !ok {
		return
	}

	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), userID, teamID, req.Name, req.MuscleGroups, req.Equipment)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// GetTeamExercises lists the team catalog.
func (h *ExerciseHandler) GetTeamExercises(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}
	teamID, ok := teamIDParam(c)
	if !ok {
		return
	}

	exercises, err := h.exerciseService.GetTeamExercises(c.Request.Context(), userID, teamID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	c.JSON(http.StatusOK, responses)
}

// DeleteExercise removes a catalog entry. Trainer only.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}
	teamID, ok := teamIDParam(c)
	if !ok {
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("exerciseId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid exercise id")
		return
	}

	if err := h.exerciseService.DeleteExercise(c.Request.Context(), userID, teamID, exerciseID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "exercise deleted"})
}
