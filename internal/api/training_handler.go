package api

import (
	"net/http"
	"time"

	"github.com/Hares-2088/team-training-sub000/internal/domain"
	"github.com/Hares-2088/team-training-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingHandler holds the training service dependency.
type TrainingHandler struct {
	trainingService service.TrainingService
}

// NewTrainingHandler creates a new TrainingHandler.
func NewTrainingHandler(trainingService service.TrainingService) *TrainingHandler {
	return &TrainingHandler{trainingService: trainingService}
}

// --- DTOs ---

type ExerciseEntryRequest struct {
	Name            string `json:"name" binding:"required"`
	Sets            uint   `json:"sets" binding:"required,min=1"`
	Reps            string `json:"reps" binding:"required"`
	RestTimeSeconds uint   `json:"restTimeSeconds"`
	Notes           string `json:"notes"`
}

type TrainingRequest struct {
	Title         string                 `json:"title" binding:"required"`
	Description   string                 `json:"description"`
	Exercises     []ExerciseEntryRequest `json:"exercises" binding:"required,min=1,dive"`
	ScheduledDate time.Time              `json:"scheduledDate" binding:"required"`
}

type UpdateStatusRequest struct {
	Status domain.TrainingStatus `json:"status" binding:"required,oneof=completed cancelled"`
}

type TrainingResponse struct {
	ID            string                 `json:"id"`
	TeamID        string                 `json:"teamId"`
	CreatedBy     string                 `json:"createdBy"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description,omitempty"`
	Exercises     []domain.ExerciseEntry `json:"exercises"`
	ScheduledDate time.Time              `json:"scheduledDate"`
	Status        domain.TrainingStatus  `json:"status"`
	IsPersonal    bool                   `json:"isPersonal"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// MapTrainingToResponse converts a domain.Training to a TrainingResponse DTO.
func MapTrainingToResponse(t *domain.Training) TrainingResponse {
	if t == nil {
		return TrainingResponse{}
	}
	return TrainingResponse{
		ID:            t.ID.Hex(),
		TeamID:        t.TeamID.Hex(),
		CreatedBy:     t.CreatedBy.Hex(),
		Title:         t.Title,
		Description:   t.Description,
		Exercises:     t.Exercises,
		ScheduledDate: t.ScheduledDate,
		Status:        t.Status,
		IsPersonal:    t.IsPersonal,
		CreatedAt:     t.CreatedAt,
	}
}

func mapTrainingInput(req TrainingRequest) service.TrainingInput {
	exercises := make([]domain.ExerciseEntry, len(req.Exercises))
	for i, e := range req.Exercises {
		exercises[i] = domain.ExerciseEntry{
			Name:            e.Name,
			Sets:            e.Sets,
			Reps:            e.Reps,
			RestTimeSeconds: e.RestTimeSeconds,
			Notes:           e.Notes,
		}
	}
	return service.TrainingInput{
		Title:         req.Title,
		Description:   req.Description,
		Exercises:     exercises,
		ScheduledDate: req.ScheduledDate,
	}
}

func trainingIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("trainingId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid training id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// --- Handler Methods ---

// CreateTraining schedules a team training. Trainer only.
func (h *TrainingHandler) CreateTraining(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}
	teamID, ok := teamIDParam(c)
	if !ok {
		return
	}

	var req TrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	training, err := h.trainingService.CreateTraining(c.Request.Context(), userID, teamID, mapTrainingInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapTrainingToResponse(training))
}

// GetTraining returns one training.
func (h *TrainingHandler) GetTraining(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}
	trainingID, ok := trainingIDParam(c)
	if !ok {
		return
	}

	training, err := h.trainingService.GetTraining(c.Request.Context(), userID, trainingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapTrainingToResponse(training))
}

// GetTeamSchedule lists the team's trainings.
func (h *TrainingHandler) GetTeamSchedule(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}
	teamID, ok := teamIDParam(c)
	if !ok {
		return
	}

	trainings, err := h.trainingService.GetTeamSchedule(c.Request.Context(), userID, teamID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]TrainingResponse, len(trainings))
	for i := range trainings {
		responses[i] = MapTrainingToResponse(&trainings[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetPersonalTrainings lists the caller's personal trainings.
func (h *TrainingHandler) GetPersonalTrainings(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}

	trainings, err := h.trainingService.GetPersonalTrainings(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]TrainingResponse, len(trainings))
	for i := range trainings {
		responses[i] = MapTrainingToResponse(&trainings[i])
	}
	c.JSON(http.StatusOK, responses)
}

// UpdateTraining replaces plan fields. Trainer only (owner for personal).
func (h *TrainingHandler) UpdateTraining(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}
	trainingID, ok := trainingIDParam(c)
	if !ok {
		return
	}

	var req TrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	training, err := h.trainingService.UpdateTraining(c.Request.Context(), userID, trainingID, mapTrainingInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapTrainingToResponse(training))
}

// UpdateStatus progresses the training lifecycle.
func (h *TrainingHandler) UpdateStatus(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}
	trainingID, ok := trainingIDParam(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.trainingService.UpdateStatus(c.Request.Context(), userID, trainingID, req.Status); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

// DeleteTraining removes a training. Trainer only (owner for personal).
func (h *TrainingHandler) DeleteTraining(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}
	trainingID, ok := trainingIDParam(c)
	if !ok {
		return
	}

	if err := h.trainingService.DeleteTraining(c.Request.Context(), userID, trainingID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "training deleted"})
}
