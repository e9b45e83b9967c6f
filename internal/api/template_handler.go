package api

import (
	"net/http"
	"time"

	"github.com/Hares-2088/team-training-sub000/internal/domain"
	"github.com/Hares-2088/team-training-sub000/internal/repository"
	"github.com/Hares-2088/team-training-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateHandler holds the template service dependency.
type TemplateHandler struct {
	templateService service.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// --- DTOs ---

type CopyTemplateRequest struct {
	TeamID        string    `json:"teamId" binding:"required"`
	ScheduledDate time.Time `json:"scheduledDate" binding:"required"`
}

type InstantiateTemplateRequest struct {
	TeamID string `json:"teamId" binding:"required"`
}

type TemplateResponse struct {
	ID                       string                    `json:"id"`
	Title                    string                    `json:"title"`
	Description              string                    `json:"description,omitempty"`
	Category                 string                    `json:"category"`
	Difficulty               domain.TemplateDifficulty `json:"difficulty"`
	Tags                     []string                  `json:"tags,omitempty"`
	EstimatedDurationMinutes uint                      `json:"estimatedDurationMinutes"`
	Exercises                []domain.ExerciseEntry    `json:"exercises"`
}

// MapTemplateToResponse converts a domain.WorkoutTemplate to its DTO.
func MapTemplateToResponse(tpl *domain.WorkoutTemplate) TemplateResponse {
	if tpl == nil {
		return TemplateResponse{}
	}
	return TemplateResponse{
		ID:                       tpl.ID.Hex(),
		Title:                    tpl.Title,
		Description:              tpl.Description,
		Category:                 tpl.Category,
		Difficulty:               tpl.Difficulty,
		Tags:                     tpl.Tags,
		EstimatedDurationMinutes: tpl.EstimatedDurationMinutes,
		Exercises:                tpl.Exercises,
	}
}

func templateIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("templateId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid template id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// --- Handler Methods ---

// ListTemplates returns the library, filterable by
// ?category=&difficulty=&tag=.
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	filter := repository.TemplateFilter{
		Category:   c.Query("category"),
		Difficulty: domain.TemplateDifficulty(c.Query("difficulty")),
		Tag:        c.Query("tag"),
	}

	templates, err := h.templateService.ListTemplates(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]TemplateResponse, len(templates))
	for i := range templates {
		responses[i] = MapTemplateToResponse(&templates[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetTemplate returns one template.
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	templateID, ok := templateIDParam(c)
	if !ok {
		return
	}

	tpl, err := h.templateService.GetTemplate(c.Request.Context(), templateID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapTemplateToResponse(tpl))
}

// CopyToTeam schedules a template as a team training. Trainer only.
func (h *TemplateHandler) CopyToTeam(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}
	templateID, ok := templateIDParam(c)
	if !ok {
		return
	}

	var req CopyTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	teamID, err := primitive.ObjectIDFromHex(req.TeamID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid team id")
		return
	}

	training, err := h.templateService.CopyToTeam(c.Request.Context(), userID, templateID, teamID, req.ScheduledDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapTrainingToResponse(training))
}

// InstantiatePersonal creates a personal quick-log training from a template.
func (h *TemplateHandler) InstantiatePersonal(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}
	templateID, ok := templateIDParam(c)
	if !ok {
		return
	}

	var req InstantiateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	teamID, err := primitive.ObjectIDFromHex(req.TeamID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid team id")
		return
	}

	training, err := h.templateService.InstantiatePersonal(c.Request.Context(), userID, templateID, teamID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapTrainingToResponse(training))
}
