package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Hares-2088/team-training-sub000/internal/domain"
	"github.com/Hares-2088/team-training-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutLogHandler holds the workout log service dependency.
type WorkoutLogHandler struct {
	logService service.WorkoutLogService
}

// NewWorkoutLogHandler creates a new WorkoutLogHandler.
func NewWorkoutLogHandler(logService service.WorkoutLogService) *WorkoutLogHandler {
	return &WorkoutLogHandler{logService: logService}
}

// --- DTOs ---

type SetEntryRequest struct {
	ExerciseName string            `json:"exerciseName" binding:"required"`
	SetNumber    uint              `json:"setNumber" binding:"required,min=1"`
	Weight       float64           `json:"weight"`
	WeightUnit   domain.WeightUnit `json:"weightUnit" binding:"required,oneof=lbs kg bodyweight"`
	Reps         uint              `json:"reps"`
	RPE          *uint             `json:"rpe" binding:"omitempty,min=1,max=10"`
	Notes        string            `json:"notes"`
}

type LogWorkoutRequest struct {
	Sets            []SetEntryRequest `json:"sets" binding:"required,min=1,dive"`
	StartTime       time.Time         `json:"startTime"`
	EndTime         time.Time         `json:"endTime"`
	DurationSeconds uint              `json:"durationSeconds"`
	Notes           string            `json:"notes"`
}

type WorkoutLogResponse struct {
	ID              string            `json:"id"`
	TrainingID      string            `json:"trainingId"`
	MemberID        string            `json:"memberId"`
	Sets            []domain.SetEntry `json:"sets"`
	StartTime       time.Time         `json:"startTime"`
	EndTime         time.Time         `json:"endTime"`
	DurationSeconds uint              `json:"durationSeconds"`
	Notes           string            `json:"notes,omitempty"`
	CompletedAt     time.Time         `json:"completedAt"`
}

// MapWorkoutLogToResponse converts a domain.WorkoutLog to its DTO.
func MapWorkoutLogToResponse(log *domain.WorkoutLog) WorkoutLogResponse {
	if log == nil {
		return WorkoutLogResponse{}
	}
	return WorkoutLogResponse{
		ID:              log.ID.Hex(),
		TrainingID:      log.TrainingID.Hex(),
		MemberID:        log.MemberID.Hex(),
		Sets:            log.Sets,
		StartTime:       log.StartTime,
		EndTime:         log.EndTime,
		DurationSeconds: log.DurationSeconds,
		Notes:           log.Notes,
		CompletedAt:     log.CompletedAt,
	}
}

func mapWorkoutLogs(logs []domain.WorkoutLog) []WorkoutLogResponse {
	responses := make([]WorkoutLogResponse, len(logs))
	for i := range logs {
		responses[i] = MapWorkoutLogToResponse(&logs[i])
	}
	return responses
}

// --- Handler Methods ---

// LogWorkout records a completed session against a training.
func (h *WorkoutLogHandler) LogWorkout(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}
	trainingID, ok := trainingIDParam(c)
	if !ok {
		return
	}

	var req LogWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	sets := make([]domain.SetEntry, len(req.Sets))
	for i, s := range req.Sets {
		sets[i] = domain.SetEntry{
			ExerciseName: s.ExerciseName,
			SetNumber:    s.SetNumber,
			Weight:       s.Weight,
			WeightUnit:   s.WeightUnit,
			Reps:         s.Reps,
			RPE:          s.RPE,
			Notes:        s.Notes,
		}
	}

	log, err := h.logService.LogWorkout(c.Request.Context(), userID, trainingID, service.LogInput{
		Sets:            sets,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationSeconds: req.DurationSeconds,
		Notes:           req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutLogToResponse(log))
}

// GetOwnLogs lists the caller's logs.
func (h *WorkoutLogHandler) GetOwnLogs(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}

	logs, err := h.logService.GetOwnLogs(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapWorkoutLogs(logs))
}

// GetTrainingLogs lists logs recorded against one training. The trainer sees
// everyone's; other participants see their own.
func (h *WorkoutLogHandler) GetTrainingLogs(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}
	trainingID, ok := trainingIDParam(c)
	if !ok {
		return
	}

	logs, err := h.logService.GetTrainingLogs(c.Request.Context(), userID, trainingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapWorkoutLogs(logs))
}

// GetMemberLogs lets a trainer read a roster member's logs.
func (h *WorkoutLogHandler) GetMemberLogs(c *gin.Context) {
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

	logs, err := h.logService.GetMemberLogs(c.Request.Context(), userID, teamID, memberID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapWorkoutLogs(logs))
}

// GetCalendar returns per-day log counts for a month
// (?year=2026&month=8, defaulting to the current month).
func (h *WorkoutLogHandler) GetCalendar(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}

	now := time.Now().UTC()
	year := now.Year()
	month := now.Month()
	if y := c.Query("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid year")
			return
		}
		year = parsed
	}
	if m := c.Query("month"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil || parsed < 1 || parsed > 12 {
			abortWithError(c, http.StatusBadRequest, "invalid month")
			return
		}
		month = time.Month(parsed)
	}

	days, err := h.logService.GetCalendar(c.Request.Context(), userID, year, month)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "month": int(month), "days": days})
}

// GetStreak returns the caller's current consecutive-day streak.
func (h *WorkoutLogHandler) GetStreak(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid session")
		return
	}

	streak, err := h.logService.GetStreak(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"streak": streak})
}
