package api

import (
	"errors"
	"net/http"

	"github.com/Hares-2088/team-training-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// respondServiceError translates the service error taxonomy into HTTP
// statuses. Existence is resolved before authorization everywhere, so 404
// uniformly wins over 403 for absent resources.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, service.ErrInvalidSession),
		errors.Is(err, service.ErrAuthenticationFailed):
		abortWithError(c, http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrNotTeamMember),
		errors.Is(err, service.ErrInsufficientRole),
		errors.Is(err, service.ErrTrainerCannotLog):
		abortWithError(c, http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrTeamNotFound),
		errors.Is(err, service.ErrTrainingNotFound),
		errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrLogNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrInvalidInviteCode):
		abortWithError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrInviteCodeExhausted),
		errors.Is(err, service.ErrExerciseDuplicate):
		abortWithError(c, http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrValidationFailed),
		errors.Is(err, service.ErrInvalidStatusChange):
		abortWithError(c, http.StatusBadRequest, err.Error())

	default:
		abortWithError(c, http.StatusInternalServerError, "an unexpected error occurred")
	}
}
