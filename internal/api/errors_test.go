package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Hares-2088/team-training-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err  error
		code int
	}{
		{service.ErrAuthenticationFailed, http.StatusUnauthorized},
		{service.ErrNotTeamMember, http.StatusForbidden},
		{service.ErrInsufficientRole, http.StatusForbidden},
		{service.ErrTrainerCannotLog, http.StatusForbidden},
		{service.ErrTeamNotFound, http.StatusNotFound},
		{service.ErrTrainingNotFound, http.StatusNotFound},
		{service.ErrTemplateNotFound, http.StatusNotFound},
		// An invalid code 404s rather than 403s: it names no resource the
		// caller could be forbidden from.
		{service.ErrInvalidInviteCode, http.StatusNotFound},
		{service.ErrAlreadyMember, http.StatusConflict},
		{service.ErrUserAlreadyExists, http.StatusConflict},
		{service.ErrInviteCodeExhausted, http.StatusConflict},
		{service.ErrExerciseDuplicate, http.StatusConflict},
		{service.ErrValidationFailed, http.StatusBadRequest},
		{service.ErrInvalidStatusChange, http.StatusBadRequest},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondServiceError(c, tt.err)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestRespondServiceErrorHidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondServiceError(c, errors.New("connection refused at 10.0.0.3"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.3")
}
