package api

import (
	"net/http"

	"github.com/Hares-2088/team-training-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// Services bundles everything the route table depends on.
type Services struct {
	Auth     service.AuthService
	Roles    service.RoleService
	Teams    service.TeamService
	Training service.TrainingService
	Logs     service.WorkoutLogService
	Template service.TemplateService
	Exercise service.ExerciseService
}

// SetupRoutes wires handlers onto the Gin engine.
func SetupRoutes(router *gin.Engine, jwtSecret string, activeTeam *ActiveTeamCodec, production bool, svcs Services) {
	authHandler := NewAuthHandler(svcs.Auth, svcs.Roles, activeTeam, production)
	teamHandler := NewTeamHandler(svcs.Teams)
	trainingHandler := NewTrainingHandler(svcs.Training)
	logHandler := NewWorkoutLogHandler(svcs.Logs)
	templateHandler := NewTemplateHandler(svcs.Template)
	exerciseHandler := NewExerciseHandler(svcs.Exercise)

	router.Use(RequestIDMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	authGroup := apiV1.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(jwtSecret))
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/me", authHandler.Me)
		protected.PATCH("/me", authHandler.UpdateProfile)

		// Active team is cached UI state; every privileged route below
		// re-resolves roles from the store regardless of it.
		protected.GET("/auth/active-team", authHandler.GetActiveTeam)
		protected.POST("/auth/active-team", authHandler.SetActiveTeam)

		teams := protected.Group("/teams")
		{
			teams.POST("", teamHandler.CreateTeam)
			teams.GET("", teamHandler.ListMyTeams)
			teams.POST("/join", teamHandler.JoinByCode)
			teams.GET("/:teamId", teamHandler.GetTeam)
			teams.PUT("/:teamId", teamHandler.UpdateTeam)
			teams.DELETE("/:teamId", teamHandler.DeleteTeam)
			teams.POST("/:teamId/join", teamHandler.JoinByID)
			teams.POST("/:teamId/invite-code", teamHandler.RegenerateInviteCode)
			teams.GET("/:teamId/members", teamHandler.GetMembers)
			teams.DELETE("/:teamId/members/:memberId", teamHandler.RemoveMember)
			teams.PUT("/:teamId/members/:memberId/role", teamHandler.SetMemberRole)
			teams.GET("/:teamId/members/:memberId/logs", logHandler.GetMemberLogs)

			teams.POST("/:teamId/trainings", trainingHandler.CreateTraining)
			teams.GET("/:teamId/trainings", trainingHandler.GetTeamSchedule)

			teams.POST("/:teamId/exercises", exerciseHandler.CreateExercise)
			teams.GET("/:teamId/exercises", exerciseHandler.GetTeamExercises)
			teams.DELETE("/:teamId/exercises/:exerciseId", exerciseHandler.DeleteExercise)
		}

		trainings := protected.Group("/trainings")
		{
			trainings.GET("/personal", trainingHandler.GetPersonalTrainings)
			trainings.GET("/:trainingId", trainingHandler.GetTraining)
			trainings.PUT("/:trainingId", trainingHandler.UpdateTraining)
			trainings.PATCH("/:trainingId/status", trainingHandler.UpdateStatus)
			trainings.DELETE("/:trainingId", trainingHandler.DeleteTraining)
			trainings.POST("/:trainingId/logs", logHandler.LogWorkout)
			trainings.GET("/:trainingId/logs", logHandler.GetTrainingLogs)
		}

		logs := protected.Group("/logs")
		{
			logs.GET("", logHandler.GetOwnLogs)
			logs.GET("/calendar", logHandler.GetCalendar)
			logs.GET("/streak", logHandler.GetStreak)
		}

		templates := protected.Group("/templates")
		{
			templates.GET("", templateHandler.ListTemplates)
			templates.GET("/:templateId", templateHandler.GetTemplate)
			templates.POST("/:templateId/copy", templateHandler.CopyToTeam)
			templates.POST("/:templateId/instantiate", templateHandler.InstantiatePersonal)
		}
	}
}
