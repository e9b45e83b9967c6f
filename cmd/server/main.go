package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Hares-2088/team-training-sub000/internal/api"
	"github.com/Hares-2088/team-training-sub000/internal/config"
	"github.com/Hares-2088/team-training-sub000/internal/repository/mongo"
	"github.com/Hares-2088/team-training-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Team Training Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	// The sparse unique index on teams.inviteCode and the unique indexes on
	// users.email and exercises.(teamId,nameLower) back the
	// retry-on-conflict flows; they must exist before traffic.
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureTeamIndexes(ctx, appDB.Collection("teams"))
		mongo.EnsureTrainingIndexes(ctx, appDB.Collection("trainings"))
		mongo.EnsureWorkoutLogIndexes(ctx, appDB.Collection("workout_logs"))
		mongo.EnsureTemplateIndexes(ctx, appDB.Collection("workout_templates"))
		mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	teamRepo := mongo.NewMongoTeamRepository(appDB)
	trainingRepo := mongo.NewMongoTrainingRepository(appDB)
	logRepo := mongo.NewMongoWorkoutLogRepository(appDB)
	templateRepo := mongo.NewMongoTemplateRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	roleService := service.NewRoleService(teamRepo)
	authService := service.NewAuthService(userRepo, roleService, cfg.JWT.Secret, cfg.JWT.Expiration)
	teamService := service.NewTeamService(teamRepo, userRepo, roleService)
	trainingService := service.NewTrainingService(trainingRepo, roleService)
	logService := service.NewWorkoutLogService(logRepo, trainingRepo, roleService)
	templateService := service.NewTemplateService(templateRepo, trainingRepo, roleService)
	exerciseService := service.NewExerciseService(exerciseRepo, roleService)

	// --- Active-Team Cookie Codec ---
	if cfg.Cookie.HashKey == "" {
		log.Fatal("FATAL: cookie.hash_key must be configured")
	}
	var blockKey []byte
	if cfg.Cookie.BlockKey != "" {
		blockKey = []byte(cfg.Cookie.BlockKey)
	}
	activeTeam := api.NewActiveTeamCodec([]byte(cfg.Cookie.HashKey), blockKey, cfg.IsProduction())

	// --- Initialize Gin Engine ---
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, activeTeam, cfg.IsProduction(), api.Services{
		Auth:     authService,
		Roles:    roleService,
		Teams:    teamService,
		Training: trainingService,
		Logs:     logService,
		Template: templateService,
		Exercise: exerciseService,
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
