// Command seed-templates loads the built-in workout template library into
// MongoDB. Templates are keyed by title, so re-running it is safe.
package main

import (
	"context"
	"log"
	"time"

	"github.com/Hares-2088/team-training-sub000/internal/config"
	"github.com/Hares-2088/team-training-sub000/internal/domain"
	"github.com/Hares-2088/team-training-sub000/internal/repository/mongo"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	mongo.EnsureTemplateIndexes(ctx, appDB.Collection("workout_templates"))

	templateRepo := mongo.NewMongoTemplateRepository(appDB)
	for i := range builtinTemplates {
		tpl := &builtinTemplates[i]
		if err := templateRepo.UpsertByTitle(ctx, tpl); err != nil {
			log.Fatalf("FATAL: Failed to seed template %q: %v", tpl.Title, err)
		}
		log.Printf("Seeded template: %s", tpl.Title)
	}
	log.Printf("Done. %d templates seeded.", len(builtinTemplates))
}

var builtinTemplates = []domain.WorkoutTemplate{
	{
		Title:                    "Full Body Strength A",
		Description:              "Compound-focused full body session built around the squat.",
		Category:                 "strength",
		Difficulty:               domain.DifficultyBeginner,
		Tags:                     []string{"full-body", "barbell"},
		EstimatedDurationMinutes: 60,
		Exercises: []domain.ExerciseEntry{
			{Name: "Back Squat", Sets: 3, Reps: "5", RestTimeSeconds: 180},
			{Name: "Bench Press", Sets: 3, Reps: "5", RestTimeSeconds: 180},
			{Name: "Barbell Row", Sets: 3, Reps: "8", RestTimeSeconds: 120},
			{Name: "Plank", Sets: 3, Reps: "45s", RestTimeSeconds: 60},
		},
	},
	{
		Title:                    "Full Body Strength B",
		Description:              "Hinge-dominant counterpart to Full Body Strength A.",
		Category:                 "strength",
		Difficulty:               domain.DifficultyBeginner,
		Tags:                     []string{"full-body", "barbell"},
		EstimatedDurationMinutes: 60,
		Exercises: []domain.ExerciseEntry{
			{Name: "Deadlift", Sets: 3, Reps: "5", RestTimeSeconds: 180},
			{Name: "Overhead Press", Sets: 3, Reps: "5", RestTimeSeconds: 180},
			{Name: "Pull Up", Sets: 3, Reps: "6-8", RestTimeSeconds: 120},
			{Name: "Hanging Leg Raise", Sets: 3, Reps: "10", RestTimeSeconds: 60},
		},
	},
	{
		Title:                    "Upper Body Hypertrophy",
		Description:              "Higher-volume pressing and pulling for intermediate lifters.",
		Category:                 "hypertrophy",
		Difficulty:               domain.DifficultyIntermediate,
		Tags:                     []string{"upper", "volume"},
		EstimatedDurationMinutes: 75,
		Exercises: []domain.ExerciseEntry{
			{Name: "Incline Dumbbell Press", Sets: 4, Reps: "8-12", RestTimeSeconds: 90},
			{Name: "Lat Pulldown", Sets: 4, Reps: "10-12", RestTimeSeconds: 90},
			{Name: "Seated Cable Row", Sets: 3, Reps: "12", RestTimeSeconds: 90},
			{Name: "Lateral Raise", Sets: 3, Reps: "15", RestTimeSeconds: 60},
			{Name: "Cable Triceps Pushdown", Sets: 3, Reps: "12-15", RestTimeSeconds: 60},
			{Name: "Dumbbell Curl", Sets: 3, Reps: "12", RestTimeSeconds: 60},
		},
	},
	{
		Title:                    "Lower Body Hypertrophy",
		Description:              "Quad and posterior-chain volume day.",
		Category:                 "hypertrophy",
		Difficulty:               domain.DifficultyIntermediate,
		Tags:                     []string{"lower", "volume"},
		EstimatedDurationMinutes: 70,
		Exercises: []domain.ExerciseEntry{
			{Name: "Front Squat", Sets: 4, Reps: "8", RestTimeSeconds: 150},
			{Name: "Romanian Deadlift", Sets: 4, Reps: "10", RestTimeSeconds: 120},
			{Name: "Walking Lunge", Sets: 3, Reps: "12/leg", RestTimeSeconds: 90},
			{Name: "Leg Curl", Sets: 3, Reps: "12-15", RestTimeSeconds: 60},
			{Name: "Standing Calf Raise", Sets: 4, Reps: "15", RestTimeSeconds: 45},
		},
	},
	{
		Title:                    "Conditioning Circuit",
		Description:              "Minimal-equipment circuit for team conditioning days.",
		Category:                 "conditioning",
		Difficulty:               domain.DifficultyBeginner,
		Tags:                     []string{"circuit", "bodyweight"},
		EstimatedDurationMinutes: 30,
		Exercises: []domain.ExerciseEntry{
			{Name: "Burpee", Sets: 4, Reps: "12", RestTimeSeconds: 45},
			{Name: "Kettlebell Swing", Sets: 4, Reps: "15", RestTimeSeconds: 45},
			{Name: "Mountain Climber", Sets: 4, Reps: "30s", RestTimeSeconds: 45},
			{Name: "Jump Rope", Sets: 4, Reps: "60s", RestTimeSeconds: 60},
		},
	},
	{
		Title:                    "Olympic Lifting Technique",
		Description:              "Light technical session for snatch and clean positions.",
		Category:                 "technique",
		Difficulty:               domain.DifficultyAdvanced,
		Tags:                     []string{"olympic", "barbell"},
		EstimatedDurationMinutes: 90,
		Exercises: []domain.ExerciseEntry{
			{Name: "Snatch Pull", Sets: 5, Reps: "3", RestTimeSeconds: 120},
			{Name: "Hang Snatch", Sets: 5, Reps: "2", RestTimeSeconds: 150},
			{Name: "Clean and Jerk", Sets: 5, Reps: "2", RestTimeSeconds: 180},
			{Name: "Overhead Squat", Sets: 3, Reps: "5", RestTimeSeconds: 120, Notes: "Pause 2s in the bottom."},
		},
	},
}
