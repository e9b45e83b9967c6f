package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateDifficulty classifies a workout template.
type TemplateDifficulty string

const (
	DifficultyBeginner     TemplateDifficulty = "beginner"
	DifficultyIntermediate TemplateDifficulty = "intermediate"
	DifficultyAdvanced     TemplateDifficulty = "advanced"
)

// WorkoutTemplate is read-only seed content. Copy operations produce a
// Training; the template itself is never mutated.
type WorkoutTemplate struct {
	ID                       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title                    string             `bson:"title" json:"title"`
	Description              string             `bson:"description,omitempty" json:"description,omitempty"`
	Category                 string             `bson:"category" json:"category"`
	Difficulty               TemplateDifficulty `bson:"difficulty" json:"difficulty"`
	Tags                     []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	EstimatedDurationMinutes uint               `bson:"estimatedDurationMinutes" json:"estimatedDurationMinutes"`
	Exercises                []ExerciseEntry    `bson:"exercises" json:"exercises"`
}
