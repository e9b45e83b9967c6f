package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeightUnit for a logged set.
type WeightUnit string

const (
	UnitLbs        WeightUnit = "lbs"
	UnitKg         WeightUnit = "kg"
	UnitBodyweight WeightUnit = "bodyweight"
)

// SetEntry records a single performed set.
type SetEntry struct {
	ExerciseName string     `bson:"exerciseName" json:"exerciseName"`
	SetNumber    uint       `bson:"setNumber" json:"setNumber"`
	Weight       float64    `bson:"weight" json:"weight"`
	WeightUnit   WeightUnit `bson:"weightUnit" json:"weightUnit"`
	Reps         uint       `bson:"reps" json:"reps"`
	RPE          *uint      `bson:"rpe,omitempty" json:"rpe,omitempty"` // 1..10 when present
	Notes        string     `bson:"notes,omitempty" json:"notes,omitempty"`
}

// WorkoutLog is an immutable record of a member's actual performance against
// a training. Trainers never author logs. There is no update or delete path.
type WorkoutLog struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainingID      primitive.ObjectID `bson:"trainingId" json:"trainingId"`
	MemberID        primitive.ObjectID `bson:"memberId" json:"memberId"`
	Sets            []SetEntry         `bson:"sets" json:"sets"`
	StartTime       time.Time          `bson:"startTime" json:"startTime"`
	EndTime         time.Time          `bson:"endTime" json:"endTime"`
	DurationSeconds uint               `bson:"durationSeconds" json:"durationSeconds"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CompletedAt     time.Time          `bson:"completedAt" json:"completedAt"`
}
