package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingStatus tracks a training's lifecycle.
type TrainingStatus string

const (
	TrainingScheduled TrainingStatus = "scheduled"
	TrainingCompleted TrainingStatus = "completed"
	TrainingCancelled TrainingStatus = "cancelled"
)

// DefaultRestSeconds is applied to exercise entries that do not specify a rest
// interval.
const DefaultRestSeconds = 90

// ExerciseEntry is one exercise within a training or template, in plan order.
// Reps is free-form because prescriptions are sometimes ranges ("8-12") or
// durations ("30 seconds").
type ExerciseEntry struct {
	Name            string `bson:"name" json:"name"`
	Sets            uint   `bson:"sets" json:"sets"`
	Reps            string `bson:"reps" json:"reps"`
	RestTimeSeconds uint   `bson:"restTimeSeconds" json:"restTimeSeconds"`
	Notes           string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Training is a scheduled team workout plan, or a personal one instantiated
// from a template by a member or coach.
type Training struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TeamID        primitive.ObjectID `bson:"teamId" json:"teamId"`
	CreatedBy     primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Exercises     []ExerciseEntry    `bson:"exercises" json:"exercises"`
	ScheduledDate time.Time          `bson:"scheduledDate" json:"scheduledDate"`
	Status        TrainingStatus     `bson:"status" json:"status"`
	IsPersonal    bool               `bson:"isPersonal" json:"isPersonal"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
