package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a team-scoped catalog entry. (teamId, name) is unique
// case-insensitively; distinct teams may reuse the same name independently.
type Exercise struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TeamID       primitive.ObjectID `bson:"teamId" json:"teamId"`
	Name         string             `bson:"name" json:"name"`
	NameLower    string             `bson:"nameLower" json:"-"` // Backs the case-insensitive unique index
	MuscleGroups []string           `bson:"muscleGroups,omitempty" json:"muscleGroups,omitempty"`
	Equipment    string             `bson:"equipment,omitempty" json:"equipment,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
