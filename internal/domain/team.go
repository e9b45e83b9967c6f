package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamRole is a user's effective role within a single team.
// The zero value means the user has no relationship to the team.
type TeamRole string

const (
	RoleNone    TeamRole = ""
	RoleTrainer TeamRole = "trainer"
	RoleCoach   TeamRole = "coach"
	RoleMember  TeamRole = "member"
)

// Team is the collaboration unit. Exactly one trainer owns it; everyone else
// appears in Members, optionally with an elevated role tag in MemberRoles.
// The trainer is never included in Members.
type Team struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	TrainerID   primitive.ObjectID `bson:"trainerId" json:"trainerId"`

	// Members holds the ids of all non-trainer participants. Insertion order
	// carries no meaning.
	Members []primitive.ObjectID `bson:"members,omitempty" json:"members,omitempty"`

	// MemberRoles maps a member's hex id to an elevated role tag ("coach").
	// Members without an entry default to RoleMember.
	MemberRoles map[string]TeamRole `bson:"memberRoles,omitempty" json:"memberRoles,omitempty"`

	// InviteCode is unique across all teams when present (sparse index); most
	// teams have none until the trainer generates one.
	InviteCode string `bson:"inviteCode,omitempty" json:"inviteCode,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// RoleOf resolves the user's effective role in this team.
// Precedence: trainer > explicit MemberRoles entry > plain membership > none.
// Trainer status is absolute and wins even if a stale MemberRoles entry exists
// for the same user.
func (t *Team) RoleOf(userID primitive.ObjectID) TeamRole {
	if t.TrainerID == userID {
		return RoleTrainer
	}
	if role, ok := t.MemberRoles[userID.Hex()]; ok && role != "" {
		return role
	}
	if t.HasMember(userID) {
		return RoleMember
	}
	return RoleNone
}

// HasMember reports whether the user appears in the plain members set.
// The trainer is not a member.
func (t *Team) HasMember(userID primitive.ObjectID) bool {
	for _, id := range t.Members {
		if id == userID {
			return true
		}
	}
	return false
}
