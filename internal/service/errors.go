package service

import "errors"

// Shared error taxonomy. Handlers translate these into HTTP statuses:
// 401 unauthenticated/invalid session, 403 membership/role denials,
// 404 absent resources, 409 conflicts, 400 validation.
var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrInvalidSession   = errors.New("invalid session")
	ErrNotTeamMember    = errors.New("not a member of this team")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
	ErrAlreadyMember    = errors.New("already a member of this team")

	ErrTeamNotFound     = errors.New("team not found")
	ErrTrainingNotFound = errors.New("training not found")
	ErrTemplateNotFound = errors.New("workout template not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrLogNotFound      = errors.New("workout log not found")

	ErrInvalidInviteCode   = errors.New("invalid invite code")
	ErrInviteCodeExhausted = errors.New("could not allocate a unique invite code")

	ErrTrainerCannotLog = errors.New("trainers do not log workouts")
	ErrValidationFailed = errors.New("validation failed")
)
