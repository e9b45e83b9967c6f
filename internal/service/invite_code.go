package service

import (
	"crypto/rand"
	"strings"
)

// Invite codes are short and human-enterable: fixed length, upper-cased
// base-36 alphabet. The code space (36^6) dwarfs any realistic team count,
// so collisions are resolved by retrying against the store's unique index
// rather than pre-checking.
const (
	inviteCodeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	inviteCodeLength      = 6
	inviteCodeMaxAttempts = 5
)

// GenerateInviteCode produces a random invite code. It does not check
// uniqueness; the persistence write is the authority on that.
func GenerateInviteCode() (string, error) {
	buf := make([]byte, inviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = inviteCodeAlphabet[int(buf[i])%len(inviteCodeAlphabet)]
	}
	return string(buf), nil
}

// NormalizeInviteCode maps user input onto the canonical stored form, so
// codes match case-insensitively.
func NormalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
