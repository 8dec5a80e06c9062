package domain

import "time"

// User is an identity record in the credential store. The refresh fields are
// the single live session slot: issuing a new refresh token overwrites them
// unconditionally, logout clears them.
type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string // argon2id encoded

	// RefreshTokenHash is the SHA-256 fingerprint of the live refresh
	// token, nil when no session is active.
	RefreshTokenHash *string

	// RefreshExpiresAt bounds the refresh token's usable life, nil when no
	// session is active.
	RefreshExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasLiveSession reports whether the user holds a refresh token that has not
// yet expired at the given instant.
func (u User) HasLiveSession(now time.Time) bool {
	return u.RefreshTokenHash != nil &&
		u.RefreshExpiresAt != nil &&
		now.Before(*u.RefreshExpiresAt)
}

// UserProfile is the read-only projection returned to API callers. It never
// carries credential or session material.
type UserProfile struct {
	ID       string
	Email    string
	FullName string
	Roles    []string
}
