package domain

import "time"

// TokenPair is what login and refresh return: the short-lived signed access
// token (JWT) and the opaque refresh token. It is a transient DTO, only the
// refresh half is persisted, as a fingerprint on the user row.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type,omitempty"` // typically "Bearer"
	ExpiresAt    time.Time `json:"expires_at"`           // access token expiry
}
