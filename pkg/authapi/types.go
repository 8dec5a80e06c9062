package authapi

import "time"

// RegisterRequest creates a new user account. The validate tags are enforced
// server-side before the credential store is touched.
type RegisterRequest struct {
	// Email doubles as the login name and must be unique.
	Email string `json:"email"     validate:"required,email"`

	// Password is checked for minimum strength only; hashing happens
	// server-side.
	Password string `json:"password"  validate:"required,min=8,max=128"`

	// FullName is the display name for the user.
	FullName string `json:"full_name" validate:"required,max=128"`

	// Role is assigned at registration and created if it doesn't exist yet.
	Role string `json:"role"      validate:"required,max=64"`
}

// RegisterResponse confirms a successful registration.
type RegisterResponse struct {
	Message string `json:"message"`
	Role    string `json:"role"`
}

// LoginRequest exchanges credentials for a token pair.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest exchanges an expired-but-authentic access token plus the
// live refresh token for a fresh pair.
type RefreshRequest struct {
	AccessToken  string `json:"access_token"  validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenResponse is returned from login and refresh.
type TokenResponse struct {
	// AccessToken is the signed JWT used to authenticate API requests.
	AccessToken string `json:"access_token"`

	// RefreshToken is the opaque token used to obtain the next pair.
	RefreshToken string `json:"refresh_token"`

	// TokenType is always "Bearer".
	TokenType string `json:"token_type"`

	// ExpiresAt is the absolute expiry of the access token.
	ExpiresAt time.Time `json:"expires_at"`
}

// LogoutResponse confirms session termination.
type LogoutResponse struct {
	Message string `json:"message"`
}

// UserResponse is the read-only projection of a user and their roles.
type UserResponse struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Roles    []string `json:"roles"`
}

// HealthResponse is returned by the livez/readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}

// ErrorResponse is the wire shape of every error the API returns.
type ErrorResponse struct {
	// Error is the machine-readable code (e.g. "invalid_credentials").
	Error string `json:"error"`

	// ErrorDescription is a human-readable description.
	ErrorDescription string `json:"error_description"`

	// Details carries field-level validation errors when present.
	Details map[string]string `json:"details,omitempty"`
}
