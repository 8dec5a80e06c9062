package authapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lanternsec/keygate/pkg/httpx"
)

// Error codes returned by the API. Credential and refresh failures are
// deliberately vague so callers can't probe which check failed.
const (
	ErrorCodeInvalidRequest      = "invalid_request"
	ErrorCodeValidation          = "validation_error"
	ErrorCodeInvalidCredentials  = "invalid_credentials"
	ErrorCodeInvalidToken        = "invalid_token"
	ErrorCodeInvalidRefreshToken = "invalid_refresh_token"
	ErrorCodeNotFound            = "not_found"
	ErrorCodeServerError         = "server_error"
)

// APIError is a typed, wire-visible failure. It implements the error
// interface and is used both by the server (to write HTTP responses) and by
// the SDK client (to represent errors it received).
type APIError struct {
	// StatusCode is the HTTP status for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`

	// Details carries field-level validation errors, if any
	Details map[string]string `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
		Details:          e.Details,
	})
}

// NewAPIError constructs an APIError with the given status, code and
// description.
func NewAPIError(status int, code, description string) *APIError {
	return &APIError{StatusCode: status, Code: code, Description: description}
}

// NewValidationError builds a 400 with field-level details, surfaced
// verbatim from request validation so the caller can fix their input.
func NewValidationError(details map[string]string) *APIError {
	return &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeValidation,
		Description: "Request validation failed.",
		Details:     details,
	}
}

// Predefined errors for the common failure modes.
var (
	ErrInvalidRequest = NewAPIError(http.StatusBadRequest,
		ErrorCodeInvalidRequest, "The request is missing a required parameter or is malformed.")

	ErrInvalidJSONBody = NewAPIError(http.StatusBadRequest,
		ErrorCodeInvalidRequest, "Request body must be valid JSON.")

	ErrInvalidContentType = NewAPIError(http.StatusBadRequest,
		ErrorCodeInvalidRequest, "Content-Type must be application/json.")

	ErrInvalidCredentials = NewAPIError(http.StatusUnauthorized,
		ErrorCodeInvalidCredentials, "Invalid email or password.")

	ErrInvalidToken = NewAPIError(http.StatusUnauthorized,
		ErrorCodeInvalidToken, "Invalid access token.")

	ErrInvalidRefreshToken = NewAPIError(http.StatusUnauthorized,
		ErrorCodeInvalidRefreshToken, "Invalid refresh token.")

	ErrNotFound = NewAPIError(http.StatusNotFound,
		ErrorCodeNotFound, "The requested resource was not found.")

	ErrServerError = NewAPIError(http.StatusInternalServerError,
		ErrorCodeServerError, "An internal error occurred.")
)
