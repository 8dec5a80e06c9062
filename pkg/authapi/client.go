package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client is a thin HTTP client for the auth service. It is used by
// integration tests and by downstream services that need to drive the auth
// API programmatically.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying http.Client, e.g. for a test server's
// client or custom timeouts.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// NewClient creates a Client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register creates a new user account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/v1/auth/register", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.do(ctx, http.MethodPost, "/v1/auth/login", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh rotates the session, returning a fresh token pair.
func (c *Client) Refresh(ctx context.Context, req RefreshRequest) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.do(ctx, http.MethodPost, "/v1/auth/refresh", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout clears the caller's refresh token. Requires a valid access token.
func (c *Client) Logout(ctx context.Context, accessToken string) (*LogoutResponse, error) {
	var out LogoutResponse
	if err := c.do(ctx, http.MethodPost, "/v1/auth/logout", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUser fetches the projection of a user and their roles.
func (c *Client) GetUser(ctx context.Context, accessToken, userID string) (*UserResponse, error) {
	var out UserResponse
	if err := c.do(ctx, http.MethodGet, "/v1/users/"+userID, accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do performs a JSON round trip. Non-2xx responses are decoded into an
// *APIError so callers can match on the code.
func (c *Client) do(ctx context.Context, method, path, accessToken string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("authapi: encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("authapi: build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("authapi: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var wire ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil || wire.Error == "" {
			return NewAPIError(resp.StatusCode, ErrorCodeServerError,
				fmt.Sprintf("unexpected status %d", resp.StatusCode))
		}
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        wire.Error,
			Description: wire.ErrorDescription,
			Details:     wire.Details,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("authapi: decode response: %w", err)
	}
	return nil
}
