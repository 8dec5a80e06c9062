package auth_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lanternsec/keygate/pkg/authapi"
	"github.com/lanternsec/keygate/pkg/jwtx"
)

// TestFullSessionLifecycle walks one account through the whole journey:
// register, login, read the profile, rotate the session, log out.
func TestFullSessionLifecycle(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	ctx := t.Context()

	// Register
	resp, err := srv.Client.Register(ctx, authapi.RegisterRequest{
		Email:    "alice@example.com",
		Password: alicePassword,
		FullName: "Alice Liddell",
		Role:     "Admin",
	})
	require.NoError(t, err)
	require.Equal(t, "Admin", resp.Role)

	// Login
	pair, err := srv.Client.Login(ctx, authapi.LoginRequest{
		Email:    "alice@example.com",
		Password: alicePassword,
	})
	require.NoError(t, err)
	assertTokenResponse(t, pair)

	// The access token carries identity and role claims.
	claims, err := srv.Codec.Decode(pair.AccessToken, jwtx.FullVerification())
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", claims.Email)
	require.True(t, claims.HasRole("Admin"))

	// Fetch the profile with the fresh token.
	user, err := srv.Client.GetUser(ctx, pair.AccessToken, claims.Subject)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email)
	require.Equal(t, "Alice Liddell", user.FullName)
	require.Equal(t, []string{"Admin"}, user.Roles)

	// Rotate the session.
	next, err := srv.Client.Refresh(ctx, authapi.RefreshRequest{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
	require.NoError(t, err)
	assertTokenResponse(t, next)
	require.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// Log out with the rotated access token.
	out, err := srv.Client.Logout(ctx, next.AccessToken)
	require.NoError(t, err)
	require.NotEmpty(t, out.Message)

	// The session is gone: the rotated refresh token no longer works.
	_, err = srv.Client.Refresh(ctx, authapi.RefreshRequest{
		AccessToken:  next.AccessToken,
		RefreshToken: next.RefreshToken,
	})
	assertAPIError(t, err, http.StatusUnauthorized, authapi.ErrorCodeInvalidRefreshToken)
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	ctx := t.Context()

	t.Run("rejects a malformed email", func(t *testing.T) {
		_, err := srv.Client.Register(ctx, authapi.RegisterRequest{
			Email:    "not-an-email",
			Password: alicePassword,
			FullName: "Alice",
			Role:     "User",
		})
		assertAPIError(t, err, http.StatusBadRequest, authapi.ErrorCodeValidation)

		apiErr := err.(*authapi.APIError)
		require.Contains(t, apiErr.Details, "email")
	})

	t.Run("rejects a short password", func(t *testing.T) {
		_, err := srv.Client.Register(ctx, authapi.RegisterRequest{
			Email:    "alice@example.com",
			Password: "short",
			FullName: "Alice",
			Role:     "User",
		})
		assertAPIError(t, err, http.StatusBadRequest, authapi.ErrorCodeValidation)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		registerUser(t, srv.Client, "taken@example.com", alicePassword, "First", "User")

		_, err := srv.Client.Register(ctx, authapi.RegisterRequest{
			Email:    "taken@example.com",
			Password: alicePassword,
			FullName: "Second",
			Role:     "User",
		})
		assertAPIError(t, err, http.StatusConflict, authapi.ErrorCodeInvalidRequest)
	})
}

func TestGetUserNotFound(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	ctx := t.Context()

	registerUser(t, srv.Client, "alice@example.com", alicePassword, "Alice", "User")
	pair, err := srv.Client.Login(ctx, authapi.LoginRequest{
		Email:    "alice@example.com",
		Password: alicePassword,
	})
	require.NoError(t, err)

	_, err = srv.Client.GetUser(ctx, pair.AccessToken, "no-such-user")
	assertAPIError(t, err, http.StatusNotFound, authapi.ErrorCodeNotFound)
}
