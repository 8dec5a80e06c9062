package auth_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lanternsec/keygate/pkg/authapi"
	"github.com/lanternsec/keygate/pkg/jwtx"
)

// TestLoginEnumerationSafety verifies an attacker cannot tell registered
// emails apart from unregistered ones through the login endpoint.
func TestLoginEnumerationSafety(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	ctx := t.Context()

	registerUser(t, srv.Client, "alice@example.com", alicePassword, "Alice", "User")

	_, errUnknown := srv.Client.Login(ctx, authapi.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever whatever",
	})
	_, errWrongPw := srv.Client.Login(ctx, authapi.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong password here",
	})

	assertAPIError(t, errUnknown, http.StatusUnauthorized, authapi.ErrorCodeInvalidCredentials)
	assertAPIError(t, errWrongPw, http.StatusUnauthorized, authapi.ErrorCodeInvalidCredentials)

	// Identical wire responses, nothing to enumerate on.
	unknownErr := errUnknown.(*authapi.APIError)
	wrongPwErr := errWrongPw.(*authapi.APIError)
	require.Equal(t, unknownErr.Description, wrongPwErr.Description)
}

// TestForgedAccessTokenRejected covers tokens signed with the wrong secret
// and tokens claiming a foreign algorithm.
func TestForgedAccessTokenRejected(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	ctx := t.Context()

	registerUser(t, srv.Client, "alice@example.com", alicePassword, "Alice", "User")
	pair, err := srv.Client.Login(ctx, authapi.LoginRequest{
		Email:    "alice@example.com",
		Password: alicePassword,
	})
	require.NoError(t, err)

	claims, err := srv.Codec.Decode(pair.AccessToken, jwtx.FullVerification())
	require.NoError(t, err)

	t.Run("wrong signing secret", func(t *testing.T) {
		evilCodec, err := jwtx.NewCodec(
			[]byte("ffffffffffffffffffffffffffffffff"), testIssuer, testAudience)
		require.NoError(t, err)

		forged, err := evilCodec.Encode(jwtx.NewAccessClaims(
			claims.Subject, claims.Email, []string{"Admin"},
			time.Hour, testIssuer, testAudience, time.Now(),
		))
		require.NoError(t, err)

		// The forged token is rejected both as a bearer credential and as
		// refresh identity proof.
		_, err = srv.Client.GetUser(ctx, forged, claims.Subject)
		apiErr := err.(*authapi.APIError)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

		_, err = srv.Client.Refresh(ctx, authapi.RefreshRequest{
			AccessToken:  forged,
			RefreshToken: pair.RefreshToken,
		})
		assertAPIError(t, err, http.StatusUnauthorized, authapi.ErrorCodeInvalidToken)
	})

	t.Run("tampered payload", func(t *testing.T) {
		tampered := pair.AccessToken[:len(pair.AccessToken)-4] + "AAAA"

		_, err := srv.Client.Refresh(ctx, authapi.RefreshRequest{
			AccessToken:  tampered,
			RefreshToken: pair.RefreshToken,
		})
		assertAPIError(t, err, http.StatusUnauthorized, authapi.ErrorCodeInvalidToken)
	})
}

// TestLogoutRequiresLiveToken ensures the logout endpoint refuses expired or
// absent bearer tokens: only its subject may end a session.
func TestLogoutRequiresLiveToken(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	ctx := t.Context()

	registerUser(t, srv.Client, "alice@example.com", alicePassword, "Alice", "User")

	t.Run("missing token", func(t *testing.T) {
		_, err := srv.Client.Logout(ctx, "")
		apiErr := err.(*authapi.APIError)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})

	t.Run("expired token", func(t *testing.T) {
		srv.Tokens.AccessTTL = -time.Minute
		pair, err := srv.Client.Login(ctx, authapi.LoginRequest{
			Email:    "alice@example.com",
			Password: alicePassword,
		})
		require.NoError(t, err)
		srv.Tokens.AccessTTL = jwtx.DefaultAccessTokenTTL

		// Expired tokens can refresh a session but never end one: the
		// logout path runs full verification.
		_, err = srv.Client.Logout(ctx, pair.AccessToken)
		apiErr := err.(*authapi.APIError)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})
}
