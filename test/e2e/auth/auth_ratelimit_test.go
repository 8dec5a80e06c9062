package auth_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lanternsec/keygate/pkg/authapi"
	"github.com/lanternsec/keygate/pkg/httpx"
)

// TestLoginRateLimit exhausts the strict per-IP budget on the login endpoint
// and expects a 429 once the burst is spent.
func TestLoginRateLimit(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	ctx := t.Context()

	req := authapi.LoginRequest{
		Email:    "nobody@example.com",
		Password: "doesn't matter here",
	}

	// Spend the whole burst. Failed logins count just like successful ones.
	for range httpx.StrictLimit.Burst {
		_, err := srv.Client.Login(ctx, req)
		apiErr := err.(*authapi.APIError)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	}

	_, err := srv.Client.Login(ctx, req)
	apiErr := err.(*authapi.APIError)
	require.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
}
