package http

import (
	"errors"
	"net/http"

	"github.com/lanternsec/keygate/internal/auth/service"
	"github.com/lanternsec/keygate/pkg/authapi"
	"github.com/lanternsec/keygate/pkg/httpx"
	"github.com/lanternsec/keygate/pkg/slogx"
)

// LogoutHandler clears the caller's refresh slot. The subject comes from the
// verified access token, so there is no request body.
type LogoutHandler struct {
	TokenService *service.TokenService
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		authapi.ErrInvalidToken.WriteError(w)
		return
	}

	if err := h.TokenService.Logout(ctx, userID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			authapi.ErrNotFound.WriteError(w)
			return
		}
		log.Error("logout failed", "err", err)
		authapi.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authapi.LogoutResponse{
		Message: "Logged out successfully.",
	})
}
