package http

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/lanternsec/keygate/internal/auth/service"
	"github.com/lanternsec/keygate/pkg/authapi"
	"github.com/lanternsec/keygate/pkg/httpx"
	"github.com/lanternsec/keygate/pkg/slogx"
)

// RefreshHandler rotates the caller's session: it takes the previous access
// token (which may be expired) plus the live refresh token and returns a
// fresh pair.
type RefreshHandler struct {
	TokenService *service.TokenService
	Validate     *validator.Validate
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authapi.RefreshRequest
	if !decodeAndValidate(w, r, h.Validate, &req) {
		return
	}

	pair, err := h.TokenService.Refresh(ctx, req.AccessToken, req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			authapi.ErrInvalidToken.WriteError(w)
		case errors.Is(err, service.ErrInvalidRefresh):
			authapi.ErrInvalidRefreshToken.WriteError(w)
		default:
			log.Error("refresh failed", "err", err)
			authapi.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authapi.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresAt:    pair.ExpiresAt,
	})
}
