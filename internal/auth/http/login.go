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

// LoginHandler exchanges email/password credentials for a token pair.
type LoginHandler struct {
	TokenService *service.TokenService
	Validate     *validator.Validate
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authapi.LoginRequest
	if !decodeAndValidate(w, r, h.Validate, &req) {
		return
	}

	pair, err := h.TokenService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			authapi.ErrInvalidCredentials.WriteError(w)
			return
		}
		log.Error("login failed", "err", err)
		authapi.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authapi.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresAt:    pair.ExpiresAt,
	})
}
