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

// RegisterHandler creates new user accounts.
type RegisterHandler struct {
	UserService *service.UserService
	Validate    *validator.Validate
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authapi.RegisterRequest
	if !decodeAndValidate(w, r, h.Validate, &req) {
		return
	}

	profile, err := h.UserService.Register(ctx, req.Email, req.Password, req.FullName, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			authapi.NewAPIError(http.StatusConflict,
				authapi.ErrorCodeInvalidRequest,
				"An account with this email already exists.").WriteError(w)
			return
		}
		log.Error("registration failed", "err", err)
		authapi.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authapi.RegisterResponse{
		Message: "User registered successfully.",
		Role:    profile.Roles[0],
	})
}
