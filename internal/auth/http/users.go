package http

import (
	"errors"
	"net/http"

	"github.com/lanternsec/keygate/internal/auth/service"
	"github.com/lanternsec/keygate/pkg/authapi"
	"github.com/lanternsec/keygate/pkg/httpx"
	"github.com/lanternsec/keygate/pkg/slogx"
)

// UsersHandler serves the read-only user projection.
type UsersHandler struct {
	UserService *service.UserService
}

func (h *UsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id := r.PathValue("id")
	if id == "" {
		authapi.ErrInvalidRequest.WriteError(w)
		return
	}

	profile, err := h.UserService.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			authapi.ErrNotFound.WriteError(w)
			return
		}
		log.Error("user lookup failed", "err", err)
		authapi.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authapi.UserResponse{
		ID:       profile.ID,
		Email:    profile.Email,
		FullName: profile.FullName,
		Roles:    profile.Roles,
	})
}
