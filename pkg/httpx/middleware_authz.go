package httpx

import (
	"net/http"
	"strings"
)

// RequireAnyRole the caller must hold at least one of the provided roles.
// Role names are case-sensitive.
func RequireAnyRole(required ...string) Middleware {
	want := make(map[string]struct{}, len(required))
	for _, role := range required {
		want[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, role := range rolesFromCtx(r.Context()) {
				if _, ok := want[role]; ok {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeRoleError(w, required...)
		})
	}
}

// RequireAllRoles the caller must hold every role listed.
func RequireAllRoles(required ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have := make(map[string]struct{})
			for _, role := range rolesFromCtx(r.Context()) {
				have[role] = struct{}{}
			}

			for _, req := range required {
				if _, ok := have[req]; !ok {
					writeRoleError(w, required...)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeRoleError(w http.ResponseWriter, required ...string) {
	w.Header().
		Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+strings.Join(required, " ")+`"`)
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte("insufficient_role"))
}
