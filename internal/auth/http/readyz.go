package http

import (
	"net/http"
	"time"

	"github.com/lanternsec/keygate/internal/auth/store"
	"github.com/lanternsec/keygate/pkg/authapi"
	"github.com/lanternsec/keygate/pkg/httpx"
)

// ReadyzHandler is the readiness probe. It reports 503 while the credential
// store is unreachable so load balancers hold traffic back.
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &authapi.HealthChecks{
			Database: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := authapi.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
