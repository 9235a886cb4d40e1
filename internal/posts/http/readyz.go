package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/postboard/internal/posts/store"
	"github.com/aussiebroadwan/postboard/pkg/httpx"
	"github.com/aussiebroadwan/postboard/pkg/postsdk"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Checks the database and whether a delete token secret is configured. Without a secret the
//	@Description	service still serves reads but refuses deletes, and reports itself degraded.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	postsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	postsdk.HealthResponse	"service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store, deleteEnabled bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &postsdk.HealthChecks{
			Database:     "ok",
			DeleteTokens: "ok",
		}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		if !deleteEnabled {
			checks.DeleteTokens = "error: no secret configured"
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, postsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
